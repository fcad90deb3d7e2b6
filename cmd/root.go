/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnloc/internal/iofs"
	"github.com/gnames/gnloc/internal/iologger"
	gnloc "github.com/gnames/gnloc/pkg"
	"github.com/gnames/gnloc/pkg/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir   string
	opts      []config.Option
	cfg       *config.Config
	logCloser io.Closer
)

// getRootCmd creates the root command with all subcommands.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", gnloc.Version, gnloc.Build),
		Use:     "gnloc",
		Short:   "GNloc resolves and backfills the location hierarchy",
		Long: `GNloc keeps country, region, division and city records of a
directory application consistent and complete.

Commands:
  - create:  create location tables in PostgreSQL
  - migrate: update location tables to the latest schema
  - country: add or list countries of the record storage
  - resolve: resolve a URL query like "country=USA&region=California"
             into selections and option sets
  - crawl:   backfill regions, divisions and cities of a country from
             the geo-data API

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GNLOC_*), a .env file in the working
     directory is read first
  3. Config file (~/.config/gnloc/config.yaml)
  4. Built-in defaults

Examples of environment variables:
  GNLOC_STORE_BACKEND        pocketbase or postgres
  GNLOC_POCKETBASE_URL       URL of the record storage
  GNLOC_GEODB_API_KEY        key of the geo-data API
  GNLOC_CACHE_REDIS_ADDR     Redis for option sets
  GNLOC_LOG_LEVEL            debug, info, warn, error`,
		PersistentPreRunE: bootstrap,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logCloser != nil {
				_ = logCloser.Close()
			}
		},
		RunE:          runRoot,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for gnloc")

	rootCmd.PersistentFlags().StringP("backend", "b", "",
		"record storage backend (pocketbase, postgres)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "",
		"log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		getCreateCmd(),
		getMigrateCmd(),
		getCountryCmd(),
		getResolveCmd(),
		getCrawlCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, _ []string) error {
	// a missing .env file is normal
	_ = godotenv.Load(".env")

	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	created, err := ensureHome(homeDir)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if created {
		gn.Info(
			"Configuration file is created at <em>%s</em>",
			config.ConfigFilePath(homeDir),
		)
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	opts = append(opts, config.OptHomeDir(homeDir))
	opts = append(opts, flagOptions(cmd)...)
	cfg.Update(opts)

	logCloser, err = iologger.Init(config.LogDir(homeDir), cfg.Log, false)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"backend", cfg.Store.Backend,
	)
	return nil
}

func runRoot(cmd *cobra.Command, _ []string) error {
	versionFlag(cmd)
	return cmd.Help()
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err := v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}
	return &res, nil
}

// envKeys lists configuration keys that can be set by GNLOC_*
// environment variables. They match the fields of config.ToOptions.
var envKeys = []string{
	"store.backend",

	"database.host",
	"database.port",
	"database.user",
	"database.password",
	"database.database",
	"database.ssl_mode",

	"pocketbase.url",
	"pocketbase.email",
	"pocketbase.password",
	"pocketbase.auth_collection",
	"pocketbase.per_page",

	"geodb.url",
	"geodb.api_key",
	"geodb.api_host",
	"geodb.page_size",
	"geodb.delay_ms",
	"geodb.timeout_sec",
	"geodb.cache_responses",

	"cache.redis_addr",
	"cache.redis_password",
	"cache.redis_db",
	"cache.ttl_sec",

	"log.level",
	"log.format",
	"log.destination",
}

// envName converts a configuration key to its environment variable.
func envName(key string) string {
	return "GNLOC_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func initEnvVars(v *viper.Viper) {
	// Variables are bound one by one, so it is clear which ones are
	// allowed.
	for _, key := range envKeys {
		_ = v.BindEnv(key, envName(key))
	}
}

// ensureHome prepares directories and the config file in home. It
// reports whether the config file was created.
func ensureHome(home string) (bool, error) {
	if err := iofs.EnsureDirs(home); err != nil {
		return false, err
	}
	return iofs.EnsureConfigFile(home)
}
