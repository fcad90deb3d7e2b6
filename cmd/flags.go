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
	"os"

	gnloc "github.com/gnames/gnloc/pkg"
	"github.com/gnames/gnloc/pkg/config"
	"github.com/spf13/cobra"
)

type funcFlag func(cmd *cobra.Command) []config.Option

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", gnloc.Version, gnloc.Build)
		os.Exit(0)
	}
}

func backendFlag(cmd *cobra.Command) []config.Option {
	s, _ := cmd.Flags().GetString("backend")
	if s == "" {
		return nil
	}
	return []config.Option{config.OptStoreBackend(s)}
}

func logLevelFlag(cmd *cobra.Command) []config.Option {
	s, _ := cmd.Flags().GetString("log-level")
	if s == "" {
		return nil
	}
	return []config.Option{config.OptLogLevel(s)}
}

func countryFlag(cmd *cobra.Command) []config.Option {
	if cmd.Flags().Lookup("country") == nil {
		return nil
	}
	s, _ := cmd.Flags().GetString("country")
	if s == "" {
		return nil
	}
	return []config.Option{config.OptCrawlCountry(s)}
}

// flagOptions converts command line flags to config options. Flags
// that are not set keep values from the config file and environment.
func flagOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	for _, fn := range []funcFlag{backendFlag, logLevelFlag, countryFlag} {
		res = append(res, fn(cmd)...)
	}
	return res
}
