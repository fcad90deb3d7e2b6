package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/gnames/gnloc/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "gnloc"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "gnloc"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "gnloc", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "gnloc", "config.yaml"),
		},
		{
			msg: "geo cache file",
			fn:  config.GeoCacheFilePath,
			res: filepath.Join(tempHome, ".cache", "gnloc", "geodb.sqlite"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		assert.Equal(t, "pocketbase", cfg.Store.Backend)

		// Database defaults
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "gnloc", cfg.Database.Database)
		assert.Equal(t, "disable", cfg.Database.SSLMode)

		// PocketBase defaults
		assert.Equal(t, "http://127.0.0.1:8090", cfg.PocketBase.URL)
		assert.Equal(t, "_superusers", cfg.PocketBase.AuthCollection)
		assert.Equal(t, 500, cfg.PocketBase.PerPage)

		// GeoDB defaults
		assert.Equal(t, 10, cfg.GeoDB.PageSize)
		assert.Equal(t, 150*time.Millisecond, cfg.GeoDB.Delay())
		assert.Equal(t, 30*time.Second, cfg.GeoDB.Timeout())
		require.NotNil(t, cfg.GeoDB.CacheResponses)
		assert.True(t, *cfg.GeoDB.CacheResponses)

		// Cache defaults
		assert.Empty(t, cfg.Cache.RedisAddr)
		assert.Equal(t, 10*time.Minute, cfg.Cache.TTL())

		// Log defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)
	})
}

func TestOptionStoreBackend(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets postgres",
			input:    "postgres",
			expected: "postgres",
		},
		{
			name:     "normalizes to lowercase",
			input:    " PocketBase ",
			expected: "pocketbase",
		},
		{
			name:     "ignores unknown backend",
			input:    "mysql",
			expected: "pocketbase",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptStoreBackend(tt.input)})
			assert.Equal(t, tt.expected, cfg.Store.Backend)
		})
	}
}

func TestOptionDatabaseHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid host",
			input:    "db.example.com",
			expected: "db.example.com",
		},
		{
			name:     "trims whitespace",
			input:    "  db.example.com  ",
			expected: "db.example.com",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: "localhost",
		},
		{
			name:     "ignores whitespace-only",
			input:    "   ",
			expected: "localhost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseHost(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.Host)
		})
	}
}

func TestOptionDatabasePort(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{
			name:     "sets valid port",
			input:    6543,
			expected: 6543,
		},
		{
			name:     "ignores zero",
			input:    0,
			expected: 5432,
		},
		{
			name:     "ignores negative",
			input:    -100,
			expected: 5432,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabasePort(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.Port)
		})
	}
}

func TestOptionDatabaseSSLMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid ssl mode - require",
			input:    "require",
			expected: "require",
		},
		{
			name:     "normalizes to lowercase",
			input:    "VERIFY-FULL",
			expected: "verify-full",
		},
		{
			name:     "ignores invalid value",
			input:    "invalid",
			expected: "disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseSSLMode(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.SSLMode)
		})
	}
}

func TestOptionURLs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets https url",
			input:    "https://pb.example.org/",
			expected: "https://pb.example.org",
		},
		{
			name:     "ignores url without scheme",
			input:    "pb.example.org",
			expected: "http://127.0.0.1:8090",
		},
		{
			name:     "ignores unsupported scheme",
			input:    "ftp://pb.example.org",
			expected: "http://127.0.0.1:8090",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptPocketBaseURL(tt.input)})
			assert.Equal(t, tt.expected, cfg.PocketBase.URL)
		})
	}

	cfg := config.New()
	cfg.Update([]config.Option{config.OptGeoDBURL("http://localhost:9000/v1/geo/")})
	assert.Equal(t, "http://localhost:9000/v1/geo", cfg.GeoDB.URL)
}

func TestOptionGeoDBDelay(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{
			name:     "sets delay",
			input:    1000,
			expected: 1000,
		},
		{
			name:     "allows zero",
			input:    0,
			expected: 0,
		},
		{
			name:     "ignores negative",
			input:    -1,
			expected: 150,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptGeoDBDelayMs(tt.input)})
			assert.Equal(t, tt.expected, cfg.GeoDB.DelayMs)
		})
	}
}

func TestOptionGeoDBCacheResponses(t *testing.T) {
	falseVal := false

	cfg := config.New()
	cfg.Update([]config.Option{config.OptGeoDBCacheResponses(nil)})
	require.NotNil(t, cfg.GeoDB.CacheResponses)
	assert.True(t, *cfg.GeoDB.CacheResponses)

	cfg.Update([]config.Option{config.OptGeoDBCacheResponses(&falseVal)})
	assert.False(t, *cfg.GeoDB.CacheResponses)
}

func TestOptionLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid log level - debug",
			input:    "debug",
			expected: "debug",
		},
		{
			name:     "normalizes to lowercase",
			input:    "WARN",
			expected: "warn",
		},
		{
			name:     "ignores invalid value",
			input:    "trace",
			expected: "info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptLogLevel(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Log.Level)
		})
	}
}

func TestOptionLogDestination(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptLogDestination("STDERR")})
	assert.Equal(t, "stderr", cfg.Log.Destination)

	cfg.Update([]config.Option{config.OptLogDestination("syslog")})
	assert.Equal(t, "stderr", cfg.Log.Destination)
}

func TestOptionCrawlCountry(t *testing.T) {
	cfg := config.New()
	assert.Empty(t, cfg.Crawl.Country)

	cfg.Update([]config.Option{config.OptCrawlCountry("  Canada ")})
	assert.Equal(t, "Canada", cfg.Crawl.Country)

	cfg.Update([]config.Option{config.OptCrawlCountry("")})
	assert.Equal(t, "Canada", cfg.Crawl.Country)
}

func TestToOptions(t *testing.T) {
	falseVal := false

	src := config.New()
	src.Update([]config.Option{
		config.OptStoreBackend("postgres"),
		config.OptDatabaseHost("db.example.com"),
		config.OptDatabasePort(6543),
		config.OptPocketBaseEmail("admin@example.com"),
		config.OptGeoDBAPIKey("secret"),
		config.OptGeoDBDelayMs(0),
		config.OptGeoDBCacheResponses(&falseVal),
		config.OptCacheRedisAddr("127.0.0.1:6379"),
		config.OptCacheRedisDB(2),
		config.OptLogLevel("debug"),
		config.OptCrawlCountry("Canada"),
		config.OptHomeDir("/tmp/home"),
	})

	dst := config.New()
	dst.Update(src.ToOptions())

	assert.Equal(t, "postgres", dst.Store.Backend)
	assert.Equal(t, "db.example.com", dst.Database.Host)
	assert.Equal(t, 6543, dst.Database.Port)
	assert.Equal(t, "admin@example.com", dst.PocketBase.Email)
	assert.Equal(t, "secret", dst.GeoDB.APIKey)
	assert.Equal(t, 0, dst.GeoDB.DelayMs)
	assert.False(t, *dst.GeoDB.CacheResponses)
	assert.Equal(t, "127.0.0.1:6379", dst.Cache.RedisAddr)
	assert.Equal(t, 2, dst.Cache.RedisDB)
	assert.Equal(t, "debug", dst.Log.Level)

	// runtime-only fields are not carried over
	assert.Empty(t, dst.Crawl.Country)
	assert.Empty(t, dst.HomeDir)
}
