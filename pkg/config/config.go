// Package config provides configuration management for GNloc.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Store: backend
//   - Database: host, port, user, password, database, ssl_mode
//   - PocketBase: url, email, password, auth_collection, per_page
//   - GeoDB: url, api_key, api_host, page_size, delay_ms, timeout_sec,
//     cache_responses
//   - Cache: redis_addr, redis_password, redis_db, ttl_sec
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - Crawl.Country (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNLOC_ prefix with underscores for nesting:
//
//	GNLOC_STORE_BACKEND=postgres
//	GNLOC_DATABASE_HOST=localhost
//	GNLOC_GEODB_API_KEY=secret
//	GNLOC_LOG_LEVEL=info
package config

// Config represents the complete GNloc configuration.
type Config struct {
	// Store selects the record-storage backend.
	Store StoreConfig `mapstructure:"store" yaml:"store"`

	// Database contains PostgreSQL connection settings for the
	// "postgres" backend.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// PocketBase contains settings of the hosted record-storage service
	// used by the "pocketbase" backend.
	PocketBase PocketBaseConfig `mapstructure:"pocketbase" yaml:"pocketbase"`

	// GeoDB contains settings of the external geo-data API.
	GeoDB GeoDBConfig `mapstructure:"geodb" yaml:"geodb"`

	// Cache contains settings of the optional Redis cache of option sets.
	Cache CacheConfig `mapstructure:"cache" yaml:"cache"`

	// Crawl contains settings specific to the crawl command.
	Crawl CrawlConfig `mapstructure:"crawl" yaml:"crawl"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// StoreConfig selects where location records live.
type StoreConfig struct {
	// Backend is either "pocketbase" or "postgres".
	Backend string `mapstructure:"backend" yaml:"backend"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// PocketBaseConfig contains access settings of the record-storage service.
type PocketBaseConfig struct {
	// URL is the base URL of the service, e.g. http://127.0.0.1:8090.
	URL string `mapstructure:"url" yaml:"url"`

	// Email of a superuser account. Empty email means anonymous access,
	// which is enough for reading public collections.
	Email string `mapstructure:"email" yaml:"email"`

	// Password of the superuser account.
	Password string `mapstructure:"password" yaml:"password"`

	// AuthCollection is the collection used for password authentication.
	AuthCollection string `mapstructure:"auth_collection" yaml:"auth_collection"`

	// PerPage is the page size used when listing records.
	PerPage int `mapstructure:"per_page" yaml:"per_page"`
}

// GeoDBConfig contains settings of the external geo-data API.
type GeoDBConfig struct {
	// URL is the base URL of the API.
	URL string `mapstructure:"url" yaml:"url"`

	// APIKey is sent as X-RapidAPI-Key header.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`

	// APIHost is sent as X-RapidAPI-Host header.
	APIHost string `mapstructure:"api_host" yaml:"api_host"`

	// PageSize is the limit used for paginated requests.
	PageSize int `mapstructure:"page_size" yaml:"page_size"`

	// DelayMs is the minimal delay between two external calls in
	// milliseconds. The API is rate limited.
	DelayMs int `mapstructure:"delay_ms" yaml:"delay_ms"`

	// TimeoutSec is the timeout of a single HTTP request.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`

	// CacheResponses enables the on-disk cache of detail lookups.
	CacheResponses *bool `mapstructure:"cache_responses" yaml:"cache_responses"`
}

// CacheConfig contains settings of the Redis cache of option sets.
type CacheConfig struct {
	// RedisAddr is host:port of Redis. Empty value disables the cache.
	RedisAddr string `mapstructure:"redis_addr" yaml:"redis_addr"`

	// RedisPassword is the Redis password.
	RedisPassword string `mapstructure:"redis_password" yaml:"redis_password"`

	// RedisDB is the Redis logical database number.
	RedisDB int `mapstructure:"redis_db" yaml:"redis_db"`

	// TTLSec is the time to live of cached option sets in seconds.
	TTLSec int `mapstructure:"ttl_sec" yaml:"ttl_sec"`
}

// CrawlConfig contains settings specific to the crawl command.
type CrawlConfig struct {
	// Country is the name of the local country to crawl.
	Country string `mapstructure:"country" yaml:"country"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	cacheResponses := true
	res := &Config{
		Store: StoreConfig{
			Backend: "pocketbase",
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "gnloc",
			SSLMode:  "disable",
		},
		PocketBase: PocketBaseConfig{
			URL:            "http://127.0.0.1:8090",
			AuthCollection: "_superusers",
			PerPage:        500,
		},
		GeoDB: GeoDBConfig{
			URL:     "https://wft-geo-db.p.rapidapi.com/v1/geo",
			APIHost: "wft-geo-db.p.rapidapi.com",
			// free tier does not allow more than 10 records per page
			PageSize:       10,
			DelayMs:        150,
			TimeoutSec:     30,
			CacheResponses: &cacheResponses,
		},
		Cache: CacheConfig{
			TTLSec: 600,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}
