package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptStoreBackend sets the record-storage backend.
// Valid values: "pocketbase", "postgres".
func OptStoreBackend(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Store.Backend", s) {
			c.Store.Backend = s
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptPocketBaseURL sets the base URL of the record-storage service.
func OptPocketBaseURL(s string) Option {
	s = strings.TrimRight(strings.TrimSpace(s), "/")
	return func(c *Config) {
		if isValidURL("PocketBase URL", s) {
			c.PocketBase.URL = s
		}
	}
}

// OptPocketBaseEmail sets the superuser email of the record-storage service.
func OptPocketBaseEmail(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("PocketBase Email", s) {
			c.PocketBase.Email = s
		}
	}
}

// OptPocketBasePassword sets the superuser password.
func OptPocketBasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("PocketBase Password", s) {
			c.PocketBase.Password = s
		}
	}
}

// OptPocketBaseAuthCollection sets the collection used for
// password authentication.
func OptPocketBaseAuthCollection(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("PocketBase Auth Collection", s) {
			c.PocketBase.AuthCollection = s
		}
	}
}

// OptPocketBasePerPage sets the page size for listing records.
func OptPocketBasePerPage(i int) Option {
	return func(c *Config) {
		if isValidInt("PocketBase Per Page", i) {
			c.PocketBase.PerPage = i
		}
	}
}

// OptGeoDBURL sets the base URL of the geo-data API.
func OptGeoDBURL(s string) Option {
	s = strings.TrimRight(strings.TrimSpace(s), "/")
	return func(c *Config) {
		if isValidURL("GeoDB URL", s) {
			c.GeoDB.URL = s
		}
	}
}

// OptGeoDBAPIKey sets the key of the geo-data API.
func OptGeoDBAPIKey(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("GeoDB API Key", s) {
			c.GeoDB.APIKey = s
		}
	}
}

// OptGeoDBAPIHost sets the host header of the geo-data API.
func OptGeoDBAPIHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("GeoDB API Host", s) {
			c.GeoDB.APIHost = s
		}
	}
}

// OptGeoDBPageSize sets the limit used in paginated requests.
func OptGeoDBPageSize(i int) Option {
	return func(c *Config) {
		if isValidInt("GeoDB Page Size", i) {
			c.GeoDB.PageSize = i
		}
	}
}

// OptGeoDBDelayMs sets the delay between external calls.
// Zero disables the delay.
func OptGeoDBDelayMs(i int) Option {
	return func(c *Config) {
		if isValidNonNegative("GeoDB Delay", i) {
			c.GeoDB.DelayMs = i
		}
	}
}

// OptGeoDBTimeoutSec sets the timeout of a single request.
func OptGeoDBTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("GeoDB Timeout", i) {
			c.GeoDB.TimeoutSec = i
		}
	}
}

// OptGeoDBCacheResponses enables or disables the on-disk cache of
// detail lookups. Uses pointer to distinguish between unset (nil) and false.
func OptGeoDBCacheResponses(b *bool) Option {
	return func(c *Config) {
		if b != nil {
			c.GeoDB.CacheResponses = b
		}
	}
}

// OptCacheRedisAddr sets host:port of Redis.
func OptCacheRedisAddr(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Cache Redis Address", s) {
			c.Cache.RedisAddr = s
		}
	}
}

// OptCacheRedisPassword sets the Redis password.
func OptCacheRedisPassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Cache Redis Password", s) {
			c.Cache.RedisPassword = s
		}
	}
}

// OptCacheRedisDB sets the Redis logical database.
func OptCacheRedisDB(i int) Option {
	return func(c *Config) {
		if isValidNonNegative("Cache Redis DB", i) {
			c.Cache.RedisDB = i
		}
	}
}

// OptCacheTTLSec sets time to live of cached option sets.
func OptCacheTTLSec(i int) Option {
	return func(c *Config) {
		if isValidInt("Cache TTL", i) {
			c.Cache.TTLSec = i
		}
	}
}

// OptCrawlCountry sets the name of the country to crawl.
// Runtime-only field - not in ToOptions().
func OptCrawlCountry(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Crawl Country", s) {
			c.Crawl.Country = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
