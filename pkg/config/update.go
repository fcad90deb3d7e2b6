package config

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, Crawl.Country).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int

	s = c.Store.Backend
	if s != "" {
		res = append(res, OptStoreBackend(s))
	}

	s = c.Database.Host
	if s != "" {
		res = append(res, OptDatabaseHost(s))
	}
	i = c.Database.Port
	if i > 0 {
		res = append(res, OptDatabasePort(i))
	}
	s = c.Database.User
	if s != "" {
		res = append(res, OptDatabaseUser(s))
	}
	s = c.Database.Password
	if s != "" {
		res = append(res, OptDatabasePassword(s))
	}
	s = c.Database.Database
	if s != "" {
		res = append(res, OptDatabaseDatabase(s))
	}
	s = c.Database.SSLMode
	if s != "" {
		res = append(res, OptDatabaseSSLMode(s))
	}

	s = c.PocketBase.URL
	if s != "" {
		res = append(res, OptPocketBaseURL(s))
	}
	s = c.PocketBase.Email
	if s != "" {
		res = append(res, OptPocketBaseEmail(s))
	}
	s = c.PocketBase.Password
	if s != "" {
		res = append(res, OptPocketBasePassword(s))
	}
	s = c.PocketBase.AuthCollection
	if s != "" {
		res = append(res, OptPocketBaseAuthCollection(s))
	}
	i = c.PocketBase.PerPage
	if i > 0 {
		res = append(res, OptPocketBasePerPage(i))
	}

	s = c.GeoDB.URL
	if s != "" {
		res = append(res, OptGeoDBURL(s))
	}
	s = c.GeoDB.APIKey
	if s != "" {
		res = append(res, OptGeoDBAPIKey(s))
	}
	s = c.GeoDB.APIHost
	if s != "" {
		res = append(res, OptGeoDBAPIHost(s))
	}
	i = c.GeoDB.PageSize
	if i > 0 {
		res = append(res, OptGeoDBPageSize(i))
	}
	// zero delay is meaningful, so it is always carried over
	res = append(res, OptGeoDBDelayMs(c.GeoDB.DelayMs))
	i = c.GeoDB.TimeoutSec
	if i > 0 {
		res = append(res, OptGeoDBTimeoutSec(i))
	}
	if c.GeoDB.CacheResponses != nil {
		res = append(res, OptGeoDBCacheResponses(c.GeoDB.CacheResponses))
	}

	s = c.Cache.RedisAddr
	if s != "" {
		res = append(res, OptCacheRedisAddr(s))
	}
	s = c.Cache.RedisPassword
	if s != "" {
		res = append(res, OptCacheRedisPassword(s))
	}
	i = c.Cache.RedisDB
	if i > 0 {
		res = append(res, OptCacheRedisDB(i))
	}
	i = c.Cache.TTLSec
	if i > 0 {
		res = append(res, OptCacheTTLSec(i))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	return res
}

// Delay returns the delay between external geo API calls.
func (g GeoDBConfig) Delay() time.Duration {
	return time.Duration(g.DelayMs) * time.Millisecond
}

// Timeout returns the timeout of a single geo API request.
func (g GeoDBConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSec) * time.Second
}

// TTL returns time to live of cached option sets.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSec) * time.Second
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidNonNegative(name string, i int) bool {
	res := i >= 0
	if !res {
		gn.Warn("<em>%s</em> cannot be negative, ignoring %d", name, i)
	}
	return res
}

func isValidURL(name, s string) bool {
	u, err := url.Parse(s)
	res := err == nil && u.Host != "" &&
		(u.Scheme == "http" || u.Scheme == "https")
	if !res {
		gn.Warn("<em>%s</em> is not a valid http(s) URL, ignoring '%s'", name, s)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Store.Backend": {"pocketbase": s, "postgres": s},
		"Database.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
