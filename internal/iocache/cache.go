// Package iocache keeps option sets of location sources in Redis.
//
// The cache is read-through: a miss loads options from the wrapped
// source and stores them with a TTL. When Redis is unavailable, reads
// go straight to the wrapped source.
package iocache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/gnames/gnloc/pkg/config"
	"github.com/gnames/gnloc/pkg/location"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "gnloc:opts:"

// Cache is a Redis cache of option sets.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New creates a cache. It returns nil when no Redis address is
// configured, a nil Cache leaves sources unwrapped.
func New(cfg config.CacheConfig) *Cache {
	if cfg.RedisAddr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		MaxRetries:   1,
	})
	slog.Debug("Option cache enabled", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
	return &Cache{rdb: rdb, ttl: cfg.TTL()}
}

// Wrap returns sources that read through the cache.
func (c *Cache) Wrap(src location.Sources) location.Sources {
	if c == nil {
		return src
	}
	return src.Map(func(s location.Source) location.Source {
		return &source{next: s, c: c}
	})
}

// Invalidate removes all cached option sets, for example after a crawl
// added new records.
func (c *Cache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Close closes the Redis client.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}

// Key returns the Redis key of the option set of a level.
func Key(l location.Level, f location.Filter) string {
	return keyPrefix + l.String() + ":" + f.ForLevel(l).Key()
}

type source struct {
	next location.Source
	c    *Cache
}

func (s *source) Level() location.Level {
	return s.next.Level()
}

func (s *source) Options(
	ctx context.Context,
	f location.Filter,
) ([]location.Node, error) {
	key := Key(s.Level(), f)

	bs, err := s.c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var res []location.Node
		if err = json.Unmarshal(bs, &res); err == nil {
			slog.Debug("Options from cache", "key", key)
			return res, nil
		}
		slog.Warn("Cannot decode cached options", "key", key, "error", err)
	case !errors.Is(err, redis.Nil):
		slog.Warn("Option cache is unavailable", "key", key, "error", err)
	}

	res, err := s.next.Options(ctx, f)
	if err != nil {
		return nil, err
	}

	if bs, err = json.Marshal(res); err == nil {
		err = s.c.rdb.Set(ctx, key, bs, s.c.ttl).Err()
	}
	if err != nil {
		slog.Warn("Cannot cache options", "key", key, "error", err)
	}
	return res, nil
}
