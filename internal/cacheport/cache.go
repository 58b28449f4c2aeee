// Package cacheport implements the Cache Port (C3): a TTL get/set over
// opaque byte strings, backed by Redis via github.com/redis/go-redis/v9.
// Grounded on the other_examples movie-discovery reference service's
// Redis read-through pattern — the closest domain analogue available in
// the example pack, since none of the teacher-eligible repos ship a
// Redis client.
//
// Per spec.md §4.3, backend I/O failure must degrade to miss/no-op: a
// cache outage never fails a read. Port therefore never returns an
// error from Get or Set; failures are logged and recorded in
// internal/metrics instead.
package cacheport

import (
	"context"
	"time"

	"github.com/kinoflow/kinoflow/internal/logging"
	"github.com/kinoflow/kinoflow/internal/metrics"
	"github.com/redis/go-redis/v9"
)

// Port is the Cache Port contract consumed by the Film/Genre/Person
// services.
type Port interface {
	// Get returns (value, true) on a hit. A miss or a backend error both
	// return (nil, false); callers cannot distinguish them. Stored bytes
	// are returned as they are: bytes that fail to parse are the caller's
	// to treat as a miss.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set overwrites key with value for the given TTL. Failures are
	// logged and swallowed: the read that populated this value has
	// already succeeded against the backend.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// RedisCache implements Port over a single go-redis client.
type RedisCache struct {
	client    *redis.Client
	cacheType string // label for metrics, e.g. "film", "genre", "person", "search"
}

// New wraps an established go-redis client. cacheType is the metrics
// label recorded on every hit/miss/error.
func New(client *redis.Client, cacheType string) *RedisCache {
	return &RedisCache{client: client, cacheType: cacheType}
}

// Dial constructs and pings a go-redis client from an addr (host:port).
func Dial(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			metrics.RecordCacheError(c.cacheType, "get")
			logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache get failed, degrading to miss")
		}
		metrics.RecordCacheMiss(c.cacheType)
		return nil, false
	}
	metrics.RecordCacheHit(c.cacheType)
	return value, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		metrics.RecordCacheError(c.cacheType, "set")
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache set failed, continuing without caching")
	}
}
