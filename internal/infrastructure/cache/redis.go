package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"supervault_dashboard/internal/pkg/metrics"
)

const backendRedis = "redis"

// RedisCache shares responses between dashboard replicas. Expiry is left to
// Redis through SET EX.
type RedisCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
	logger *zap.Logger
}

// NewRedisCache connects to url and verifies the connection with PING.
func NewRedisCache(ctx context.Context, url, prefix string, ttl time.Duration, logger *zap.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return newRedisCache(rdb, prefix, ttl, logger), nil
}

func newRedisCache(rdb *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *RedisCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisCache{
		rdb:    rdb,
		ttl:    ttl,
		prefix: prefix,
		logger: logger.Named("RedisCache"),
	}
}

func (c *RedisCache) key(k string) string {
	return c.prefix + k
}

// Get returns the stored body. Redis errors are logged and count as misses.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheLookupsTotal.WithLabelValues(backendRedis, "miss").Inc()
		return nil, false
	}
	if err != nil {
		c.logger.Warn("redis get failed", zap.String("key", key), zap.Error(err))
		metrics.CacheLookupsTotal.WithLabelValues(backendRedis, "error").Inc()
		return nil, false
	}
	metrics.CacheLookupsTotal.WithLabelValues(backendRedis, "hit").Inc()
	return val, true
}

// Set stores value with the cache TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte) {
	if err := c.rdb.Set(ctx, c.key(key), value, c.ttl).Err(); err != nil {
		c.logger.Warn("redis set failed", zap.String("key", key), zap.Error(err))
	}
}

// Delete removes keys.
func (c *RedisCache) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, c.key(k))
	}
	if err := c.rdb.Del(ctx, full...).Err(); err != nil {
		c.logger.Warn("redis del failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// Flush removes every key under the cache prefix.
func (c *RedisCache) Flush(ctx context.Context) {
	var batch []string
	iter := c.rdb.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			c.del(ctx, batch)
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("redis scan failed", zap.Error(err))
	}
	if len(batch) > 0 {
		c.del(ctx, batch)
	}
}

func (c *RedisCache) del(ctx context.Context, keys []string) {
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("redis flush failed", zap.Int("keys", len(keys)), zap.Error(err))
	}
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
