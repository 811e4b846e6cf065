// Package cache implements the shared leaderboard cache on Redis.
//
// Reads are collapsed per key with singleflight so a miss under load
// triggers at most one row-source computation per process, and a Redis
// outage fails open: callers get a freshly computed value instead of an
// error.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Prometheus metrics
var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leaderboard_cache_hits_total",
		Help: "Total number of leaderboard cache hits",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leaderboard_cache_misses_total",
		Help: "Total number of leaderboard cache misses",
	})

	cacheBypasses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leaderboard_cache_bypasses_total",
		Help: "Total number of computations served without the cache due to Redis errors",
	})

	cacheInvalidations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leaderboard_cache_invalidated_keys_total",
		Help: "Total number of cache keys removed by prefix invalidation",
	})
)

// Commands is the slice of redis.Client the cache uses.
type Commands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisCache is a get-or-set cache over Redis.
type RedisCache struct {
	client Commands
	group  singleflight.Group
	logger *zap.SugaredLogger
}

func New(client Commands, logger *zap.Logger) *RedisCache {
	return &RedisCache{client: client, logger: logger.Sugar()}
}

// GetOrSet returns the cached value under key, computing and storing it
// with the given TTL on a miss. Concurrent callers for the same key share
// one in-flight computation. Only compute failures surface as errors;
// Redis failures log a warning and fall through to a direct computation.
func (c *RedisCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, compute func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		cacheHits.Inc()
		return data, nil
	}
	if !errors.Is(err, redis.Nil) {
		cacheBypasses.Inc()
		c.logger.Warnw("Cache read failed, computing fresh", "key", key, "error", err)
		return compute(ctx)
	}

	cacheMisses.Inc()
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A concurrent flight may have stored the value while this caller
		// was queued behind it.
		if data, err := c.client.Get(ctx, key).Bytes(); err == nil {
			return data, nil
		}

		data, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
			c.logger.Warnw("Cache write failed", "key", key, "error", err)
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// InvalidatePrefix removes every key under prefix and returns how many
// were deleted. Keys are walked with SCAN in batches so large sweeps do
// not block Redis.
func (c *RedisCache) InvalidatePrefix(ctx context.Context, prefix string) (int, error) {
	var (
		cursor  uint64
		deleted int
	)
	pattern := prefix + "*"

	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return deleted, fmt.Errorf("scan cache keys: %w", err)
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("delete cache keys: %w", err)
			}
			deleted += int(n)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	cacheInvalidations.Add(float64(deleted))
	return deleted, nil
}
