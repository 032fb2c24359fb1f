package verifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "verification:"

// redisClient is the subset of *redis.Client the cache uses.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// RedisCache shares verification results between server instances.
type RedisCache struct {
	rdb redisClient
	ttl time.Duration
	now func() time.Time
}

func NewRedisCache(url string, ttl time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	return newRedisCache(redis.NewClient(opt), ttl), nil
}

func newRedisCache(rdb redisClient, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisCache{rdb: rdb, ttl: ttl, now: time.Now}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (*VerificationDetails, bool, error) {
	raw, err := c.rdb.Get(ctx, storageKey(redisKeyPrefix, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var rec cacheRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, false, fmt.Errorf("decode cached verification: %w", err)
	}
	// Storage keys are hashes; a record for another key is a miss.
	if rec.Key != key {
		return nil, false, nil
	}
	return rec.Result, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, details *VerificationDetails) error {
	raw, err := json.Marshal(cacheRecord{Key: key, Result: details, StoredAt: c.now()})
	if err != nil {
		return fmt.Errorf("encode verification: %w", err)
	}
	return c.rdb.Set(ctx, storageKey(redisKeyPrefix, key), raw, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
