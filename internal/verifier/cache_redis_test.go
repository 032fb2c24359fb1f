package verifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type memRedis struct {
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
	closed bool
}

func newMemRedis() *memRedis {
	return &memRedis{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if m.getErr != nil {
		return redis.NewStringResult("", m.getErr)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (m *memRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	b, ok := value.([]byte)
	if !ok {
		return redis.NewStatusResult("", errors.New("unexpected value type"))
	}
	m.data[key] = b
	m.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (m *memRedis) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *memRedis) Close() error {
	m.closed = true
	return nil
}

func TestRedisCacheStoresWithTTL(t *testing.T) {
	t.Parallel()

	rdb := newMemRedis()
	c := newRedisCache(rdb, 30*time.Minute)
	ctx := context.Background()
	key := "li_gh_go"

	if err := c.Set(ctx, key, &VerificationDetails{OverallScore: 42}); err != nil {
		t.Fatal(err)
	}
	sk := storageKey(redisKeyPrefix, key)
	if got := rdb.ttls[sk]; got != 30*time.Minute {
		t.Fatalf("expected ttl 30m, got %v", got)
	}

	got, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got.OverallScore != 42 {
		t.Fatalf("expected 42, got %d", got.OverallScore)
	}

	if err := c.Close(); err != nil || !rdb.closed {
		t.Fatal("close should reach the client")
	}
}

func TestRedisCacheDefaultTTL(t *testing.T) {
	t.Parallel()

	rdb := newMemRedis()
	c := newRedisCache(rdb, 0)
	if err := c.Set(context.Background(), "k", &VerificationDetails{}); err != nil {
		t.Fatal(err)
	}
	if got := rdb.ttls[storageKey(redisKeyPrefix, "k")]; got != DefaultCacheTTL {
		t.Fatalf("expected default ttl, got %v", got)
	}
}

func TestRedisCacheRejectsForeignRecord(t *testing.T) {
	t.Parallel()

	rdb := newMemRedis()
	c := newRedisCache(rdb, time.Minute)
	key := "li_gh_go"

	raw, err := json.Marshal(cacheRecord{Key: "someone_else_rust", Result: &VerificationDetails{OverallScore: 99}})
	if err != nil {
		t.Fatal(err)
	}
	rdb.data[storageKey(redisKeyPrefix, key)] = raw

	got, ok, err := c.Get(context.Background(), key)
	if err != nil {
		t.Fatal(err)
	}
	if ok || got != nil {
		t.Fatalf("record stored for another key must be a miss, got %+v", got)
	}
}

func TestRedisCacheGetErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	miss := newRedisCache(newMemRedis(), time.Minute)
	if _, ok, err := miss.Get(ctx, "absent"); ok || err != nil {
		t.Fatalf("missing key should be a clean miss, got ok=%v err=%v", ok, err)
	}

	down := newMemRedis()
	down.getErr = errors.New("connection refused")
	if _, _, err := newRedisCache(down, time.Minute).Get(ctx, "k"); err == nil {
		t.Fatal("expected client error to surface")
	}

	corrupt := newMemRedis()
	corrupt.data[storageKey(redisKeyPrefix, "k")] = []byte("{not json")
	if _, _, err := newRedisCache(corrupt, time.Minute).Get(ctx, "k"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	t.Parallel()

	if _, err := NewRedisCache("not-a-redis-url", time.Minute); err == nil {
		t.Fatal("expected error")
	}
}
