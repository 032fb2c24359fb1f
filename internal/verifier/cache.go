package verifier

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/OneOfOne/xxhash"
	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultCacheTTL = 24 * time.Hour

// Cache stores verification results by composite key.
type Cache interface {
	Get(ctx context.Context, key string) (*VerificationDetails, bool, error)
	Set(ctx context.Context, key string, details *VerificationDetails) error
	Close() error
}

// CacheKey builds the lookup key for a request.
func CacheKey(req Request) string {
	linkedin := req.LinkedInURL
	if linkedin == "" {
		linkedin = "none"
	}
	github := req.GitHubURL
	if github == "" {
		github = "none"
	}
	return linkedin + "_" + github + "_" + strings.Join(req.Keywords, ",")
}

// storageKey shortens a composite key for external stores.
func storageKey(prefix, key string) string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], xxhash.Checksum64([]byte(key)))
	return prefix + hex.EncodeToString(buf[:])
}

// cacheRecord is the persisted form; Key guards against hash collisions.
type cacheRecord struct {
	Key      string               `json:"key"`
	Result   *VerificationDetails `json:"result"`
	StoredAt time.Time            `json:"storedAt"`
}

type memoryEntry struct {
	result   *VerificationDetails
	storedAt time.Time
}

// MemoryCache is a bounded LRU with a TTL checked on read.
type MemoryCache struct {
	mu  sync.Mutex
	lru *lru.Cache[string, memoryEntry]
	ttl time.Duration
	now func() time.Time
}

func NewMemoryCache(capacity int, ttl time.Duration) (*MemoryCache, error) {
	if capacity <= 0 {
		capacity = 1000
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	l, err := lru.New[string, memoryEntry](capacity)
	if err != nil {
		return nil, err
	}
	return &MemoryCache{lru: l, ttl: ttl, now: time.Now}, nil
}

func (c *MemoryCache) Get(_ context.Context, key string) (*VerificationDetails, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	if c.now().Sub(entry.storedAt) >= c.ttl {
		c.lru.Remove(key)
		return nil, false, nil
	}
	return entry.result, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, details *VerificationDetails) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, memoryEntry{result: details, storedAt: c.now()})
	return nil
}

func (c *MemoryCache) Len() int {
	return c.lru.Len()
}

func (c *MemoryCache) Close() error { return nil }
