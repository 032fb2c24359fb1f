package verifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
)

const levelDBKeyPrefix = "v:"

// LevelDBCache keeps verification results on local disk across restarts.
type LevelDBCache struct {
	db  *leveldb.DB
	ttl time.Duration
	now func() time.Time
}

func NewLevelDBCache(path string, ttl time.Duration) (*LevelDBCache, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("leveldb open %s: %w", path, err)
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &LevelDBCache{db: db, ttl: ttl, now: time.Now}, nil
}

func (c *LevelDBCache) Get(_ context.Context, key string) (*VerificationDetails, bool, error) {
	dbKey := []byte(storageKey(levelDBKeyPrefix, key))
	raw, err := c.db.Get(dbKey, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("leveldb get: %w", err)
	}

	var rec cacheRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, false, fmt.Errorf("decode cached verification: %w", err)
	}
	if rec.Key != key {
		return nil, false, nil
	}
	if c.now().Sub(rec.StoredAt) >= c.ttl {
		_ = c.db.Delete(dbKey, nil)
		return nil, false, nil
	}
	return rec.Result, true, nil
}

func (c *LevelDBCache) Set(_ context.Context, key string, details *VerificationDetails) error {
	raw, err := json.Marshal(cacheRecord{Key: key, Result: details, StoredAt: c.now()})
	if err != nil {
		return fmt.Errorf("encode verification: %w", err)
	}
	return c.db.Put([]byte(storageKey(levelDBKeyPrefix, key)), raw, nil)
}

func (c *LevelDBCache) Close() error {
	return c.db.Close()
}
