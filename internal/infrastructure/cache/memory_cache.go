package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"jan-server/catalog-api/internal/domain/translation"
	"jan-server/catalog-api/internal/infrastructure/metrics"
)

// MemoryCache is an in-process LRU for overlay resolutions, used when no redis
// is configured. Entries expire after ttl. One epoch covers every key, so any
// invalidation drops the fills racing with it.
type MemoryCache struct {
	mu    sync.Mutex
	cache *lru.Cache
	epoch uint64
	ttl   time.Duration
	now   func() time.Time
}

var _ translation.Cache = (*MemoryCache)(nil)

type memoryEntry struct {
	entry     translation.CacheEntry
	expiresAt time.Time
}

func NewMemoryCache(maxSize int, ttl time.Duration) (*MemoryCache, error) {
	cache, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &MemoryCache{cache: cache, ttl: ttl, now: time.Now}, nil
}

func (c *MemoryCache) Get(_ context.Context, key string) (translation.CacheEntry, bool) {
	value, ok := c.cache.Get(key)
	if !ok {
		metrics.RecordTranslationCache("miss")
		return translation.CacheEntry{}, false
	}
	cached := value.(memoryEntry)
	if c.now().After(cached.expiresAt) {
		c.cache.Remove(key)
		metrics.RecordTranslationCache("miss")
		return translation.CacheEntry{}, false
	}
	metrics.RecordTranslationCache("hit")
	return cached.entry, true
}

func (c *MemoryCache) Epoch(_ context.Context, _ string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strconv.FormatUint(c.epoch, 10), true
}

func (c *MemoryCache) Fill(_ context.Context, key, epoch string, entry translation.CacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if strconv.FormatUint(c.epoch, 10) != epoch {
		return
	}
	c.cache.Add(key, memoryEntry{entry: entry, expiresAt: c.now().Add(c.ttl)})
}

func (c *MemoryCache) Invalidate(_ context.Context, keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	for _, key := range keys {
		c.cache.Remove(key)
	}
}
