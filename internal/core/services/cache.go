package services

import (
	"sync"
	"time"

	"github.com/kamal-hamza/adir/internal/core/domain"
)

// DefaultCacheTTL is how long a cached listing stays valid
const DefaultCacheTTL = 5 * time.Minute

const cacheKeyAll = "all"

func categoryCacheKey(category string) string {
	return "category:" + category
}

type cacheEntry struct {
	data     []domain.Asset
	storedAt time.Time
}

// ttlCache maps a query shape to its last result.
// Entries are never refreshed in place; a stale entry is simply a miss.
type ttlCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func newTTLCache(ttl time.Duration, now func() time.Time) *ttlCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if now == nil {
		now = time.Now
	}
	return &ttlCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     now,
	}
}

func (c *ttlCache) get(key string) ([]domain.Asset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) >= c.ttl {
		return nil, false
	}
	return entry.data, true
}

func (c *ttlCache) set(key string, data []domain.Asset) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{data: data, storedAt: c.now()}
}

func (c *ttlCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
}

func (c *ttlCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
