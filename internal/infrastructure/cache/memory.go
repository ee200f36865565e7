package cache

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	gocache "github.com/patrickmn/go-cache"

	"supervault_dashboard/internal/pkg/metrics"
)

const backendMemory = "memory"

type entry struct {
	storedAt time.Time
	value    []byte
}

// MemoryCache keeps responses in process. An entry is served while its age is
// strictly below the TTL; go-cache only reclaims memory for expired items.
type MemoryCache struct {
	items *gocache.Cache
	ttl   time.Duration
	clock clockwork.Clock
}

// NewMemoryCache creates an in-process cache. A nil clock means wall time.
func NewMemoryCache(ttl, cleanupInterval time.Duration, clock clockwork.Clock) *MemoryCache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryCache{
		items: gocache.New(ttl, cleanupInterval),
		ttl:   ttl,
		clock: clock,
	}
}

// Get returns the stored body when it is younger than the TTL.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	raw, found := c.items.Get(key)
	if !found {
		metrics.CacheLookupsTotal.WithLabelValues(backendMemory, "miss").Inc()
		return nil, false
	}
	e := raw.(entry)
	if c.clock.Since(e.storedAt) >= c.ttl {
		metrics.CacheLookupsTotal.WithLabelValues(backendMemory, "expired").Inc()
		return nil, false
	}
	metrics.CacheLookupsTotal.WithLabelValues(backendMemory, "hit").Inc()
	return e.value, true
}

// Set stores value, replacing any previous entry for key.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte) {
	c.items.SetDefault(key, entry{storedAt: c.clock.Now(), value: value})
}

// Delete removes keys. Unknown keys are ignored.
func (c *MemoryCache) Delete(_ context.Context, keys ...string) {
	for _, key := range keys {
		c.items.Delete(key)
	}
}

// Flush removes every entry.
func (c *MemoryCache) Flush(_ context.Context) {
	c.items.Flush()
}

// Len reports the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	return c.items.ItemCount()
}
