package reconcile

import (
	"context"
	"sync"
	"time"

	"livery-audit/core/livery"

	"golang.org/x/sync/singleflight"
)

// BuildFunc builds the livery map cached under a key.
type BuildFunc func(ctx context.Context) (livery.Map, error)

// entry is a built map and the time it was built.
type entry struct {
	value livery.Map
	built time.Time
}

// Cache holds built livery maps for a TTL. A zero TTL disables caching;
// concurrent builds of one key are still collapsed into one.
type Cache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]entry
	sf      singleflight.Group
}

// NewCache creates a cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// TTL returns the configured time-to-live.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

func (c *Cache) lookup(key string) (livery.Map, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.ttl <= 0 || c.now().Sub(e.built) > c.ttl {
		return nil, false
	}
	return e.value, true
}

// GetOrBuild returns the map cached under key, or builds and stores a new
// one if it doesn't exist or has expired. Failed builds are not cached.
// Callers must not modify the returned map.
func (c *Cache) GetOrBuild(ctx context.Context, key string, build BuildFunc) (livery.Map, error) {
	// Fast path
	if value, ok := c.lookup(key); ok {
		return value, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		if value, ok := c.lookup(key); ok {
			return value, nil
		}

		value, err := build(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = entry{value: value, built: c.now()}
		c.mu.Unlock()

		return value, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(livery.Map), nil
}

// Invalidate removes the entry for key, forcing the next call to rebuild.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
