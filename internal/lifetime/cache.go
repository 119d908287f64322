// Package lifetime implements the instance caches and disposal trackers
// shared by the root provider (singleton scope) and every Scope (scoped
// instances): at-most-once construction per key under concurrent first
// access, and LIFO disposal ordering.
package lifetime

import (
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache is a concurrency-safe map from descriptor id to constructed
// instance, guaranteeing at-most-once construction per id even when many
// goroutines race to resolve the same descriptor for the first time.
//
// The cache is keyed by descriptor id rather than by service type: two
// descriptors can share a ServiceKey under spec.md §9's multi-registration
// policy (enumerable resolution constructs one instance per descriptor),
// so a cache keyed purely by type could not give each registration its
// own singleton/scoped identity.
//
// singleflight.Group is built for exactly this shape ("suppress
// duplicate calls for the same key while one is in flight"), so it
// replaces the hand-rolled per-key condition variable spec.md §5
// describes.
type Cache struct {
	group singleflight.Group

	mu        sync.RWMutex
	instances map[uint64]any
}

// NewCache creates an empty instance cache.
func NewCache() *Cache {
	return &Cache{instances: make(map[uint64]any)}
}

// GetOrCreate returns the cached instance for id, constructing it via
// create on a cache miss. Concurrent callers for the same id observe
// exactly one call to create; all others receive its result (or error)
// without invoking create themselves.
func (c *Cache) GetOrCreate(id uint64, create func() (any, error)) (any, error) {
	c.mu.RLock()
	if v, ok := c.instances[id]; ok {
		c.mu.RUnlock()
		return v, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do(strconv.FormatUint(id, 10), func() (any, error) {
		c.mu.RLock()
		if v, ok := c.instances[id]; ok {
			c.mu.RUnlock()
			return v, nil
		}
		c.mu.RUnlock()

		instance, err := create()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.instances[id] = instance
		c.mu.Unlock()

		return instance, nil
	})

	return v, err
}

// Get returns the cached instance for id without constructing it.
func (c *Cache) Get(id uint64) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.instances[id]
	return v, ok
}
