// Package cache provides a time-boxed in-memory cache for resolved notes
// trees. Entries go stale after a fixed TTL and are evicted lazily on read.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL is how long a cached tree stays fresh.
const DefaultTTL = 5 * time.Minute

// Cache is a TTL-bounded key/value store.
// Callers inject it rather than sharing a global.
type Cache[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
	Delete(key string)
	Clear()
	Len() int
}

type entry[V any] struct {
	value   V
	addedAt time.Time
}

type ttlCache[V any] struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.Mutex
	entries map[string]entry[V]
}

// New creates a TTL cache. A zero or negative ttl uses DefaultTTL.
func New[V any](ttl time.Duration) Cache[V] {
	return newWithClock[V](ttl, time.Now)
}

// newWithClock allows tests to control time.
func newWithClock[V any](ttl time.Duration, now func() time.Time) *ttlCache[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ttlCache[V]{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]entry[V]),
	}
}

// Get returns the cached value if present and fresh.
// Stale entries are evicted on access.
func (c *ttlCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().Sub(e.addedAt) > c.ttl {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores a value, resetting its freshness window.
func (c *ttlCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, addedAt: c.now()}
}

// Delete removes a single entry.
func (c *ttlCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes all entries.
func (c *ttlCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
}

// Len returns the number of entries, stale ones included.
func (c *ttlCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
