package store

import (
	"sync"
	"time"
)

// DefaultTTL is how long a computed dataset stays valid.
const DefaultTTL = 5 * time.Hour

// Observer is notified about cache lookups. Implementations must be safe for
// concurrent use.
type Observer interface {
	CacheHit(key string)
	CacheMiss(key string)
	CacheEvicted(key string)
}

// Options configures a MemoryCache.
type Options struct {
	// Now replaces the wall clock, mainly for tests.
	Now      func() time.Time
	Observer Observer
}

type cacheEntry[T any] struct {
	payload  T
	storedAt time.Time
}

// MemoryCache is an in-memory, process-local cache with absolute-age expiry.
//
// There is no capacity bound and no per-key locking: concurrent misses on the
// same key may both compute, and the last write wins.
type MemoryCache[T any] struct {
	mu sync.RWMutex

	// key: dataset name
	data map[string]cacheEntry[T]

	ttl      time.Duration
	now      func() time.Time
	observer Observer
}

// NewMemoryCache creates a new MemoryCache. A ttl <= 0 uses DefaultTTL.
func NewMemoryCache[T any](ttl time.Duration, opts Options) *MemoryCache[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &MemoryCache[T]{
		data:     make(map[string]cacheEntry[T]),
		ttl:      ttl,
		now:      now,
		observer: opts.Observer,
	}
}

// Get returns the live payload for key. A stale entry is evicted and reported
// as missing.
func (c *MemoryCache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	entry, ok := c.data[key]
	c.mu.RUnlock()

	if !ok {
		var zero T
		return zero, false
	}

	if c.now().Sub(entry.storedAt) > c.ttl {
		c.mu.Lock()
		// Only drop what we looked at; a concurrent Set may have replaced it.
		if current, still := c.data[key]; still && current.storedAt.Equal(entry.storedAt) {
			delete(c.data, key)
		}
		c.mu.Unlock()

		if c.observer != nil {
			c.observer.CacheEvicted(key)
		}
		var zero T
		return zero, false
	}

	return entry.payload, true
}

// Set stores payload under key with the current time.
func (c *MemoryCache[T]) Set(key string, payload T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = cacheEntry[T]{payload: payload, storedAt: c.now()}
}

// GetOrCompute returns the live payload for key or, on a miss, runs producer
// and stores its result. Producer errors are returned and nothing is stored.
func (c *MemoryCache[T]) GetOrCompute(key string, producer func() (T, error)) (T, error) {
	if payload, ok := c.Get(key); ok {
		if c.observer != nil {
			c.observer.CacheHit(key)
		}
		return payload, nil
	}

	if c.observer != nil {
		c.observer.CacheMiss(key)
	}

	payload, err := producer()
	if err != nil {
		return payload, err
	}

	c.Set(key, payload)
	return payload, nil
}

// Len returns the number of stored (possibly stale) entries.
func (c *MemoryCache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
