package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type countingObserver struct {
	mu                   sync.Mutex
	hits, misses, evicts int
}

func (o *countingObserver) CacheHit(string)     { o.mu.Lock(); o.hits++; o.mu.Unlock() }
func (o *countingObserver) CacheMiss(string)    { o.mu.Lock(); o.misses++; o.mu.Unlock() }
func (o *countingObserver) CacheEvicted(string) { o.mu.Lock(); o.evicts++; o.mu.Unlock() }

func TestGetOrComputeWithinTTLReturnsSamePayload(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)}
	cache := NewMemoryCache[[]string](5*time.Hour, Options{Now: clock.Now})

	calls := 0
	producer := func() ([]string, error) {
		calls++
		return []string{"Attersee", "Mondsee"}, nil
	}

	first, err := cache.GetOrCompute("tableData", producer)
	require.NoError(t, err)

	clock.Advance(5 * time.Hour) // exactly at the TTL is still live
	second, err := cache.GetOrCompute("tableData", producer)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Same(t, &first[0], &second[0])
}

func TestGetOrComputeRecomputesAfterTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)}
	obs := &countingObserver{}
	cache := NewMemoryCache[int](5*time.Hour, Options{Now: clock.Now, Observer: obs})

	calls := 0
	producer := func() (int, error) {
		calls++
		return calls, nil
	}

	v, err := cache.GetOrCompute("k", producer)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	clock.Advance(5*time.Hour + time.Millisecond)

	v, err = cache.GetOrCompute("k", producer)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, calls)

	assert.Equal(t, 0, obs.hits)
	assert.Equal(t, 2, obs.misses)
	assert.Equal(t, 1, obs.evicts)
}

func TestGetOrComputeDoesNotStoreErrors(t *testing.T) {
	cache := NewMemoryCache[int](time.Hour, Options{})

	boom := errors.New("boom")
	_, err := cache.GetOrCompute("k", func() (int, error) { return 0, boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, cache.Len())

	v, err := cache.GetOrCompute("k", func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestKeysAreIndependent(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)}
	cache := NewMemoryCache[string](time.Hour, Options{Now: clock.Now})

	cache.Set("tableData", "table")
	clock.Advance(30 * time.Minute)
	cache.Set("registry", "registry")
	clock.Advance(31 * time.Minute)

	_, ok := cache.Get("tableData")
	assert.False(t, ok, "table slot should be stale")

	v, ok := cache.Get("registry")
	assert.True(t, ok)
	assert.Equal(t, "registry", v)
	assert.Equal(t, 1, cache.Len())
}

func TestDefaultTTL(t *testing.T) {
	cache := NewMemoryCache[int](0, Options{})
	assert.Equal(t, DefaultTTL, cache.ttl)
}
