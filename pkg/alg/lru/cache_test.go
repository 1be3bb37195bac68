package lru_test

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/boxoffice/pkg/alg/lru"
)

const (
	// smallMaxEntries limits the cache to 3 entries for eviction tests.
	smallMaxEntries = 3

	// testTTL is the expiry used by TTL tests.
	testTTL = time.Minute

	testConcurrentGoroutines = 20
	testConcurrentOps        = 100
)

func TestCache_GetPut(t *testing.T) {
	t.Parallel()

	c := lru.New[string, int](smallMaxEntries)

	c.Put("a", 1)
	c.Put("b", 2)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)

	c.Put("a", 10)

	v, ok = c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, v)
	assert.Equal(t, 2, c.Len())
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	c := lru.New[string, int](smallMaxEntries)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)

	// Touch "a" so "b" becomes the eviction candidate.
	_, _ = c.Get("a")

	c.Put("d", 4)

	_, ok := c.Get("b")
	assert.False(t, ok)

	for _, key := range []string{"a", "c", "d"} {
		_, ok = c.Get(key)
		assert.True(t, ok, key)
	}

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Evictions)
	assert.Equal(t, smallMaxEntries, stats.Entries)
}

func TestCache_TTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	c := lru.New(smallMaxEntries, lru.WithTTL[string, int](testTTL), lru.WithClock[string, int](clock))
	c.Put("a", 1)

	now = now.Add(testTTL / 2)

	_, ok := c.Get("a")
	assert.True(t, ok)

	now = now.Add(testTTL)

	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestCache_StatsHitRate(t *testing.T) {
	t.Parallel()

	c := lru.New[int, int](smallMaxEntries)
	assert.Zero(t, c.Stats().HitRate())

	c.Put(1, 1)
	_, _ = c.Get(1)
	_, _ = c.Get(2)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 0.5, stats.HitRate(), 1e-9)
}

func TestCache_Clear(t *testing.T) {
	t.Parallel()

	c := lru.New[int, int](smallMaxEntries)
	c.Put(1, 1)
	c.Put(2, 2)
	c.Clear()

	assert.Zero(t, c.Len())

	c.Put(3, 3)
	assert.Equal(t, 1, c.Len())
}

func TestCache_PanicsWithoutCapacity(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		lru.New[int, int](0)
	})
}

func TestCache_Concurrent(t *testing.T) {
	t.Parallel()

	c := lru.New[string, int](testConcurrentOps)

	var wg sync.WaitGroup

	for g := range testConcurrentGoroutines {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range testConcurrentOps {
				key := strconv.Itoa((g * i) % testConcurrentOps)
				c.Put(key, i)
				_, _ = c.Get(key)
			}
		}()
	}

	wg.Wait()

	assert.LessOrEqual(t, c.Len(), testConcurrentOps)
}
