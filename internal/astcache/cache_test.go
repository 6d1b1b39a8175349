package astcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPut_HitAfterPut(t *testing.T) {
	c := New(10, time.Minute)
	now := time.Now()
	key := Key{Path: "a.go", ContentHash: "h1"}
	c.Put(key, &Entry{Language: "go"}, now)

	entry, ok := c.Get(key, now)
	require.True(t, ok)
	assert.Equal(t, "go", entry.Language)
}

func TestGet_StaleHashIsMiss(t *testing.T) {
	c := New(10, time.Minute)
	now := time.Now()
	c.Put(Key{Path: "a.go", ContentHash: "h1"}, &Entry{}, now)

	_, ok := c.Get(Key{Path: "a.go", ContentHash: "h2"}, now)
	assert.False(t, ok, "a different content hash is a different key entirely")
}

func TestGet_TTLExpiry(t *testing.T) {
	c := New(10, time.Second)
	base := time.Now()
	key := Key{Path: "a.go", ContentHash: "h1"}
	c.Put(key, &Entry{}, base)

	_, ok := c.Get(key, base.Add(2*time.Second))
	assert.False(t, ok)

	// Subsequent lookup still misses — the stale entry was evicted.
	_, ok = c.Get(key, base.Add(2*time.Second))
	assert.False(t, ok)
}

func TestTick_SweepsExpiredEntries(t *testing.T) {
	c := New(10, time.Second)
	base := time.Now()
	c.Put(Key{Path: "a.go", ContentHash: "h1"}, &Entry{}, base)
	c.Put(Key{Path: "b.go", ContentHash: "h1"}, &Entry{}, base)

	c.Tick(base.Add(2 * time.Second))
	assert.Equal(t, 0, c.Stats().Size)
}

func TestStats_HitRate(t *testing.T) {
	c := New(10, time.Minute)
	now := time.Now()
	key := Key{Path: "a.go", ContentHash: "h1"}
	c.Put(key, &Entry{}, now)

	_, _ = c.Get(key, now)
	_, _ = c.Get(Key{Path: "missing"}, now)

	stats := c.Stats()
	assert.Equal(t, 0.5, stats.HitRate)
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, 10, stats.MaxSize)
}

func TestLRUEviction_RespectsCapacity(t *testing.T) {
	c := New(1, time.Minute)
	now := time.Now()
	c.Put(Key{Path: "a.go", ContentHash: "h1"}, &Entry{}, now)
	c.Put(Key{Path: "b.go", ContentHash: "h1"}, &Entry{}, now)

	_, ok := c.Get(Key{Path: "a.go", ContentHash: "h1"}, now)
	assert.False(t, ok, "a.go should have been evicted once capacity 1 was exceeded")

	_, ok = c.Get(Key{Path: "b.go", ContentHash: "h1"}, now)
	assert.True(t, ok)
}

func TestClear_ResetsStats(t *testing.T) {
	c := New(10, time.Minute)
	now := time.Now()
	key := Key{Path: "a.go", ContentHash: "h1"}
	c.Put(key, &Entry{}, now)
	_, _ = c.Get(key, now)

	c.Clear()
	stats := c.Stats()
	assert.Equal(t, 0, stats.Size)
	assert.Equal(t, float64(0), stats.HitRate)
}
