// Package astcache is a (path, content hash)-keyed LRU store of
// parsed trees with a cooperative TTL sweep.
package astcache

import (
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCapacity and DefaultTTL are the cache's default size and lifetime.
const (
	DefaultCapacity = 1000
	DefaultTTL      = 300 * time.Second
)

// Key identifies a cache entry.
type Key struct {
	Path        string
	ContentHash string
}

// Entry is a cached parse result.
type Entry struct {
	Tree       any
	Language   string
	ParseTime  time.Duration
	Errors     []ParseError
	lastUsed   time.Time
}

// ParseError is a single parse failure: its kind, message, and location.
type ParseError struct {
	Type    string
	Message string
	Line    int
	Column  int
}

// Cache is the AST cache. It is safe for concurrent use: golang-lru/v2
// guards its own structure with an internal mutex, and Cache adds no
// cross-shard calls under that lock.
type Cache struct {
	capacity int
	ttl      time.Duration
	lru      *lru.Cache[Key, *Entry]

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New builds a Cache with the given capacity and TTL. A non-positive
// capacity or ttl falls back to the package defaults.
func New(capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	l, err := lru.New[Key, *Entry](capacity)
	if err != nil {
		// Only returns an error for non-positive size, already guarded above.
		panic(err)
	}
	return &Cache{capacity: capacity, ttl: ttl, lru: l}
}

// Get returns a hit only if the key is present and its TTL has not
// elapsed as of now. A stale entry is evicted and reported as a miss.
func (c *Cache) Get(key Key, now time.Time) (*Entry, bool) {
	entry, ok := c.lru.Get(key)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	if now.Sub(entry.lastUsed) > c.ttl {
		c.lru.Remove(key)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return entry, true
}

// Put inserts or overwrites an entry. Writes are last-writer-wins.
func (c *Cache) Put(key Key, entry *Entry, now time.Time) {
	entry.lastUsed = now
	c.lru.Add(key, entry)
}

// Tick performs the cooperative TTL sweep: it is called between batch
// items rather than run on a dedicated background timer.
func (c *Cache) Tick(now time.Time) {
	for _, key := range c.lru.Keys() {
		entry, ok := c.lru.Peek(key)
		if !ok {
			continue
		}
		if now.Sub(entry.lastUsed) > c.ttl {
			c.lru.Remove(key)
		}
	}
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.lru.Purge()
	c.hits.Store(0)
	c.misses.Store(0)
}

// Stats is the hit-rate/size/capacity snapshot returned by getCacheStats.
type Stats struct {
	HitRate float64
	Size    int
	MaxSize int
}

// Stats reports current cache statistics.
func (c *Cache) Stats() Stats {
	hits, misses := c.hits.Load(), c.misses.Load()
	total := hits + misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	return Stats{HitRate: hitRate, Size: c.lru.Len(), MaxSize: c.capacity}
}
