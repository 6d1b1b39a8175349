// Package infer implements the inference engine: transitive closure,
// hierarchical traversal, and inheritable-edge propagation over the
// graph store, with an LRU+TTL result cache and a single-flight gate
// so concurrent callers computing the same query collapse into one
// computation.
package infer

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/codepathfinder/depgraph/internal/edgekind"
	"github.com/codepathfinder/depgraph/internal/errs"
	"github.com/codepathfinder/depgraph/internal/graphmodel"
	"github.com/codepathfinder/depgraph/internal/store"
)

// DefaultCacheCapacity and DefaultCacheTTL are the result cache's
// default size and lifetime.
const (
	DefaultCacheCapacity = 1000
	DefaultCacheTTL      = 30 * time.Second

	// DefaultDepthCeiling bounds maxPathLength/maxDepth; a caller asking
	// for more fails fast with ErrDepthExceeded rather than walking an
	// unbounded graph.
	DefaultDepthCeiling = 64
)

// cacheKey identifies one memoized query: (queryFamily, startNode or a
// sentinel for queries with no single start, kind, options hash).
type cacheKey struct {
	Family    string
	StartNode string
	Kind      graphmodel.EdgeKind
	Options   string
}

// cacheEntry pairs a memoized result with the set of node identifiers
// its computation actually visited, so markNodeChanged knows which
// cached entries a changed node invalidates.
type cacheEntry struct {
	Result       any
	Dependencies map[string]bool
	Pinned       bool
	CreatedAt    time.Time
}

// Engine derives and caches the three inference families over a graph
// store, consulting the edge-kind registry for the transitive/
// inheritable/parent-chain algebra.
type Engine struct {
	store    *store.Store
	registry *edgekind.Registry

	cache    *lru.LRU[cacheKey, *cacheEntry]
	capacity int
	group    singleflight.Group

	depthCeiling int

	hits   uint64
	misses uint64
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithDepthCeiling overrides DefaultDepthCeiling.
func WithDepthCeiling(n int) Option {
	return func(e *Engine) { e.depthCeiling = n }
}

// New builds an inference engine over s, using registry for the
// edge-kind algebra (edgekind.Default() if registry is nil).
func New(s *store.Store, registry *edgekind.Registry, capacity int, ttl time.Duration, opts ...Option) *Engine {
	if registry == nil {
		registry = edgekind.Default()
	}
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	e := &Engine{
		store:        s,
		registry:     registry,
		capacity:     capacity,
		depthCeiling: DefaultDepthCeiling,
	}
	e.cache = lru.NewLRU[cacheKey, *cacheEntry](capacity, nil, ttl)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) checkDepth(n int) error {
	if n > e.depthCeiling {
		return fmt.Errorf("%w: %d exceeds ceiling %d", errs.ErrDepthExceeded, n, e.depthCeiling)
	}
	return nil
}

// cached runs compute under the single-flight gate keyed by key,
// returning a cached hit if one is warm. deps is filled in by compute
// with every node identifier the query touched.
func (e *Engine) cached(key cacheKey, pinned bool, compute func() (any, map[string]bool, error)) (any, error) {
	if entry, ok := e.cache.Get(key); ok {
		e.hits++
		return entry.Result, nil
	}

	type flightResult struct {
		result any
		deps   map[string]bool
	}
	v, err, _ := e.group.Do(fmt.Sprintf("%+v", key), func() (any, error) {
		if entry, ok := e.cache.Get(key); ok {
			return flightResult{entry.Result, entry.Dependencies}, nil
		}
		result, deps, err := compute()
		if err != nil {
			return nil, err
		}
		return flightResult{result, deps}, nil
	})
	if err != nil {
		e.misses++
		return nil, err
	}
	fr := v.(flightResult)
	e.cache.Add(key, &cacheEntry{Result: fr.result, Dependencies: fr.deps, Pinned: pinned, CreatedAt: timeNow()})
	e.misses++
	return fr.result, nil
}

// timeNow is a seam so tests can't accidentally depend on wall-clock
// behavior beyond what the LRU library itself needs.
var timeNow = time.Now

// MarkNodeChanged evicts every cache entry whose recorded dependency
// set contains nodeIdentifier, for any of the kinds in affectedKinds
// (all kinds, if affectedKinds is empty). It returns only the evicted
// keys that were Pinned — the entries ExecuteIncrementalInference
// should eagerly recompute — even though every matching entry,
// pinned or not, is evicted from the cache.
func (e *Engine) MarkNodeChanged(nodeIdentifier string, affectedKinds ...graphmodel.EdgeKind) []cacheKey {
	affect := make(map[graphmodel.EdgeKind]bool, len(affectedKinds))
	for _, k := range affectedKinds {
		affect[k] = true
	}
	var evictedPinned []cacheKey
	for _, key := range e.cache.Keys() {
		entry, ok := e.cache.Peek(key)
		if !ok || !entry.Dependencies[nodeIdentifier] {
			continue
		}
		if len(affect) > 0 && !affect[key.Kind] {
			continue
		}
		if entry.Pinned {
			evictedPinned = append(evictedPinned, key)
		}
		e.cache.Remove(key)
	}
	return evictedPinned
}

// ExecuteIncrementalInference recomputes every previously pinned entry
// named in evicted, repopulating the cache. Call after MarkNodeChanged
// to eagerly refresh queries callers rely on staying warm.
func (e *Engine) ExecuteIncrementalInference(evicted []cacheKey) error {
	for _, key := range evicted {
		switch key.Family {
		case familyTransitive:
			if _, err := e.TransitiveClosure(key.StartNode, key.Kind, e.depthCeiling); err != nil {
				return err
			}
		case familyHierarchical:
			if _, err := e.HierarchicalTraversal(key.StartNode, key.Kind, e.depthCeiling, true, true); err != nil {
				return err
			}
		case familyInheritable:
			if _, err := e.InheritablePropagation(key.Kind); err != nil {
				return err
			}
		}
	}
	return nil
}

// CacheStats is the hit-rate/size/capacity/age snapshot inference
// callers can inspect.
type CacheStats struct {
	HitRate   float64
	Size      int
	MaxSize   int
	EntryAges []time.Duration
}

// Stats reports current cache statistics.
func (e *Engine) Stats() CacheStats {
	total := e.hits + e.misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(e.hits) / float64(total)
	}
	now := timeNow()
	var ages []time.Duration
	for _, key := range e.cache.Keys() {
		if entry, ok := e.cache.Peek(key); ok {
			ages = append(ages, now.Sub(entry.CreatedAt))
		}
	}
	return CacheStats{HitRate: hitRate, Size: e.cache.Len(), MaxSize: e.capacity, EntryAges: ages}
}

// ClearCache empties the result cache and resets hit/miss counters.
func (e *Engine) ClearCache() {
	e.cache.Purge()
	e.hits = 0
	e.misses = 0
}
