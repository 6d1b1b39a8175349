// Package engine implements the analysis engine: the ordered
// per-file pipeline (detect, parse-or-cache, extract, interpret) and
// its bounded-parallel batch driver, built around the registries in
// internal/lang, internal/extract, and internal/interpret.
package engine

import (
	"time"

	"github.com/codepathfinder/depgraph/internal/astcache"
	"github.com/codepathfinder/depgraph/internal/extract"
	"github.com/codepathfinder/depgraph/internal/interpret"
	"github.com/codepathfinder/depgraph/internal/lang"
)

// DefaultTimeout is the per-file budget; AnalyzeFile aborts only the
// file that overruns it.
const DefaultTimeout = 15 * time.Second

// DefaultParallelism bounds AnalyzeBatch when the caller passes zero.
const DefaultParallelism = 8

// Engine drives the per-file analysis pipeline over pluggable
// language adapters, extractors, and interpreters, with a shared AST
// cache in front of parsing.
type Engine struct {
	cache        *astcache.Cache
	langs        *lang.Registry
	extractors   *extract.Registry
	interpreters *interpret.Registry
	timeout      time.Duration
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithCache installs a pre-built AST cache instead of a default one.
func WithCache(c *astcache.Cache) Option {
	return func(e *Engine) { e.cache = c }
}

// WithLanguages installs a pre-built language registry.
func WithLanguages(r *lang.Registry) Option {
	return func(e *Engine) { e.langs = r }
}

// New builds an Engine preloaded with the default language adapters,
// extractors, and interpreters.
func New(opts ...Option) *Engine {
	e := &Engine{
		cache:        astcache.New(0, 0),
		langs:        lang.NewRegistry(),
		extractors:   extract.NewRegistry(),
		interpreters: interpret.NewRegistry(),
		timeout:      DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RegisterExtractor installs or replaces an extractor by name.
func (e *Engine) RegisterExtractor(ex extract.Extractor) {
	e.extractors.Register(ex)
}

// RegisterInterpreter installs or replaces an interpreter by name.
func (e *Engine) RegisterInterpreter(in interpret.Interpreter) {
	e.interpreters.Register(in)
}

// ClearCache empties the AST cache and resets its hit/miss counters.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}

// GetCacheStats reports the AST cache's current hit-rate/size/capacity.
func (e *Engine) GetCacheStats() astcache.Stats {
	return e.cache.Stats()
}
