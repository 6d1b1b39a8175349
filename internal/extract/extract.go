// Package extract implements pluggable extractors: pure functions
// from a parsed tree to graph nodes/edges, dispatched through a
// name-keyed registry. Generalized from a single node-building switch
// into one small Extractor per concern.
package extract

import (
	"sync"

	"github.com/codepathfinder/depgraph/internal/graphmodel"
	"github.com/codepathfinder/depgraph/internal/lang"
)

// Tree is the input an Extractor walks: an already-parsed file plus
// the metadata needed to build RDF addresses and resolve relative
// references.
type Tree struct {
	Path     string
	Project  string
	Language lang.Language
	Content  []byte
	Root     any // *sitter.Tree, ast.Node (goldmark), or nil for synthetic languages
}

// Result is what an Extractor contributes to the graph for one file.
type Result struct {
	Nodes []*graphmodel.Node
	Edges []*graphmodel.Edge
}

// Extractor is the contract every built-in and registered extractor implements.
type Extractor interface {
	Name() string
	Version() string
	Supports(l lang.Language) bool
	Extract(tree Tree) (Result, error)
	Validate(r Result) (errs []string, warnings []string)
}

// Registry holds extractors by name. Registration happens once at
// process start; For and All are read-heavy and run
// concurrently across the batch worker pool, hence the RWMutex.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]Extractor
}

// NewRegistry builds a registry preloaded with every built-in extractor.
func NewRegistry() *Registry {
	r := &Registry{extractors: make(map[string]Extractor)}
	r.Register(NewDependencyExtractor())
	r.Register(NewIdentifierExtractor())
	r.Register(NewComplexityExtractor())
	r.Register(NewMarkdownLinkExtractor())
	r.Register(NewCallSiteExtractor())
	return r
}

// Register installs or replaces an extractor by name.
func (r *Registry) Register(e Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors[e.Name()] = e
}

// Unregister removes an extractor by name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.extractors, name)
}

// For returns the extractors applicable to a language, in a stable
// (name-sorted) order so repeated runs produce identical node/edge
// ordering for a given file.
func (r *Registry) For(l lang.Language) []Extractor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Extractor
	for _, e := range r.extractors {
		if e.Supports(l) {
			out = append(out, e)
		}
	}
	sortExtractors(out)
	return out
}

// All returns every registered extractor, name-sorted.
func (r *Registry) All() []Extractor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Extractor, 0, len(r.extractors))
	for _, e := range r.extractors {
		out = append(out, e)
	}
	sortExtractors(out)
	return out
}

func sortExtractors(es []Extractor) {
	for i := 1; i < len(es); i++ {
		for j := i; j > 0 && es[j-1].Name() > es[j].Name(); j-- {
			es[j-1], es[j] = es[j], es[j-1]
		}
	}
}
