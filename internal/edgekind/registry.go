// Package edgekind holds the process-wide, immutable-after-init typed
// vocabulary of edge kinds. It is consulted by the graph store,
// extractors, and inference engine to decide what edges are legal and
// how they propagate.
package edgekind

import (
	"fmt"
	"sync"

	"github.com/codepathfinder/depgraph/internal/graphmodel"
)

// Descriptor holds one edge kind's algebraic properties.
type Descriptor struct {
	Name        graphmodel.EdgeKind
	Description string
	Transitive  bool
	Inheritable bool
	Directed    bool // always true in this system
	Priority    int
	Parent      graphmodel.EdgeKind // "" if no parent kind
}

// Registry is an immutable, closed table of edge-kind descriptors.
// Once built it is never mutated, so concurrent readers need no lock.
type Registry struct {
	byName map[graphmodel.EdgeKind]Descriptor
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry, built with the built-in
// vocabulary on first call.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := New(builtins())
		if err != nil {
			// The built-in table is a compile-time constant; a
			// consistency failure here is a programming error.
			panic(err)
		}
		defaultReg = r
	})
	return defaultReg
}

// New builds a Registry from descs, rejecting duplicate names and
// conflicting redefinitions of the same name.
func New(descs []Descriptor) (*Registry, error) {
	r := &Registry{byName: make(map[graphmodel.EdgeKind]Descriptor, len(descs))}
	for _, d := range descs {
		if existing, ok := r.byName[d.Name]; ok {
			if existing != d {
				return nil, fmt.Errorf("edgekind: conflicting descriptors for %q", d.Name)
			}
			return nil, fmt.Errorf("edgekind: duplicate registration of %q", d.Name)
		}
		r.byName[d.Name] = d
	}
	return r, nil
}

// Get returns the descriptor for kind and whether it is registered.
func (r *Registry) Get(kind graphmodel.EdgeKind) (Descriptor, bool) {
	d, ok := r.byName[kind]
	return d, ok
}

// Transitive reports whether kind itself is marked transitive; its
// parent kinds are not consulted.
func (r *Registry) Transitive(kind graphmodel.EdgeKind) bool {
	d, ok := r.byName[kind]
	return ok && d.Transitive
}

// Inheritable reports whether kind is marked inheritable.
func (r *Registry) Inheritable(kind graphmodel.EdgeKind) bool {
	d, ok := r.byName[kind]
	return ok && d.Inheritable
}

// SubHierarchy returns kind plus every registered kind whose Parent
// chain eventually reaches kind — used by transitive closure queries
// to union over parent/child kinds.
func (r *Registry) SubHierarchy(kind graphmodel.EdgeKind) []graphmodel.EdgeKind {
	out := []graphmodel.EdgeKind{kind}
	for name, d := range r.byName {
		if name == kind {
			continue
		}
		for p := d.Parent; p != ""; {
			if p == kind {
				out = append(out, name)
				break
			}
			parentDesc, ok := r.byName[p]
			if !ok {
				break
			}
			p = parentDesc.Parent
		}
	}
	return out
}

// Statistics reports aggregate counts over the registered vocabulary.
type Statistics struct {
	Total       int
	Transitive  int
	Inheritable int
}

// GetStatistics reports aggregate counts over the registered vocabulary.
func (r *Registry) GetStatistics() Statistics {
	stats := Statistics{Total: len(r.byName)}
	for _, d := range r.byName {
		if d.Transitive {
			stats.Transitive++
		}
		if d.Inheritable {
			stats.Inheritable++
		}
	}
	return stats
}

// builtins is the built-in edge-kind vocabulary registered at start-up.
func builtins() []Descriptor {
	return []Descriptor{
		// Structural
		{Name: "contains", Description: "lexical/structural containment", Directed: true, Priority: 10},
		{Name: "declares", Description: "a scope declares a symbol", Directed: true, Priority: 10},
		{Name: "belongs_to", Description: "a symbol belongs to its owning namespace", Directed: true, Priority: 10},

		// Dependency
		{Name: "depends_on", Description: "generic dependency", Transitive: true, Directed: true, Priority: 20},
		{Name: "imports", Description: "source imports target", Transitive: true, Directed: true, Priority: 20, Parent: "depends_on"},
		{Name: "imports_library", Description: "source imports an external library", Transitive: true, Directed: true, Priority: 20, Parent: "imports"},
		{Name: "imports_file", Description: "source imports an in-project file", Transitive: true, Directed: true, Priority: 20, Parent: "imports"},
		{Name: "exports_to", Description: "source re-exports to target", Transitive: true, Directed: true, Priority: 20, Parent: "depends_on"},

		// Execution
		{Name: "calls", Description: "source calls target", Directed: true, Priority: 30},
		{Name: "instantiates", Description: "source constructs an instance of target", Directed: true, Priority: 30},
		{Name: "uses", Description: "source references target", Directed: true, Priority: 30},
		{Name: "accesses", Description: "source accesses a member of target", Directed: true, Priority: 30},

		// Type system
		{Name: "extends", Description: "source extends target", Inheritable: true, Directed: true, Priority: 40},
		{Name: "implements", Description: "source implements target", Inheritable: true, Directed: true, Priority: 40},
		{Name: "has_type", Description: "source has declared type target", Directed: true, Priority: 40},
		{Name: "returns", Description: "source returns type target", Directed: true, Priority: 40},
		{Name: "throws", Description: "source throws type target", Directed: true, Priority: 40},

		// Modification
		{Name: "overrides", Description: "source overrides target", Directed: true, Priority: 50},
		{Name: "shadows", Description: "source shadows target", Directed: true, Priority: 50},
		{Name: "assigns_to", Description: "source assigns into target", Directed: true, Priority: 50},

		// Documentation
		{Name: "md-link", Description: "markdown link", Directed: true, Priority: 60},
		{Name: "md-image", Description: "markdown image reference", Directed: true, Priority: 60},
		{Name: "md-wikilink", Description: "markdown wiki-style link", Directed: true, Priority: 60},
		{Name: "md-symbol-ref", Description: "markdown reference to a code symbol", Directed: true, Priority: 60},
		{Name: "md-include", Description: "markdown include directive", Transitive: true, Directed: true, Priority: 60},
		{Name: "md-code-ref", Description: "markdown fenced code block referencing a file", Directed: true, Priority: 60},
		{Name: "md-anchor", Description: "markdown anchor link", Directed: true, Priority: 60},
		{Name: "md-hashtag", Description: "markdown hashtag reference", Directed: true, Priority: 60},
		{Name: "md-contains-heading", Description: "markdown file contains a heading symbol", Inheritable: true, Directed: true, Priority: 60, Parent: "contains"},

		// Meta
		{Name: "annotated_with", Description: "source carries annotation/decorator target", Directed: true, Priority: 70},
		{Name: "references", Description: "generic reference", Directed: true, Priority: 70},
	}
}
