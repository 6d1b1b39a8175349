// Package query implements the query surface: a narrow, named set of
// read-only operations over the graph store and inference engine.
// None of these operations mutate; each returns records or a typed
// error from internal/errs.
package query

import (
	"fmt"

	"github.com/codepathfinder/depgraph/internal/edgekind"
	"github.com/codepathfinder/depgraph/internal/errs"
	"github.com/codepathfinder/depgraph/internal/graphmodel"
	"github.com/codepathfinder/depgraph/internal/infer"
	"github.com/codepathfinder/depgraph/internal/rdfaddr"
	"github.com/codepathfinder/depgraph/internal/store"
)

// Surface is the named query set, backed by a graph store for direct
// lookups and an inference engine for the derived (transitive/
// hierarchical) families.
type Surface struct {
	store    *store.Store
	infer    *infer.Engine
	registry *edgekind.Registry
}

// New builds a query surface over s and inf, consulting registry for
// edge-kind validation (edgekind.Default() if registry is nil).
func New(s *store.Store, inf *infer.Engine, registry *edgekind.Registry) *Surface {
	if registry == nil {
		registry = edgekind.Default()
	}
	return &Surface{store: s, infer: inf, registry: registry}
}

// FindByRDFAddress resolves a single node by its RDF address string.
func (q *Surface) FindByRDFAddress(address string) (*graphmodel.Node, error) {
	if _, err := rdfaddr.Parse(address); err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidQuery, err)
	}
	n, err := q.store.GetNodeByIdentifier(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidQuery, err)
	}
	return n, nil
}

// FindByKind returns every stored node of the given kind.
func (q *Surface) FindByKind(kind graphmodel.NodeKind) ([]*graphmodel.Node, error) {
	if !kind.Registered() {
		return nil, fmt.Errorf("%w: unregistered node kind %q", errs.ErrInvalidQuery, kind)
	}
	return q.store.FindByKind(kind)
}

// Outgoing returns the edges of kind leaving nodeIdentifier ("" for
// every kind).
func (q *Surface) Outgoing(nodeIdentifier string, kind graphmodel.EdgeKind) ([]*graphmodel.Edge, error) {
	if nodeIdentifier == "" {
		return nil, fmt.Errorf("%w: empty node identifier", errs.ErrInvalidQuery)
	}
	return q.store.OutgoingEdges(nodeIdentifier, kind)
}

// Incoming returns the edges of kind entering nodeIdentifier ("" for
// every kind).
func (q *Surface) Incoming(nodeIdentifier string, kind graphmodel.EdgeKind) ([]*graphmodel.Edge, error) {
	if nodeIdentifier == "" {
		return nil, fmt.Errorf("%w: empty node identifier", errs.ErrInvalidQuery)
	}
	return q.store.IncomingEdges(nodeIdentifier, kind)
}

// Transitive wraps the inference engine's transitive closure query.
func (q *Surface) Transitive(startNode string, kind graphmodel.EdgeKind, maxPathLength int) ([]infer.Reachable, error) {
	return q.infer.TransitiveClosure(startNode, kind, maxPathLength)
}

// Hierarchical wraps the inference engine's hierarchical traversal,
// walking both ancestor and descendant directions.
func (q *Surface) Hierarchical(startNode string, kind graphmodel.EdgeKind, maxDepth int) ([]infer.HierarchyEntry, error) {
	return q.infer.HierarchicalTraversal(startNode, kind, maxDepth, true, true)
}
