package infer

import (
	"fmt"

	"github.com/codepathfinder/depgraph/internal/errs"
	"github.com/codepathfinder/depgraph/internal/graphmodel"
)

const familyInheritable = "inheritable"

// chainRules describe which structural edge kinds carry an
// inheritable trait down to a descendant, and which endpoint is the
// "source" the trait flows from. "contains" flows Container -> Member
// (the container's traits apply to its members); "extends" flows
// Base -> Derived (a subtype inherits its supertype's traits), which
// is the reverse of the edge's own From/To direction.
var chainRules = []struct {
	kind         graphmodel.EdgeKind
	sourceIsFrom bool
}{
	{"contains", true},
	{"extends", false},
}

// InheritablePropagation derives edges of kind implied by contains/
// extends chains: if a source node has a stored edge of kind to some
// target, every descendant reached by a contains/extends chain from
// that source also gets an edge of kind to the same target. Output is
// idempotent and every derived edge is tagged Derived so callers can
// tell it apart from stored edges; derived edges are never persisted.
func (e *Engine) InheritablePropagation(kind graphmodel.EdgeKind) ([]*graphmodel.Edge, error) {
	if !e.registry.Inheritable(kind) {
		return nil, fmt.Errorf("%w: edge kind %q is not marked inheritable", errs.ErrInvalidQuery, kind)
	}

	key := cacheKey{Family: familyInheritable, StartNode: "*", Kind: kind}
	result, err := e.cached(key, true, func() (any, map[string]bool, error) {
		nodes, err := e.store.AllNodes()
		if err != nil {
			return nil, nil, err
		}
		deps := make(map[string]bool, len(nodes))

		var derived []*graphmodel.Edge
		seen := make(map[string]bool)
		for _, n := range nodes {
			deps[n.Identifier] = true
			ownEdges, err := e.store.OutgoingEdges(n.Identifier, kind)
			if err != nil {
				return nil, nil, err
			}
			if len(ownEdges) == 0 {
				continue
			}
			for _, descendant := range e.descendantsOf(n.Identifier, deps) {
				for _, own := range ownEdges {
					dedupKey := descendant + "\x00" + own.To + "\x00" + string(kind)
					if seen[dedupKey] {
						continue
					}
					seen[dedupKey] = true
					derived = append(derived, &graphmodel.Edge{
						ID:      "derived:" + descendant + ">" + own.To + ">" + string(kind),
						From:    descendant,
						To:      own.To,
						Kind:    kind,
						Derived: true,
					})
				}
			}
		}
		return derived, deps, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]*graphmodel.Edge), nil
}

// descendantsOf returns every node reachable from source by following
// a contains/extends chain rule's propagation direction, recording
// each visited identifier into deps.
func (e *Engine) descendantsOf(source string, deps map[string]bool) []string {
	visited := map[string]bool{}
	queue := []string{source}
	var out []string
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, rule := range chainRules {
			edges, err := e.chainEdgesFrom(cur, rule)
			if err != nil {
				continue
			}
			for _, next := range edges {
				if visited[next] {
					continue
				}
				visited[next] = true
				deps[next] = true
				out = append(out, next)
				queue = append(queue, next)
			}
		}
	}
	return out
}

func (e *Engine) chainEdgesFrom(source string, rule struct {
	kind         graphmodel.EdgeKind
	sourceIsFrom bool
}) ([]string, error) {
	var out []string
	if rule.sourceIsFrom {
		edges, err := e.store.OutgoingEdges(source, rule.kind)
		if err != nil {
			return nil, err
		}
		for _, edge := range edges {
			out = append(out, edge.To)
		}
		return out, nil
	}
	edges, err := e.store.IncomingEdges(source, rule.kind)
	if err != nil {
		return nil, err
	}
	for _, edge := range edges {
		out = append(out, edge.From)
	}
	return out, nil
}
