package infer

import (
	"fmt"
	"sort"

	"github.com/codepathfinder/depgraph/internal/errs"
	"github.com/codepathfinder/depgraph/internal/graphmodel"
)

const familyTransitive = "transitive"

// Reachable is one member of a transitive-closure result: a node, the
// shortest path length that reaches it, and the concrete edge kind
// (from the queried kind's sub-hierarchy) whose traversal first
// reached it.
type Reachable struct {
	Identifier string
	PathLength int
	ViaKind    graphmodel.EdgeKind
}

// TransitiveClosure breadth-first walks edges of kind and of every kind
// in its registry sub-hierarchy (the kinds whose parent chain reaches
// kind) from startNode up to maxPathLength hops, returning every
// reachable node paired with its minimum path length. Edges of kind's
// own parent kinds are not traversed. A node is visited at most once
// per query even if the graph contains cycles.
func (e *Engine) TransitiveClosure(startNode string, kind graphmodel.EdgeKind, maxPathLength int) ([]Reachable, error) {
	if startNode == "" {
		return nil, fmt.Errorf("%w: empty start node", errs.ErrInvalidQuery)
	}
	if err := e.checkDepth(maxPathLength); err != nil {
		return nil, err
	}
	if _, ok := e.registry.Get(kind); !ok {
		return nil, fmt.Errorf("%w: unregistered edge kind %q", errs.ErrInvalidQuery, kind)
	}
	if !e.registry.Transitive(kind) {
		return nil, fmt.Errorf("%w: edge kind %q is not marked transitive", errs.ErrInvalidQuery, kind)
	}

	key := cacheKey{Family: familyTransitive, StartNode: startNode, Kind: kind, Options: fmt.Sprintf("maxPathLength=%d", maxPathLength)}
	result, err := e.cached(key, false, func() (any, map[string]bool, error) {
		kinds := e.registry.SubHierarchy(kind)
		visited := map[string]bool{startNode: true}
		deps := map[string]bool{startNode: true}

		type queueItem struct {
			id    string
			depth int
		}
		queue := []queueItem{{startNode, 0}}
		var out []Reachable

		for len(queue) > 0 {
			item := queue[0]
			queue = queue[1:]
			if item.depth >= maxPathLength {
				continue
			}
			for _, k := range kinds {
				edges, err := e.store.OutgoingEdges(item.id, k)
				if err != nil {
					return nil, nil, err
				}
				for _, edge := range edges {
					if visited[edge.To] {
						continue
					}
					visited[edge.To] = true
					deps[edge.To] = true
					out = append(out, Reachable{Identifier: edge.To, PathLength: item.depth + 1, ViaKind: k})
					queue = append(queue, queueItem{edge.To, item.depth + 1})
				}
			}
		}

		sort.Slice(out, func(i, j int) bool {
			if out[i].PathLength != out[j].PathLength {
				return out[i].PathLength < out[j].PathLength
			}
			return out[i].Identifier < out[j].Identifier
		})
		return out, deps, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]Reachable), nil
}
