package infer

import (
	"fmt"
	"sort"

	"github.com/codepathfinder/depgraph/internal/errs"
	"github.com/codepathfinder/depgraph/internal/graphmodel"
	"github.com/codepathfinder/depgraph/internal/store"
)

const familyHierarchical = "hierarchical"

// HierarchyEntry is one node reached during a hierarchical traversal.
type HierarchyEntry struct {
	Identifier string
	Depth      int
	Direction  string // "down" (descendant) or "up" (ancestor)
}

// HierarchicalTraversal walks an inheritable edge kind's parent/child
// subgraphs rooted at startNode up to maxDepth, returning child-side
// results (following incoming edges, whose From is the child) when
// includeChildren is set and parent-side results (following outgoing
// edges) when includeParents is set. Results are sorted by (depth, identifier) for determinism.
func (e *Engine) HierarchicalTraversal(startNode string, kind graphmodel.EdgeKind, maxDepth int, includeChildren, includeParents bool) ([]HierarchyEntry, error) {
	if startNode == "" {
		return nil, fmt.Errorf("%w: empty start node", errs.ErrInvalidQuery)
	}
	if err := e.checkDepth(maxDepth); err != nil {
		return nil, err
	}
	if !e.registry.Inheritable(kind) {
		return nil, fmt.Errorf("%w: edge kind %q is not marked inheritable", errs.ErrInvalidQuery, kind)
	}

	key := cacheKey{
		Family: familyHierarchical, StartNode: startNode, Kind: kind,
		Options: fmt.Sprintf("maxDepth=%d,children=%v,parents=%v", maxDepth, includeChildren, includeParents),
	}
	result, err := e.cached(key, false, func() (any, map[string]bool, error) {
		deps := map[string]bool{startNode: true}
		var out []HierarchyEntry

		if includeChildren {
			children, childDeps := e.walkHierarchy(startNode, kind, maxDepth, store.Incoming, "down")
			out = append(out, children...)
			for id := range childDeps {
				deps[id] = true
			}
		}
		if includeParents {
			parents, parentDeps := e.walkHierarchy(startNode, kind, maxDepth, store.Outgoing, "up")
			out = append(out, parents...)
			for id := range parentDeps {
				deps[id] = true
			}
		}

		sort.Slice(out, func(i, j int) bool {
			if out[i].Depth != out[j].Depth {
				return out[i].Depth < out[j].Depth
			}
			return out[i].Identifier < out[j].Identifier
		})
		return out, deps, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]HierarchyEntry), nil
}

func (e *Engine) walkHierarchy(startNode string, kind graphmodel.EdgeKind, maxDepth int, dir store.Direction, direction string) ([]HierarchyEntry, map[string]bool) {
	visited := map[string]bool{startNode: true}
	type queueItem struct {
		id    string
		depth int
	}
	queue := []queueItem{{startNode, 0}}
	var out []HierarchyEntry

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		if item.depth >= maxDepth {
			continue
		}
		edges, err := e.store.GetEdges(item.id, kind, dir)
		if err != nil {
			continue
		}
		for _, edge := range edges {
			next := edge.To
			if dir == store.Incoming {
				next = edge.From
			}
			if visited[next] {
				continue
			}
			visited[next] = true
			out = append(out, HierarchyEntry{Identifier: next, Depth: item.depth + 1, Direction: direction})
			queue = append(queue, queueItem{next, item.depth + 1})
		}
	}
	return out, visited
}
