package query

import "github.com/codepathfinder/depgraph/internal/graphmodel"

// Stats aggregates whole-graph counts: node/edge population by kind,
// plus the edge-kind vocabulary's transitive/inheritable totals.
type Stats struct {
	NodesByKind map[graphmodel.NodeKind]int
	EdgesByKind map[graphmodel.EdgeKind]int
	Transitive  int
	Inheritable int
}

// Statistics scans the whole store once for node/edge population
// counts and consults the edge-kind registry for vocabulary counts.
func (q *Surface) Statistics() (Stats, error) {
	nodes, err := q.store.AllNodes()
	if err != nil {
		return Stats{}, err
	}
	edges, err := q.store.AllEdges()
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		NodesByKind: make(map[graphmodel.NodeKind]int),
		EdgesByKind: make(map[graphmodel.EdgeKind]int),
	}
	for _, n := range nodes {
		stats.NodesByKind[n.Kind]++
	}
	for _, e := range edges {
		stats.EdgesByKind[e.Kind]++
	}

	reg := q.registry.GetStatistics()
	stats.Transitive = reg.Transitive
	stats.Inheritable = reg.Inheritable
	return stats, nil
}
