package query

import (
	"fmt"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/codepathfinder/depgraph/internal/errs"
	"github.com/codepathfinder/depgraph/internal/graphmodel"
	"github.com/codepathfinder/depgraph/internal/rdfaddr"
)

// crossesBoundary is compiled once against a representative env and
// reused across every edge a CrossNamespace call inspects.
var crossesBoundary *vm.Program

func init() {
	env := map[string]any{"fromProject": "", "toProject": "", "a": "", "b": ""}
	p, err := expr.Compile(
		"(fromProject == a && toProject == b) || (fromProject == b && toProject == a)",
		expr.Env(env),
	)
	if err != nil {
		panic(err)
	}
	crossesBoundary = p
}

// CrossNamespaceEdge is one edge whose endpoints sit in the two
// queried namespaces, paired with which project owns each endpoint.
type CrossNamespaceEdge struct {
	Edge        *graphmodel.Edge
	FromProject string
	ToProject   string
}

// CrossNamespace returns every edge connecting project namespace a to
// project namespace b (in either direction), sorted by (From, To).
// Empty or identical namespace arguments are rejected with
// ErrInvalidQuery. Edges with an endpoint in any other project, or
// with an endpoint that is not a valid RDF address, are skipped, not
// rejected.
func (q *Surface) CrossNamespace(a, b string) ([]CrossNamespaceEdge, error) {
	if a == "" || b == "" {
		return nil, fmt.Errorf("%w: empty namespace", errs.ErrInvalidQuery)
	}
	if a == b {
		return nil, fmt.Errorf("%w: namespaces %q and %q are identical", errs.ErrInvalidQuery, a, b)
	}

	edges, err := q.store.AllEdges()
	if err != nil {
		return nil, err
	}

	var out []CrossNamespaceEdge
	for _, e := range edges {
		fromAddr, err := rdfaddr.Parse(e.From)
		if err != nil {
			continue
		}
		toAddr, err := rdfaddr.Parse(e.To)
		if err != nil {
			continue
		}
		if fromAddr.Project != a && fromAddr.Project != b {
			continue
		}
		if toAddr.Project != a && toAddr.Project != b {
			continue
		}

		env := map[string]any{"fromProject": fromAddr.Project, "toProject": toAddr.Project, "a": a, "b": b}
		result, err := expr.Run(crossesBoundary, env)
		if err != nil {
			return nil, fmt.Errorf("query: evaluating namespace predicate: %w", err)
		}
		crosses, ok := result.(bool)
		if !ok || !crosses {
			continue
		}
		out = append(out, CrossNamespaceEdge{Edge: e, FromProject: fromAddr.Project, ToProject: toAddr.Project})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Edge.From != out[j].Edge.From {
			return out[i].Edge.From < out[j].Edge.From
		}
		return out[i].Edge.To < out[j].Edge.To
	})
	return out, nil
}
