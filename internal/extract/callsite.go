package extract

import (
	"github.com/google/uuid"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codepathfinder/depgraph/internal/graphmodel"
	"github.com/codepathfinder/depgraph/internal/lang"
	"github.com/codepathfinder/depgraph/internal/rdfaddr"
)

// CallSiteExtractor builds "calls" edges from each call expression to
// its target. A callee whose simple name matches a function or method
// declared in the same file resolves immediately (the direct stage of
// the staged call-target resolution also used for import paths); any
// other callee gets an unresolved external placeholder node that the
// Call Resolver interpreter (internal/interpret) carries through the
// remaining stages (alias, then framework-known, then gives up).
type CallSiteExtractor struct{}

// NewCallSiteExtractor builds the call-site extractor.
func NewCallSiteExtractor() *CallSiteExtractor { return &CallSiteExtractor{} }

func (e *CallSiteExtractor) Name() string    { return "callsite" }
func (e *CallSiteExtractor) Version() string { return "1.0.0" }

func (e *CallSiteExtractor) Supports(l lang.Language) bool {
	switch l {
	case lang.Go, lang.Java, lang.Python, lang.JavaScript, lang.TypeScript:
		return true
	}
	return false
}

func (e *CallSiteExtractor) Extract(tree Tree) (Result, error) {
	root, ok := rootNode(tree)
	if !ok {
		return Result{}, nil
	}
	callSpec := callSpecFor(tree.Language)
	if callSpec == nil {
		return Result{}, nil
	}

	decls := resolveDeclarations(tree)
	byName := make(map[string]string, len(decls))
	enclosingOf := make(map[*sitter.Node]string, len(decls))
	for _, d := range decls {
		if d.kind != graphmodel.NodeFunction && d.kind != graphmodel.NodeMethod {
			continue
		}
		byName[d.name] = d.identifier
		enclosingOf[d.node] = d.identifier
	}

	fileAddr := rdfaddr.Address{Project: tree.Project, File: tree.Path, Kind: graphmodel.NodeFile}
	fileIdentifier := fileAddr.String()

	callTypeSet := set(callSpec.callTypes...)
	var result Result
	placeholders := make(map[string]*graphmodel.Node)

	walkWithAncestors(root, nil, func(n *sitter.Node, ancestors []*sitter.Node) {
		if !callTypeSet[n.Type()] {
			return
		}
		raw, simple := callSpec.calleeOf(n, tree.Content)
		if simple == "" {
			return
		}

		caller := fileIdentifier
		for i := len(ancestors) - 1; i >= 0; i-- {
			if id, ok := enclosingOf[ancestors[i]]; ok {
				caller = id
				break
			}
		}

		if target, ok := byName[simple]; ok {
			result.Edges = append(result.Edges, &graphmodel.Edge{
				ID:       uuid.NewString(),
				From:     caller,
				To:       target,
				Kind:     "calls",
				Metadata: map[string]any{"stage": "direct", "callee_raw": raw},
			})
			return
		}

		placeholderAddr := rdfaddr.Address{
			Project: tree.Project, File: tree.Path,
			Kind: graphmodel.NodeExternal, SymbolPath: sanitizeSymbolPath(raw),
		}
		placeholderID := placeholderAddr.String()
		node, exists := placeholders[placeholderID]
		if !exists {
			node = &graphmodel.Node{
				ID:         uuid.NewString(),
				Identifier: placeholderID,
				Kind:       graphmodel.NodeExternal,
				Name:       raw,
				SourceFile: tree.Path,
				Language:   string(tree.Language),
				Metadata:   map[string]any{"kind": "call-target", "stage": "unresolved", "callee_simple": simple},
			}
			placeholders[placeholderID] = node
			result.Nodes = append(result.Nodes, node)
		}
		result.Edges = append(result.Edges, &graphmodel.Edge{
			ID:       uuid.NewString(),
			From:     caller,
			To:       placeholderID,
			Kind:     "calls",
			Metadata: map[string]any{"stage": "unresolved", "callee_raw": raw},
		})
	})

	return result, nil
}

func (e *CallSiteExtractor) Validate(r Result) (errs []string, warnings []string) {
	for _, edge := range r.Edges {
		if edge.Kind != "calls" {
			errs = append(errs, "callsite: unexpected edge kind "+string(edge.Kind))
		}
	}
	return errs, warnings
}
