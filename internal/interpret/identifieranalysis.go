package interpret

import "github.com/codepathfinder/depgraph/internal/graphmodel"

// IdentifierAnalysis rolls declared symbols up by kind, grounded in the
// teacher's core.FrameworkDefinition categorization pattern
// (graph/callgraph/core/frameworks.go): classify each item against a
// fixed vocabulary, then tally, rather than keep every instance.
type IdentifierAnalysis struct{}

// NewIdentifierAnalysis builds the identifier analysis interpreter.
func NewIdentifierAnalysis() *IdentifierAnalysis { return &IdentifierAnalysis{} }

func (a *IdentifierAnalysis) Name() string    { return "identifier-analysis" }
func (a *IdentifierAnalysis) Version() string { return "1.0.0" }

func (a *IdentifierAnalysis) Supports(dataType string) bool { return dataType == "identifier-nodes" }

// IdentifierAnalysisResult is a by-kind tally plus the total symbol count.
type IdentifierAnalysisResult struct {
	Total   int
	ByKind  map[graphmodel.NodeKind]int
}

func (a *IdentifierAnalysis) Interpret(input any, ctx Context) (any, error) {
	nodes, ok := input.([]*graphmodel.Node)
	if !ok {
		return nil, errInvalidInput("identifier-analysis", "[]*graphmodel.Node", input)
	}

	result := IdentifierAnalysisResult{ByKind: make(map[graphmodel.NodeKind]int)}
	for _, n := range nodes {
		if n.Kind == graphmodel.NodeFile {
			continue // the file node itself isn't a declared identifier
		}
		result.Total++
		result.ByKind[n.Kind]++
	}
	return result, nil
}
