package interpret

import "github.com/codepathfinder/depgraph/internal/graphmodel"

// DependencySummary aggregates a file's "imports" edges into totals,
// tallying by resolution category rather than keeping every entry.
type DependencySummaryResult struct {
	Total        int
	Relative     int
	Alias        int
	PackageCount int
	Builtin      int
	Unknown      int
	TypeOnly     int
}

// DependencySummary is the interpreter that builds a DependencySummaryResult.
type DependencySummary struct{}

// NewDependencySummary builds the dependency summary interpreter.
func NewDependencySummary() *DependencySummary { return &DependencySummary{} }

func (d *DependencySummary) Name() string    { return "dependency-summary" }
func (d *DependencySummary) Version() string { return "1.0.0" }

func (d *DependencySummary) Supports(dataType string) bool { return dataType == "dependency-nodes" }

// Interpret expects input as the []*graphmodel.Node the Dependency
// extractor produced (external nodes carrying a "resolution" metadata
// key) plus, optionally, ResolvedImport results keyed by raw import
// text under ctx.Options["resolved"].
func (d *DependencySummary) Interpret(input any, ctx Context) (any, error) {
	nodes, ok := input.([]*graphmodel.Node)
	if !ok {
		return nil, errInvalidInput("dependency-summary", "[]*graphmodel.Node", input)
	}

	var resolved map[string]ResolvedImport
	if r, ok := ctx.Options["resolved"].(map[string]ResolvedImport); ok {
		resolved = r
	}

	var result DependencySummaryResult
	for _, n := range nodes {
		if n.Kind != graphmodel.NodeExternal {
			continue
		}
		result.Total++
		if typeOnly, ok := n.Metadata["typeOnly"].(bool); ok && typeOnly {
			result.TypeOnly++
		}
		kind := "unknown"
		if resolved != nil {
			if ri, ok := resolved[n.Name]; ok {
				kind = ri.Kind
			}
		} else if r, ok := n.Metadata["resolution"].(string); ok {
			kind = r
		}
		switch kind {
		case "relative":
			result.Relative++
		case "alias":
			result.Alias++
		case "package":
			result.PackageCount++
		case "builtin":
			result.Builtin++
		default:
			result.Unknown++
		}
	}
	return result, nil
}
