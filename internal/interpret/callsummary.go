package interpret

import "github.com/codepathfinder/depgraph/internal/graphmodel"

// CallSummaryResult aggregates a file's "calls" edges by resolution stage.
type CallSummaryResult struct {
	Total          int
	Direct         int
	Alias          int
	FrameworkKnown int
	Unresolved     int
}

// CallSummary is the interpreter that builds a CallSummaryResult.
type CallSummary struct{}

// NewCallSummary builds the call summary interpreter.
func NewCallSummary() *CallSummary { return &CallSummary{} }

func (c *CallSummary) Name() string    { return "call-summary" }
func (c *CallSummary) Version() string { return "1.0.0" }

func (c *CallSummary) Supports(dataType string) bool { return dataType == "call-edges" }

// Interpret expects input as the []*graphmodel.Edge the call-site
// extractor produced (Kind "calls"), plus, optionally, ResolvedCall
// results keyed by raw callee text under ctx.Options["resolvedCalls"].
func (c *CallSummary) Interpret(input any, ctx Context) (any, error) {
	edges, ok := input.([]*graphmodel.Edge)
	if !ok {
		return nil, errInvalidInput("call-summary", "[]*graphmodel.Edge", input)
	}

	var resolved map[string]ResolvedCall
	if r, ok := ctx.Options["resolvedCalls"].(map[string]ResolvedCall); ok {
		resolved = r
	}

	var result CallSummaryResult
	for _, e := range edges {
		if e.Kind != "calls" {
			continue
		}
		result.Total++
		stage, _ := e.Metadata["stage"].(string)
		if stage == "unresolved" && resolved != nil {
			if raw, ok := e.Metadata["callee_raw"].(string); ok {
				if rc, ok := resolved[raw]; ok {
					stage = rc.Stage
				}
			}
		}
		switch stage {
		case "direct":
			result.Direct++
		case "alias":
			result.Alias++
		case "framework-known":
			result.FrameworkKnown++
		default:
			result.Unresolved++
		}
	}
	return result, nil
}
