package interpret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codepathfinder/depgraph/internal/graphmodel"
)

func TestCallSummary_TalliesDirectAndUnresolvedStages(t *testing.T) {
	edges := []*graphmodel.Edge{
		{Kind: "calls", Metadata: map[string]any{"stage": "direct", "callee_raw": "helper"}},
		{Kind: "calls", Metadata: map[string]any{"stage": "unresolved", "callee_raw": "fmt.Println"}},
		{Kind: "imports"},
	}
	c := NewCallSummary()
	out, err := c.Interpret(edges, Context{})
	require.NoError(t, err)

	summary := out.(CallSummaryResult)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Direct)
	assert.Equal(t, 1, summary.Unresolved)
}

func TestCallSummary_UsesResolvedCallsForUnresolvedStage(t *testing.T) {
	edges := []*graphmodel.Edge{
		{Kind: "calls", Metadata: map[string]any{"stage": "unresolved", "callee_raw": "fmt.Println"}},
	}
	ctx := Context{Options: map[string]any{
		"resolvedCalls": map[string]ResolvedCall{
			"fmt.Println": {Raw: "fmt.Println", Stage: "framework-known", Resolved: true},
		},
	}}
	c := NewCallSummary()
	out, err := c.Interpret(edges, ctx)
	require.NoError(t, err)

	summary := out.(CallSummaryResult)
	assert.Equal(t, 1, summary.FrameworkKnown)
	assert.Equal(t, 0, summary.Unresolved)
}

func TestCallSummary_RejectsWrongInputType(t *testing.T) {
	c := NewCallSummary()
	_, err := c.Interpret("not-edges", Context{})
	assert.Error(t, err)
}
