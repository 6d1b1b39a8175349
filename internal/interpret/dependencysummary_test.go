package interpret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codepathfinder/depgraph/internal/graphmodel"
)

func TestDependencySummary_TalliesByResolutionMetadata(t *testing.T) {
	nodes := []*graphmodel.Node{
		{Kind: graphmodel.NodeExternal, Name: "fmt", Metadata: map[string]any{"resolution": "builtin"}},
		{Kind: graphmodel.NodeExternal, Name: "./sibling", Metadata: map[string]any{"resolution": "relative"}},
		{Kind: graphmodel.NodeExternal, Name: "left-pad", Metadata: map[string]any{"resolution": "unknown"}},
		{Kind: graphmodel.NodeFile, Name: "main.go"},
	}
	d := NewDependencySummary()
	out, err := d.Interpret(nodes, Context{})
	require.NoError(t, err)

	summary := out.(DependencySummaryResult)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Builtin)
	assert.Equal(t, 1, summary.Relative)
	assert.Equal(t, 1, summary.Unknown)
}

func TestDependencySummary_RejectsWrongInputType(t *testing.T) {
	d := NewDependencySummary()
	_, err := d.Interpret("not-nodes", Context{})
	assert.Error(t, err)
}
