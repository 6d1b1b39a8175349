package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codepathfinder/depgraph/internal/lang"
)

func TestComplexityExtractor_CountsBranches(t *testing.T) {
	src := `package main

func classify(n int) string {
	if n < 0 {
		return "negative"
	}
	for i := 0; i < n; i++ {
		if i == 2 {
			return "two"
		}
	}
	return "other"
}
`
	tree := parseTree(t, lang.Go, "classify.go", src)
	result, err := NewComplexityExtractor().Extract(tree)
	require.NoError(t, err)
	require.Len(t, result.Nodes, 1)

	score, ok := result.Nodes[0].Metadata["cyclomaticComplexity"].(int)
	require.True(t, ok)
	assert.GreaterOrEqual(t, score, 3)
}

func TestComplexityExtractor_StraightLineFunctionScoresOne(t *testing.T) {
	src := `package main

func identity(n int) int {
	return n
}
`
	tree := parseTree(t, lang.Go, "identity.go", src)
	result, err := NewComplexityExtractor().Extract(tree)
	require.NoError(t, err)
	require.Len(t, result.Nodes, 1)
	assert.Equal(t, 1, result.Nodes[0].Metadata["cyclomaticComplexity"])
}

func TestComplexityExtractor_UnsupportedLanguage(t *testing.T) {
	e := NewComplexityExtractor()
	assert.False(t, e.Supports(lang.Markdown))
}
