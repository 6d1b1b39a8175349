package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codepathfinder/depgraph/internal/graphmodel"
	"github.com/codepathfinder/depgraph/internal/lang"
)

func TestDependencyExtractor_GoImports(t *testing.T) {
	src := `package main

import (
	"fmt"
	"github.com/codepathfinder/depgraph/internal/lang"
)

func main() {
	fmt.Println(lang.Go)
}
`
	tree := parseTree(t, lang.Go, "main.go", src)
	result, err := NewDependencyExtractor().Extract(tree)
	require.NoError(t, err)

	var names []string
	for _, n := range result.Nodes {
		names = append(names, n.Name)
	}
	assert.Contains(t, names, "fmt")
	assert.Contains(t, names, "github.com/codepathfinder/depgraph/internal/lang")

	for _, edge := range result.Edges {
		assert.Equal(t, "imports", string(edge.Kind))
	}
}

func TestDependencyExtractor_PythonImports(t *testing.T) {
	src := "import os\nfrom . import sibling\n"
	tree := parseTree(t, lang.Python, "mod.py", src)
	result, err := NewDependencyExtractor().Extract(tree)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Nodes)
}

func TestSanitizeSymbolPath_HandlesScopedPackages(t *testing.T) {
	got := sanitizeSymbolPath("@scope/pkg-name")
	assert.Regexp(t, `^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`, got)
}

func TestDependencyExtractor_Validate_RejectsWrongEdgeKind(t *testing.T) {
	e := NewDependencyExtractor()
	errs, _ := e.Validate(Result{Edges: []*graphmodel.Edge{{Kind: "calls"}}})
	assert.NotEmpty(t, errs)
}
