package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codepathfinder/depgraph/internal/graphmodel"
	"github.com/codepathfinder/depgraph/internal/lang"
)

func TestCallSiteExtractor_GoDirectCallResolvesToSameFileFunction(t *testing.T) {
	src := `package widget

func helper() string {
	return "ok"
}

func Render() string {
	return helper()
}
`
	tree := parseTree(t, lang.Go, "widget.go", src)
	result, err := NewCallSiteExtractor().Extract(tree)
	require.NoError(t, err)

	var direct *graphmodel.Edge
	for _, e := range result.Edges {
		if e.Kind == "calls" && e.Metadata["stage"] == "direct" {
			direct = e
		}
	}
	require.NotNil(t, direct, "call to helper() should resolve directly")
	assert.Contains(t, direct.To, "function:helper")
	assert.Contains(t, direct.From, "function:Render")
}

func TestCallSiteExtractor_GoUnresolvedCallBuildsPlaceholder(t *testing.T) {
	src := `package widget

import "fmt"

func Render() {
	fmt.Println("hi")
}
`
	tree := parseTree(t, lang.Go, "widget.go", src)
	result, err := NewCallSiteExtractor().Extract(tree)
	require.NoError(t, err)

	var placeholder *graphmodel.Node
	for _, n := range result.Nodes {
		if n.Kind == graphmodel.NodeExternal {
			placeholder = n
		}
	}
	require.NotNil(t, placeholder)
	assert.Equal(t, "call-target", placeholder.Metadata["kind"])
	assert.Equal(t, "unresolved", placeholder.Metadata["stage"])

	var placeholderEdge *graphmodel.Edge
	for _, e := range result.Edges {
		if e.To == placeholder.Identifier {
			placeholderEdge = e
		}
	}
	require.NotNil(t, placeholderEdge)
	assert.Equal(t, "calls", string(placeholderEdge.Kind))
}

func TestCallSiteExtractor_PythonMethodCall(t *testing.T) {
	src := "def handler():\n    widget.render()\n"
	tree := parseTree(t, lang.Python, "app.py", src)
	result, err := NewCallSiteExtractor().Extract(tree)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Edges)
}

func TestCallSiteExtractor_UnsupportedLanguageReturnsEmpty(t *testing.T) {
	e := NewCallSiteExtractor()
	assert.False(t, e.Supports(lang.Markdown))
	result, err := e.Extract(Tree{Language: lang.Markdown})
	require.NoError(t, err)
	assert.Empty(t, result.Edges)
}

func TestCallSiteExtractor_Validate_RejectsWrongEdgeKind(t *testing.T) {
	e := NewCallSiteExtractor()
	errs, _ := e.Validate(Result{Edges: []*graphmodel.Edge{{Kind: "imports"}}})
	assert.NotEmpty(t, errs)
}
