package lang

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeSitterAdapter_ParsesCleanGoSource(t *testing.T) {
	a := NewTreeSitterAdapter(Go)
	src := []byte("package main\n\nfunc main() {}\n")
	result := a.Parse(context.Background(), "main.go", src)
	require.NotNil(t, result.Tree)
	assert.Equal(t, Go, result.Language)
	assert.Empty(t, result.Errors)
}

func TestTreeSitterAdapter_SurfacesSyntaxErrors(t *testing.T) {
	a := NewTreeSitterAdapter(Go)
	src := []byte("package main\n\nfunc main( {\n")
	result := a.Parse(context.Background(), "broken.go", src)
	assert.NotEmpty(t, result.Errors)
}

func TestTreeSitterAdapter_ValidateSyntax(t *testing.T) {
	a := NewTreeSitterAdapter(Python)
	clean := a.ValidateSyntax([]byte("def f():\n    return 1\n"))
	assert.True(t, clean.Valid)

	broken := a.ValidateSyntax([]byte("def f(:\n"))
	assert.False(t, broken.Valid)
	assert.NotEmpty(t, broken.Errors)
}

func TestTreeSitterAdapter_Supports(t *testing.T) {
	a := NewTreeSitterAdapter(Java)
	assert.True(t, a.Supports(Java))
	assert.False(t, a.Supports(Python))
}

func TestTSXAdapter_ParsesJSXSyntax(t *testing.T) {
	a := NewTSXAdapter()
	src := []byte("const x = <div>hello</div>;\n")
	result := a.Parse(context.Background(), "x.tsx", src)
	require.NotNil(t, result.Tree)
	assert.Equal(t, TypeScript, result.Language)
}
