package lang

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_DispatchesByDetectedLanguage(t *testing.T) {
	r := NewRegistry()
	result := r.Parse(context.Background(), "main.go", []byte("package main\n"))
	assert.Equal(t, Go, result.Language)
}

func TestRegistry_DispatchesTSXToJSXGrammar(t *testing.T) {
	r := NewRegistry()
	result := r.Parse(context.Background(), "x.tsx", []byte("const x = <div/>;\n"))
	require.NotNil(t, result.Tree)
	assert.Equal(t, TypeScript, result.Language)
}

func TestRegistry_UnrecognizedFileUsesUnknownAdapter(t *testing.T) {
	r := NewRegistry()
	result := r.Parse(context.Background(), "noext", []byte("plain text"))
	assert.Equal(t, Unknown, result.Language)
	assert.NotEmpty(t, result.Errors)
}

func TestRegistry_RegisterOverridesAdapter(t *testing.T) {
	r := NewRegistry()
	r.Register(Go, ExternalAdapter{})
	assert.IsType(t, ExternalAdapter{}, r.For(Go))
}
