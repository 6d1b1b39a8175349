package interpret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathResolver_RelativeImport(t *testing.T) {
	r := NewPathResolver()
	out, err := r.Interpret("./sibling", Context{FilePath: "src/pkg/file.go"})
	require.NoError(t, err)
	resolved := out.(ResolvedImport)
	assert.Equal(t, "relative", resolved.Kind)
	assert.Equal(t, "src/pkg/sibling", resolved.ResolvedPath)
	assert.True(t, resolved.Resolved)
}

func TestPathResolver_AliasImport(t *testing.T) {
	r := NewPathResolver()
	ctx := Context{Aliases: map[string]string{"@app": "src/app"}}
	out, err := r.Interpret("@app/widget", ctx)
	require.NoError(t, err)
	resolved := out.(ResolvedImport)
	assert.Equal(t, "alias", resolved.Kind)
	assert.Equal(t, "src/app/widget", resolved.ResolvedPath)
}

func TestPathResolver_PackageImport(t *testing.T) {
	r := NewPathResolver()
	ctx := Context{Packages: map[string]bool{"github.com/acme/widgets": true}}
	out, err := r.Interpret("github.com/acme/widgets", ctx)
	require.NoError(t, err)
	resolved := out.(ResolvedImport)
	assert.Equal(t, "package", resolved.Kind)
}

func TestPathResolver_BuiltinImport(t *testing.T) {
	r := NewPathResolver()
	out, err := r.Interpret("fmt", Context{})
	require.NoError(t, err)
	assert.Equal(t, "builtin", out.(ResolvedImport).Kind)
}

func TestPathResolver_UnknownImport(t *testing.T) {
	r := NewPathResolver()
	out, err := r.Interpret("some-unresolvable-thing", Context{})
	require.NoError(t, err)
	resolved := out.(ResolvedImport)
	assert.Equal(t, "unknown", resolved.Kind)
	assert.False(t, resolved.Resolved)
}

func TestPathResolver_RejectsWrongInputType(t *testing.T) {
	r := NewPathResolver()
	_, err := r.Interpret(42, Context{})
	assert.Error(t, err)
}
