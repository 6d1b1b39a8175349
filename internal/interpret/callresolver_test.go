package interpret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallResolver_ResolvesAlias(t *testing.T) {
	c := NewCallResolver()
	ctx := Context{Aliases: map[string]string{"@app": "src/app"}}
	out, err := c.Interpret("@app.render", ctx)
	require.NoError(t, err)

	rc := out.(ResolvedCall)
	assert.Equal(t, "alias", rc.Stage)
	assert.True(t, rc.Resolved)
	assert.Equal(t, "src/app.render", rc.Target)
}

func TestCallResolver_ResolvesFrameworkKnown(t *testing.T) {
	c := NewCallResolver()
	out, err := c.Interpret("flask.Flask", Context{})
	require.NoError(t, err)

	rc := out.(ResolvedCall)
	assert.Equal(t, "framework-known", rc.Stage)
	assert.True(t, rc.Resolved)
	assert.Equal(t, "Flask", rc.Target)
}

func TestCallResolver_ResolvesBuiltinModuleCall(t *testing.T) {
	c := NewCallResolver()
	out, err := c.Interpret("fmt.Println", Context{})
	require.NoError(t, err)

	rc := out.(ResolvedCall)
	assert.Equal(t, "framework-known", rc.Stage)
	assert.True(t, rc.Resolved)
}

func TestCallResolver_UnresolvedWhenNoStageMatches(t *testing.T) {
	c := NewCallResolver()
	out, err := c.Interpret("someLibrary.doThing", Context{})
	require.NoError(t, err)

	rc := out.(ResolvedCall)
	assert.Equal(t, "unresolved", rc.Stage)
	assert.False(t, rc.Resolved)
}

func TestCallResolver_RejectsWrongInputType(t *testing.T) {
	c := NewCallResolver()
	_, err := c.Interpret(42, Context{})
	assert.Error(t, err)
}
