package interpret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ForDispatchesByDataType(t *testing.T) {
	r := NewRegistry()
	resolvers := r.For("import-path")
	require.Len(t, resolvers, 1)
	assert.Equal(t, "path-resolver", resolvers[0].Name())
}

func TestRegistry_GetAndUnregister(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Get("dependency-summary")
	assert.True(t, ok)

	r.Unregister("dependency-summary")
	_, ok = r.Get("dependency-summary")
	assert.False(t, ok)
}
