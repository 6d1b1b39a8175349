package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codepathfinder/depgraph/internal/errs"
)

func TestTransitiveClosure_BFSWithMinPathLengths(t *testing.T) {
	e, s := newTestEngine(t)
	for _, id := range []string{"a", "b", "c", "d"} {
		mustNode(t, s, id)
	}
	mustEdge(t, s, "a", "b", "depends_on")
	mustEdge(t, s, "a", "c", "depends_on")
	mustEdge(t, s, "b", "d", "depends_on")
	mustEdge(t, s, "c", "d", "depends_on")

	out, err := e.TransitiveClosure("a", "depends_on", 5)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "b", out[0].Identifier)
	assert.Equal(t, 1, out[0].PathLength)
	assert.Equal(t, "c", out[1].Identifier)
	assert.Equal(t, 1, out[1].PathLength)
	assert.Equal(t, "d", out[2].Identifier)
	assert.Equal(t, 2, out[2].PathLength, "d reached via two 1-hop paths keeps the shorter length")
}

func TestTransitiveClosure_ToleratesCycles(t *testing.T) {
	e, s := newTestEngine(t)
	mustNode(t, s, "a")
	mustNode(t, s, "b")
	mustEdge(t, s, "a", "b", "depends_on")
	mustEdge(t, s, "b", "a", "depends_on")

	out, err := e.TransitiveClosure("a", "depends_on", 10)
	require.NoError(t, err)
	require.Len(t, out, 1, "a cycling back to itself must not be reported or infinite-loop")
	assert.Equal(t, "b", out[0].Identifier)
}

func TestTransitiveClosure_UnionsSubHierarchy(t *testing.T) {
	e, s := newTestEngine(t)
	mustNode(t, s, "a")
	mustNode(t, s, "b")
	mustEdge(t, s, "a", "b", "imports") // imports is-a depends_on

	out, err := e.TransitiveClosure("a", "depends_on", 5)
	require.NoError(t, err)
	require.Len(t, out, 1, "querying the parent kind must also traverse child-kind edges")
	assert.Equal(t, "b", out[0].Identifier)
}

func TestTransitiveClosure_RejectsNonTransitiveKind(t *testing.T) {
	e, s := newTestEngine(t)
	mustNode(t, s, "a")

	_, err := e.TransitiveClosure("a", "extends", 5)
	assert.ErrorIs(t, err, errs.ErrInvalidQuery)
}

func TestTransitiveClosure_RejectsDepthOverCeiling(t *testing.T) {
	e, s := newTestEngine(t)
	mustNode(t, s, "a")

	_, err := e.TransitiveClosure("a", "depends_on", DefaultDepthCeiling+1)
	assert.ErrorIs(t, err, errs.ErrDepthExceeded)
}

func TestTransitiveClosure_CachesSecondCall(t *testing.T) {
	e, s := newTestEngine(t)
	mustNode(t, s, "a")
	mustNode(t, s, "b")
	mustEdge(t, s, "a", "b", "depends_on")

	_, err := e.TransitiveClosure("a", "depends_on", 5)
	require.NoError(t, err)
	_, err = e.TransitiveClosure("a", "depends_on", 5)
	require.NoError(t, err)

	assert.Equal(t, float64(1)/2, e.Stats().HitRate)
}
