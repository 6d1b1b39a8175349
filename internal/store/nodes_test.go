package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codepathfinder/depgraph/internal/errs"
	"github.com/codepathfinder/depgraph/internal/graphmodel"
)

func TestUpsertNode_InsertThenGet(t *testing.T) {
	s := openTestStore(t)

	n := &graphmodel.Node{
		ID:         "n1",
		Identifier: "proj/a.go#function:Foo",
		Kind:       graphmodel.NodeFunction,
		Name:       "Foo",
		SourceFile: "a.go",
	}
	require.NoError(t, s.UpsertNode(n))

	got, err := s.GetNodeByIdentifier(n.Identifier)
	require.NoError(t, err)
	assert.Equal(t, "Foo", got.Name)

	byID, err := s.GetNodeByID("n1")
	require.NoError(t, err)
	assert.Equal(t, n.Identifier, byID.Identifier)
}

func TestUpsertNode_MergesMetadataOnIdentifierCollision(t *testing.T) {
	s := openTestStore(t)

	first := &graphmodel.Node{
		ID: "n1", Identifier: "proj/a.go#function:Foo", Kind: graphmodel.NodeFunction,
		Name: "Foo", SourceFile: "a.go", Metadata: map[string]any{"complexity": 1.0},
	}
	require.NoError(t, s.UpsertNode(first))

	second := &graphmodel.Node{
		ID: "n2", Identifier: "proj/a.go#function:Foo", Kind: graphmodel.NodeFunction,
		Name: "FooRenamed", SourceFile: "a.go", Metadata: map[string]any{"docstring": "does a thing"},
	}
	require.NoError(t, s.UpsertNode(second))

	got, err := s.GetNodeByIdentifier("proj/a.go#function:Foo")
	require.NoError(t, err)
	assert.Equal(t, "n1", got.ID, "stable storage ID is preserved across a merge")
	assert.Equal(t, "FooRenamed", got.Name)
	assert.Equal(t, 1.0, got.Metadata["complexity"])
	assert.Equal(t, "does a thing", got.Metadata["docstring"])
}

func TestUpsertNode_RejectsSourceFileClash(t *testing.T) {
	s := openTestStore(t)

	first := &graphmodel.Node{ID: "n1", Identifier: "proj/a.go#function:Foo", SourceFile: "a.go"}
	require.NoError(t, s.UpsertNode(first))

	second := &graphmodel.Node{ID: "n2", Identifier: "proj/a.go#function:Foo", SourceFile: "b.go"}
	err := s.UpsertNode(second)
	require.ErrorIs(t, err, errs.ErrIdentifierClash)
}

func TestFindByKind(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.UpsertNode(&graphmodel.Node{ID: "n1", Identifier: "proj/a.go#function:Foo", Kind: graphmodel.NodeFunction}))
	require.NoError(t, s.UpsertNode(&graphmodel.Node{ID: "n2", Identifier: "proj/a.go#class:Bar", Kind: graphmodel.NodeClass}))
	require.NoError(t, s.UpsertNode(&graphmodel.Node{ID: "n3", Identifier: "proj/a.go#function:Baz", Kind: graphmodel.NodeFunction}))

	funcs, err := s.FindByKind(graphmodel.NodeFunction)
	require.NoError(t, err)
	assert.Len(t, funcs, 2)
}

func TestGetNodeByIdentifier_NotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetNodeByIdentifier("proj/missing.go#function:Ghost")
	assert.Error(t, err)
}
