package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jan-server/catalog-api/internal/domain/directory"
)

func ptr(s string) *string { return &s }

func testForest() *directory.Forest {
	return directory.NewForest([]directory.Directory{
		{ID: "a", Name: "Body"},
		{ID: "b", Name: "Upper", ParentID: ptr("a")},
		{ID: "c", Name: "Arms", ParentID: ptr("b")},
		{ID: "d", Name: "Lower", ParentID: ptr("a")},
		{ID: "e", Name: "Plans"},
	})
}

func TestRenderTree_Forest(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderTree(&buf, testForest(), "", false))
	assert.Equal(t, "Body\n  Upper\n    Arms\n  Lower\nPlans\n", buf.String())
}

func TestRenderTree_Subtree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderTree(&buf, testForest(), "b", true))
	assert.Equal(t, "Upper (b)\n  Arms (c)\n", buf.String())
}

func TestRenderTree_Unknown(t *testing.T) {
	var buf bytes.Buffer
	err := renderTree(&buf, testForest(), "zzz", false)
	assert.EqualError(t, err, "directory zzz not found")
}
