package directory_test

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jan-server/catalog-api/internal/domain/directory"
	"jan-server/catalog-api/internal/domain/media"
	"jan-server/catalog-api/internal/domain/translation"
	"jan-server/catalog-api/internal/infrastructure/database/entities"
	"jan-server/catalog-api/internal/testutil"
	"jan-server/catalog-api/internal/utils/platformerrors"
)

func TestService_CreateAssignsScopedSlugs(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	legs := env.MustDirectory(t, "Legs", nil)
	assert.Equal(t, "legs", legs.Slug)
	assert.True(t, legs.IsRoot())

	again := env.MustDirectory(t, "LEGS!", nil)
	assert.Equal(t, "legs-2", again.Slug)

	child := env.MustDirectory(t, "Legs", &legs.ID)
	assert.Equal(t, "legs", child.Slug, "slugs are unique per parent")
	assert.Equal(t, legs.ID, *child.ParentID)

	roots, err := env.Directories.ListChildren(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, roots, 2)

	children, err := env.Directories.ListChildren(ctx, &legs.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, child.ID, children[0].ID)
}

func TestService_CreateErrors(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	_, err := env.Directories.Create(ctx, directory.CreateInput{Name: "   "})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	_, err = env.Directories.Create(ctx, directory.CreateInput{Name: "Arms", ParentID: testutil.Ptr("dir_missing")})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))

	_, err = env.Directories.Create(ctx, directory.CreateInput{
		Name:         "Arms",
		Translations: []translation.Input{{Column: "colour", Locale: "fr", Text: "Bras"}},
	})
	require.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	var count int64
	require.NoError(t, env.DB.Model(&entities.Directory{}).Count(&count).Error)
	assert.Zero(t, count, "a rejected translation rolls back the directory")
}

func TestService_CreateWithTranslations(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	dir, err := env.Directories.Create(ctx, directory.CreateInput{
		Name: "Shoulders",
		Translations: []translation.Input{
			{Column: directory.ColumnName, Locale: "fr", Text: "Épaules"},
			{Column: directory.ColumnName, Locale: "de", Text: "Schultern"},
		},
	})
	require.NoError(t, err)

	owner := directory.OwnerRef(dir.ID)
	assert.Equal(t, "Épaules", env.Translations.Resolve(ctx, owner, directory.ColumnName, "fr", dir.Name))
	assert.Equal(t, "Schultern", env.Translations.Resolve(ctx, owner, directory.ColumnName, "de", dir.Name))
	assert.Equal(t, "Shoulders", env.Translations.Resolve(ctx, owner, directory.ColumnName, "it", dir.Name))
}

func TestService_Rename(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	env.MustDirectory(t, "Core", nil)
	abs := env.MustDirectory(t, "Abs", nil)

	renamed, err := env.Directories.Rename(ctx, abs.ID, "Core")
	require.NoError(t, err)
	assert.Equal(t, "Core", renamed.Name)
	assert.Equal(t, "core-2", renamed.Slug)

	_, err = env.Directories.Rename(ctx, "dir_missing", "x")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestService_MoveRejectsCycles(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	a := env.MustDirectory(t, "A", nil)
	b := env.MustDirectory(t, "B", &a.ID)
	c := env.MustDirectory(t, "C", &b.ID)

	snapshot := func() map[string]*string {
		forest, err := env.Directories.Forest(ctx)
		require.NoError(t, err)
		out := map[string]*string{}
		for _, id := range []string{a.ID, b.ID, c.ID} {
			d, ok := forest.Get(id)
			require.True(t, ok)
			out[id] = d.ParentID
		}
		return out
	}
	before := snapshot()

	_, err := env.Directories.Move(ctx, a.ID, &c.ID)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeCycleDetected))

	_, err = env.Directories.Move(ctx, a.ID, &a.ID)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeCycleDetected))

	_, err = env.Directories.Move(ctx, b.ID, &c.ID)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeCycleDetected))

	_, err = env.Directories.Move(ctx, a.ID, testutil.Ptr("dir_missing"))
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))

	assert.Equal(t, before, snapshot())
}

func TestService_Move(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	a := env.MustDirectory(t, "A", nil)
	b := env.MustDirectory(t, "Target", &a.ID)
	env.MustDirectory(t, "Target", nil)

	moved, err := env.Directories.Move(ctx, b.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, moved.ParentID)
	assert.Equal(t, "target-2", moved.Slug)

	moved, err = env.Directories.Move(ctx, a.ID, &b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, *moved.ParentID)

	ancestors, err := env.Directories.Ancestors(ctx, a.ID)
	require.NoError(t, err)
	var chain []string
	for d := range ancestors {
		chain = append(chain, d.ID)
	}
	assert.Equal(t, []string{b.ID}, chain)
}

func TestService_DescendantsSnapshot(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	root := env.MustDirectory(t, "Root", nil)
	left := env.MustDirectory(t, "Left", &root.ID)
	right := env.MustDirectory(t, "Right", &root.ID)
	leaf := env.MustDirectory(t, "Leaf", &left.ID)
	env.MustDirectory(t, "Other", nil)

	seq, err := env.Directories.Descendants(ctx, root.ID)
	require.NoError(t, err)

	var got []string
	for d := range seq {
		got = append(got, d.ID)
	}
	assert.ElementsMatch(t, []string{left.ID, right.ID, leaf.ID}, got)
	assert.NotContains(t, got, root.ID)

	_, err = env.Directories.Descendants(ctx, "dir_missing")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func storeFile(t *testing.T, env *testutil.Env, dirID, collection, name, content string) *media.Media {
	t.Helper()
	res, err := env.Media.ApplyBatch(context.Background(), dirID, media.Batch{
		Action: "store",
		Path:   collection,
		Items:  []media.Item{{FileName: name, Content: base64.StdEncoding.EncodeToString([]byte(content))}},
	})
	require.NoError(t, err)
	require.Empty(t, res.Errors)
	require.Len(t, res.Applied, 1)
	return res.Applied[0]
}

func TestService_DeleteCascades(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	root := env.MustDirectory(t, "Root", nil)
	child := env.MustDirectory(t, "Child", &root.ID)
	grandchild := env.MustDirectory(t, "Grandchild", &child.ID)
	keep := env.MustDirectory(t, "Keep", nil)

	rootFile := storeFile(t, env, root.ID, "images", "a.txt", "hello")
	deepFile := storeFile(t, env, grandchild.ID, "docs", "b.txt", "world")
	keptFile := storeFile(t, env, keep.ID, "images", "c.txt", "stay")

	_, err := env.Translations.Attach(ctx, directory.OwnerRef(child.ID), directory.ColumnName, "fr", "Enfant")
	require.NoError(t, err)
	_, err = env.Translations.Attach(ctx, media.OwnerRef(deepFile.ID), media.ColumnName, "fr", "Profond")
	require.NoError(t, err)

	deleted, err := env.Directories.Delete(ctx, root.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{root.ID, child.ID, grandchild.ID}, deleted)
	assert.Equal(t, root.ID, deleted[len(deleted)-1])
	assert.Less(t, slices.Index(deleted, grandchild.ID), slices.Index(deleted, child.ID))

	var dirs, files, overlays int64
	require.NoError(t, env.DB.Model(&entities.Directory{}).Count(&dirs).Error)
	require.NoError(t, env.DB.Model(&entities.Media{}).Count(&files).Error)
	require.NoError(t, env.DB.Model(&entities.Translation{}).Count(&overlays).Error)
	assert.EqualValues(t, 1, dirs)
	assert.EqualValues(t, 1, files)
	assert.Zero(t, overlays)

	for _, m := range []*media.Media{rootFile, deepFile} {
		_, statErr := os.Stat(filepath.Join(env.StoragePath, filepath.FromSlash(m.StorageKey())))
		assert.True(t, os.IsNotExist(statErr), "bytes of %s removed", m.FileName)
	}
	_, statErr := os.Stat(filepath.Join(env.StoragePath, filepath.FromSlash(keptFile.StorageKey())))
	assert.NoError(t, statErr)

	_, err = env.Directories.Delete(ctx, root.ID)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestService_DeleteReportsStorageFailure(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	root := env.MustDirectory(t, "Root", nil)
	file := storeFile(t, env, root.ID, "images", "a.txt", "hello")
	env.Storage.FailOn("delete", nil)

	deleted, err := env.Directories.Delete(ctx, root.ID)
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeStorage))
	assert.Equal(t, []string{root.ID}, deleted)

	exists, err := env.Directories.Exists(ctx, root.ID)
	require.NoError(t, err)
	assert.False(t, exists, "rows stay deleted when bytes cannot be removed")

	_, statErr := os.Stat(filepath.Join(env.StoragePath, filepath.FromSlash(file.StorageKey())))
	assert.NoError(t, statErr, "bytes are orphaned, not lost")
}
