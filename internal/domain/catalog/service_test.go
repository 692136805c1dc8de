package catalog_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jan-server/catalog-api/internal/domain/catalog"
	"jan-server/catalog-api/internal/domain/translation"
	"jan-server/catalog-api/internal/testutil"
	"jan-server/catalog-api/internal/utils/platformerrors"
)

func TestParseKind(t *testing.T) {
	for _, in := range []string{"goal", "goals", "muscle", "muscles", "workout", "workouts", "plan", "plans"} {
		_, ok := catalog.ParseKind(in)
		assert.True(t, ok, in)
	}
	kind, ok := catalog.ParseKind("workouts")
	require.True(t, ok)
	assert.Equal(t, catalog.KindWorkout, kind)
	_, ok = catalog.ParseKind("exercise")
	assert.False(t, ok)
}

func TestService_CRUD(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()
	dir := env.MustDirectory(t, "Plans", nil)

	item, err := env.Catalog.Create(ctx, catalog.CreateInput{
		Kind:        catalog.KindPlan,
		Name:        " Beginner Strength ",
		Description: "Three sessions a week",
		DirectoryID: &dir.ID,
		Translations: []translation.Input{
			{Column: catalog.ColumnName, Locale: "fr", Text: "Force débutant"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Beginner Strength", item.Name)
	assert.Equal(t, dir.ID, *item.DirectoryID)

	got, err := env.Catalog.Get(ctx, catalog.KindPlan, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)

	_, err = env.Catalog.Get(ctx, catalog.KindGoal, item.ID)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound), "items are scoped by kind")

	name := "Strength 101"
	updated, err := env.Catalog.Update(ctx, catalog.KindPlan, item.ID, catalog.UpdateInput{
		Name:        &name,
		DirectoryID: testutil.Ptr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Strength 101", updated.Name)
	assert.Nil(t, updated.DirectoryID)
	assert.Equal(t, "Three sessions a week", updated.Description)

	fr := catalog.Localize(ctx, env.Translations.For("fr"), updated)
	assert.Equal(t, "Force débutant", fr.Name)
	assert.Equal(t, "Three sessions a week", fr.Description)
	assert.Equal(t, "fr", fr.Locale)
	assert.Equal(t, "Strength 101", updated.Name, "localizing does not mutate the item")

	require.NoError(t, env.Catalog.Delete(ctx, catalog.KindPlan, item.ID))
	_, err = env.Catalog.Get(ctx, catalog.KindPlan, item.ID)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
	rows, err := env.Translations.List(ctx, item.OwnerRef())
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = env.Directories.Get(ctx, dir.ID)
	assert.NoError(t, err, "deleting an item keeps its directory")
}

func TestService_CreateValidation(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	_, err := env.Catalog.Create(ctx, catalog.CreateInput{Kind: catalog.KindGoal, Name: ""})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	_, err = env.Catalog.Create(ctx, catalog.CreateInput{
		Kind: catalog.KindGoal, Name: "Lose fat", Description: strings.Repeat("x", 5001),
	})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	_, err = env.Catalog.Create(ctx, catalog.CreateInput{
		Kind: catalog.KindGoal, Name: "Lose fat", DirectoryID: testutil.Ptr("dir_missing"),
	})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestService_ListPaginates(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	for _, name := range []string{"Biceps", "Triceps", "Quads"} {
		_, err := env.Catalog.Create(ctx, catalog.CreateInput{Kind: catalog.KindMuscle, Name: name})
		require.NoError(t, err)
	}
	_, err := env.Catalog.Create(ctx, catalog.CreateInput{Kind: catalog.KindGoal, Name: "Endurance"})
	require.NoError(t, err)

	items, total, err := env.Catalog.List(ctx, catalog.ListFilter{Kind: catalog.KindMuscle, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, items, 2)

	rest, _, err := env.Catalog.List(ctx, catalog.ListFilter{Kind: catalog.KindMuscle, Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, rest, 1)

	all, total, err := env.Catalog.List(ctx, catalog.ListFilter{Kind: catalog.KindMuscle, Limit: 1000, Offset: -4})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 3)
}
