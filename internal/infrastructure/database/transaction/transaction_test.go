package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jan-server/catalog-api/internal/infrastructure/database/entities"
	"jan-server/catalog-api/internal/infrastructure/database/transaction"
	"jan-server/catalog-api/internal/testutil"
)

func countDirectories(t *testing.T, db *transaction.Database) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.GetTx(context.Background()).Model(&entities.Directory{}).Count(&n).Error)
	return n
}

func insert(ctx context.Context, db *transaction.Database, id string) error {
	now := time.Now().UTC()
	return db.GetTx(ctx).Create(&entities.Directory{ID: id, Name: id, Slug: id, CreatedAt: now, UpdatedAt: now}).Error
}

func TestWithinTransaction_CommitAndRollback(t *testing.T) {
	db := transaction.NewDatabase(testutil.NewDB(t))
	ctx := context.Background()

	require.NoError(t, db.WithinTransaction(ctx, func(ctx context.Context) error {
		return insert(ctx, db, "dir_a")
	}))
	assert.EqualValues(t, 1, countDirectories(t, db))

	boom := errors.New("boom")
	err := db.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := insert(ctx, db, "dir_b"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.EqualValues(t, 1, countDirectories(t, db))
}

func TestWithinTransaction_NestedJoinsOuter(t *testing.T) {
	db := transaction.NewDatabase(testutil.NewDB(t))
	ctx := context.Background()

	boom := errors.New("outer failure")
	err := db.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := db.WithinTransaction(ctx, func(ctx context.Context) error {
			return insert(ctx, db, "dir_inner")
		}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, countDirectories(t, db), "the inner write rolls back with the outer transaction")
}

func TestAfterCommit(t *testing.T) {
	db := transaction.NewDatabase(testutil.NewDB(t))
	ctx := context.Background()

	var ran []string
	record := func(name string) func(context.Context) {
		return func(context.Context) { ran = append(ran, name) }
	}

	db.AfterCommit(ctx, record("immediate"))
	assert.Equal(t, []string{"immediate"}, ran)

	require.NoError(t, db.WithinTransaction(ctx, func(ctx context.Context) error {
		db.AfterCommit(ctx, record("outer"))
		if err := db.WithinTransaction(ctx, func(ctx context.Context) error {
			db.AfterCommit(ctx, record("nested"))
			return insert(ctx, db, "dir_hooked")
		}); err != nil {
			return err
		}
		assert.Equal(t, []string{"immediate"}, ran, "hooks wait for the commit")
		return nil
	}))
	assert.Equal(t, []string{"immediate", "outer", "nested"}, ran)

	err := db.WithinTransaction(ctx, func(ctx context.Context) error {
		db.AfterCommit(ctx, record("rolled back"))
		return errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, []string{"immediate", "outer", "nested"}, ran)
}
