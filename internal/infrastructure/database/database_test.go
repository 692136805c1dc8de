package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"jan-server/catalog-api/internal/config"
	"jan-server/catalog-api/internal/utils/platformerrors"
)

func testConfig(level string) *config.Config {
	return &config.Config{
		DBPostgresqlWriteDSN: "postgres://write",
		LogLevel:             level,
		DBMaxIdleConns:       2,
		DBMaxOpenConns:       4,
	}
}

func TestTranslateError(t *testing.T) {
	ctx := context.Background()

	assert.Nil(t, TranslateError(ctx, nil, "noop"))
	assert.True(t, platformerrors.IsErrorType(TranslateError(ctx, gorm.ErrRecordNotFound, "missing"), platformerrors.ErrorTypeNotFound))
	assert.True(t, platformerrors.IsErrorType(TranslateError(ctx, gorm.ErrDuplicatedKey, "dup"), platformerrors.ErrorTypeConflict))
	assert.True(t, platformerrors.IsErrorType(TranslateError(ctx, errors.New("boom"), "boom"), platformerrors.ErrorTypeDatabaseError))
}
