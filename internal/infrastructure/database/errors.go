package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"jan-server/catalog-api/internal/utils/platformerrors"
)

// TranslateError maps gorm errors onto platform errors: missing rows become
// NOT_FOUND, unique violations CONFLICT and everything else DATABASE_ERROR.
func TranslateError(ctx context.Context, err error, message string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, message, err, "")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict, message, err, "")
	default:
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, message, err, "")
	}
}
