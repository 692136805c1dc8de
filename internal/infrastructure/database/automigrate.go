package database

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"jan-server/catalog-api/internal/infrastructure/database/entities"
)

// AutoMigrate creates the catalog tables from the entity definitions. The SQL
// migrations are authoritative for postgres; this is used for sqlite databases.
func AutoMigrate(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&entities.Directory{},
		&entities.Media{},
		&entities.Translation{},
		&entities.CatalogItem{},
	); err != nil {
		return err
	}
	log.Debug().Msg("applied catalog schema")
	return nil
}
