package mediarepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"jan-server/catalog-api/internal/domain/media"
	"jan-server/catalog-api/internal/infrastructure/database"
	"jan-server/catalog-api/internal/infrastructure/database/entities"
	"jan-server/catalog-api/internal/infrastructure/database/transaction"
)

type MediaGormRepository struct {
	db *transaction.Database
}

var _ media.Repository = (*MediaGormRepository)(nil)

func NewMediaGormRepository(db *transaction.Database) *MediaGormRepository {
	return &MediaGormRepository{db: db}
}

// Create implements media.Repository.
func (repo *MediaGormRepository) Create(ctx context.Context, m *media.Media) error {
	entity := entities.NewSchemaMedia(m)
	if err := repo.db.GetTx(ctx).Create(entity).Error; err != nil {
		return database.TranslateError(ctx, err, "failed to create media")
	}
	m.CreatedAt = entity.CreatedAt
	m.UpdatedAt = entity.UpdatedAt
	return nil
}

// Get implements media.Repository.
func (repo *MediaGormRepository) Get(ctx context.Context, id string) (*media.Media, error) {
	var entity entities.Media
	if err := repo.db.GetTx(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, database.TranslateError(ctx, err, "media "+id+" not found")
	}
	return entity.EtoD(), nil
}

// Exists implements media.Repository.
func (repo *MediaGormRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := repo.db.GetTx(ctx).Model(&entities.Media{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, database.TranslateError(ctx, err, "failed to look up media")
	}
	return count > 0, nil
}

// FindOwned implements media.Repository.
func (repo *MediaGormRepository) FindOwned(ctx context.Context, directoryID string, ids []string) ([]*media.Media, error) {
	if len(ids) == 0 {
		return []*media.Media{}, nil
	}
	var rows []entities.Media
	err := repo.db.GetTx(ctx).
		Where("directory_id = ? AND id IN ?", directoryID, ids).
		Find(&rows).Error
	if err != nil {
		return nil, database.TranslateError(ctx, err, "failed to find media")
	}
	return toDomain(rows), nil
}

// ListByDirectory implements media.Repository. An empty collection lists all collections.
func (repo *MediaGormRepository) ListByDirectory(ctx context.Context, directoryID, collection string) ([]*media.Media, error) {
	query := repo.db.GetTx(ctx).Where("directory_id = ?", directoryID)
	if collection != "" {
		query = query.Where("collection = ?", collection)
	}
	var rows []entities.Media
	if err := query.Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, database.TranslateError(ctx, err, "failed to list media")
	}
	return toDomain(rows), nil
}

// FileNames implements media.Repository.
func (repo *MediaGormRepository) FileNames(ctx context.Context, directoryID, collection string) ([]string, error) {
	var names []string
	err := repo.db.GetTx(ctx).
		Model(&entities.Media{}).
		Where("directory_id = ? AND collection = ?", directoryID, collection).
		Pluck("file_name", &names).Error
	if err != nil {
		return nil, database.TranslateError(ctx, err, "failed to list media file names")
	}
	return names, nil
}

// UpdateFileName implements media.Repository.
func (repo *MediaGormRepository) UpdateFileName(ctx context.Context, id, fileName string) error {
	result := repo.db.GetTx(ctx).
		Model(&entities.Media{}).
		Where("id = ?", id).
		Updates(map[string]any{"file_name": fileName, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return database.TranslateError(ctx, result.Error, "failed to rename media")
	}
	if result.RowsAffected == 0 {
		return database.TranslateError(ctx, gorm.ErrRecordNotFound, "media "+id+" not found")
	}
	return nil
}

// Delete implements media.Repository.
func (repo *MediaGormRepository) Delete(ctx context.Context, id string) error {
	result := repo.db.GetTx(ctx).Where("id = ?", id).Delete(&entities.Media{})
	if result.Error != nil {
		return database.TranslateError(ctx, result.Error, "failed to delete media")
	}
	if result.RowsAffected == 0 {
		return database.TranslateError(ctx, gorm.ErrRecordNotFound, "media "+id+" not found")
	}
	return nil
}

// DeleteByDirectory implements media.Repository.
func (repo *MediaGormRepository) DeleteByDirectory(ctx context.Context, directoryID string) (int64, error) {
	result := repo.db.GetTx(ctx).Where("directory_id = ?", directoryID).Delete(&entities.Media{})
	if result.Error != nil {
		return 0, database.TranslateError(ctx, result.Error, "failed to delete directory media")
	}
	return result.RowsAffected, nil
}

func toDomain(rows []entities.Media) []*media.Media {
	out := make([]*media.Media, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].EtoD())
	}
	return out
}
