package directoryrepo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jan-server/catalog-api/internal/domain/directory"
	"jan-server/catalog-api/internal/infrastructure/database"
	"jan-server/catalog-api/internal/infrastructure/database/entities"
	"jan-server/catalog-api/internal/infrastructure/database/transaction"
)

type DirectoryGormRepository struct {
	db *transaction.Database
}

var _ directory.Repository = (*DirectoryGormRepository)(nil)

func NewDirectoryGormRepository(db *transaction.Database) *DirectoryGormRepository {
	return &DirectoryGormRepository{db: db}
}

// Create implements directory.Repository.
func (repo *DirectoryGormRepository) Create(ctx context.Context, dir *directory.Directory) error {
	entity := entities.NewSchemaDirectory(dir)
	if err := repo.db.GetTx(ctx).Create(entity).Error; err != nil {
		return database.TranslateError(ctx, err, "failed to create directory")
	}
	dir.CreatedAt = entity.CreatedAt
	dir.UpdatedAt = entity.UpdatedAt
	return nil
}

// Update implements directory.Repository.
func (repo *DirectoryGormRepository) Update(ctx context.Context, dir *directory.Directory) error {
	now := time.Now().UTC()
	result := repo.db.GetTx(ctx).
		Model(&entities.Directory{}).
		Where("id = ?", dir.ID).
		Updates(map[string]any{
			"name":         dir.Name,
			"slug":         dir.Slug,
			"parent_id":    dir.ParentID,
			"parent_scope": entities.ParentScope(dir.ParentID),
			"updated_at":   now,
		})
	if result.Error != nil {
		return database.TranslateError(ctx, result.Error, "failed to update directory")
	}
	if result.RowsAffected == 0 {
		return database.TranslateError(ctx, gorm.ErrRecordNotFound, "directory not found")
	}
	dir.UpdatedAt = now
	return nil
}

// Delete implements directory.Repository.
func (repo *DirectoryGormRepository) Delete(ctx context.Context, id string) error {
	result := repo.db.GetTx(ctx).Where("id = ?", id).Delete(&entities.Directory{})
	if result.Error != nil {
		return database.TranslateError(ctx, result.Error, "failed to delete directory")
	}
	if result.RowsAffected == 0 {
		return database.TranslateError(ctx, gorm.ErrRecordNotFound, "directory not found")
	}
	return nil
}

// Get implements directory.Repository.
func (repo *DirectoryGormRepository) Get(ctx context.Context, id string) (*directory.Directory, error) {
	var entity entities.Directory
	if err := repo.db.GetTx(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, database.TranslateError(ctx, err, "directory "+id+" not found")
	}
	return entity.EtoD(), nil
}

// GetForUpdate implements directory.Repository. The row lock is only taken on
// postgres; sqlite serializes writers on its own.
func (repo *DirectoryGormRepository) GetForUpdate(ctx context.Context, id string) (*directory.Directory, error) {
	query := repo.db.GetTx(ctx)
	if query.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var entity entities.Directory
	if err := query.Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, database.TranslateError(ctx, err, "directory "+id+" not found")
	}
	return entity.EtoD(), nil
}

// Exists implements directory.Repository.
func (repo *DirectoryGormRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := repo.db.GetTx(ctx).Model(&entities.Directory{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, database.TranslateError(ctx, err, "failed to look up directory")
	}
	return count > 0, nil
}

// ListChildren implements directory.Repository.
func (repo *DirectoryGormRepository) ListChildren(ctx context.Context, parentID *string) ([]*directory.Directory, error) {
	var rows []entities.Directory
	err := repo.db.GetTx(ctx).
		Where("parent_scope = ?", entities.ParentScope(parentID)).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, database.TranslateError(ctx, err, "failed to list directories")
	}
	out := make([]*directory.Directory, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].EtoD())
	}
	return out, nil
}

// ListAll implements directory.Repository.
func (repo *DirectoryGormRepository) ListAll(ctx context.Context) ([]directory.Directory, error) {
	var rows []entities.Directory
	if err := repo.db.GetTx(ctx).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, database.TranslateError(ctx, err, "failed to load directories")
	}
	out := make([]directory.Directory, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].EtoD())
	}
	return out, nil
}

// SlugsLike implements directory.Repository.
func (repo *DirectoryGormRepository) SlugsLike(ctx context.Context, parentID *string, base string, excludeID string) ([]string, error) {
	query := repo.db.GetTx(ctx).
		Model(&entities.Directory{}).
		Where("parent_scope = ?", entities.ParentScope(parentID)).
		Where("slug = ? OR slug LIKE ?", base, base+"-%")
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var slugs []string
	if err := query.Pluck("slug", &slugs).Error; err != nil {
		return nil, database.TranslateError(ctx, err, "failed to list slugs")
	}
	return slugs, nil
}
