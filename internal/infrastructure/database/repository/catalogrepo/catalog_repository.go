package catalogrepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"jan-server/catalog-api/internal/domain/catalog"
	"jan-server/catalog-api/internal/infrastructure/database"
	"jan-server/catalog-api/internal/infrastructure/database/entities"
	"jan-server/catalog-api/internal/infrastructure/database/transaction"
)

type CatalogGormRepository struct {
	db *transaction.Database
}

var _ catalog.Repository = (*CatalogGormRepository)(nil)

func NewCatalogGormRepository(db *transaction.Database) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// Create implements catalog.Repository.
func (repo *CatalogGormRepository) Create(ctx context.Context, item *catalog.Item) error {
	entity := entities.NewSchemaCatalogItem(item)
	if err := repo.db.GetTx(ctx).Create(entity).Error; err != nil {
		return database.TranslateError(ctx, err, "failed to create catalog item")
	}
	item.CreatedAt = entity.CreatedAt
	item.UpdatedAt = entity.UpdatedAt
	return nil
}

// Get implements catalog.Repository.
func (repo *CatalogGormRepository) Get(ctx context.Context, kind catalog.Kind, id string) (*catalog.Item, error) {
	var entity entities.CatalogItem
	err := repo.db.GetTx(ctx).Where("kind = ? AND id = ?", string(kind), id).First(&entity).Error
	if err != nil {
		return nil, database.TranslateError(ctx, err, string(kind)+" "+id+" not found")
	}
	return entity.EtoD(), nil
}

// Exists implements catalog.Repository.
func (repo *CatalogGormRepository) Exists(ctx context.Context, kind catalog.Kind, id string) (bool, error) {
	var count int64
	err := repo.db.GetTx(ctx).
		Model(&entities.CatalogItem{}).
		Where("kind = ? AND id = ?", string(kind), id).
		Count(&count).Error
	if err != nil {
		return false, database.TranslateError(ctx, err, "failed to look up catalog item")
	}
	return count > 0, nil
}

// List implements catalog.Repository.
func (repo *CatalogGormRepository) List(ctx context.Context, filter catalog.ListFilter) ([]*catalog.Item, int64, error) {
	query := func() *gorm.DB {
		return repo.db.GetTx(ctx).Model(&entities.CatalogItem{}).Where("kind = ?", string(filter.Kind))
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, database.TranslateError(ctx, err, "failed to count catalog items")
	}

	var rows []entities.CatalogItem
	err := query().
		Order("created_at ASC, id ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, database.TranslateError(ctx, err, "failed to list catalog items")
	}
	out := make([]*catalog.Item, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].EtoD())
	}
	return out, total, nil
}

// Update implements catalog.Repository.
func (repo *CatalogGormRepository) Update(ctx context.Context, item *catalog.Item) error {
	now := time.Now().UTC()
	result := repo.db.GetTx(ctx).
		Model(&entities.CatalogItem{}).
		Where("kind = ? AND id = ?", string(item.Kind), item.ID).
		Updates(map[string]any{
			"name":         item.Name,
			"description":  item.Description,
			"directory_id": item.DirectoryID,
			"updated_at":   now,
		})
	if result.Error != nil {
		return database.TranslateError(ctx, result.Error, "failed to update catalog item")
	}
	if result.RowsAffected == 0 {
		return database.TranslateError(ctx, gorm.ErrRecordNotFound, string(item.Kind)+" "+item.ID+" not found")
	}
	item.UpdatedAt = now
	return nil
}

// Delete implements catalog.Repository.
func (repo *CatalogGormRepository) Delete(ctx context.Context, kind catalog.Kind, id string) error {
	result := repo.db.GetTx(ctx).Where("kind = ? AND id = ?", string(kind), id).Delete(&entities.CatalogItem{})
	if result.Error != nil {
		return database.TranslateError(ctx, result.Error, "failed to delete catalog item")
	}
	if result.RowsAffected == 0 {
		return database.TranslateError(ctx, gorm.ErrRecordNotFound, string(kind)+" "+id+" not found")
	}
	return nil
}
