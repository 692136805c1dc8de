package translationrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"jan-server/catalog-api/internal/domain/translation"
	"jan-server/catalog-api/internal/infrastructure/database"
	"jan-server/catalog-api/internal/infrastructure/database/entities"
	"jan-server/catalog-api/internal/infrastructure/database/transaction"
)

type TranslationGormRepository struct {
	db *transaction.Database
}

var _ translation.Repository = (*TranslationGormRepository)(nil)

func NewTranslationGormRepository(db *transaction.Database) *TranslationGormRepository {
	return &TranslationGormRepository{db: db}
}

// ownerScope filters on the polymorphic owner. Map conditions keep the
// reserved "column" identifier quoted.
func ownerScope(owner translation.OwnerRef) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(map[string]any{"owner_type": string(owner.Type), "owner_id": owner.ID})
	}
}

// AfterCommit implements translation.Repository.
func (repo *TranslationGormRepository) AfterCommit(ctx context.Context, fn func(ctx context.Context)) {
	repo.db.AfterCommit(ctx, fn)
}

// Create implements translation.Repository.
func (repo *TranslationGormRepository) Create(ctx context.Context, t *translation.Translation) error {
	entity := entities.NewSchemaTranslation(t)
	if err := repo.db.GetTx(ctx).Create(entity).Error; err != nil {
		return database.TranslateError(ctx, err, "failed to create translation")
	}
	t.CreatedAt = entity.CreatedAt
	t.UpdatedAt = entity.UpdatedAt
	return nil
}

// Get implements translation.Repository.
func (repo *TranslationGormRepository) Get(ctx context.Context, id string) (*translation.Translation, error) {
	var entity entities.Translation
	if err := repo.db.GetTx(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, database.TranslateError(ctx, err, "translation "+id+" not found")
	}
	return entity.EtoD(), nil
}

// FindFirst implements translation.Repository.
func (repo *TranslationGormRepository) FindFirst(ctx context.Context, owner translation.OwnerRef, column, locale string) (*translation.Translation, error) {
	var entity entities.Translation
	err := repo.db.GetTx(ctx).
		Scopes(ownerScope(owner)).
		Where(map[string]any{"column": column, "locale": locale}).
		Order("created_at ASC, id ASC").
		Take(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.TranslateError(ctx, err, "failed to resolve translation")
	}
	return entity.EtoD(), nil
}

// UpdateText implements translation.Repository.
func (repo *TranslationGormRepository) UpdateText(ctx context.Context, id, text string) error {
	result := repo.db.GetTx(ctx).
		Model(&entities.Translation{}).
		Where("id = ?", id).
		Updates(map[string]any{"translation": text, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return database.TranslateError(ctx, result.Error, "failed to update translation")
	}
	if result.RowsAffected == 0 {
		return database.TranslateError(ctx, gorm.ErrRecordNotFound, "translation "+id+" not found")
	}
	return nil
}

// Delete implements translation.Repository.
func (repo *TranslationGormRepository) Delete(ctx context.Context, id string) error {
	result := repo.db.GetTx(ctx).Where("id = ?", id).Delete(&entities.Translation{})
	if result.Error != nil {
		return database.TranslateError(ctx, result.Error, "failed to delete translation")
	}
	if result.RowsAffected == 0 {
		return database.TranslateError(ctx, gorm.ErrRecordNotFound, "translation "+id+" not found")
	}
	return nil
}

// ListByOwner implements translation.Repository.
func (repo *TranslationGormRepository) ListByOwner(ctx context.Context, owner translation.OwnerRef) ([]*translation.Translation, error) {
	var rows []entities.Translation
	err := repo.db.GetTx(ctx).
		Scopes(ownerScope(owner)).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, database.TranslateError(ctx, err, "failed to list translations")
	}
	out := make([]*translation.Translation, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].EtoD())
	}
	return out, nil
}

// DeleteByOwner implements translation.Repository.
func (repo *TranslationGormRepository) DeleteByOwner(ctx context.Context, owner translation.OwnerRef) (int64, error) {
	result := repo.db.GetTx(ctx).Scopes(ownerScope(owner)).Delete(&entities.Translation{})
	if result.Error != nil {
		return 0, database.TranslateError(ctx, result.Error, "failed to purge translations")
	}
	return result.RowsAffected, nil
}
