package entities

import (
	"time"

	"jan-server/catalog-api/internal/domain/translation"
)

// Translation is an overlay row. The lookup tuple is not unique; readers take
// the oldest matching row.
type Translation struct {
	ID          string    `gorm:"type:varchar(40);primaryKey"`
	Locale      string    `gorm:"type:varchar(35);not null;index:idx_translations_lookup,priority:4"`
	Column      string    `gorm:"column:column;type:varchar(64);not null;index:idx_translations_lookup,priority:3"`
	Translation string    `gorm:"type:text;not null"`
	OwnerType   string    `gorm:"type:varchar(32);not null;index:idx_translations_lookup,priority:1"`
	OwnerID     string    `gorm:"type:varchar(40);not null;index:idx_translations_lookup,priority:2"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Translation) TableName() string {
	return "translations"
}

// EtoD converts the entity to the domain row.
func (t *Translation) EtoD() *translation.Translation {
	return &translation.Translation{
		ID:        t.ID,
		Owner:     translation.OwnerRef{Type: translation.OwnerType(t.OwnerType), ID: t.OwnerID},
		Column:    t.Column,
		Locale:    t.Locale,
		Text:      t.Translation,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// NewSchemaTranslation converts a domain row to its entity.
func NewSchemaTranslation(t *translation.Translation) *Translation {
	return &Translation{
		ID:          t.ID,
		Locale:      t.Locale,
		Column:      t.Column,
		Translation: t.Text,
		OwnerType:   string(t.Owner.Type),
		OwnerID:     t.Owner.ID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
