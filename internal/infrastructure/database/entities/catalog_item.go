package entities

import (
	"time"

	"jan-server/catalog-api/internal/domain/catalog"
)

// CatalogItem stores goals, muscles, workouts and plans.
type CatalogItem struct {
	ID          string    `gorm:"type:varchar(40);primaryKey"`
	Kind        string    `gorm:"type:varchar(16);not null;index"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text;not null;default:''"`
	DirectoryID *string   `gorm:"type:varchar(40);index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (CatalogItem) TableName() string {
	return "catalog_items"
}

func (c *CatalogItem) EtoD() *catalog.Item {
	return &catalog.Item{
		ID:          c.ID,
		Kind:        catalog.Kind(c.Kind),
		Name:        c.Name,
		Description: c.Description,
		DirectoryID: c.DirectoryID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func NewSchemaCatalogItem(i *catalog.Item) *CatalogItem {
	return &CatalogItem{
		ID:          i.ID,
		Kind:        string(i.Kind),
		Name:        i.Name,
		Description: i.Description,
		DirectoryID: i.DirectoryID,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}
