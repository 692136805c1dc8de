package entities

import (
	"time"

	"jan-server/catalog-api/internal/domain/directory"
)

// Directory is one node of the directory forest. ParentScope mirrors ParentID
// with "" for roots so the slug index also covers root directories.
type Directory struct {
	ID          string    `gorm:"type:varchar(40);primaryKey"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Slug        string    `gorm:"type:varchar(255);not null;uniqueIndex:ux_directories_scope_slug,priority:2"`
	ParentID    *string   `gorm:"type:varchar(40);index"`
	ParentScope string    `gorm:"type:varchar(40);not null;default:'';uniqueIndex:ux_directories_scope_slug,priority:1"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Directory) TableName() string {
	return "directories"
}

// EtoD converts the entity to the domain directory.
func (d *Directory) EtoD() *directory.Directory {
	return &directory.Directory{
		ID:        d.ID,
		Name:      d.Name,
		Slug:      d.Slug,
		ParentID:  d.ParentID,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// NewSchemaDirectory converts a domain directory to its entity.
func NewSchemaDirectory(d *directory.Directory) *Directory {
	return &Directory{
		ID:          d.ID,
		Name:        d.Name,
		Slug:        d.Slug,
		ParentID:    d.ParentID,
		ParentScope: ParentScope(d.ParentID),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ParentScope is the value stored in parent_scope for parentID.
func ParentScope(parentID *string) string {
	if parentID == nil {
		return ""
	}
	return *parentID
}
