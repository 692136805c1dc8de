package entities

import (
	"time"

	"gorm.io/datatypes"

	"jan-server/catalog-api/internal/domain/media"
)

// Media is the persisted metadata of a stored file.
type Media struct {
	ID               string            `gorm:"type:varchar(40);primaryKey"`
	UUID             string            `gorm:"column:uuid;type:varchar(36);uniqueIndex;not null"`
	DirectoryID      string            `gorm:"type:varchar(40);not null;uniqueIndex:ux_media_namespace,priority:1"`
	Collection       string            `gorm:"type:varchar(255);not null;uniqueIndex:ux_media_namespace,priority:2"`
	Name             string            `gorm:"type:varchar(255);not null"`
	FileName         string            `gorm:"type:varchar(255);not null;uniqueIndex:ux_media_namespace,priority:3"`
	MimeType         string            `gorm:"type:varchar(255);not null"`
	Type             string            `gorm:"type:varchar(32);not null"`
	Size             int64             `gorm:"not null"`
	Disk             string            `gorm:"type:varchar(32);not null"`
	CustomProperties datatypes.JSONMap `gorm:"not null"`
	CreatedAt        time.Time         `gorm:"autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"autoUpdateTime"`
}

func (Media) TableName() string {
	return "media"
}

// EtoD converts the entity to the domain record.
func (m *Media) EtoD() *media.Media {
	props := map[string]any(m.CustomProperties)
	if props == nil {
		props = map[string]any{}
	}
	return &media.Media{
		ID:               m.ID,
		UUID:             m.UUID,
		DirectoryID:      m.DirectoryID,
		Collection:       m.Collection,
		Name:             m.Name,
		FileName:         m.FileName,
		MimeType:         m.MimeType,
		Type:             m.Type,
		Size:             m.Size,
		Disk:             m.Disk,
		CustomProperties: props,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// NewSchemaMedia converts a domain record to its entity.
func NewSchemaMedia(m *media.Media) *Media {
	props := datatypes.JSONMap(m.CustomProperties)
	if props == nil {
		props = datatypes.JSONMap{}
	}
	return &Media{
		ID:               m.ID,
		UUID:             m.UUID,
		DirectoryID:      m.DirectoryID,
		Collection:       m.Collection,
		Name:             m.Name,
		FileName:         m.FileName,
		MimeType:         m.MimeType,
		Type:             m.Type,
		Size:             m.Size,
		Disk:             m.Disk,
		CustomProperties: props,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
