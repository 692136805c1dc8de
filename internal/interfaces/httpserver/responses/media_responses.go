package responses

import (
	"context"

	"jan-server/catalog-api/internal/domain/media"
	"jan-server/catalog-api/internal/domain/translation"
)

type MediaResponse struct {
	ID                string         `json:"id"`
	UUID              string         `json:"uuid"`
	DirectoryID       string         `json:"directory_id"`
	Collection        string         `json:"collection"`
	Name              string         `json:"name"`
	FileName          string         `json:"file_name"`
	Extension         string         `json:"extension"`
	MimeType          string         `json:"mime_type"`
	Type              string         `json:"type"`
	Size              int64          `json:"size"`
	HumanReadableSize string         `json:"human_readable_size"`
	Disk              string         `json:"disk"`
	URL               string         `json:"url"`
	CustomProperties  map[string]any `json:"custom_properties"`
	CreatedAt         string         `json:"created_at"`
	UpdatedAt         string         `json:"updated_at"`
}

// URLFunc computes the public address of a record.
type URLFunc func(m *media.Media) string

func NewMediaResponse(ctx context.Context, l translation.Localizer, url URLFunc, m *media.Media) MediaResponse {
	props := m.CustomProperties
	if props == nil {
		props = map[string]any{}
	}
	return MediaResponse{
		ID:                m.ID,
		UUID:              m.UUID,
		DirectoryID:       m.DirectoryID,
		Collection:        m.Collection,
		Name:              l.Text(ctx, media.OwnerRef(m.ID), media.ColumnName, m.Name),
		FileName:          m.FileName,
		Extension:         m.Extension(),
		MimeType:          m.MimeType,
		Type:              m.Type,
		Size:              m.Size,
		HumanReadableSize: m.HumanReadableSize(),
		Disk:              m.Disk,
		URL:               url(m),
		CustomProperties:  props,
		CreatedAt:         m.CreatedAt.UTC().Format(timeLayout),
		UpdatedAt:         m.UpdatedAt.UTC().Format(timeLayout),
	}
}

func NewMediaResponses(ctx context.Context, l translation.Localizer, url URLFunc, items []*media.Media) []MediaResponse {
	out := make([]MediaResponse, 0, len(items))
	for _, m := range items {
		out = append(out, NewMediaResponse(ctx, l, url, m))
	}
	return out
}

type MediaBatchResponse struct {
	Action  string            `json:"action"`
	Applied []MediaResponse   `json:"applied"`
	Errors  []media.ItemError `json:"errors"`
}

func NewMediaBatchResponse(ctx context.Context, l translation.Localizer, url URLFunc, res *media.BatchResult) MediaBatchResponse {
	errs := res.Errors
	if errs == nil {
		errs = []media.ItemError{}
	}
	return MediaBatchResponse{
		Action:  string(res.Action),
		Applied: NewMediaResponses(ctx, l, url, res.Applied),
		Errors:  errs,
	}
}
