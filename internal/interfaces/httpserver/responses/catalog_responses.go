package responses

import (
	"context"

	"jan-server/catalog-api/internal/domain/catalog"
	"jan-server/catalog-api/internal/domain/translation"
)

type CatalogItemResponse struct {
	ID          string  `json:"id"`
	Kind        string  `json:"kind"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	DirectoryID *string `json:"directory_id"`
	Locale      string  `json:"locale"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func NewCatalogItemResponse(ctx context.Context, l translation.Localizer, item *catalog.Item) CatalogItemResponse {
	localized := catalog.Localize(ctx, l, item)
	return CatalogItemResponse{
		ID:          item.ID,
		Kind:        string(item.Kind),
		Name:        localized.Name,
		Description: localized.Description,
		DirectoryID: item.DirectoryID,
		Locale:      localized.Locale,
		CreatedAt:   item.CreatedAt.UTC().Format(timeLayout),
		UpdatedAt:   item.UpdatedAt.UTC().Format(timeLayout),
	}
}

func NewCatalogItemResponses(ctx context.Context, l translation.Localizer, items []*catalog.Item) []CatalogItemResponse {
	out := make([]CatalogItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewCatalogItemResponse(ctx, l, item))
	}
	return out
}
