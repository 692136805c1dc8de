package responses

import (
	"context"

	"jan-server/catalog-api/internal/domain/directory"
	"jan-server/catalog-api/internal/domain/translation"
)

type DirectoryResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	BaseName  string  `json:"base_name"`
	Slug      string  `json:"slug"`
	ParentID  *string `json:"parent_id"`
	Locale    string  `json:"locale"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// NewDirectoryResponse renders d with its name resolved through l.
func NewDirectoryResponse(ctx context.Context, l translation.Localizer, d *directory.Directory) DirectoryResponse {
	return DirectoryResponse{
		ID:        d.ID,
		Name:      l.Text(ctx, directory.OwnerRef(d.ID), directory.ColumnName, d.Name),
		BaseName:  d.Name,
		Slug:      d.Slug,
		ParentID:  d.ParentID,
		Locale:    l.Locale(),
		CreatedAt: d.CreatedAt.UTC().Format(timeLayout),
		UpdatedAt: d.UpdatedAt.UTC().Format(timeLayout),
	}
}

func NewDirectoryResponses(ctx context.Context, l translation.Localizer, dirs []*directory.Directory) []DirectoryResponse {
	out := make([]DirectoryResponse, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, NewDirectoryResponse(ctx, l, d))
	}
	return out
}

type DeleteDirectoryResponse struct {
	Deleted []string `json:"deleted"`
}
