package requests

type CreateCatalogItemRequest struct {
	Name         string             `json:"name" validate:"required,max=255"`
	Description  string             `json:"description" validate:"max=5000"`
	DirectoryID  *string            `json:"directory_id"`
	Translations []TranslationInput `json:"translations" validate:"omitempty,dive"`
}

// UpdateCatalogItemRequest changes only the fields present. An empty
// directory_id detaches the item from its directory.
type UpdateCatalogItemRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	DirectoryID *string `json:"directory_id"`
}
