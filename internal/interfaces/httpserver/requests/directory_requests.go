package requests

import (
	"jan-server/catalog-api/internal/domain/translation"
)

// TranslationInput is a translation submitted together with its owner.
type TranslationInput struct {
	Column      string `json:"column" validate:"required,max=64"`
	Locale      string `json:"locale" validate:"required,max=35"`
	Translation string `json:"translation" validate:"required"`
}

// ToTranslationInputs converts the inputs for the overlay service.
func ToTranslationInputs(in []TranslationInput) []translation.Input {
	if len(in) == 0 {
		return nil
	}
	out := make([]translation.Input, 0, len(in))
	for _, t := range in {
		out = append(out, translation.Input{Column: t.Column, Locale: t.Locale, Text: t.Translation})
	}
	return out
}

type CreateDirectoryRequest struct {
	Name         string             `json:"name" validate:"required,max=255"`
	ParentID     *string            `json:"parent_id"`
	Translations []TranslationInput `json:"translations" validate:"omitempty,dive"`
}

type RenameDirectoryRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// MoveDirectoryRequest re-parents a directory. A null parent_id makes it a root.
type MoveDirectoryRequest struct {
	ParentID *string `json:"parent_id"`
}
