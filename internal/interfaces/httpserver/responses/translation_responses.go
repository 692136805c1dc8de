package responses

import "jan-server/catalog-api/internal/domain/translation"

type TranslationResponse struct {
	ID          string `json:"id"`
	OwnerType   string `json:"owner_type"`
	OwnerID     string `json:"owner_id"`
	Column      string `json:"column"`
	Locale      string `json:"locale"`
	Translation string `json:"translation"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func NewTranslationResponse(t *translation.Translation) TranslationResponse {
	return TranslationResponse{
		ID:          t.ID,
		OwnerType:   string(t.Owner.Type),
		OwnerID:     t.Owner.ID,
		Column:      t.Column,
		Locale:      t.Locale,
		Translation: t.Text,
		CreatedAt:   t.CreatedAt.UTC().Format(timeLayout),
		UpdatedAt:   t.UpdatedAt.UTC().Format(timeLayout),
	}
}

func NewTranslationResponses(rows []*translation.Translation) []TranslationResponse {
	out := make([]TranslationResponse, 0, len(rows))
	for _, t := range rows {
		out = append(out, NewTranslationResponse(t))
	}
	return out
}
