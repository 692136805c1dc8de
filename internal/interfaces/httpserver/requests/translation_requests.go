package requests

type CreateTranslationRequest struct {
	OwnerType   string `json:"owner_type" validate:"required,max=32"`
	OwnerID     string `json:"owner_id" validate:"required,max=40"`
	Column      string `json:"column" validate:"required,max=64"`
	Locale      string `json:"locale" validate:"required,max=35"`
	Translation string `json:"translation" validate:"required"`
}

type UpdateTranslationRequest struct {
	Translation string `json:"translation" validate:"required"`
}
