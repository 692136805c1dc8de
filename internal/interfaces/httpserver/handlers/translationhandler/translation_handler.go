package translationhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"jan-server/catalog-api/internal/domain/translation"
	"jan-server/catalog-api/internal/interfaces/httpserver/requests"
	"jan-server/catalog-api/internal/interfaces/httpserver/responses"
	"jan-server/catalog-api/internal/utils/platformerrors"
)

// TranslationHandler manages overlay rows directly.
type TranslationHandler struct {
	service *translation.Service
	log     zerolog.Logger
}

func NewTranslationHandler(service *translation.Service, log zerolog.Logger) *TranslationHandler {
	return &TranslationHandler{
		service: service,
		log:     log.With().Str("handler", "translation").Logger(),
	}
}

// Create godoc
// @Summary Attach a translation
// @Description Stores the text of one column of an owner for a locale. An existing row for the same owner, column and locale is overwritten.
// @Tags Translations
// @Accept json
// @Produce json
// @Param request body requests.CreateTranslationRequest true "Translation"
// @Success 201 {object} responses.DataResponse[responses.TranslationResponse]
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/translations [post]
func (h *TranslationHandler) Create(c *gin.Context) {
	var req requests.CreateTranslationRequest
	if !requests.BindJSON(c, &req) {
		return
	}
	owner := translation.OwnerRef{Type: translation.OwnerType(req.OwnerType), ID: req.OwnerID}
	row, err := h.service.Attach(c.Request.Context(), owner, req.Column, req.Locale, req.Translation)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusCreated, responses.DataResponse[responses.TranslationResponse]{Data: responses.NewTranslationResponse(row)})
}

// List godoc
// @Summary List the translations of an owner
// @Tags Translations
// @Produce json
// @Param owner_type query string true "Owner type"
// @Param owner_id query string true "Owner ID"
// @Success 200 {object} responses.ListResponse[responses.TranslationResponse]
// @Failure 400 {object} responses.ErrorResponse
// @Router /v1/translations [get]
func (h *TranslationHandler) List(c *gin.Context) {
	ownerType, ownerID := c.Query("owner_type"), c.Query("owner_id")
	var fields []platformerrors.FieldError
	if ownerType == "" {
		fields = append(fields, platformerrors.FieldError{Field: "owner_type", Message: "The owner_type field is required."})
	}
	if ownerID == "" {
		fields = append(fields, platformerrors.FieldError{Field: "owner_id", Message: "The owner_id field is required."})
	}
	if len(fields) > 0 {
		platformerrors.WriteValidationError(c, "The given data was invalid.", fields...)
		return
	}

	rows, err := h.service.List(c.Request.Context(), translation.OwnerRef{Type: translation.OwnerType(ownerType), ID: ownerID})
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	data := responses.NewTranslationResponses(rows)
	c.JSON(http.StatusOK, responses.NewList(data, int64(len(data))))
}

// Get godoc
// @Summary Get a translation
// @Tags Translations
// @Produce json
// @Param id path string true "Translation ID"
// @Success 200 {object} responses.DataResponse[responses.TranslationResponse]
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/translations/{id} [get]
func (h *TranslationHandler) Get(c *gin.Context) {
	row, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.DataResponse[responses.TranslationResponse]{Data: responses.NewTranslationResponse(row)})
}

// Update godoc
// @Summary Update a translation text
// @Tags Translations
// @Accept json
// @Produce json
// @Param id path string true "Translation ID"
// @Param request body requests.UpdateTranslationRequest true "Text"
// @Success 200 {object} responses.DataResponse[responses.TranslationResponse]
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/translations/{id} [patch]
func (h *TranslationHandler) Update(c *gin.Context) {
	var req requests.UpdateTranslationRequest
	if !requests.BindJSON(c, &req) {
		return
	}
	row, err := h.service.Update(c.Request.Context(), c.Param("id"), req.Translation)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.DataResponse[responses.TranslationResponse]{Data: responses.NewTranslationResponse(row)})
}

// Delete godoc
// @Summary Delete a translation
// @Tags Translations
// @Param id path string true "Translation ID"
// @Success 204
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/translations/{id} [delete]
func (h *TranslationHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.Status(http.StatusNoContent)
}
