package cataloghandler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"jan-server/catalog-api/internal/domain/catalog"
	"jan-server/catalog-api/internal/domain/translation"
	"jan-server/catalog-api/internal/interfaces/httpserver/middlewares"
	"jan-server/catalog-api/internal/interfaces/httpserver/requests"
	"jan-server/catalog-api/internal/interfaces/httpserver/responses"
	"jan-server/catalog-api/internal/utils/platformerrors"
)

// CatalogHandler exposes goals, muscles, workouts and plans under one route set.
type CatalogHandler struct {
	service      *catalog.Service
	translations *translation.Service
	log          zerolog.Logger
}

func NewCatalogHandler(service *catalog.Service, translations *translation.Service, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service:      service,
		translations: translations,
		log:          log.With().Str("handler", "catalog").Logger(),
	}
}

// Create godoc
// @Summary Create a catalog item
// @Tags Catalog
// @Accept json
// @Produce json
// @Param kind path string true "Item kind" Enums(goal, muscle, workout, plan)
// @Param request body requests.CreateCatalogItemRequest true "Item"
// @Success 201 {object} responses.DataResponse[responses.CatalogItemResponse]
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/catalog/{kind} [post]
func (h *CatalogHandler) Create(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}
	var req requests.CreateCatalogItemRequest
	if !requests.BindJSON(c, &req) {
		return
	}

	item, err := h.service.Create(c.Request.Context(), catalog.CreateInput{
		Kind:         kind,
		Name:         req.Name,
		Description:  req.Description,
		DirectoryID:  req.DirectoryID,
		Translations: requests.ToTranslationInputs(req.Translations),
	})
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusCreated, responses.DataResponse[responses.CatalogItemResponse]{Data: h.render(c, item)})
}

// List godoc
// @Summary List catalog items of a kind
// @Tags Catalog
// @Produce json
// @Param kind path string true "Item kind" Enums(goal, muscle, workout, plan)
// @Param limit query int false "Limit" default(50)
// @Param offset query int false "Offset" default(0)
// @Param Accept-Language header string false "Locale used for localized fields"
// @Success 200 {object} responses.ListResponse[responses.CatalogItemResponse]
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/catalog/{kind} [get]
func (h *CatalogHandler) List(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}

	filter := catalog.ListFilter{Kind: kind}
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			filter.Limit = l
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filter.Offset = o
		}
	}

	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	l := h.translations.For(middlewares.LocaleFromContext(c))
	c.JSON(http.StatusOK, responses.NewList(responses.NewCatalogItemResponses(c.Request.Context(), l, items), total))
}

// Get godoc
// @Summary Get a catalog item
// @Tags Catalog
// @Produce json
// @Param kind path string true "Item kind" Enums(goal, muscle, workout, plan)
// @Param id path string true "Item ID"
// @Param Accept-Language header string false "Locale used for localized fields"
// @Success 200 {object} responses.DataResponse[responses.CatalogItemResponse]
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/catalog/{kind}/{id} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}
	item, err := h.service.Get(c.Request.Context(), kind, c.Param("id"))
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.DataResponse[responses.CatalogItemResponse]{Data: h.render(c, item)})
}

// Update godoc
// @Summary Update a catalog item
// @Tags Catalog
// @Accept json
// @Produce json
// @Param kind path string true "Item kind" Enums(goal, muscle, workout, plan)
// @Param id path string true "Item ID"
// @Param request body requests.UpdateCatalogItemRequest true "Fields to change"
// @Success 200 {object} responses.DataResponse[responses.CatalogItemResponse]
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/catalog/{kind}/{id} [patch]
func (h *CatalogHandler) Update(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}
	var req requests.UpdateCatalogItemRequest
	if !requests.BindJSON(c, &req) {
		return
	}
	item, err := h.service.Update(c.Request.Context(), kind, c.Param("id"), catalog.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		DirectoryID: req.DirectoryID,
	})
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.DataResponse[responses.CatalogItemResponse]{Data: h.render(c, item)})
}

// Delete godoc
// @Summary Delete a catalog item
// @Tags Catalog
// @Param kind path string true "Item kind" Enums(goal, muscle, workout, plan)
// @Param id path string true "Item ID"
// @Success 204
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/catalog/{kind}/{id} [delete]
func (h *CatalogHandler) Delete(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), kind, c.Param("id")); err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) kind(c *gin.Context) (catalog.Kind, bool) {
	raw := c.Param("kind")
	kind, ok := catalog.ParseKind(raw)
	if !ok {
		err := platformerrors.NewError(c.Request.Context(), platformerrors.LayerHandler, platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("unknown catalog kind %q", raw), nil, "")
		platformerrors.WriteHTTPError(c, err, h.log)
		return "", false
	}
	return kind, true
}

func (h *CatalogHandler) render(c *gin.Context, item *catalog.Item) responses.CatalogItemResponse {
	l := h.translations.For(middlewares.LocaleFromContext(c))
	return responses.NewCatalogItemResponse(c.Request.Context(), l, item)
}
