package directoryhandler

import (
	"iter"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"jan-server/catalog-api/internal/domain/directory"
	"jan-server/catalog-api/internal/domain/translation"
	"jan-server/catalog-api/internal/infrastructure/metrics"
	"jan-server/catalog-api/internal/interfaces/httpserver/middlewares"
	"jan-server/catalog-api/internal/interfaces/httpserver/requests"
	"jan-server/catalog-api/internal/interfaces/httpserver/responses"
	"jan-server/catalog-api/internal/utils/platformerrors"
)

// DirectoryHandler serves the directory tree endpoints.
type DirectoryHandler struct {
	service      *directory.Service
	translations *translation.Service
	log          zerolog.Logger
}

func NewDirectoryHandler(service *directory.Service, translations *translation.Service, log zerolog.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		service:      service,
		translations: translations,
		log:          log.With().Str("handler", "directory").Logger(),
	}
}

// Create godoc
// @Summary Create a directory
// @Description Creates a root directory, or a child when parent_id is set, with optional translations
// @Tags Directories
// @Accept json
// @Produce json
// @Param Accept-Language header string false "Locale used for localized fields"
// @Param request body requests.CreateDirectoryRequest true "Directory"
// @Success 201 {object} responses.DataResponse[responses.DirectoryResponse]
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/directories [post]
func (h *DirectoryHandler) Create(c *gin.Context) {
	var req requests.CreateDirectoryRequest
	if !requests.BindJSON(c, &req) {
		return
	}

	dir, err := h.service.Create(c.Request.Context(), directory.CreateInput{
		Name:         req.Name,
		ParentID:     req.ParentID,
		Translations: requests.ToTranslationInputs(req.Translations),
	})
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusCreated, responses.DataResponse[responses.DirectoryResponse]{Data: h.render(c, dir)})
}

// ListRoots godoc
// @Summary List root directories
// @Tags Directories
// @Produce json
// @Param Accept-Language header string false "Locale used for localized fields"
// @Success 200 {object} responses.ListResponse[responses.DirectoryResponse]
// @Router /v1/directories [get]
func (h *DirectoryHandler) ListRoots(c *gin.Context) {
	dirs, err := h.service.ListChildren(c.Request.Context(), nil)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	h.writeList(c, dirs)
}

// Get godoc
// @Summary Get a directory
// @Tags Directories
// @Produce json
// @Param id path string true "Directory ID"
// @Param Accept-Language header string false "Locale used for localized fields"
// @Success 200 {object} responses.DataResponse[responses.DirectoryResponse]
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/directories/{id} [get]
func (h *DirectoryHandler) Get(c *gin.Context) {
	dir, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.DataResponse[responses.DirectoryResponse]{Data: h.render(c, dir)})
}

// Rename godoc
// @Summary Rename a directory
// @Description Changes the name and recomputes the slug within the parent scope
// @Tags Directories
// @Accept json
// @Produce json
// @Param id path string true "Directory ID"
// @Param request body requests.RenameDirectoryRequest true "New name"
// @Success 200 {object} responses.DataResponse[responses.DirectoryResponse]
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/directories/{id} [patch]
func (h *DirectoryHandler) Rename(c *gin.Context) {
	var req requests.RenameDirectoryRequest
	if !requests.BindJSON(c, &req) {
		return
	}
	dir, err := h.service.Rename(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.DataResponse[responses.DirectoryResponse]{Data: h.render(c, dir)})
}

// Move godoc
// @Summary Move a directory
// @Description Re-parents a directory. A null parent_id turns it into a root.
// @Tags Directories
// @Accept json
// @Produce json
// @Param id path string true "Directory ID"
// @Param request body requests.MoveDirectoryRequest true "New parent"
// @Success 200 {object} responses.DataResponse[responses.DirectoryResponse]
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse "Move would create a cycle"
// @Router /v1/directories/{id}/move [post]
func (h *DirectoryHandler) Move(c *gin.Context) {
	var req requests.MoveDirectoryRequest
	if !requests.BindJSON(c, &req) {
		return
	}
	dir, err := h.service.Move(c.Request.Context(), c.Param("id"), req.ParentID)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.DataResponse[responses.DirectoryResponse]{Data: h.render(c, dir)})
}

// Delete godoc
// @Summary Delete a directory
// @Description Deletes the directory, its descendants, their media and translations
// @Tags Directories
// @Produce json
// @Param id path string true "Directory ID"
// @Success 200 {object} responses.DeleteDirectoryResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 502 {object} responses.ErrorResponse
// @Router /v1/directories/{id} [delete]
func (h *DirectoryHandler) Delete(c *gin.Context) {
	deleted, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	metrics.RecordDirectoriesDeleted(len(deleted))
	c.JSON(http.StatusOK, responses.DeleteDirectoryResponse{Deleted: deleted})
}

// Children godoc
// @Summary List direct children
// @Tags Directories
// @Produce json
// @Param id path string true "Directory ID"
// @Success 200 {object} responses.ListResponse[responses.DirectoryResponse]
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/directories/{id}/children [get]
func (h *DirectoryHandler) Children(c *gin.Context) {
	id := c.Param("id")
	dirs, err := h.service.ListChildren(c.Request.Context(), &id)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	h.writeList(c, dirs)
}

// Descendants godoc
// @Summary List all descendants
// @Description Depth-first walk of the subtree, excluding the directory itself
// @Tags Directories
// @Produce json
// @Param id path string true "Directory ID"
// @Success 200 {object} responses.ListResponse[responses.DirectoryResponse]
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/directories/{id}/descendants [get]
func (h *DirectoryHandler) Descendants(c *gin.Context) {
	seq, err := h.service.Descendants(c.Request.Context(), c.Param("id"))
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	h.writeList(c, collect(seq))
}

// Ancestors godoc
// @Summary List ancestors
// @Description Parent chain from the root down to the direct parent
// @Tags Directories
// @Produce json
// @Param id path string true "Directory ID"
// @Success 200 {object} responses.ListResponse[responses.DirectoryResponse]
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/directories/{id}/ancestors [get]
func (h *DirectoryHandler) Ancestors(c *gin.Context) {
	seq, err := h.service.Ancestors(c.Request.Context(), c.Param("id"))
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	h.writeList(c, collect(seq))
}

func (h *DirectoryHandler) render(c *gin.Context, dir *directory.Directory) responses.DirectoryResponse {
	l := h.translations.For(middlewares.LocaleFromContext(c))
	return responses.NewDirectoryResponse(c.Request.Context(), l, dir)
}

func (h *DirectoryHandler) writeList(c *gin.Context, dirs []*directory.Directory) {
	l := h.translations.For(middlewares.LocaleFromContext(c))
	items := responses.NewDirectoryResponses(c.Request.Context(), l, dirs)
	c.JSON(http.StatusOK, responses.NewList(items, int64(len(items))))
}

func collect(seq iter.Seq[directory.Directory]) []*directory.Directory {
	var out []*directory.Directory
	for d := range seq {
		out = append(out, &d)
	}
	return out
}
