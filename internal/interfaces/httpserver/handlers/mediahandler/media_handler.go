package mediahandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"jan-server/catalog-api/internal/domain/media"
	"jan-server/catalog-api/internal/domain/translation"
	"jan-server/catalog-api/internal/infrastructure/metrics"
	"jan-server/catalog-api/internal/interfaces/httpserver/middlewares"
	"jan-server/catalog-api/internal/interfaces/httpserver/requests"
	"jan-server/catalog-api/internal/interfaces/httpserver/responses"
	"jan-server/catalog-api/internal/utils/platformerrors"
)

const (
	invalidDataMessage = "The given data was invalid."
	maxMultipartMemory = 32 << 20
)

// MediaHandler serves media batches and file downloads.
type MediaHandler struct {
	service      *media.Service
	translations *translation.Service
	log          zerolog.Logger
}

func NewMediaHandler(service *media.Service, translations *translation.Service, log zerolog.Logger) *MediaHandler {
	return &MediaHandler{
		service:      service,
		translations: translations,
		log:          log.With().Str("handler", "media").Logger(),
	}
}

// List godoc
// @Summary List the media of a directory
// @Tags Media
// @Produce json
// @Param id path string true "Directory ID"
// @Param collection query string false "Restrict to one collection"
// @Param Accept-Language header string false "Locale used for localized fields"
// @Success 200 {object} responses.ListResponse[responses.MediaResponse]
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/directories/{id}/media [get]
func (h *MediaHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.Param("id"), c.Query("collection"))
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	data := responses.NewMediaResponses(c.Request.Context(), h.localizer(c), h.service.PublicURL, items)
	c.JSON(http.StatusOK, responses.NewList(data, int64(len(data))))
}

// Apply godoc
// @Summary Apply a media batch
// @Description Stores, renames or deletes media of a directory. The body is either JSON
// @Description or multipart/form-data with action, path and data[] file parts. The whole
// @Description batch is validated first; items that fail while being applied are listed
// @Description in errors and the response status is 207.
// @Tags Media
// @Accept json
// @Accept mpfd
// @Produce json
// @Param id path string true "Directory ID"
// @Param request body requests.MediaBatchRequest false "JSON batch"
// @Success 200 {object} responses.MediaBatchResponse
// @Success 207 {object} responses.MediaBatchResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 413 {object} responses.ErrorResponse
// @Router /v1/directories/{id}/media [post]
func (h *MediaHandler) Apply(c *gin.Context) {
	var (
		batch media.Batch
		ok    bool
	)
	if limit := h.service.MaxBatchBytes(); limit > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		batch, ok = h.multipartBatch(c)
	} else {
		batch, ok = h.jsonBatch(c)
	}
	if !ok {
		return
	}

	result, err := h.service.ApplyBatch(c.Request.Context(), c.Param("id"), batch)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	metrics.RecordMediaBatch(string(result.Action), len(result.Applied), len(result.Errors))

	status := http.StatusOK
	if len(result.Errors) > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, responses.NewMediaBatchResponse(c.Request.Context(), h.localizer(c), h.service.PublicURL, result))
}

// Get godoc
// @Summary Get a media record
// @Tags Media
// @Produce json
// @Param id path string true "Media ID"
// @Param Accept-Language header string false "Locale used for localized fields"
// @Success 200 {object} responses.DataResponse[responses.MediaResponse]
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/media/{id} [get]
func (h *MediaHandler) Get(c *gin.Context) {
	m, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	data := responses.NewMediaResponse(c.Request.Context(), h.localizer(c), h.service.PublicURL, m)
	c.JSON(http.StatusOK, responses.DataResponse[responses.MediaResponse]{Data: data})
}

// Content godoc
// @Summary Download the bytes of a media record
// @Tags Media
// @Produce octet-stream
// @Param id path string true "Media ID"
// @Success 200 {file} binary
// @Failure 404 {object} responses.ErrorResponse
// @Failure 502 {object} responses.ErrorResponse
// @Router /v1/media/{id}/content [get]
func (h *MediaHandler) Content(c *gin.Context) {
	m, rc, err := h.service.OpenMedia(c.Request.Context(), c.Param("id"))
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, m.Size, m.MimeType, rc, map[string]string{
		"Content-Disposition": fmt.Sprintf("inline; filename=%q", m.FileName),
	})
}

// File godoc
// @Summary Serve a stored file by key
// @Tags Media
// @Produce octet-stream
// @Param key path string true "Storage key: directory id / collection / file name"
// @Success 200 {file} binary
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/files/{key} [get]
func (h *MediaHandler) File(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	rc, contentType, err := h.service.Open(c.Request.Context(), key)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	defer rc.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, rc, nil)
}

func (h *MediaHandler) localizer(c *gin.Context) translation.Localizer {
	return h.translations.For(middlewares.LocaleFromContext(c))
}

// jsonBatch decodes a JSON batch. action and path must be strings when present;
// whether they are missing or invalid is left to the domain validation.
func (h *MediaHandler) jsonBatch(c *gin.Context) (media.Batch, bool) {
	var req requests.MediaBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if h.tooLarge(c, err) {
			return media.Batch{}, false
		}
		platformerrors.WriteValidationError(c, "request body must be a JSON object", platformerrors.FieldError{
			Field:   "body",
			Message: err.Error(),
		})
		return media.Batch{}, false
	}

	var fields []platformerrors.FieldError
	action, ok := rawString(req.Action)
	if !ok {
		fields = append(fields, platformerrors.FieldError{Field: "action", Message: "The action field must be a string."})
	}
	path, ok := rawString(req.Path)
	if !ok {
		fields = append(fields, platformerrors.FieldError{Field: "path", Message: "The path field must be a string."})
	}

	items := make([]media.Item, 0, len(req.Data))
	for i, raw := range req.Data {
		var item requests.MediaItemRequest
		if err := json.Unmarshal(raw, &item); err != nil {
			fields = append(fields, platformerrors.FieldError{
				Field:   fmt.Sprintf("data.%d", i),
				Message: fmt.Sprintf("The data.%d field must be an object.", i),
			})
			continue
		}
		items = append(items, media.Item{
			ID:         item.ID,
			Content:    item.Content,
			FileName:   item.FileName,
			Attributes: media.Attributes{FileName: item.Attributes.FileName},
		})
	}

	if len(fields) > 0 {
		platformerrors.WriteValidationError(c, invalidDataMessage, fields...)
		return media.Batch{}, false
	}
	return media.Batch{Action: action, Path: path, Items: items}, true
}

func (h *MediaHandler) multipartBatch(c *gin.Context) (media.Batch, bool) {
	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
		if h.tooLarge(c, err) {
			return media.Batch{}, false
		}
		platformerrors.WriteValidationError(c, "request body must be multipart/form-data", platformerrors.FieldError{
			Field:   "body",
			Message: err.Error(),
		})
		return media.Batch{}, false
	}
	form := c.Request.MultipartForm

	files := form.File["data[]"]
	if len(files) == 0 {
		files = form.File["data"]
	}
	items := make([]media.Item, 0, len(files))
	for _, fh := range files {
		items = append(items, media.Item{Upload: uploadFrom(fh)})
	}

	return media.Batch{
		Action: c.Request.FormValue("action"),
		Path:   c.Request.FormValue("path"),
		Items:  items,
	}, true
}

// tooLarge answers 413 when err comes from the request body limit.
func (h *MediaHandler) tooLarge(c *gin.Context, err error) bool {
	var maxErr *http.MaxBytesError
	if !errors.As(err, &maxErr) {
		return false
	}
	platformerrors.WriteHTTPError(c, platformerrors.NewError(c.Request.Context(), platformerrors.LayerHandler,
		platformerrors.ErrorTypeTooLarge, fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit), err, ""), h.log)
	return true
}

func uploadFrom(fh *multipart.FileHeader) *media.Upload {
	return &media.Upload{
		FileName: fh.Filename,
		Size:     fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// rawString reads an optional JSON string. Absent and null decode to "".
func rawString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
