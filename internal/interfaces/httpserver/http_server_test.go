package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jan-server/catalog-api/internal/interfaces/httpserver"
	"jan-server/catalog-api/internal/interfaces/httpserver/handlers"
	"jan-server/catalog-api/internal/testutil"
)

type errorBody struct {
	Error struct {
		Message   string `json:"message"`
		Type      string `json:"type"`
		RequestID string `json:"request_id"`
		Fields    []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"fields"`
	} `json:"error"`
}

func (b errorBody) fields() []string {
	out := make([]string, 0, len(b.Error.Fields))
	for _, f := range b.Error.Fields {
		out = append(out, f.Field)
	}
	return out
}

type directoryBody struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	BaseName string  `json:"base_name"`
	Slug     string  `json:"slug"`
	ParentID *string `json:"parent_id"`
	Locale   string  `json:"locale"`
}

type mediaBody struct {
	ID                string `json:"id"`
	FileName          string `json:"file_name"`
	Extension         string `json:"extension"`
	Size              int64  `json:"size"`
	HumanReadableSize string `json:"human_readable_size"`
	URL               string `json:"url"`
}

type batchBody struct {
	Action  string      `json:"action"`
	Applied []mediaBody `json:"applied"`
	Errors  []struct {
		Index int    `json:"index"`
		Kind  string `json:"kind"`
	} `json:"errors"`
}

func newServer(t *testing.T, checks map[string]httpserver.ReadinessCheck) (*testutil.Env, http.Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := testutil.NewEnv(t)
	provider := handlers.NewProvider(env.Directories, env.Media, env.Translations, env.Catalog, testutil.Logger())
	srv := httpserver.New(env.Config, testutil.Logger(), provider, nil, checks)
	return env, srv.Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func createDirectory(t *testing.T, h http.Handler, body map[string]any) directoryBody {
	t.Helper()
	w := do(t, h, http.MethodPost, "/v1/directories", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[struct {
		Data directoryBody `json:"data"`
	}](t, w).Data
}

func TestHealthAndReadiness(t *testing.T) {
	healthy := map[string]httpserver.ReadinessCheck{
		"database": func(context.Context) error { return nil },
	}
	_, h := newServer(t, healthy)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/readyz", nil).Code)

	metrics := do(t, h, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, metrics.Code)

	failing := map[string]httpserver.ReadinessCheck{
		"storage": func(context.Context) error { return errors.New("bucket unreachable") },
	}
	_, h = newServer(t, failing)
	w := do(t, h, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "bucket unreachable")
}

func TestDirectories_CreateAndLocalize(t *testing.T) {
	_, h := newServer(t, nil)

	root := createDirectory(t, h, map[string]any{
		"name": "Upper Body",
		"translations": []map[string]string{
			{"column": "name", "locale": "fr", "translation": "Haut du corps"},
		},
	})
	assert.Equal(t, "upper-body", root.Slug)
	assert.Nil(t, root.ParentID)

	w := do(t, h, http.MethodGet, "/v1/directories/"+root.ID, nil, "Accept-Language", "fr-CA;q=0.4, fr;q=0.9")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[struct {
		Data directoryBody `json:"data"`
	}](t, w).Data
	assert.Equal(t, "fr", got.Locale)
	assert.Equal(t, "Haut du corps", got.Name)
	assert.Equal(t, "Upper Body", got.BaseName)

	w = do(t, h, http.MethodGet, "/v1/directories/"+root.ID+"?locale=de", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got = decode[struct {
		Data directoryBody `json:"data"`
	}](t, w).Data
	assert.Equal(t, "Upper Body", got.Name)
}

func TestDirectories_ValidationErrors(t *testing.T) {
	_, h := newServer(t, nil)

	w := do(t, h, http.MethodPost, "/v1/directories", map[string]any{
		"name": "",
		"translations": []map[string]string{
			{"column": "name", "translation": "x"},
		},
	}, "X-Request-Id", "req-123")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-Id"))

	body := decode[errorBody](t, w)
	assert.Equal(t, "validation_error", body.Error.Type)
	assert.ElementsMatch(t, []string{"name", "translations.0.locale"}, body.fields())

	w = do(t, h, http.MethodPost, "/v1/directories", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDirectories_TreeEndpoints(t *testing.T) {
	_, h := newServer(t, nil)

	root := createDirectory(t, h, map[string]any{"name": "root"})
	child := createDirectory(t, h, map[string]any{"name": "child", "parent_id": root.ID})
	grandchild := createDirectory(t, h, map[string]any{"name": "grandchild", "parent_id": child.ID})

	w := do(t, h, http.MethodGet, "/v1/directories/"+root.ID+"/descendants", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Data  []directoryBody `json:"data"`
		Total int64           `json:"total"`
	}](t, w)
	require.Len(t, list.Data, 2)
	assert.Equal(t, child.ID, list.Data[0].ID)
	assert.Equal(t, grandchild.ID, list.Data[1].ID)
	assert.Equal(t, int64(2), list.Total)

	w = do(t, h, http.MethodGet, "/v1/directories/"+grandchild.ID+"/ancestors", nil)
	require.Equal(t, http.StatusOK, w.Code)
	ancestors := decode[struct {
		Data []directoryBody `json:"data"`
	}](t, w).Data
	require.Len(t, ancestors, 2)
	assert.Equal(t, root.ID, ancestors[0].ID)

	w = do(t, h, http.MethodGet, "/v1/directories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	roots := decode[struct {
		Data []directoryBody `json:"data"`
	}](t, w).Data
	require.Len(t, roots, 1)
	assert.Equal(t, root.ID, roots[0].ID)

	w = do(t, h, http.MethodPost, "/v1/directories/"+root.ID+"/move", map[string]any{"parent_id": grandchild.ID})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "cycle_detected_error", decode[errorBody](t, w).Error.Type)

	w = do(t, h, http.MethodPost, "/v1/directories/"+grandchild.ID+"/move", map[string]any{"parent_id": nil})
	require.Equal(t, http.StatusOK, w.Code)
	moved := decode[struct {
		Data directoryBody `json:"data"`
	}](t, w).Data
	assert.Nil(t, moved.ParentID)

	w = do(t, h, http.MethodPatch, "/v1/directories/"+child.ID, map[string]any{"name": "Renamed Child"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"renamed-child"`)

	w = do(t, h, http.MethodDelete, "/v1/directories/"+root.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	deleted := decode[struct {
		Deleted []string `json:"deleted"`
	}](t, w).Deleted
	assert.ElementsMatch(t, []string{root.ID, child.ID}, deleted)

	w = do(t, h, http.MethodGet, "/v1/directories/"+root.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMedia_JSONBatchAndFileServing(t *testing.T) {
	_, h := newServer(t, nil)
	dir := createDirectory(t, h, map[string]any{"name": "root"})

	w := do(t, h, http.MethodPost, "/v1/directories/"+dir.ID+"/media", map[string]any{
		"action": "store",
		"path":   "images",
		"data":   []map[string]string{{"content": "aGVsbG8=", "filename": "a.txt"}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	batch := decode[batchBody](t, w)
	require.Len(t, batch.Applied, 1)
	stored := batch.Applied[0]
	assert.Equal(t, int64(5), stored.Size)
	assert.Equal(t, "txt", stored.Extension)
	assert.Equal(t, "5 B", stored.HumanReadableSize)
	assert.Equal(t, testutil.PublicBaseURL+"/"+dir.ID+"/images/a.txt", stored.URL)

	w = do(t, h, http.MethodGet, "/v1/files/"+dir.ID+"/images/a.txt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello", w.Body.String())

	w = do(t, h, http.MethodGet, "/v1/media/"+stored.ID+"/content", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello", w.Body.String())

	w = do(t, h, http.MethodPost, "/v1/directories/"+dir.ID+"/media", map[string]any{
		"action": "update",
		"path":   "images",
		"data":   []map[string]any{{"id": stored.ID, "attributes": map[string]string{"filename": "b.txt"}}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "b.txt", decode[batchBody](t, w).Applied[0].FileName)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/v1/files/"+dir.ID+"/images/a.txt", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/v1/files/"+dir.ID+"/images/b.txt", nil).Code)

	w = do(t, h, http.MethodGet, "/v1/directories/"+dir.ID+"/media?collection=images", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestMedia_BatchValidation(t *testing.T) {
	_, h := newServer(t, nil)
	dir := createDirectory(t, h, map[string]any{"name": "root"})
	path := "/v1/directories/" + dir.ID + "/media"

	w := do(t, h, http.MethodPost, path, `{"action": 5, "path": ["x"], "data": [{"content":"aGVsbG8=","filename":"a.txt"}]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.ElementsMatch(t, []string{"action", "path"}, decode[errorBody](t, w).fields())

	w = do(t, h, http.MethodPost, path, map[string]any{
		"action": "delete",
		"path":   "images",
		"data":   []map[string]string{{"id": "med_missing"}},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[errorBody](t, w).fields(), "data.0.id")

	w = do(t, h, http.MethodPost, "/v1/directories/dir_missing/media", map[string]any{
		"action": "store",
		"path":   "images",
		"data":   []map[string]string{{"content": "aGVsbG8=", "filename": "a.txt"}},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMedia_StorageFailureReportsItemErrors(t *testing.T) {
	env, h := newServer(t, nil)
	dir := createDirectory(t, h, map[string]any{"name": "root"})

	env.Storage.FailOn("upload", func(key string) bool { return strings.HasSuffix(key, "b.txt") })
	w := do(t, h, http.MethodPost, "/v1/directories/"+dir.ID+"/media", map[string]any{
		"action": "store",
		"path":   "docs",
		"data": []map[string]string{
			{"content": "aGVsbG8=", "filename": "a.txt"},
			{"content": "aGVsbG8=", "filename": "b.txt"},
		},
	})
	require.Equal(t, http.StatusMultiStatus, w.Code, w.Body.String())
	batch := decode[batchBody](t, w)
	require.Len(t, batch.Applied, 1)
	require.Len(t, batch.Errors, 1)
	assert.Equal(t, 1, batch.Errors[0].Index)
	assert.Equal(t, "storage_error", batch.Errors[0].Kind)
}

func TestMedia_MultipartUpload(t *testing.T) {
	_, h := newServer(t, nil)
	dir := createDirectory(t, h, map[string]any{"name": "root"})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("action", "store"))
	require.NoError(t, mw.WriteField("path", "docs"))
	part, err := mw.CreateFormFile("data[]", "notes.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("hi there"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/directories/"+dir.ID+"/media", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	batch := decode[batchBody](t, w)
	require.Len(t, batch.Applied, 1)
	assert.Equal(t, "notes.txt", batch.Applied[0].FileName)
	assert.Equal(t, int64(8), batch.Applied[0].Size)
}

func TestMedia_OversizedBodyIsRejected(t *testing.T) {
	env, h := newServer(t, nil)
	env.Config.MaxBatchBytes = 1024
	dir := createDirectory(t, h, map[string]any{"name": "root"})
	path := "/v1/directories/" + dir.ID + "/media"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("action", "store"))
	require.NoError(t, mw.WriteField("path", "docs"))
	part, err := mw.CreateFormFile("data[]", "big.bin")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("x"), 4096))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code, w.Body.String())
	assert.Equal(t, "payload_too_large_error", decode[errorBody](t, w).Error.Type)

	w = do(t, h, http.MethodPost, path, map[string]any{
		"action": "store",
		"path":   "docs",
		"data":   []map[string]any{{"filename": "big.txt", "content": strings.Repeat("eHh4", 1024)}},
	})
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code, w.Body.String())

	w = do(t, h, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, decode[struct {
		Total int `json:"total"`
	}](t, w).Total)
}

func TestTranslations_Endpoints(t *testing.T) {
	_, h := newServer(t, nil)
	dir := createDirectory(t, h, map[string]any{"name": "Legs"})

	w := do(t, h, http.MethodPost, "/v1/translations", map[string]string{
		"owner_type":  "directory",
		"owner_id":    dir.ID,
		"column":      "name",
		"locale":      "es",
		"translation": "Piernas",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[struct {
		Data struct {
			ID          string `json:"id"`
			Translation string `json:"translation"`
		} `json:"data"`
	}](t, w).Data

	w = do(t, h, http.MethodGet, "/v1/directories/"+dir.ID, nil, "Accept-Language", "es")
	assert.Contains(t, w.Body.String(), `"name":"Piernas"`)

	w = do(t, h, http.MethodPatch, "/v1/translations/"+created.ID, map[string]string{"translation": "Pierna"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, "/v1/translations?owner_type=directory&owner_id="+dir.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"translation":"Pierna"`)

	w = do(t, h, http.MethodGet, "/v1/translations", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.ElementsMatch(t, []string{"owner_type", "owner_id"}, decode[errorBody](t, w).fields())

	w = do(t, h, http.MethodDelete, "/v1/translations/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, "/v1/directories/"+dir.ID, nil, "Accept-Language", "es")
	assert.Contains(t, w.Body.String(), `"name":"Legs"`)
}

func TestCatalog_Endpoints(t *testing.T) {
	_, h := newServer(t, nil)

	w := do(t, h, http.MethodGet, "/v1/catalog/spaceships", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodPost, "/v1/catalog/goals", map[string]any{
		"name":        "Strength",
		"description": "Lift heavier",
		"translations": []map[string]string{
			{"column": "description", "locale": "fr", "translation": "Soulever plus lourd"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	item := decode[struct {
		Data struct {
			ID   string `json:"id"`
			Kind string `json:"kind"`
		} `json:"data"`
	}](t, w).Data
	assert.Equal(t, "goal", item.Kind)

	w = do(t, h, http.MethodGet, "/v1/catalog/goal/"+item.ID, nil, "Accept-Language", "fr")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"description":"Soulever plus lourd"`)
	assert.Contains(t, w.Body.String(), `"name":"Strength"`)

	w = do(t, h, http.MethodGet, "/v1/catalog/goals?limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = do(t, h, http.MethodPatch, "/v1/catalog/goal/"+item.ID, map[string]any{"name": "Power"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Power"`)

	w = do(t, h, http.MethodDelete, "/v1/catalog/goal/"+item.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/v1/catalog/goal/"+item.ID, nil).Code)
}
