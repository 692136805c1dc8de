package requests

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldErrors_DottedPaths(t *testing.T) {
	req := CreateDirectoryRequest{
		Name: "",
		Translations: []TranslationInput{
			{Column: "name", Locale: "fr", Translation: "Racine"},
			{Column: "name", Translation: "Raíz"},
		},
	}
	err := validate.Struct(req)
	require.Error(t, err)

	fields := FieldErrors(err)
	got := map[string]string{}
	for _, f := range fields {
		got[f.Field] = f.Message
	}
	assert.Equal(t, "The name field is required.", got["name"])
	assert.Equal(t, "The translations.1.locale field is required.", got["translations.1.locale"])
	assert.Len(t, fields, 2)
}

func TestFieldErrors_Max(t *testing.T) {
	err := validate.Struct(RenameDirectoryRequest{Name: strings.Repeat("x", 256)})
	require.Error(t, err)
	fields := FieldErrors(err)
	require.Len(t, fields, 1)
	assert.Equal(t, "name", fields[0].Field)
	assert.Contains(t, fields[0].Message, "255")
}

func TestBindJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		body   string
		ok     bool
		status int
	}{
		{name: "valid", body: `{"name":"root"}`, ok: true, status: http.StatusOK},
		{name: "malformed", body: `{"name":`, status: http.StatusBadRequest},
		{name: "missing name", body: `{}`, status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var req CreateDirectoryRequest
			ok := BindJSON(c, &req)
			assert.Equal(t, tt.ok, ok)
			if !ok {
				assert.Equal(t, tt.status, w.Code)
				assert.Contains(t, w.Body.String(), "validation_error")
			}
		})
	}
}
