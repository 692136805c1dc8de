package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNegotiate(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		header   string
		want     string
	}{
		{name: "fallback", want: "en"},
		{name: "header", header: "fr-CH, fr;q=0.9, en;q=0.8", want: "fr-CH"},
		{name: "quality order", header: "de;q=0.5, es;q=0.9", want: "es"},
		{name: "query wins", explicit: "pt-br", header: "fr", want: "pt-BR"},
		{name: "bad query ignored", explicit: "not a tag", header: "fr", want: "fr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, negotiate(tt.explicit, tt.header, "en"))
		})
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get("X-Request-Id")
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "req-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Body.String())
}
