package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_POSTGRESQL_WRITE_DSN", "postgres://catalog@localhost/catalog")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "catalog-api", cfg.ServiceName)
	assert.Equal(t, ":8290", cfg.Addr())
	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.True(t, cfg.IsLocalStorage())
	assert.False(t, cfg.IsS3Storage())
	assert.Equal(t, int64(20*1024*1024), cfg.MaxMediaBytes)
	assert.Equal(t, int64(100*1024*1024), cfg.MaxBatchBytes)
	assert.Equal(t, cfg.GetDatabaseWriteDSN(), cfg.GetDatabaseReadDSN())
	assert.False(t, cfg.HasReadReplica())
}

func TestLoad_RequiresWriteDSN(t *testing.T) {
	t.Setenv("DB_POSTGRESQL_WRITE_DSN", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_NormalizesValues(t *testing.T) {
	t.Setenv("DB_POSTGRESQL_WRITE_DSN", "postgres://write")
	t.Setenv("DB_POSTGRESQL_READ1_DSN", "postgres://read")
	t.Setenv("DEFAULT_LOCALE", "pt-br")
	t.Setenv("MEDIA_PUBLIC_BASE_URL", " https://cdn.example.com/files/ ")
	t.Setenv("MEDIA_MAX_BYTES", "-1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pt-BR", cfg.DefaultLocale)
	assert.Equal(t, "https://cdn.example.com/files", cfg.PublicBaseURL)
	assert.Equal(t, int64(20*1024*1024), cfg.MaxMediaBytes)
	assert.Equal(t, "postgres://read", cfg.GetDatabaseReadDSN())
	assert.True(t, cfg.HasReadReplica())
}

func TestLoad_RejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad locale", map[string]string{"DEFAULT_LOCALE": "not a locale!"}},
		{"unknown backend", map[string]string{"MEDIA_STORAGE_BACKEND": "gcs"}},
		{"auth without issuer", map[string]string{"AUTH_ENABLED": "true", "AUTH_JWKS_URL": "https://idp/jwks"}},
		{"auth without jwks", map[string]string{"AUTH_ENABLED": "true", "AUTH_ISSUER": "https://idp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DB_POSTGRESQL_WRITE_DSN", "postgres://write")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
