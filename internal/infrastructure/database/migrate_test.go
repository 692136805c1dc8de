package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestMigration(t *testing.T) {
	latest, err := LatestMigration()
	require.NoError(t, err)
	assert.EqualValues(t, 1, latest)
}

func TestConfigFrom(t *testing.T) {
	cfg := ConfigFrom(testConfig("debug"))
	assert.Equal(t, "postgres://write", cfg.WriteDSN)
	assert.Equal(t, "postgres://write", cfg.ReadDSN)
	assert.EqualValues(t, 4, cfg.LogLevel)

	cfg = ConfigFrom(testConfig("info"))
	assert.EqualValues(t, 3, cfg.LogLevel)
}
