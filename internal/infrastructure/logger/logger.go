package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"jan-server/catalog-api/internal/config"
)

// New creates a zerolog.Logger configured for the catalog service.
// CATALOG_LOG_FORMAT=json switches from the console writer to JSON lines.
func New(cfg *config.Config) zerolog.Logger {
	var output io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	if strings.EqualFold(cfg.LogFormat, "json") {
		output = os.Stdout
	}
	return NewWithWriter(cfg, output)
}

// NewWithWriter builds the service logger on top of w.
func NewWithWriter(cfg *config.Config, w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Logger().
		Level(parseLevel(cfg.LogLevel))
}

func parseLevel(raw string) zerolog.Level {
	if raw == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
