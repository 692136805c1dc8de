package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"jan-server/catalog-api/internal/config"
	"jan-server/catalog-api/internal/domain/media"
)

// HealthChecker is implemented by backends that can probe their target.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// New builds the backend selected by MEDIA_STORAGE_BACKEND, wrapped with metrics.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (media.Storage, error) {
	var (
		backend media.Storage
		err     error
	)
	switch {
	case cfg.IsS3Storage():
		backend, err = NewS3Storage(ctx, cfg, log)
	case cfg.IsLocalStorage():
		backend, err = NewLocalStorage(cfg, log)
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}
	if err != nil {
		return nil, err
	}
	return NewInstrumented(backend), nil
}

// Health probes the backend when it supports health checks.
func Health(ctx context.Context, s media.Storage) error {
	if inst, ok := s.(*Instrumented); ok {
		s = inst.next
	}
	if hc, ok := s.(HealthChecker); ok {
		return hc.Health(ctx)
	}
	return nil
}
