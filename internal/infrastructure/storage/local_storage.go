package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"jan-server/catalog-api/internal/config"
	"jan-server/catalog-api/internal/domain/media"
)

var errLocalStorageDisabled = errors.New("local storage is not configured; set MEDIA_LOCAL_STORAGE_PATH to enable")

// LocalStorage keeps media bytes on the local filesystem below basePath.
type LocalStorage struct {
	basePath string
	log      zerolog.Logger
	disabled bool
}

var _ media.Storage = (*LocalStorage)(nil)

// NewLocalStorage creates a new local filesystem storage backend.
func NewLocalStorage(cfg *config.Config, log zerolog.Logger) (*LocalStorage, error) {
	logger := log.With().Str("component", "local-storage").Logger()

	basePath := strings.TrimSpace(cfg.LocalStoragePath)
	if basePath == "" {
		logger.Warn().Msg("MEDIA_LOCAL_STORAGE_PATH is not set; local storage will be disabled")
		return &LocalStorage{log: logger, disabled: true}, nil
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("resolve local storage directory: %w", err)
	}
	if err := os.MkdirAll(absPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create local storage directory: %w", err)
	}

	logger.Info().Str("path", absPath).Msg("local storage initialized")
	return &LocalStorage{basePath: absPath, log: logger}, nil
}

func (l *LocalStorage) ensureEnabled() error {
	if l.disabled {
		return errLocalStorageDisabled
	}
	return nil
}

// Name identifies the backend on media records.
func (l *LocalStorage) Name() string {
	return "local"
}

// resolve maps key to a path and refuses keys escaping basePath.
func (l *LocalStorage) resolve(key string) (string, error) {
	if err := l.ensureEnabled(); err != nil {
		return "", err
	}
	fullPath := filepath.Join(l.basePath, filepath.FromSlash(key))
	rel, err := filepath.Rel(l.basePath, fullPath)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return fullPath, nil
}

// Upload writes body to a temporary file and links it into place. The link
// fails when key is already taken.
func (l *LocalStorage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	fullPath, err := l.resolve(key)
	if err != nil {
		return err
	}
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	written, err := io.Copy(tmp, body)
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write file: %w", err)
	}
	err = os.Link(tmp.Name(), fullPath)
	_ = os.Remove(tmp.Name())
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s", media.ErrObjectExists, key)
		}
		return fmt.Errorf("failed to place file: %w", err)
	}

	l.log.Debug().
		Str("key", key).
		Int64("bytes", written).
		Str("content_type", contentType).
		Msg("file uploaded to local storage")
	return nil
}

// Download opens the file stored under key.
func (l *LocalStorage) Download(ctx context.Context, key string) (io.ReadCloser, string, error) {
	fullPath, err := l.resolve(key)
	if err != nil {
		return nil, "", err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("%w: %s", media.ErrObjectNotFound, key)
		}
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}

	contentType := "application/octet-stream"
	if detected, err := mimetype.DetectFile(fullPath); err == nil {
		contentType = detected.String()
	}
	return file, contentType, nil
}

// Move relinks the file at from to to, refusing to replace an existing file.
func (l *LocalStorage) Move(ctx context.Context, from, to string) error {
	src, err := l.resolve(from)
	if err != nil {
		return err
	}
	dst, err := l.resolve(to)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.Link(src, dst); err != nil {
		switch {
		case os.IsNotExist(err):
			return fmt.Errorf("%w: %s", media.ErrObjectNotFound, from)
		case os.IsExist(err):
			return fmt.Errorf("%w: %s", media.ErrObjectExists, to)
		}
		return fmt.Errorf("failed to move file: %w", err)
	}
	if err := os.Remove(src); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove moved file: %w", err)
	}
	return nil
}

// Delete removes the file at key. Missing files are not an error.
func (l *LocalStorage) Delete(ctx context.Context, key string) error {
	fullPath, err := l.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Exists reports whether a file is stored under key.
func (l *LocalStorage) Exists(ctx context.Context, key string) (bool, error) {
	fullPath, err := l.resolve(key)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(fullPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	return err == nil, err
}

// Health checks if the storage directory is accessible.
func (l *LocalStorage) Health(ctx context.Context) error {
	if l.disabled {
		return nil
	}
	testFile := filepath.Join(l.basePath, ".health_check")
	if err := os.WriteFile(testFile, []byte("ok"), 0o644); err != nil {
		return fmt.Errorf("storage directory not writable: %w", err)
	}
	_ = os.Remove(testFile)
	return nil
}
