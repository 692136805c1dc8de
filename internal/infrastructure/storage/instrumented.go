package storage

import (
	"context"
	"io"
	"time"

	"jan-server/catalog-api/internal/domain/media"
	"jan-server/catalog-api/internal/infrastructure/metrics"
)

// Instrumented records prometheus metrics around a storage backend.
type Instrumented struct {
	next media.Storage
}

var _ media.Storage = (*Instrumented)(nil)

func NewInstrumented(next media.Storage) *Instrumented {
	return &Instrumented{next: next}
}

func (i *Instrumented) observe(operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordStorageOperation(i.next.Name(), operation, status, time.Since(start).Seconds())
}

func (i *Instrumented) Name() string {
	return i.next.Name()
}

func (i *Instrumented) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	start := time.Now()
	err := i.next.Upload(ctx, key, body, size, contentType)
	i.observe("upload", start, err)
	return err
}

func (i *Instrumented) Download(ctx context.Context, key string) (io.ReadCloser, string, error) {
	start := time.Now()
	rc, contentType, err := i.next.Download(ctx, key)
	i.observe("download", start, err)
	return rc, contentType, err
}

func (i *Instrumented) Move(ctx context.Context, from, to string) error {
	start := time.Now()
	err := i.next.Move(ctx, from, to)
	i.observe("move", start, err)
	return err
}

func (i *Instrumented) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := i.next.Delete(ctx, key)
	i.observe("delete", start, err)
	return err
}

func (i *Instrumented) Exists(ctx context.Context, key string) (bool, error) {
	start := time.Now()
	ok, err := i.next.Exists(ctx, key)
	i.observe("exists", start, err)
	return ok, err
}
