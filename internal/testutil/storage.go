package testutil

import (
	"context"
	"errors"
	"io"
	"sync"

	"jan-server/catalog-api/internal/domain/media"
)

// ErrInjected is returned by FaultyStorage for operations configured to fail.
var ErrInjected = errors.New("injected storage failure")

// FaultyStorage wraps a backend and fails selected operations on demand.
type FaultyStorage struct {
	media.Storage

	mu           sync.Mutex
	fails        map[string]func(key string) bool
	beforeUpload func(ctx context.Context, key string)
}

func NewFaultyStorage(next media.Storage) *FaultyStorage {
	return &FaultyStorage{Storage: next, fails: map[string]func(string) bool{}}
}

// FailOn makes operation ("upload", "download", "move", "delete") fail for
// keys matched by match. A nil match fails every key.
func (f *FaultyStorage) FailOn(operation string, match func(key string) bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if match == nil {
		match = func(string) bool { return true }
	}
	f.fails[operation] = match
}

// BeforeNextUpload runs fn once, ahead of the next upload, with that upload's key.
func (f *FaultyStorage) BeforeNextUpload(fn func(ctx context.Context, key string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.beforeUpload = fn
}

// Reset clears every injected failure and pending hook.
func (f *FaultyStorage) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fails = map[string]func(string) bool{}
	f.beforeUpload = nil
}

func (f *FaultyStorage) failing(operation, key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	match, ok := f.fails[operation]
	return ok && match(key)
}

func (f *FaultyStorage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	f.mu.Lock()
	hook := f.beforeUpload
	f.beforeUpload = nil
	f.mu.Unlock()
	if hook != nil {
		hook(ctx, key)
	}
	if f.failing("upload", key) {
		return ErrInjected
	}
	return f.Storage.Upload(ctx, key, body, size, contentType)
}

func (f *FaultyStorage) Download(ctx context.Context, key string) (io.ReadCloser, string, error) {
	if f.failing("download", key) {
		return nil, "", ErrInjected
	}
	return f.Storage.Download(ctx, key)
}

func (f *FaultyStorage) Move(ctx context.Context, from, to string) error {
	if f.failing("move", from) {
		return ErrInjected
	}
	return f.Storage.Move(ctx, from, to)
}

func (f *FaultyStorage) Delete(ctx context.Context, key string) error {
	if f.failing("delete", key) {
		return ErrInjected
	}
	return f.Storage.Delete(ctx, key)
}
