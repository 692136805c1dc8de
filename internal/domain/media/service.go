package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"jan-server/catalog-api/internal/config"
	"jan-server/catalog-api/internal/domain/translation"
	"jan-server/catalog-api/internal/utils/platformerrors"
)

const purgeConcurrency = 4

// Service owns media records and their stored bytes.
type Service struct {
	cfg      *config.Config
	repo     Repository
	storage  Storage
	tx       Transactor
	dirs     DirectoryLookup
	overlays OverlayPurger
	log      zerolog.Logger
}

func NewService(cfg *config.Config, repo Repository, storage Storage, tx Transactor, dirs DirectoryLookup, overlays OverlayPurger, log zerolog.Logger) *Service {
	return &Service{
		cfg:      cfg,
		repo:     repo,
		storage:  storage,
		tx:       tx,
		dirs:     dirs,
		overlays: overlays,
		log:      log.With().Str("component", "media-service").Logger(),
	}
}

// PublicURL computes the public address of m. It is never persisted.
func (s *Service) PublicURL(m *Media) string {
	return PublicURL(s.cfg.PublicBaseURL, m.StorageKey())
}

// MaxBatchBytes bounds the encoded size of one batch request.
func (s *Service) MaxBatchBytes() int64 {
	return s.cfg.MaxBatchBytes
}

// Get returns one media record.
func (s *Service) Get(ctx context.Context, id string) (*Media, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to get media")
	}
	return m, nil
}

// List returns the media of a directory, optionally restricted to one collection.
func (s *Service) List(ctx context.Context, directoryID, collection string) ([]*Media, error) {
	if err := s.ensureDirectory(ctx, directoryID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByDirectory(ctx, directoryID, collection)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list media")
	}
	return items, nil
}

// Exists reports whether a media record exists.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// Open streams the bytes stored under key.
func (s *Service) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	if key == "." || !fs.ValidPath(key) {
		return nil, "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"file not found", nil, "")
	}
	rc, contentType, err := s.storage.Download(ctx, key)
	if errors.Is(err, ErrObjectNotFound) {
		return nil, "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"file not found", err, "")
	}
	if err != nil {
		return nil, "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeStorage,
			"failed to read file", err, "")
	}
	return rc, contentType, nil
}

// OpenMedia streams the bytes of a media record.
func (s *Service) OpenMedia(ctx context.Context, id string) (*Media, io.ReadCloser, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.Open(ctx, m.StorageKey())
	if err != nil {
		return nil, nil, err
	}
	return m, rc, nil
}

// DetachAll deletes the records of a directory and their overlay rows using the
// caller's transaction. The returned cleanup removes the bytes and must run
// after that transaction commits.
func (s *Service) DetachAll(ctx context.Context, directoryID string) (func(context.Context) error, error) {
	records, err := s.repo.ListByDirectory(ctx, directoryID, "")
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list directory media")
	}
	for _, m := range records {
		if err := s.overlays.PurgeOwner(ctx, OwnerRef(m.ID)); err != nil {
			return nil, err
		}
	}
	if _, err := s.repo.DeleteByDirectory(ctx, directoryID); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete directory media")
	}

	keys := make([]string, 0, len(records))
	for _, m := range records {
		keys = append(keys, m.StorageKey())
	}
	return func(ctx context.Context) error {
		return s.removeObjects(ctx, keys)
	}, nil
}

func (s *Service) removeObjects(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	var (
		mu   sync.Mutex
		errs []error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(purgeConcurrency)
	for _, key := range keys {
		g.Go(func() error {
			if err := s.storage.Delete(gctx, key); err != nil {
				s.log.Error().Err(err).Str("key", key).Msg("failed to remove stored file")
				mu.Lock()
				errs = append(errs, fmt.Errorf("remove %s: %w", key, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

func (s *Service) ensureDirectory(ctx context.Context, directoryID string) error {
	ok, err := s.dirs.Exists(ctx, directoryID)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to look up directory")
	}
	if !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("directory %s not found", directoryID), nil, "")
	}
	return nil
}

func detectMimeType(detected string) string {
	mimeType, _, _ := strings.Cut(detected, ";")
	return strings.TrimSpace(mimeType)
}

// RegisterOwner declares media records as overlay owners.
func (s *Service) RegisterOwner(registry *translation.Registry) {
	registry.Register(translation.OwnerMedia, s.Exists, ColumnName)
}
