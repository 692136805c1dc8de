package directory

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/rs/zerolog"

	"jan-server/catalog-api/internal/domain/translation"
	"jan-server/catalog-api/internal/domain/validation"
	"jan-server/catalog-api/internal/utils/idgen"
	"jan-server/catalog-api/internal/utils/platformerrors"
)

// Service manages the directory forest.
type Service struct {
	repo     Repository
	tx       Transactor
	media    MediaCascade
	overlays Overlays
	log      zerolog.Logger
}

// NewService creates a directory service.
func NewService(repo Repository, tx Transactor, media MediaCascade, overlays Overlays, log zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		tx:       tx,
		media:    media,
		overlays: overlays,
		log:      log.With().Str("component", "directory-service").Logger(),
	}
}

// Create inserts a directory, optionally below parentID, together with its translations.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Directory, error) {
	name := strings.TrimSpace(in.Name)
	if fe := validateName(name); fe != nil {
		return nil, platformerrors.NewValidationError(ctx, platformerrors.LayerDomain, "invalid directory", []validation.FieldError{*fe}, "")
	}

	var created *Directory
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if in.ParentID != nil {
			if err := s.ensureExists(ctx, *in.ParentID, "parent directory"); err != nil {
				return err
			}
		}

		slug, err := s.uniqueSlug(ctx, in.ParentID, name, "")
		if err != nil {
			return err
		}

		dir := &Directory{
			ID:       idgen.New(idgen.PrefixDirectory),
			Name:     name,
			Slug:     slug,
			ParentID: in.ParentID,
		}
		if err := s.repo.Create(ctx, dir); err != nil {
			return err
		}

		if len(in.Translations) > 0 {
			if _, err := s.overlays.AttachAll(ctx, OwnerRef(dir.ID), in.Translations); err != nil {
				return err
			}
		}
		created = dir
		return nil
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create directory")
	}

	s.log.Debug().Str("directory_id", created.ID).Str("slug", created.Slug).Msg("directory created")
	return created, nil
}

// Rename changes the name and regenerates the slug within the current scope.
func (s *Service) Rename(ctx context.Context, id, name string) (*Directory, error) {
	name = strings.TrimSpace(name)
	if fe := validateName(name); fe != nil {
		return nil, platformerrors.NewValidationError(ctx, platformerrors.LayerDomain, "invalid directory", []validation.FieldError{*fe}, "")
	}

	var renamed *Directory
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		dir, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if dir.Name == name {
			renamed = dir
			return nil
		}

		slug, err := s.uniqueSlug(ctx, dir.ParentID, name, dir.ID)
		if err != nil {
			return err
		}
		dir.Name = name
		dir.Slug = slug
		if err := s.repo.Update(ctx, dir); err != nil {
			return err
		}
		renamed = dir
		return nil
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to rename directory")
	}
	return renamed, nil
}

// Move re-parents id below newParentID, or makes it a root when newParentID is nil.
// The cycle check and the pointer update share one transaction.
func (s *Service) Move(ctx context.Context, id string, newParentID *string) (*Directory, error) {
	var moved *Directory
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		dir, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if newParentID != nil {
			if *newParentID == id {
				return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeCycleDetected,
					"a directory cannot be its own parent", nil, "")
			}
			if err := s.ensureExists(ctx, *newParentID, "target parent directory"); err != nil {
				return err
			}
			below, err := s.isBelow(ctx, *newParentID, id)
			if err != nil {
				return err
			}
			if below {
				return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeCycleDetected,
					fmt.Sprintf("directory %s is a descendant of %s", *newParentID, id), nil, "")
			}
		}

		if sameParent(dir.ParentID, newParentID) {
			moved = dir
			return nil
		}

		slug, err := s.uniqueSlug(ctx, newParentID, dir.Name, dir.ID)
		if err != nil {
			return err
		}
		dir.ParentID = newParentID
		dir.Slug = slug
		if err := s.repo.Update(ctx, dir); err != nil {
			return err
		}
		moved = dir
		return nil
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to move directory")
	}
	return moved, nil
}

// isBelow walks the parent chain of candidate looking for ancestor.
func (s *Service) isBelow(ctx context.Context, candidate, ancestor string) (bool, error) {
	visited := map[string]bool{}
	current := candidate
	for !visited[current] {
		visited[current] = true
		dir, err := s.repo.Get(ctx, current)
		if err != nil {
			return false, err
		}
		if dir.ParentID == nil {
			return false, nil
		}
		if *dir.ParentID == ancestor {
			return true, nil
		}
		current = *dir.ParentID
	}
	return false, nil
}

// Delete removes id and its whole subtree, deepest directories first. Each
// directory's media records and overlay rows go in the same transaction as the
// directory rows; stored bytes are removed after commit. Deleting a missing id
// returns NOT_FOUND. The ids of the removed directories are returned, also when
// byte removal fails with a STORAGE error.
func (s *Service) Delete(ctx context.Context, id string) ([]string, error) {
	var (
		deleted  []string
		cleanups []func(context.Context) error
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		deleted, cleanups = nil, nil
		if _, err := s.repo.GetForUpdate(ctx, id); err != nil {
			return err
		}
		all, err := s.repo.ListAll(ctx)
		if err != nil {
			return err
		}

		for _, dir := range NewForest(all).DeletionOrder(id) {
			cleanup, err := s.media.DetachAll(ctx, dir.ID)
			if err != nil {
				return err
			}
			cleanups = append(cleanups, cleanup)
			if err := s.overlays.PurgeOwner(ctx, OwnerRef(dir.ID)); err != nil {
				return err
			}
			if err := s.repo.Delete(ctx, dir.ID); err != nil {
				return err
			}
			deleted = append(deleted, dir.ID)
		}
		return nil
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete directory")
	}

	var errs []error
	for _, cleanup := range cleanups {
		if err := cleanup(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		joined := errors.Join(errs...)
		s.log.Error().Err(joined).Str("directory_id", id).Msg("directory rows deleted but stored files remain")
		return deleted, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeStorage,
			"directory deleted but some stored files could not be removed", joined, "")
	}

	s.log.Info().Str("directory_id", id).Int("removed", len(deleted)).Msg("directory subtree deleted")
	return deleted, nil
}

// Get returns a directory by id.
func (s *Service) Get(ctx context.Context, id string) (*Directory, error) {
	dir, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to get directory")
	}
	return dir, nil
}

// ListChildren returns the direct children of parentID, or the roots when parentID is nil.
func (s *Service) ListChildren(ctx context.Context, parentID *string) ([]*Directory, error) {
	if parentID != nil {
		if err := s.ensureExists(ctx, *parentID, "directory"); err != nil {
			return nil, err
		}
	}
	dirs, err := s.repo.ListChildren(ctx, parentID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list directories")
	}
	return dirs, nil
}

// Forest loads a snapshot of the whole directory forest.
func (s *Service) Forest(ctx context.Context) (*Forest, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load directories")
	}
	return NewForest(all), nil
}

// Descendants returns the subtree below id in depth-first order. The sequence
// iterates over a snapshot taken at call time.
func (s *Service) Descendants(ctx context.Context, id string) (iter.Seq[Directory], error) {
	forest, err := s.snapshotContaining(ctx, id)
	if err != nil {
		return nil, err
	}
	return forest.Descendants(id), nil
}

// Ancestors returns the chain from the root down to the parent of id.
func (s *Service) Ancestors(ctx context.Context, id string) (iter.Seq[Directory], error) {
	forest, err := s.snapshotContaining(ctx, id)
	if err != nil {
		return nil, err
	}
	return forest.Ancestors(id), nil
}

func (s *Service) snapshotContaining(ctx context.Context, id string) (*Forest, error) {
	forest, err := s.Forest(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := forest.Get(id); !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("directory %s not found", id), nil, "")
	}
	return forest, nil
}

// Exists reports whether a directory exists.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *Service) ensureExists(ctx context.Context, id, what string) error {
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("%s %s not found", what, id), nil, "")
	}
	return nil
}

func (s *Service) uniqueSlug(ctx context.Context, parentID *string, name, excludeID string) (string, error) {
	base := Slugify(name)
	taken, err := s.repo.SlugsLike(ctx, parentID, base, excludeID)
	if err != nil {
		return "", err
	}
	return Disambiguate(base, taken), nil
}

func validateName(name string) *validation.FieldError {
	return validation.Check("name", name, validation.Required, validation.MaxLength(MaxNameLength))
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// RegisterOwner declares directories as overlay owners.
func (s *Service) RegisterOwner(registry *translation.Registry) {
	registry.Register(translation.OwnerDirectory, s.Exists, ColumnName)
}
