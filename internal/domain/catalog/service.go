package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"jan-server/catalog-api/internal/domain/translation"
	"jan-server/catalog-api/internal/domain/validation"
	"jan-server/catalog-api/internal/utils/idgen"
	"jan-server/catalog-api/internal/utils/platformerrors"
)

const (
	maxNameLength        = 255
	maxDescriptionLength = 5000
	defaultListLimit     = 50
	maxListLimit         = 200
)

// Service adapts container and overlay operations to catalog items.
type Service struct {
	repo     Repository
	tx       Transactor
	dirs     DirectoryLookup
	overlays Overlays
	log      zerolog.Logger
}

func NewService(repo Repository, tx Transactor, dirs DirectoryLookup, overlays Overlays, log zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		tx:       tx,
		dirs:     dirs,
		overlays: overlays,
		log:      log.With().Str("component", "catalog-service").Logger(),
	}
}

// RegisterOwners declares every catalog kind as an overlay owner.
func (s *Service) RegisterOwners(registry *translation.Registry) {
	for _, kind := range Kinds {
		registry.Register(kind.OwnerType(), func(ctx context.Context, id string) (bool, error) {
			return s.repo.Exists(ctx, kind, id)
		}, ColumnName, ColumnDescription)
	}
}

// Create inserts an item together with its translations.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Item, error) {
	item := &Item{
		ID:          idgen.New(idgen.PrefixCatalogItem),
		Kind:        in.Kind,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		DirectoryID: normalizeDirectoryID(in.DirectoryID),
	}
	if err := validateItem(ctx, item); err != nil {
		return nil, err
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureDirectory(ctx, item.DirectoryID); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, item); err != nil {
			return err
		}
		if len(in.Translations) > 0 {
			if _, err := s.overlays.AttachAll(ctx, item.OwnerRef(), in.Translations); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, fmt.Sprintf("failed to create %s", in.Kind))
	}
	return item, nil
}

// Get returns one item of kind.
func (s *Service) Get(ctx context.Context, kind Kind, id string) (*Item, error) {
	item, err := s.repo.Get(ctx, kind, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, fmt.Sprintf("failed to get %s", kind))
	}
	return item, nil
}

// List pages through the items of one kind.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Item, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, fmt.Sprintf("failed to list %s", filter.Kind))
	}
	return items, total, nil
}

// Update changes the base fields of an item.
func (s *Service) Update(ctx context.Context, kind Kind, id string, in UpdateInput) (*Item, error) {
	var updated *Item
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		item, err := s.repo.Get(ctx, kind, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			item.Name = strings.TrimSpace(*in.Name)
		}
		if in.Description != nil {
			item.Description = strings.TrimSpace(*in.Description)
		}
		if in.DirectoryID != nil {
			item.DirectoryID = normalizeDirectoryID(in.DirectoryID)
			if err := s.ensureDirectory(ctx, item.DirectoryID); err != nil {
				return err
			}
		}
		if err := validateItem(ctx, item); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, item); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, fmt.Sprintf("failed to update %s", kind))
	}
	return updated, nil
}

// Delete removes an item and its overlay rows. The directory it references is kept.
func (s *Service) Delete(ctx context.Context, kind Kind, id string) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		item, err := s.repo.Get(ctx, kind, id)
		if err != nil {
			return err
		}
		if err := s.overlays.PurgeOwner(ctx, item.OwnerRef()); err != nil {
			return err
		}
		return s.repo.Delete(ctx, kind, id)
	})
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, fmt.Sprintf("failed to delete %s", kind))
	}
	return nil
}

// Localized is an item with its translatable fields resolved for one locale.
type Localized struct {
	*Item
	Locale string
}

// Localize resolves name and description through l.
func Localize(ctx context.Context, l translation.Localizer, item *Item) Localized {
	owner := item.OwnerRef()
	resolved := *item
	resolved.Name = l.Text(ctx, owner, ColumnName, item.Name)
	resolved.Description = l.Text(ctx, owner, ColumnDescription, item.Description)
	return Localized{Item: &resolved, Locale: l.Locale()}
}

func (s *Service) ensureDirectory(ctx context.Context, id *string) error {
	if id == nil {
		return nil
	}
	ok, err := s.dirs.Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("directory %s not found", *id), nil, "")
	}
	return nil
}

func validateItem(ctx context.Context, item *Item) error {
	var p validation.Pipeline
	p.Add(validation.Check("name", item.Name, validation.Required, validation.MaxLength(maxNameLength)))
	p.Add(validation.Check("description", item.Description, validation.MaxLength(maxDescriptionLength)))
	if !p.Valid() {
		return platformerrors.NewValidationError(ctx, platformerrors.LayerDomain, fmt.Sprintf("invalid %s", item.Kind), p.Errors(), "")
	}
	return nil
}

func normalizeDirectoryID(id *string) *string {
	if id == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
