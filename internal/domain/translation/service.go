package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"jan-server/catalog-api/internal/domain/validation"
	"jan-server/catalog-api/internal/utils/idgen"
	"jan-server/catalog-api/internal/utils/platformerrors"
)

const maxLocaleLength = 35

// Service is the locale overlay store.
type Service struct {
	repo     Repository
	registry *Registry
	cache    Cache
	log      zerolog.Logger
}

// NewService creates the overlay service. A nil cache disables caching.
func NewService(repo Repository, registry *Registry, cache Cache, log zerolog.Logger) *Service {
	if cache == nil {
		cache = NoopCache()
	}
	return &Service{
		repo:     repo,
		registry: registry,
		cache:    cache,
		log:      log.With().Str("component", "translation-service").Logger(),
	}
}

// Registry exposes the owner registry.
func (s *Service) Registry() *Registry {
	return s.registry
}

// Resolve returns the overlay text for (owner, column, locale), or base when
// there is none. It never fails; lookup errors are logged and base is returned.
func (s *Service) Resolve(ctx context.Context, owner OwnerRef, column, locale, base string) string {
	tag, ok := CanonicalLocale(locale)
	if !ok {
		return base
	}

	key := CacheKey(owner, column, tag)
	if entry, hit := s.cache.Get(ctx, key); hit {
		if entry.Found {
			return entry.Text
		}
		return base
	}

	epoch, fill := s.cache.Epoch(ctx, key)
	row, err := s.repo.FindFirst(ctx, owner, column, tag)
	if err != nil {
		s.log.Warn().Err(err).Str("owner", owner.String()).Str("column", column).Str("locale", tag).
			Msg("translation lookup failed, using base value")
		return base
	}

	entry := CacheEntry{}
	if row != nil {
		entry = CacheEntry{Text: row.Text, Found: true}
	}
	if fill {
		s.cache.Fill(ctx, key, epoch, entry)
	}
	if !entry.Found {
		return base
	}
	return entry.Text
}

// invalidate drops cached resolutions once the surrounding transaction commits.
func (s *Service) invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	s.repo.AfterCommit(ctx, func(ctx context.Context) {
		s.cache.Invalidate(ctx, keys...)
	})
}

// Localizer binds a locale for repeated resolution in one response.
type Localizer struct {
	svc    *Service
	locale string
}

// For returns a Localizer for locale.
func (s *Service) For(locale string) Localizer {
	return Localizer{svc: s, locale: locale}
}

// Locale returns the bound locale.
func (l Localizer) Locale() string {
	return l.locale
}

// Text resolves column of owner, falling back to base.
func (l Localizer) Text(ctx context.Context, owner OwnerRef, column, base string) string {
	if l.svc == nil {
		return base
	}
	return l.svc.Resolve(ctx, owner, column, l.locale, base)
}

// Attach stores text for (owner, column, locale). An existing row for the same
// tuple is overwritten, so the last write wins.
func (s *Service) Attach(ctx context.Context, owner OwnerRef, column, locale, text string) (*Translation, error) {
	var p validation.Pipeline
	s.validateOwner(&p, owner)
	tag := s.validateInput(&p, "", owner.Type, Input{Column: column, Locale: locale, Text: text})
	if !p.Valid() {
		return nil, platformerrors.NewValidationError(ctx, platformerrors.LayerDomain, "invalid translation", p.Errors(), "")
	}
	if err := s.ensureOwner(ctx, owner); err != nil {
		return nil, err
	}

	t, err := s.upsert(ctx, owner, column, tag, text)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to attach translation")
	}
	return t, nil
}

// AttachAll validates every input first, then attaches them in order.
// Field errors are reported as translations.<i>.<field>.
func (s *Service) AttachAll(ctx context.Context, owner OwnerRef, inputs []Input) ([]*Translation, error) {
	var p validation.Pipeline
	s.validateOwner(&p, owner)
	tags := make([]string, len(inputs))
	for i, in := range inputs {
		tags[i] = s.validateInput(&p, validation.Field("translations", i)+".", owner.Type, in)
	}
	if !p.Valid() {
		return nil, platformerrors.NewValidationError(ctx, platformerrors.LayerDomain, "invalid translations", p.Errors(), "")
	}
	if err := s.ensureOwner(ctx, owner); err != nil {
		return nil, err
	}

	out := make([]*Translation, 0, len(inputs))
	for i, in := range inputs {
		t, err := s.upsert(ctx, owner, in.Column, tags[i], in.Text)
		if err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to attach translations")
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *Service) upsert(ctx context.Context, owner OwnerRef, column, locale, text string) (*Translation, error) {
	existing, err := s.repo.FindFirst(ctx, owner, column, locale)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.repo.UpdateText(ctx, existing.ID, text); err != nil {
			return nil, err
		}
		s.invalidate(ctx, CacheKey(owner, column, locale))
		return s.repo.Get(ctx, existing.ID)
	}

	t := &Translation{
		ID:     idgen.New(idgen.PrefixTranslation),
		Owner:  owner,
		Column: column,
		Locale: locale,
		Text:   text,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	s.invalidate(ctx, CacheKey(owner, column, locale))
	return t, nil
}

// Update replaces the text of an existing row.
func (s *Service) Update(ctx context.Context, id, text string) (*Translation, error) {
	if fe := validation.Check("translation", text, validation.Required); fe != nil {
		return nil, platformerrors.NewValidationError(ctx, platformerrors.LayerDomain, "invalid translation", []validation.FieldError{*fe}, "")
	}

	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update translation")
	}
	if err := s.repo.UpdateText(ctx, id, text); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update translation")
	}
	s.invalidate(ctx, CacheKey(t.Owner, t.Column, t.Locale))

	updated, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to reload translation")
	}
	return updated, nil
}

// Get returns one overlay row.
func (s *Service) Get(ctx context.Context, id string) (*Translation, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to get translation")
	}
	return t, nil
}

// List returns the overlay rows of owner.
func (s *Service) List(ctx context.Context, owner OwnerRef) ([]*Translation, error) {
	var p validation.Pipeline
	s.validateOwner(&p, owner)
	if !p.Valid() {
		return nil, platformerrors.NewValidationError(ctx, platformerrors.LayerDomain, "invalid owner", p.Errors(), "")
	}
	rows, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list translations")
	}
	return rows, nil
}

// Delete removes one overlay row.
func (s *Service) Delete(ctx context.Context, id string) error {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete translation")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete translation")
	}
	s.invalidate(ctx, CacheKey(t.Owner, t.Column, t.Locale))
	return nil
}

// PurgeOwner removes every overlay row of owner. Owners call it when they are deleted.
func (s *Service) PurgeOwner(ctx context.Context, owner OwnerRef) error {
	rows, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to purge translations")
	}
	if len(rows) == 0 {
		return nil
	}
	if _, err := s.repo.DeleteByOwner(ctx, owner); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to purge translations")
	}

	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, CacheKey(owner, row.Column, row.Locale))
	}
	s.invalidate(ctx, keys...)
	return nil
}

func (s *Service) validateOwner(p *validation.Pipeline, owner OwnerRef) {
	if fe := validation.Check("owner_type", string(owner.Type), validation.Required); fe != nil {
		p.Add(fe)
	} else if !s.registry.Known(owner.Type) {
		p.Add(validation.Check("owner_type", string(owner.Type), validation.OneOf(s.registry.OwnerTypes()...)))
	}
	p.Add(validation.Check("owner_id", owner.ID, validation.Required))
}

// validateInput checks one input and returns its canonical locale.
func (s *Service) validateInput(p *validation.Pipeline, prefix string, ownerType OwnerType, in Input) string {
	if fe := validation.Check(prefix+"column", in.Column, validation.Required); fe != nil {
		p.Add(fe)
	} else if s.registry.Known(ownerType) && !s.registry.Translatable(ownerType, in.Column) {
		p.Fail(prefix+"column", fmt.Sprintf("The %scolumn field is not translatable for %s.", prefix, ownerType))
	}

	tag, ok := CanonicalLocale(in.Locale)
	if fe := validation.Check(prefix+"locale", in.Locale, validation.Required, validation.MaxLength(maxLocaleLength)); fe != nil {
		p.Add(fe)
	} else if !ok {
		p.Fail(prefix+"locale", fmt.Sprintf("The %slocale field must be a valid locale.", prefix))
	}

	p.Add(validation.Check(prefix+"translation", in.Text, validation.Required))
	return tag
}

func (s *Service) ensureOwner(ctx context.Context, owner OwnerRef) error {
	ok, err := s.registry.Exists(ctx, owner)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to look up translation owner")
	}
	if !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("%s %s not found", owner.Type, owner.ID), nil, "")
	}
	return nil
}

// CanonicalLocale parses a BCP 47 tag and returns its canonical form.
func CanonicalLocale(locale string) (string, bool) {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return "", false
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return "", false
	}
	return tag.String(), true
}
