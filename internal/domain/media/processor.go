package media

import (
	"bytes"
	"context"
	"errors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"jan-server/catalog-api/internal/utils/idgen"
	"jan-server/catalog-api/internal/utils/platformerrors"
)

// maxStoreAttempts bounds the free-name retries of one store item.
const maxStoreAttempts = 5

// ApplyBatch validates batch against directoryID and applies its items.
//
// Validation covers the whole batch and rejects it with a VALIDATION error
// before any byte or row is touched. Once validated, items are applied one by
// one and a failing item is reported in BatchResult.Errors without rolling
// back the items applied before it. Ordering per action:
//   - store writes bytes to a free key, then inserts the record; the bytes are
//     removed if the insert fails, and a name claimed concurrently is retried
//     with the next free name
//   - update moves bytes, then updates the record; the move is reverted if the update fails
//   - delete removes the record, then the bytes
//
// A crash can therefore leave orphaned bytes but never a record without bytes.
func (s *Service) ApplyBatch(ctx context.Context, directoryID string, batch Batch) (*BatchResult, error) {
	if err := s.ensureDirectory(ctx, directoryID); err != nil {
		return nil, err
	}
	plan, err := s.validateBatch(ctx, directoryID, batch)
	if err != nil {
		return nil, err
	}

	var taken map[string]struct{}
	if plan.action == ActionStore {
		taken, err = s.namesIn(ctx, map[string]map[string]struct{}{}, directoryID, plan.collection)
		if err != nil {
			return nil, err
		}
	}

	result := &BatchResult{Action: plan.action, Applied: []*Media{}, Errors: []ItemError{}}
	for _, item := range plan.items {
		var (
			applied *Media
			failure *ItemError
		)
		switch plan.action {
		case ActionStore:
			applied, failure = s.applyStore(ctx, directoryID, plan.collection, item, taken)
		case ActionUpdate:
			applied, failure = s.applyUpdate(ctx, item)
		case ActionDelete:
			applied, failure = s.applyDelete(ctx, item)
		}
		if failure != nil {
			result.Errors = append(result.Errors, *failure)
			continue
		}
		result.Applied = append(result.Applied, applied)
	}

	s.log.Info().
		Str("directory_id", directoryID).
		Str("action", string(plan.action)).
		Int("applied", len(result.Applied)).
		Int("failed", len(result.Errors)).
		Msg("media batch applied")
	return result, nil
}

func (s *Service) applyStore(ctx context.Context, directoryID, collection string, item plannedItem, taken map[string]struct{}) (*Media, *ItemError) {
	mimeType := detectMimeType(mimetype.Detect(item.data).String())

	for attempt := 1; ; attempt++ {
		fileName := UniqueFileName(item.fileName, taken)
		m := &Media{
			ID:               idgen.New(idgen.PrefixMedia),
			UUID:             uuid.NewString(),
			DirectoryID:      directoryID,
			Collection:       collection,
			Name:             DisplayName(fileName),
			FileName:         fileName,
			MimeType:         mimeType,
			Type:             TypeFromMime(mimeType),
			Size:             int64(len(item.data)),
			Disk:             s.storage.Name(),
			CustomProperties: map[string]any{},
		}
		key := m.StorageKey()

		err := s.storage.Upload(ctx, key, bytes.NewReader(item.data), m.Size, mimeType)
		if errors.Is(err, ErrObjectExists) && attempt < maxStoreAttempts {
			// claimed by a concurrent writer since the names were listed
			taken[fileName] = struct{}{}
			continue
		}
		if err != nil {
			s.log.Error().Err(err).Str("key", key).Msg("failed to store media bytes")
			return nil, &ItemError{Index: item.index, Kind: ItemErrorStorage, Message: "failed to write file " + fileName}
		}

		// the key was free, so the bytes under it are ours to remove
		err = s.repo.Create(ctx, m)
		if err != nil {
			if rmErr := s.storage.Delete(ctx, key); rmErr != nil {
				s.log.Warn().Err(rmErr).Str("key", key).Msg("orphaned media bytes left in storage")
			}
			if platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) && attempt < maxStoreAttempts {
				taken[fileName] = struct{}{}
				continue
			}
			s.log.Error().Err(err).Str("media_id", m.ID).Msg("failed to record media")
			return nil, &ItemError{Index: item.index, Kind: ItemErrorDatabase, Message: "failed to record file " + fileName}
		}

		taken[fileName] = struct{}{}
		return m, nil
	}
}

func (s *Service) applyUpdate(ctx context.Context, item plannedItem) (*Media, *ItemError) {
	target := item.target
	if item.fileName == target.FileName {
		return target, nil
	}

	oldKey := target.StorageKey()
	newKey := StorageKey(target.DirectoryID, target.Collection, item.fileName)
	if err := s.storage.Move(ctx, oldKey, newKey); err != nil {
		s.log.Error().Err(err).Str("from", oldKey).Str("to", newKey).Msg("failed to move media bytes")
		message := "failed to rename file"
		if errors.Is(err, ErrObjectExists) {
			message = "file name " + item.fileName + " is already in use"
		}
		return nil, &ItemError{Index: item.index, ID: target.ID, Kind: ItemErrorStorage, Message: message}
	}

	if err := s.repo.UpdateFileName(ctx, target.ID, item.fileName); err != nil {
		s.log.Error().Err(err).Str("media_id", target.ID).Msg("failed to update media record")
		if mvErr := s.storage.Move(ctx, newKey, oldKey); mvErr != nil {
			s.log.Warn().Err(mvErr).Str("key", newKey).Msg("media bytes left at new location")
		}
		return nil, &ItemError{Index: item.index, ID: target.ID, Kind: ItemErrorDatabase, Message: "failed to record rename"}
	}

	updated, err := s.repo.Get(ctx, target.ID)
	if err != nil {
		renamed := *target
		renamed.FileName = item.fileName
		return &renamed, nil
	}
	return updated, nil
}

func (s *Service) applyDelete(ctx context.Context, item plannedItem) (*Media, *ItemError) {
	target := item.target
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, target.ID); err != nil {
			return err
		}
		return s.overlays.PurgeOwner(ctx, OwnerRef(target.ID))
	})
	if err != nil {
		s.log.Error().Err(err).Str("media_id", target.ID).Msg("failed to delete media record")
		return nil, &ItemError{Index: item.index, ID: target.ID, Kind: ItemErrorDatabase, Message: "failed to delete record"}
	}

	if err := s.storage.Delete(ctx, target.StorageKey()); err != nil {
		s.log.Error().Err(err).Str("key", target.StorageKey()).Msg("media record deleted but bytes remain")
		return nil, &ItemError{Index: item.index, ID: target.ID, Kind: ItemErrorStorage, Message: "record deleted but file could not be removed"}
	}
	return target, nil
}
