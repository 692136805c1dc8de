package media

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"jan-server/catalog-api/internal/domain/validation"
	"jan-server/catalog-api/internal/utils/platformerrors"
)

const maxActionLength = 6

var (
	actions        = []string{string(ActionStore), string(ActionUpdate), string(ActionDelete)}
	errTooLarge    = errors.New("payload too large")
	errEmptyUpload = errors.New("empty upload")
)

// plannedItem is an item that passed validation.
type plannedItem struct {
	index    int
	data     []byte
	fileName string
	target   *Media
}

type batchPlan struct {
	action     Action
	collection string
	items      []plannedItem
}

// validateBatch checks the whole batch before anything is applied. Every field
// failure is collected; any failure rejects the batch.
func (s *Service) validateBatch(ctx context.Context, directoryID string, batch Batch) (*batchPlan, error) {
	var p validation.Pipeline
	p.Add(validation.Check("action", batch.Action,
		validation.Required, validation.MaxLength(maxActionLength), validation.OneOf(actions...)))
	p.Add(validation.Check("path", batch.Path,
		validation.Required, validation.MaxLength(MaxFileNameLength), validation.RelativePath))
	if len(batch.Items) == 0 {
		p.Fail("data", "The data field is required.")
	}
	if p.HasField("action") || len(batch.Items) == 0 {
		return nil, invalidBatch(ctx, &p)
	}

	plan := &batchPlan{action: Action(batch.Action), collection: batch.Path}
	if plan.action == ActionStore {
		s.checkStoreItems(&p, plan, batch.Items)
	} else if err := s.checkTargetedItems(ctx, &p, plan, directoryID, batch.Items); err != nil {
		return nil, err
	}

	if !p.Valid() {
		return nil, invalidBatch(ctx, &p)
	}
	return plan, nil
}

func invalidBatch(ctx context.Context, p *validation.Pipeline) error {
	return platformerrors.NewValidationError(ctx, platformerrors.LayerDomain, "The given data was invalid.", p.Errors(), "")
}

func (s *Service) checkStoreItems(p *validation.Pipeline, plan *batchPlan, items []Item) {
	for i, item := range items {
		if item.Upload != nil {
			field := validation.Field("data", i)
			name := strings.TrimSpace(item.Upload.FileName)
			if fe := validation.Check(field, name, validation.Required, validation.MaxLength(MaxFileNameLength), validation.FileName); fe != nil {
				p.Add(fe)
				continue
			}
			data, err := readUpload(item.Upload, s.cfg.MaxMediaBytes)
			switch {
			case errors.Is(err, errTooLarge):
				p.Fail(field, s.tooLargeMessage(field))
				continue
			case errors.Is(err, errEmptyUpload):
				p.Fail(field, fmt.Sprintf("The %s field must not be empty.", field))
				continue
			case err != nil:
				p.Fail(field, fmt.Sprintf("The %s failed to upload.", field))
				continue
			}
			plan.items = append(plan.items, plannedItem{index: i, data: data, fileName: name})
			continue
		}

		contentField := validation.Field("data", i, "content")
		nameField := validation.Field("data", i, "filename")
		name := strings.TrimSpace(item.FileName)
		contentErr := validation.Check(contentField, item.Content, validation.Required, validation.Base64)
		nameErr := validation.Check(nameField, name, validation.Required, validation.MaxLength(MaxFileNameLength), validation.FileName)
		p.Add(contentErr)
		p.Add(nameErr)
		if contentErr != nil || nameErr != nil {
			continue
		}

		data, _ := base64.StdEncoding.DecodeString(item.Content)
		if int64(len(data)) > s.cfg.MaxMediaBytes {
			p.Fail(contentField, s.tooLargeMessage(contentField))
			continue
		}
		plan.items = append(plan.items, plannedItem{index: i, data: data, fileName: name})
	}
}

func (s *Service) checkTargetedItems(ctx context.Context, p *validation.Pipeline, plan *batchPlan, directoryID string, items []Item) error {
	ids := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		idField := validation.Field("data", i, "id")
		if fe := validation.Check(idField, item.ID, validation.Required); fe != nil {
			p.Add(fe)
		} else if _, dup := seen[item.ID]; dup {
			p.Fail(idField, fmt.Sprintf("The %s field has a duplicate value.", idField))
		} else {
			seen[item.ID] = struct{}{}
			ids = append(ids, item.ID)
		}

		if plan.action == ActionUpdate {
			nameField := validation.Field("data", i, "attributes", "filename")
			p.Add(validation.Check(nameField, strings.TrimSpace(item.Attributes.FileName),
				validation.Required, validation.MaxLength(MaxFileNameLength), validation.FileName))
		}
	}

	owned, err := s.repo.FindOwned(ctx, directoryID, ids)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to look up media")
	}
	byID := make(map[string]*Media, len(owned))
	for _, m := range owned {
		byID[m.ID] = m
	}

	// names used per collection once the earlier renames of this batch are applied
	names := make(map[string]map[string]struct{})
	for i, item := range items {
		idField := validation.Field("data", i, "id")
		if p.HasField(idField) {
			continue
		}
		target, ok := byID[item.ID]
		if !ok {
			p.Fail(idField, fmt.Sprintf("The selected %s is invalid.", idField))
			continue
		}

		planned := plannedItem{index: i, target: target}
		if plan.action == ActionUpdate {
			nameField := validation.Field("data", i, "attributes", "filename")
			if p.HasField(nameField) {
				continue
			}
			newName := strings.TrimSpace(item.Attributes.FileName)
			if newName != target.FileName {
				taken, err := s.namesIn(ctx, names, directoryID, target.Collection)
				if err != nil {
					return err
				}
				if _, clash := taken[newName]; clash {
					p.Fail(nameField, fmt.Sprintf("The %s has already been taken.", nameField))
					continue
				}
				taken[newName] = struct{}{}
				delete(taken, target.FileName)
			}
			planned.fileName = newName
		}
		plan.items = append(plan.items, planned)
	}
	return nil
}

func (s *Service) namesIn(ctx context.Context, cache map[string]map[string]struct{}, directoryID, collection string) (map[string]struct{}, error) {
	if taken, ok := cache[collection]; ok {
		return taken, nil
	}
	list, err := s.repo.FileNames(ctx, directoryID, collection)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list media names")
	}
	taken := make(map[string]struct{}, len(list))
	for _, n := range list {
		taken[n] = struct{}{}
	}
	cache[collection] = taken
	return taken, nil
}

func (s *Service) tooLargeMessage(field string) string {
	return fmt.Sprintf("The %s field must not be greater than %d kilobytes.", field, s.cfg.MaxMediaBytes/1024)
}

func readUpload(u *Upload, limit int64) ([]byte, error) {
	if u.Size > limit {
		return nil, errTooLarge
	}
	if u.Open == nil {
		return nil, errEmptyUpload
	}
	rc, err := u.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errTooLarge
	}
	if len(data) == 0 {
		return nil, errEmptyUpload
	}
	return data, nil
}
