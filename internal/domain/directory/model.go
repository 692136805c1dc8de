package directory

import (
	"context"
	"time"

	"jan-server/catalog-api/internal/domain/translation"
)

// MaxNameLength bounds directory names.
const MaxNameLength = 255

// ColumnName is the translatable column of a directory.
const ColumnName = "name"

// Directory is one node of the container forest. Children are not embedded;
// the tree is an adjacency list keyed by ParentID.
type Directory struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	ParentID  *string   `json:"parent_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsRoot returns true if the directory has no parent.
func (d *Directory) IsRoot() bool {
	return d.ParentID == nil
}

// CreateInput describes a new directory.
type CreateInput struct {
	Name         string
	ParentID     *string
	Translations []translation.Input
}

// Repository defines persistence operations needed by the service.
type Repository interface {
	Create(ctx context.Context, dir *Directory) error
	Update(ctx context.Context, dir *Directory) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*Directory, error)
	GetForUpdate(ctx context.Context, id string) (*Directory, error)
	Exists(ctx context.Context, id string) (bool, error)
	ListChildren(ctx context.Context, parentID *string) ([]*Directory, error)
	// ListAll returns every directory ordered by insertion.
	ListAll(ctx context.Context) ([]Directory, error)
	// SlugsLike returns slugs in the parent scope equal to base or starting with "base-",
	// skipping excludeID.
	SlugsLike(ctx context.Context, parentID *string, base string, excludeID string) ([]string, error)
}

// Transactor runs fn inside a database transaction carried by the context.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// MediaCascade removes the media owned by a directory. It deletes the records in
// the caller's transaction and returns a cleanup that removes the stored bytes,
// to be run once the transaction has committed.
type MediaCascade interface {
	DetachAll(ctx context.Context, directoryID string) (func(context.Context) error, error)
}

// Overlays is the subset of the translation store used by directories.
type Overlays interface {
	AttachAll(ctx context.Context, owner translation.OwnerRef, inputs []translation.Input) ([]*translation.Translation, error)
	PurgeOwner(ctx context.Context, owner translation.OwnerRef) error
}

// OwnerRef returns the overlay owner reference of a directory.
func OwnerRef(id string) translation.OwnerRef {
	return translation.OwnerRef{Type: translation.OwnerDirectory, ID: id}
}
