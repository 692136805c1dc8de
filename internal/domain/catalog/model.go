package catalog

import (
	"context"
	"time"

	"jan-server/catalog-api/internal/domain/translation"
)

// Kind is the fitness vocabulary an item belongs to.
type Kind string

const (
	KindGoal    Kind = "goal"
	KindMuscle  Kind = "muscle"
	KindWorkout Kind = "workout"
	KindPlan    Kind = "plan"
)

// Kinds lists every catalog kind.
var Kinds = []Kind{KindGoal, KindMuscle, KindWorkout, KindPlan}

// ParseKind accepts a kind in singular or plural form ("goal", "goals").
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if s == string(k) || s == string(k)+"s" {
			return k, true
		}
	}
	return "", false
}

// OwnerType is the overlay owner type of items of this kind.
func (k Kind) OwnerType() translation.OwnerType {
	return translation.OwnerType(k)
}

// Translatable columns of catalog items.
const (
	ColumnName        = "name"
	ColumnDescription = "description"
)

// Item is a catalog entry. DirectoryID optionally points at the directory
// holding its media.
type Item struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DirectoryID *string   `json:"directory_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OwnerRef returns the overlay owner reference of the item.
func (i *Item) OwnerRef() translation.OwnerRef {
	return translation.OwnerRef{Type: i.Kind.OwnerType(), ID: i.ID}
}

// CreateInput describes a new item.
type CreateInput struct {
	Kind         Kind
	Name         string
	Description  string
	DirectoryID  *string
	Translations []translation.Input
}

// UpdateInput carries the fields to change. Nil fields are left untouched; an
// empty DirectoryID detaches the directory.
type UpdateInput struct {
	Name        *string
	Description *string
	DirectoryID *string
}

// ListFilter pages through items of one kind.
type ListFilter struct {
	Kind   Kind
	Limit  int
	Offset int
}

// Repository defines persistence operations for catalog items.
type Repository interface {
	Create(ctx context.Context, item *Item) error
	Get(ctx context.Context, kind Kind, id string) (*Item, error)
	Exists(ctx context.Context, kind Kind, id string) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]*Item, int64, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, kind Kind, id string) error
}

// Transactor runs fn inside a database transaction carried by the context.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// DirectoryLookup checks that a referenced directory exists.
type DirectoryLookup interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Overlays is the subset of the translation store used by catalog items.
type Overlays interface {
	AttachAll(ctx context.Context, owner translation.OwnerRef, inputs []translation.Input) ([]*translation.Translation, error)
	PurgeOwner(ctx context.Context, owner translation.OwnerRef) error
}
