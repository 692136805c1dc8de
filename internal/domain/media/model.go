package media

import (
	"context"
	"errors"
	"io"
	"time"

	"jan-server/catalog-api/internal/domain/translation"
)

// MaxFileNameLength bounds stored file names.
const MaxFileNameLength = 255

// ColumnName is the translatable display name of a media record.
const ColumnName = "name"

// ErrObjectNotFound is returned by storage backends for missing keys.
var ErrObjectNotFound = errors.New("media object not found")

// ErrObjectExists is returned by Upload and Move when the target key is taken.
// Backends never overwrite stored bytes.
var ErrObjectExists = errors.New("media object already exists")

// Media is the metadata of one stored file owned by a directory.
type Media struct {
	ID               string         `json:"id"`
	UUID             string         `json:"uuid"`
	DirectoryID      string         `json:"directory_id"`
	Collection       string         `json:"collection"`
	Name             string         `json:"name"`
	FileName         string         `json:"file_name"`
	MimeType         string         `json:"mime_type"`
	Type             string         `json:"type"`
	Size             int64          `json:"size"`
	Disk             string         `json:"disk"`
	CustomProperties map[string]any `json:"custom_properties"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// Extension returns the lower-case file name suffix without the dot.
func (m *Media) Extension() string {
	return Extension(m.FileName)
}

// HumanReadableSize formats Size with 1024 breakpoints.
func (m *Media) HumanReadableSize() string {
	return HumanReadableSize(m.Size)
}

// StorageKey returns the location of the bytes in the storage backend.
func (m *Media) StorageKey() string {
	return StorageKey(m.DirectoryID, m.Collection, m.FileName)
}

// Action is a batch verb.
type Action string

const (
	ActionStore  Action = "store"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Batch is one media instruction against a directory.
type Batch struct {
	Action string
	Path   string
	Items  []Item
}

// Item is one entry of Batch.Items. Its meaningful fields depend on the action:
// store uses Upload, or Content and FileName; update uses ID and Attributes;
// delete uses ID.
type Item struct {
	ID         string
	Content    string
	FileName   string
	Attributes Attributes
	Upload     *Upload
}

// Attributes are the mutable fields of a media record.
type Attributes struct {
	FileName string
}

// Upload is a binary part received with the request.
type Upload struct {
	FileName string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// ItemErrorKind classifies failures while applying a validated item.
type ItemErrorKind string

const (
	ItemErrorStorage  ItemErrorKind = "storage_error"
	ItemErrorDatabase ItemErrorKind = "database_error"
)

// ItemError reports an item that passed validation but could not be applied.
type ItemError struct {
	Index   int           `json:"index"`
	ID      string        `json:"id,omitempty"`
	Kind    ItemErrorKind `json:"kind"`
	Message string        `json:"message"`
}

// BatchResult lists the items applied and the ones that failed.
type BatchResult struct {
	Action  Action      `json:"action"`
	Applied []*Media    `json:"applied"`
	Errors  []ItemError `json:"errors"`
}

// Repository defines persistence operations for media records.
type Repository interface {
	Create(ctx context.Context, m *Media) error
	Get(ctx context.Context, id string) (*Media, error)
	Exists(ctx context.Context, id string) (bool, error)
	// FindOwned returns the records among ids that belong to directoryID.
	FindOwned(ctx context.Context, directoryID string, ids []string) ([]*Media, error)
	ListByDirectory(ctx context.Context, directoryID, collection string) ([]*Media, error)
	FileNames(ctx context.Context, directoryID, collection string) ([]string, error)
	UpdateFileName(ctx context.Context, id, fileName string) error
	Delete(ctx context.Context, id string) error
	DeleteByDirectory(ctx context.Context, directoryID string) (int64, error)
}

// Storage persists media bytes by key. Upload and Move fail with
// ErrObjectExists instead of replacing bytes already stored under the target.
type Storage interface {
	Name() string
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, string, error)
	Move(ctx context.Context, from, to string) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Transactor runs fn inside a database transaction carried by the context.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// DirectoryLookup checks that a media owner exists.
type DirectoryLookup interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// OverlayPurger removes overlay rows of deleted records.
type OverlayPurger interface {
	PurgeOwner(ctx context.Context, owner translation.OwnerRef) error
}

// OwnerRef returns the overlay owner reference of a media record.
func OwnerRef(id string) translation.OwnerRef {
	return translation.OwnerRef{Type: translation.OwnerMedia, ID: id}
}
