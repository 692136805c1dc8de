package translation

import (
	"context"
	"fmt"
	"time"
)

// OwnerType tags the kind of entity an overlay row annotates.
type OwnerType string

const (
	OwnerDirectory OwnerType = "directory"
	OwnerMedia     OwnerType = "media"
	OwnerGoal      OwnerType = "goal"
	OwnerMuscle    OwnerType = "muscle"
	OwnerWorkout   OwnerType = "workout"
	OwnerPlan      OwnerType = "plan"
)

// OwnerRef is a polymorphic reference to an overlay owner.
type OwnerRef struct {
	Type OwnerType `json:"owner_type"`
	ID   string    `json:"owner_id"`
}

func (o OwnerRef) String() string {
	return fmt.Sprintf("%s:%s", o.Type, o.ID)
}

// Translation is one locale-specific text override for a column of an owner.
type Translation struct {
	ID        string    `json:"id"`
	Owner     OwnerRef  `json:"owner"`
	Column    string    `json:"column"`
	Locale    string    `json:"locale"`
	Text      string    `json:"translation"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input is a translation submitted alongside its owner.
type Input struct {
	Column string `json:"column"`
	Locale string `json:"locale"`
	Text   string `json:"translation"`
}

// Repository defines persistence operations for overlay rows.
type Repository interface {
	Create(ctx context.Context, t *Translation) error
	Get(ctx context.Context, id string) (*Translation, error)
	// FindFirst returns the oldest row for the tuple, or nil when there is none.
	FindFirst(ctx context.Context, owner OwnerRef, column, locale string) (*Translation, error)
	UpdateText(ctx context.Context, id, text string) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, owner OwnerRef) ([]*Translation, error)
	DeleteByOwner(ctx context.Context, owner OwnerRef) (int64, error)
	// AfterCommit runs fn once the transaction carried by ctx commits, or at
	// once when ctx carries none.
	AfterCommit(ctx context.Context, fn func(ctx context.Context))
}

// CacheEntry is a cached resolution. Found is false for a cached miss.
type CacheEntry struct {
	Text  string `json:"text"`
	Found bool   `json:"found"`
}

// Cache stores resolutions keyed by CacheKey.
//
// Fills are guarded by an epoch: a reader takes Epoch before reading the
// database and passes it to Fill, which drops the entry when the key was
// invalidated in between.
type Cache interface {
	Get(ctx context.Context, key string) (CacheEntry, bool)
	// Epoch returns the invalidation epoch of key. ok is false when it cannot
	// be read, in which case the caller skips the fill.
	Epoch(ctx context.Context, key string) (epoch string, ok bool)
	Fill(ctx context.Context, key, epoch string, entry CacheEntry)
	// Invalidate drops keys and advances their epoch.
	Invalidate(ctx context.Context, keys ...string)
}

// CacheKey identifies the resolution of one (owner, column, locale) tuple.
func CacheKey(owner OwnerRef, column, locale string) string {
	return fmt.Sprintf("catalog:v1:tr:%s:%s:%s:%s", owner.Type, owner.ID, column, locale)
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (CacheEntry, bool) {
	return CacheEntry{}, false
}

func (noopCache) Epoch(context.Context, string) (string, bool) {
	return "", false
}

func (noopCache) Fill(context.Context, string, string, CacheEntry) {}

func (noopCache) Invalidate(context.Context, ...string) {}

// NoopCache never caches.
func NoopCache() Cache {
	return noopCache{}
}
