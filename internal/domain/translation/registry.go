package translation

import (
	"context"
	"slices"
	"sort"
)

// OwnerLookup reports whether the owner with id exists.
type OwnerLookup func(ctx context.Context, id string) (bool, error)

type registration struct {
	exists  OwnerLookup
	columns []string
}

// Registry maps owner types to their existence lookup and translatable columns.
// Register every owner type before serving requests; Registry is read-only afterwards.
type Registry struct {
	owners map[OwnerType]registration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{owners: make(map[OwnerType]registration)}
}

// Register declares ownerType and the columns that may be translated.
func (r *Registry) Register(ownerType OwnerType, exists OwnerLookup, columns ...string) {
	r.owners[ownerType] = registration{exists: exists, columns: slices.Clone(columns)}
}

// Known reports whether ownerType has been registered.
func (r *Registry) Known(ownerType OwnerType) bool {
	_, ok := r.owners[ownerType]
	return ok
}

// Translatable reports whether column can be overlaid for ownerType.
func (r *Registry) Translatable(ownerType OwnerType, column string) bool {
	reg, ok := r.owners[ownerType]
	return ok && slices.Contains(reg.columns, column)
}

// Columns returns the translatable columns of ownerType.
func (r *Registry) Columns(ownerType OwnerType) []string {
	return slices.Clone(r.owners[ownerType].columns)
}

// OwnerTypes returns the registered owner types, sorted.
func (r *Registry) OwnerTypes() []string {
	types := make([]string, 0, len(r.owners))
	for t := range r.owners {
		types = append(types, string(t))
	}
	sort.Strings(types)
	return types
}

// Exists resolves owner through the lookup of its type. Unknown types do not exist.
func (r *Registry) Exists(ctx context.Context, owner OwnerRef) (bool, error) {
	reg, ok := r.owners[owner.Type]
	if !ok {
		return false, nil
	}
	return reg.exists(ctx, owner.ID)
}
