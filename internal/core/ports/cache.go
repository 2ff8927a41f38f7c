package ports

import (
	"context"
)

// HashCache defines a flat field-map cache contract. Implementations should
// degrade gracefully (returning an error without crashing callers) so that
// application logic can fall back to the primary datastore.
type HashCache interface {
	// Put replaces the entry at key with fields, stringifying every value.
	Put(ctx context.Context, key string, fields map[string]any) error
	// Get returns the schema-coerced field map for key. ok=false if the key
	// is missing or the entry is empty.
	Get(ctx context.Context, key string) (map[string]any, bool, error)
	// Delete removes the named fields from the entry; no fields removes the
	// whole entry. Absence is not an error.
	Delete(ctx context.Context, key string, fields ...string) error
}
