package store

import "context"

// Store is a small JSON document store keyed by string, mirroring the
// area-of-record semantics the extension contexts share. Values are
// marshaled on Set and unmarshaled into out on Get, so callers never
// share mutable state through the store.
type Store interface {
	// Get unmarshals the value stored under key into out.
	// Returns false if the key does not exist.
	Get(ctx context.Context, key string, out any) (bool, error)

	// Set marshals value and stores it under key, replacing any previous value.
	Set(ctx context.Context, key string, value any) error

	// Delete removes the value stored under key. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error

	// Keys returns all present keys.
	Keys(ctx context.Context) ([]string, error)
}
