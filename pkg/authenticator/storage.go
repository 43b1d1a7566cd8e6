package authenticator

import "context"

// Storage is the injected key-value side-channel the vault persists into.
// Implementations must treat a missing key as ErrKeyNotFound rather than an
// empty value so the vault can distinguish first run from a broken backend.
type Storage interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error
}
