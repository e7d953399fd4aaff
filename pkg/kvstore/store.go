package kvstore

import "context"

// Scope identifies which persistence scope holds a value.
type Scope string

const (
	// ScopeDurable survives process restarts ("remember me").
	ScopeDurable Scope = "durable"
	// ScopeSession lives only as long as the current session.
	ScopeSession Scope = "session"
)

// Store is a minimal string key/value store. Implementations must be safe
// for concurrent use.
type Store interface {
	// Get returns the value for key or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set stores the value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Clear removes all keys.
	Clear(ctx context.Context) error
}
