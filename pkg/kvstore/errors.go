package kvstore

import "errors"

var (
	// ErrKeyNotFound indicates the key is absent from the store
	ErrKeyNotFound = errors.New("kvstore.key_not_found")

	// ErrInvalidScope indicates an unknown storage scope was requested
	ErrInvalidScope = errors.New("kvstore.invalid_scope")

	// ErrStoreUnavailable indicates the backing storage could not be reached
	ErrStoreUnavailable = errors.New("kvstore.store_unavailable")
)
