// Package kv provides the pluggable key-value backends the store persists
// its collections into. Every backend stores opaque byte values under
// string keys and treats a missing key as (nil, false, nil), never as an
// error.
package kv

import "context"

// KV is the persistence contract the store is written against.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases any resources held by the backend.
	Close() error
}
