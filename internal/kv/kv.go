// Package kv defines the key-value primitive the link layer is built on:
// plain values, set-valued entries for the per-entity indexes, list-valued
// entries for the event log, and a prefix scan for administrative
// enumeration.
package kv

import "context"

// Store is the backing key-value contract. Implementations provide no
// cross-key atomicity; callers are expected to be idempotent and tolerant
// of index/record drift.
type Store interface {
	// Get returns the value for key. The second return is false when the
	// key does not exist.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set writes the value for key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// SAdd adds member to the set at key, creating the set if needed.
	SAdd(ctx context.Context, key string, member string) error

	// SRem removes member from the set at key. Removing a missing member
	// is not an error.
	SRem(ctx context.Context, key string, member string) error

	// SMembers returns all members of the set at key; empty for a missing
	// key.
	SMembers(ctx context.Context, key string) ([]string, error)

	// Keys returns all keys starting with prefix. Not for hot paths.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// LAppend appends value to the list at key, creating the list if
	// needed.
	LAppend(ctx context.Context, key string, value []byte) error

	// LRange returns the whole list at key in append order; empty for a
	// missing key.
	LRange(ctx context.Context, key string) ([][]byte, error)

	// Close releases the underlying connection, if any.
	Close() error
}
