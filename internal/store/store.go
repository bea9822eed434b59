// Package store defines the interface every Ignite storage engine
// implementation satisfies, so the network server, the CLI, and the
// pkg/ignite facade can depend on "a key/value store" rather than on a
// specific engine's concrete type.
package store

import "context"

// Store is the minimal surface a storage engine must provide: durable,
// single-writer get/set/remove and an orderly shutdown. Both the
// log-structured engine (internal/engine) and the embedded-database-backed
// engine (internal/bolten) implement Store.
type Store interface {
	// Get returns the value stored for key. Implementations return an error
	// satisfying errors.IsIndexError (code ErrorCodeIndexKeyNotFound) when
	// key has no value.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any existing value.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Implementations return an error satisfying
	// errors.IsIndexError (code ErrorCodeUnknownKey) when key does not exist.
	Remove(ctx context.Context, key string) error

	// Close releases all resources held by the store. A closed Store must
	// not be used again.
	Close() error
}
