// Package ignite provides a high-performance key/value data store
// designed for fast read and write operations, inspired by Bitcask.
// It combines an in-memory hash table (the keydir) with an append-only log
// structure on disk to achieve high throughput, or, when configured with
// options.EngineKindBolt, delegates to an embedded B+tree database instead.
// It is designed for applications requiring fast read and write operations,
// such as caching, session management, and real-time data processing,
// aiming to provide a simple, efficient, and reliable solution for
// persistent key-value storage in Go applications.
package ignite

import (
	"context"

	"github.com/iamNilotpal/ignite/internal/bolten"
	"github.com/iamNilotpal/ignite/internal/engine"
	"github.com/iamNilotpal/ignite/internal/store"
	ignerrors "github.com/iamNilotpal/ignite/pkg/errors"
	"github.com/iamNilotpal/ignite/pkg/logger"
	"github.com/iamNilotpal/ignite/pkg/options"
)

// Instance represents an instance of the Ignite key/value data store.
// It encapsulates the storage engine responsible for data handling and
// the configuration options for this specific database instance.
//
// Instance is the primary entry point for interacting with the Ignite store,
// providing methods for setting, getting, and deleting key-value pairs.
type Instance struct {
	store   store.Store      // The underlying storage engine handling read/write operations.
	options *options.Options // Configuration options applied to this DB instance.
}

// NewInstance creates and initializes a new Ignite DB instance, choosing
// the storage engine named by the resolved options.Engine.
func NewInstance(ctx context.Context, service string, opts ...options.OptionFunc) (*Instance, error) {
	// Initialize a logger for the given service.
	log := logger.New(service)

	// Initialize default options.
	defaultOpts := options.NewDefaultOptions()

	// Apply any provided functional options to override defaults.
	for _, opt := range opts {
		opt(&defaultOpts)
	}

	var s store.Store
	var err error

	switch defaultOpts.Engine {
	case options.EngineKindBolt:
		s, err = bolten.New(ctx, &bolten.Config{Logger: log, Options: &defaultOpts})
	default:
		s, err = engine.New(ctx, &engine.Config{Logger: log, Options: &defaultOpts})
	}
	if err != nil {
		return nil, err
	}

	return &Instance{store: s, options: &defaultOpts}, nil
}

// Set stores a key-value pair in the database.
// If the key already exists, its value will be updated.
// With the log-structured engine the record is appended to the log and
// flushed to the OS before Set returns; it is not fsync'd.
func (i *Instance) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ignerrors.NewRequiredFieldError("key")
	}
	return i.store.Set(ctx, key, value)
}

// Get retrieves the value associated with the given key.
func (i *Instance) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ignerrors.NewRequiredFieldError("key")
	}
	return i.store.Get(ctx, key)
}

// Delete removes a key-value pair from the database.
func (i *Instance) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ignerrors.NewRequiredFieldError("key")
	}
	return i.store.Remove(ctx, key)
}

// Close gracefully shuts down the Ignite DB instance, releasing all
// associated resources, flushing any pending writes, and ensuring data
// durability.
func (i *Instance) Close(ctx context.Context) error {
	return i.store.Close()
}
