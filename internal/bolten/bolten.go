// Package bolten implements the alternative storage engine backed by
// go.etcd.io/bbolt, an embedded key/value database. It exists for the same
// reason the original Bitcask paper's implementations often ship a second,
// off-the-shelf-backed engine alongside the bespoke log-structured one: to
// give operators a point of comparison, and callers a drop-in engine that
// trades the log-structured engine's compaction behavior for bbolt's
// B+tree and its own on-disk format.
//
// Engine satisfies the same store.Store interface as internal/engine.Engine,
// so the network server and CLI bind to whichever one options.EngineKind
// selects without knowing which is underneath.
package bolten

import (
	"context"
	stdErrors "errors"
	"sync/atomic"

	"github.com/iamNilotpal/ignite/internal/store"
	ignerrors "github.com/iamNilotpal/ignite/pkg/errors"
	"github.com/iamNilotpal/ignite/pkg/options"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

const backendName = "bbolt"

// bucket is the single bbolt bucket every key/value pair lives in. Ignite
// has no notion of namespaces, so one bucket is sufficient.
var bucket = []byte("ignite")

// ErrEngineClosed is returned when attempting to perform operations on a closed engine.
var ErrEngineClosed = stdErrors.New("operation failed: cannot access closed engine")

// Engine wraps a *bbolt.DB to implement store.Store.
type Engine struct {
	db     *bbolt.DB
	log    *zap.SugaredLogger
	closed atomic.Bool
}

var _ store.Store = (*Engine)(nil)

// Config holds the parameters needed to open an Engine.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger
}

// New opens (creating if necessary) a bbolt database rooted at
// config.Options.DataDir, and ensures the Ignite bucket exists.
func New(ctx context.Context, config *Config) (*Engine, error) {
	if config == nil || config.Options == nil || config.Logger == nil {
		return nil, ignerrors.NewValidationError(
			nil, ignerrors.ErrorCodeInvalidInput, "bolten engine configuration is required",
		).WithField("config").WithRule("required")
	}

	path := config.Options.DataDir
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, ignerrors.NewBackendError(err, backendName, "failed to open bbolt database").
			WithDetail("path", path)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, ignerrors.NewBackendError(err, backendName, "failed to create ignite bucket")
	}

	config.Logger.Infow("opened bbolt-backed engine", "path", path)

	return &Engine{db: db, log: config.Logger}, nil
}

// Get returns the value stored for key.
func (e *Engine) Get(ctx context.Context, key string) ([]byte, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}

	var value []byte
	err := e.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucket).Get([]byte(key))
		if v == nil {
			return ignerrors.NewKeyNotFoundError(key)
		}
		// Copy out: bbolt's returned slice is only valid for the transaction's lifetime.
		value = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

// Set stores value under key, replacing any existing value.
func (e *Engine) Set(ctx context.Context, key string, value []byte) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	err := e.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), value)
	})
	if err != nil {
		return ignerrors.NewBackendError(err, backendName, "failed to write key").
			WithDetail("key", key)
	}

	return nil
}

// Remove deletes key. It fails if key has no current value, matching the
// log-structured engine's requirement that every Remove target a live key.
func (e *Engine) Remove(ctx context.Context, key string) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	err := e.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		if b.Get([]byte(key)) == nil {
			return ignerrors.NewUnknownKeyError(key)
		}
		return b.Delete([]byte(key))
	})

	return err
}

// Close releases the underlying bbolt database file.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrEngineClosed
	}

	if err := e.db.Close(); err != nil {
		return ignerrors.NewBackendError(err, backendName, "failed to close bbolt database")
	}

	e.log.Infow("closed bbolt-backed engine")
	return nil
}
