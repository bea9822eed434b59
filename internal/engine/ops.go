package engine

import (
	"context"

	"github.com/iamNilotpal/ignite/internal/logrecord"
	ignerrors "github.com/iamNilotpal/ignite/pkg/errors"
)

// Get returns the value stored for key.
func (e *Engine) Get(ctx context.Context, key string) ([]byte, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ptr, ok := e.idx.Get(key)
	if !ok {
		return nil, ignerrors.NewKeyNotFoundError(key)
	}

	cmd, err := e.reader.ReadAt(ptr)
	if err != nil {
		return nil, err
	}

	if cmd.Set == nil {
		return nil, ignerrors.NewUnexpectedRecordKindError(key, ptr.Generation)
	}

	return []byte(cmd.Set.Value), nil
}

// Set stores value under key, replacing any existing value. It appends a
// Set record to the active segment, updates the keydir, and runs
// compaction synchronously if doing so pushed the data directory's stale
// byte count past its configured threshold.
func (e *Engine) Set(ctx context.Context, key string, value []byte) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ptr, err := e.writer.Append(logrecord.NewSet(key, string(value)))
	if err != nil {
		return err
	}

	e.idx.Set(key, ptr)

	return e.maybeCompactLocked()
}

// Remove deletes key. It fails with an unknown-key error, writing nothing,
// if key has no current value.
func (e *Engine) Remove(ctx context.Context, key string) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.idx.Get(key); !ok {
		return ignerrors.NewUnknownKeyError(key)
	}

	ptr, err := e.writer.Append(logrecord.NewRemove(key))
	if err != nil {
		return err
	}

	if _, err := e.idx.Remove(key, ptr.Length); err != nil {
		return err
	}

	return e.maybeCompactLocked()
}
