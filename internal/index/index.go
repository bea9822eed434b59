// Package index provides the in-memory hash table implementation for the
// ignite key-value store. This package embodies the core Bitcask
// architectural principle: keep every live key in memory with minimal
// metadata while the values themselves stay on disk.
//
// The index enables O(1) key lookups through an in-memory hash table while
// keeping storage overhead minimal. This allows the system to handle
// datasets significantly larger than available RAM while maintaining
// excellent read performance characteristics.
package index

import (
	"context"
	stdErrors "errors"

	"github.com/iamNilotpal/ignite/internal/logio"
	"github.com/iamNilotpal/ignite/pkg/errors"
)

var (
	ErrIndexClosed = stdErrors.New("operation failed: cannot access closed index")
)

// New creates and initializes a new Index instance configured according to
// the provided parameters. The returned Index is empty; callers rebuild it
// from segment files on disk via Load.
func New(ctx context.Context, config *Config) (*Index, error) {
	if config == nil || config.DataDir == "" || config.Logger == nil {
		return nil, errors.NewValidationError(
			nil, errors.ErrorCodeInvalidInput, "Index configuration is required",
		).WithField("config").WithRule("required").WithProvided(config)
	}

	return &Index{
		log:     config.Logger,
		dataDir: config.DataDir,
		entries: make(map[string]logio.Pointer, 2046),
	}, nil
}

// Get returns the location of key's current value, if it has one.
func (idx *Index) Get(key string) (logio.Pointer, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	ptr, ok := idx.entries[key]
	return ptr, ok
}

// Set records that key now lives at ptr, superseding whatever pointer (if
// any) previously occupied that keydir slot. The bytes occupied by the
// superseded record are counted as stale. Returns the pointer that was
// replaced, if there was one.
func (idx *Index) Set(key string, ptr logio.Pointer) (old logio.Pointer, hadOld bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	old, hadOld = idx.entries[key]
	if hadOld {
		idx.stale += uint64(old.Length)
	}
	idx.entries[key] = ptr

	return old, hadOld
}

// Remove deletes key from the keydir. removePointerLen is the byte length of
// the Remove record itself being appended to the log for this deletion; it
// is counted as stale immediately, since a Remove record is never read back
// as live data. Returns an unknown-key IndexError (errors.NewUnknownKeyError)
// if key has no entry.
func (idx *Index) Remove(key string, removePointerLen int64) (old logio.Pointer, err error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	old, ok := idx.entries[key]
	if !ok {
		return logio.Pointer{}, errors.NewUnknownKeyError(key)
	}

	idx.stale += uint64(old.Length)
	idx.stale += uint64(removePointerLen)
	delete(idx.entries, key)

	return old, nil
}

// Load installs ptr for key without affecting the stale-byte counter. It is
// used during recovery replay of Set records, where the caller accounts for
// stale bytes itself via AddStale, and by compaction to install the
// rewritten pointers.
func (idx *Index) Load(key string, ptr logio.Pointer) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.entries[key] = ptr
}

// Drop removes key from the keydir during recovery replay, without error if
// the key was never seen (a Remove can be the first record mentioning a
// key, if the corresponding Set lived in a segment already compacted away
// is impossible, but replay still must tolerate it defensively).
func (idx *Index) Drop(key string) (old logio.Pointer, existed bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	old, existed = idx.entries[key]
	delete(idx.entries, key)
	return old, existed
}

// AddStale increments the stale-byte counter directly, used during recovery
// to account for Remove records encountered while replaying the log.
func (idx *Index) AddStale(n int64) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.stale += uint64(n)
}

// StaleBytes returns the total number of bytes across the data directory
// that no longer contribute to any key's current value.
func (idx *Index) StaleBytes() uint64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.stale
}

// ResetStale zeroes the stale-byte counter, called once compaction has
// rewritten the live data into fresh segments and reclaimed every stale byte
// counted so far.
func (idx *Index) ResetStale() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.stale = 0
}

// Len returns the number of live keys in the keydir.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// Range calls fn for every live key and its pointer. Iteration order is
// unspecified, matching Go's map iteration. fn must not call back into the
// Index.
func (idx *Index) Range(fn func(key string, ptr logio.Pointer)) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	for key, ptr := range idx.entries {
		fn(key, ptr)
	}
}

// Close gracefully shuts down the Index, cleaning up resources and ensuring
// that the index cannot be used after closure.
func (idx *Index) Close() error {
	if !idx.closed.CompareAndSwap(false, true) {
		return ErrIndexClosed
	}

	idx.log.Infow("Closing index system")

	idx.mu.Lock()
	defer idx.mu.Unlock()

	clear(idx.entries)
	idx.entries = nil

	idx.log.Infow("Index system closed successfully")
	return nil
}
