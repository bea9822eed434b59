// Package engine provides the log-structured storage engine at the heart of
// the Ignite key-value store.
//
// The engine coordinates three subsystems:
//   - logio: append-only access to segment files on disk
//   - index: the in-memory keydir mapping keys to their location on disk
//   - compaction (this package): reclaiming space taken up by stale records
//
// Writes are append-only: a Set or Remove is encoded once, appended to the
// currently active segment, and the keydir is updated to point at the new
// record. Reads never touch the keydir's write path; they look up a
// pointer and read exactly the bytes it names. When enough bytes across the
// data directory have gone stale, the engine rewrites every live key into a
// fresh segment and discards the old ones.
package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/iamNilotpal/ignite/internal/index"
	"github.com/iamNilotpal/ignite/internal/logio"
	"github.com/iamNilotpal/ignite/internal/logrecord"
	"github.com/iamNilotpal/ignite/internal/segment"
	"github.com/iamNilotpal/ignite/internal/store"
	ignerrors "github.com/iamNilotpal/ignite/pkg/errors"
	"github.com/iamNilotpal/ignite/pkg/filesys"
	"github.com/iamNilotpal/ignite/pkg/options"
	"go.uber.org/zap"
)

// ErrEngineClosed is returned when attempting to perform operations on a closed engine.
var ErrEngineClosed = errors.New("operation failed: cannot access closed engine")

var _ store.Store = (*Engine)(nil)

// Engine is the main database engine that coordinates the index and the
// segment files it describes. Every mutating operation (Set, Remove, and
// the compaction it can trigger) is serialized through mu, matching a
// single-writer design: only one goroutine ever appends to the active
// segment at a time. Get takes mu as well, so a read never races a
// compaction that is closing and deleting the segment its pointer names.
type Engine struct {
	options *options.Options
	log     *zap.SugaredLogger
	closed  atomic.Bool

	idx    *index.Index
	reader *logio.Reader

	mu     sync.Mutex
	writer *logio.Writer
}

// Config holds all the parameters needed to initialize a new Engine instance.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger
}

// New opens the data directory named by config.Options.DataDir, replaying
// its segment files to rebuild the keydir, and returns an Engine ready to
// serve reads and writes. Writes always go to a fresh segment whose
// generation is one past the highest generation on disk (1 if there is none).
func New(ctx context.Context, config *Config) (*Engine, error) {
	if config == nil || config.Options == nil || config.Logger == nil {
		return nil, ignerrors.NewValidationError(
			nil, ignerrors.ErrorCodeInvalidInput, "engine configuration is required",
		).WithField("config").WithRule("required")
	}

	dataDir := config.Options.DataDir
	config.Logger.Infow("opening engine", "dataDir", dataDir)

	if err := filesys.CreateDir(dataDir, 0755, true); err != nil {
		return nil, ignerrors.NewStorageError(err, ignerrors.ErrorCodeIO, "failed to create data directory").
			WithPath(dataDir)
	}

	idx, err := index.New(ctx, &index.Config{DataDir: dataDir, Logger: config.Logger})
	if err != nil {
		return nil, err
	}

	generations, err := segment.List(dataDir)
	if err != nil {
		return nil, err
	}

	reader := logio.NewReader(dataDir, config.Logger)

	for _, gen := range generations {
		if err := replaySegment(dataDir, idx, gen); err != nil {
			return nil, err
		}
	}

	activeGen := segment.NextGeneration(generations)

	writer, err := logio.NewWriter(dataDir, activeGen, config.Logger)
	if err != nil {
		return nil, err
	}

	config.Logger.Infow(
		"engine opened",
		"dataDir", dataDir,
		"segments", len(generations),
		"keys", idx.Len(),
		"activeGeneration", activeGen,
	)

	return &Engine{
		options: config.Options,
		log:     config.Logger,
		idx:     idx,
		reader:  reader,
		writer:  writer,
	}, nil
}

// replaySegment replays every record in generation's segment into idx,
// reconstructing the keydir one record at a time in the order they were
// originally written. A Set installs (or overwrites) a keydir entry; a
// Remove drops one and its own bytes, along with whatever it superseded,
// are immediately counted as stale.
func replaySegment(dataDir string, idx *index.Index, generation uint64) error {
	return logio.Iterate(dataDir, generation, func(ptr logio.Pointer, cmd logrecord.Command) error {
		switch {
		case cmd.Set != nil:
			if old, hadOld := idx.Get(cmd.Set.Key); hadOld {
				idx.AddStale(old.Length)
			}
			idx.Load(cmd.Set.Key, ptr)
		case cmd.Remove != nil:
			if old, existed := idx.Drop(cmd.Remove.Key); existed {
				idx.AddStale(old.Length)
			}
			idx.AddStale(ptr.Length)
		}
		return nil
	})
}

// Close gracefully shuts down the engine, flushing and closing the active
// segment and releasing every open read handle.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrEngineClosed
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var firstErr error
	if err := e.writer.Close(); err != nil {
		firstErr = err
	}
	if err := e.reader.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := e.idx.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	e.log.Infow("engine closed")
	return firstErr
}
