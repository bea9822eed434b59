package engine

import (
	"os"

	"github.com/iamNilotpal/ignite/internal/logio"
	"github.com/iamNilotpal/ignite/internal/segment"
	ignerrors "github.com/iamNilotpal/ignite/pkg/errors"
)

// maybeCompactLocked runs compaction if the data directory has accumulated
// at least CompactionThreshold bytes of stale data. Callers must hold mu.
func (e *Engine) maybeCompactLocked() error {
	if e.idx.StaleBytes() < e.options.CompactionThreshold {
		return nil
	}
	return e.compactLocked()
}

// compactLocked rewrites every live key into a fresh segment, points the
// keydir at the new locations, opens a new active segment for further
// writes, and deletes every segment generation compaction made obsolete.
//
// Two new generations are created: one to hold the rewritten live data
// (compactionGen) and one for the engine to keep writing new records to
// once compaction finishes (activeGen). Using two, rather than reusing the
// current active segment for the rewrite, keeps "data being copied forward"
// and "data newly written by the application" from interleaving in the same
// file while compaction is in progress.
func (e *Engine) compactLocked() error {
	dataDir := e.options.DataDir
	oldActiveGen := e.writer.Generation()

	compactionGen := oldActiveGen + 1
	activeGen := oldActiveGen + 2

	compactionWriter, err := logio.NewWriter(dataDir, compactionGen, e.log)
	if err != nil {
		return err
	}

	type rewrite struct {
		key string
		ptr logio.Pointer
	}
	var rewrites []rewrite

	var rangeErr error
	e.idx.Range(func(key string, ptr logio.Pointer) {
		if rangeErr != nil {
			return
		}

		cmd, err := e.reader.ReadAt(ptr)
		if err != nil {
			rangeErr = err
			return
		}

		newPtr, err := compactionWriter.Append(cmd)
		if err != nil {
			rangeErr = err
			return
		}

		rewrites = append(rewrites, rewrite{key: key, ptr: newPtr})
	})
	if rangeErr != nil {
		_ = compactionWriter.Close()
		_ = os.Remove(segment.Path(dataDir, compactionGen))
		return rangeErr
	}

	if err := compactionWriter.Close(); err != nil {
		return err
	}

	for _, r := range rewrites {
		e.idx.Load(r.key, r.ptr)
	}
	e.idx.ResetStale()

	if err := e.writer.Close(); err != nil {
		return err
	}

	newWriter, err := logio.NewWriter(dataDir, activeGen, e.log)
	if err != nil {
		return err
	}
	e.writer = newWriter

	return e.removeGenerationsBelow(compactionGen)
}

// removeGenerationsBelow deletes every segment file with a generation
// strictly less than keepFrom, and drops the reader's cached handle to it
// first so no file descriptor outlives the unlinked file.
func (e *Engine) removeGenerationsBelow(keepFrom uint64) error {
	generations, err := segment.List(e.options.DataDir)
	if err != nil {
		return err
	}

	for _, gen := range generations {
		if gen >= keepFrom {
			continue
		}

		if err := e.reader.Forget(gen); err != nil {
			return err
		}

		path := segment.Path(e.options.DataDir, gen)
		if err := os.Remove(path); err != nil {
			return ignerrors.NewStorageError(err, ignerrors.ErrorCodeIO, "failed to remove compacted segment file").
				WithPath(path).
				WithDetail("generation", gen)
		}
	}

	return nil
}
