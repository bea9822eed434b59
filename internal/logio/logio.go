// Package logio provides append-only, sequential access to Ignite's segment
// files. A Writer appends encoded command records to the currently active
// segment and reports where each one landed; a Reader re-reads a record
// given that location, or replays an entire segment in order during
// recovery.
//
// The package knows nothing about which keys are live or which segments are
// stale — that bookkeeping belongs to internal/index and internal/engine.
// logio only knows how to get bytes onto and off of disk.
package logio

import (
	"bufio"
	"io"
	"os"
	"sync"

	"github.com/iamNilotpal/ignite/internal/logrecord"
	"github.com/iamNilotpal/ignite/internal/segment"
	ignerrors "github.com/iamNilotpal/ignite/pkg/errors"
	"go.uber.org/zap"
)

// Pointer locates a single record inside a data directory: which segment
// generation it lives in, the byte offset the record starts at, and how
// many bytes it occupies.
type Pointer struct {
	Generation uint64
	Offset     int64
	Length     int64
}

// Writer appends command records to one segment file.
type Writer struct {
	mu         sync.Mutex
	file       *os.File
	buf        *bufio.Writer
	generation uint64
	offset     int64
	log        *zap.SugaredLogger
}

// NewWriter opens (creating if necessary) the segment file for generation
// within dataDir, appending to whatever it already contains.
func NewWriter(dataDir string, generation uint64, log *zap.SugaredLogger) (*Writer, error) {
	path := segment.Path(dataDir, generation)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, ignerrors.NewStorageError(err, ignerrors.ErrorCodeIO, "failed to open segment file for writing").
			WithPath(path).
			WithDetail("generation", generation)
	}

	offset, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		_ = file.Close()
		return nil, ignerrors.NewStorageError(err, ignerrors.ErrorCodeIO, "failed to seek to end of segment file").
			WithPath(path).
			WithDetail("generation", generation)
	}

	return &Writer{
		file:       file,
		buf:        bufio.NewWriter(file),
		generation: generation,
		offset:     offset,
		log:        log,
	}, nil
}

// Generation returns the segment generation this writer appends to.
func (w *Writer) Generation() uint64 {
	return w.generation
}

// Size returns the number of bytes written to the segment so far.
func (w *Writer) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.offset
}

// Append encodes cmd and writes it to the end of the segment, returning a
// Pointer describing where it landed. Every append is flushed before
// returning, so a Pointer handed back to a caller always refers to bytes a
// Reader opening the file fresh can see.
func (w *Writer) Append(cmd logrecord.Command) (Pointer, error) {
	data, err := logrecord.Encode(cmd)
	if err != nil {
		return Pointer{}, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	start := w.offset

	if _, err := w.buf.Write(data); err != nil {
		return Pointer{}, ignerrors.NewStorageError(err, ignerrors.ErrorCodeIO, "failed to write record").
			WithDetail("generation", w.generation).
			WithOffset(int(start))
	}

	if err := w.buf.Flush(); err != nil {
		return Pointer{}, ignerrors.NewStorageError(err, ignerrors.ErrorCodeIO, "failed to flush record").
			WithDetail("generation", w.generation).
			WithOffset(int(start))
	}

	w.offset += int64(len(data))

	return Pointer{Generation: w.generation, Offset: start, Length: int64(len(data))}, nil
}

// Close flushes and closes the underlying segment file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.buf.Flush(); err != nil {
		return ignerrors.NewStorageError(err, ignerrors.ErrorCodeIO, "failed to flush segment on close").
			WithDetail("generation", w.generation)
	}

	if err := w.file.Close(); err != nil {
		return ignerrors.NewStorageError(err, ignerrors.ErrorCodeIO, "failed to close segment file").
			WithDetail("generation", w.generation)
	}

	return nil
}

// Reader provides random access and sequential replay over a data
// directory's segment files. It keeps read-only file handles open across
// calls, one per generation touched so far, closed together by Close.
type Reader struct {
	dataDir string
	log     *zap.SugaredLogger

	mu    sync.RWMutex
	files map[uint64]*os.File
}

// NewReader builds a Reader rooted at dataDir.
func NewReader(dataDir string, log *zap.SugaredLogger) *Reader {
	return &Reader{dataDir: dataDir, log: log, files: make(map[uint64]*os.File)}
}

func (r *Reader) handleFor(generation uint64) (*os.File, error) {
	r.mu.RLock()
	file, ok := r.files[generation]
	r.mu.RUnlock()
	if ok {
		return file, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if file, ok := r.files[generation]; ok {
		return file, nil
	}

	path := segment.Path(r.dataDir, generation)
	file, err := os.Open(path)
	if err != nil {
		return nil, ignerrors.NewStorageError(err, ignerrors.ErrorCodeIO, "failed to open segment file for reading").
			WithPath(path).
			WithDetail("generation", generation)
	}

	r.files[generation] = file
	return file, nil
}

// ReadAt resolves a record previously located by Writer.Append.
func (r *Reader) ReadAt(ptr Pointer) (logrecord.Command, error) {
	file, err := r.handleFor(ptr.Generation)
	if err != nil {
		return logrecord.Command{}, err
	}

	data := make([]byte, ptr.Length)
	if _, err := file.ReadAt(data, ptr.Offset); err != nil {
		return logrecord.Command{}, ignerrors.NewStorageError(err, ignerrors.ErrorCodeIO, "failed to read record").
			WithDetail("generation", ptr.Generation).
			WithOffset(int(ptr.Offset))
	}

	cmd, err := logrecord.Decode(data)
	if err != nil {
		return logrecord.Command{}, err
	}

	return cmd, nil
}

// Visit is called by Iterate for every record read from a segment, in the
// order they appear on disk.
type Visit func(ptr Pointer, cmd logrecord.Command) error

// Iterate replays every record in generation's segment file, in order, from
// the beginning. It is used during recovery to rebuild the keydir.
//
// A record that is truncated mid-write (the tail of a segment left behind
// by a crash between Write and Flush) surfaces as an error rather than
// being silently skipped: a partially-written segment is evidence the
// directory was not shut down cleanly, and engine.New refuses to guess
// which trailing bytes were meant to be there.
func Iterate(dataDir string, generation uint64, visit Visit) error {
	path := segment.Path(dataDir, generation)

	file, err := os.Open(path)
	if err != nil {
		return ignerrors.NewStorageError(err, ignerrors.ErrorCodeIO, "failed to open segment file for replay").
			WithPath(path).
			WithDetail("generation", generation)
	}
	defer file.Close()

	dec := logrecord.NewDecoder(file)
	for {
		decoded, err := dec.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return ignerrors.NewStorageError(err, ignerrors.ErrorCodeSegmentCorrupted, "truncated or malformed record during replay").
				WithPath(path).
				WithDetail("generation", generation).
				WithOffset(int(decoded.Offset))
		}

		ptr := Pointer{Generation: generation, Offset: decoded.Offset, Length: decoded.Length}
		if err := visit(ptr, decoded.Command); err != nil {
			return err
		}
	}
}

// Forget closes and discards the cached file handle for generation, if any.
// Called once a segment has been compacted away and deleted from disk, so
// the Reader never holds a handle to a file that no longer exists under
// that path.
func (r *Reader) Forget(generation uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, ok := r.files[generation]
	if !ok {
		return nil
	}
	delete(r.files, generation)

	if err := file.Close(); err != nil {
		return ignerrors.NewStorageError(err, ignerrors.ErrorCodeIO, "failed to close segment file").
			WithDetail("generation", generation)
	}
	return nil
}

// Close releases every file handle the Reader has opened.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for generation, file := range r.files {
		if err := file.Close(); err != nil && firstErr == nil {
			firstErr = ignerrors.NewStorageError(err, ignerrors.ErrorCodeIO, "failed to close segment file").
				WithDetail("generation", generation)
		}
	}
	r.files = make(map[uint64]*os.File)
	return firstErr
}
