package index

import (
	"sync"
	"sync/atomic"

	"github.com/iamNilotpal/ignite/internal/logio"
	"go.uber.org/zap"
)

// Index is the in-memory keydir: a hash table mapping every live key to the
// location of its most recent Set record on disk. It is the sole authority
// on which keys exist and where their values live; internal/engine never
// touches a segment file without first consulting it.
//
// Alongside the keydir itself, Index tracks how many bytes across the data
// directory are stale — superseded by a later write or a Remove — so the
// engine can decide when compaction has become worthwhile without
// re-scanning every segment.
type Index struct {
	dataDir string
	log     *zap.SugaredLogger

	mu      sync.RWMutex
	entries map[string]logio.Pointer
	stale   uint64

	closed atomic.Bool
}

// Config encapsulates the configuration parameters required to initialize an Index.
type Config struct {
	DataDir string             // Specifies the filesystem directory containing segment files.
	Logger  *zap.SugaredLogger // Provides structured logging capabilities for Index operations.
}
