// Package options provides data structures and functions for configuring
// the Ignite database. It defines the parameters that control Ignite's
// storage behavior and network surface: the data directory, the compaction
// threshold, the storage engine implementation, and the default bind
// address used by the server binary.
package options

import "strings"

// EngineKind selects which Store implementation an Instance or server binds
// to. The log-structured engine (EngineKindLog) is the reference
// implementation described by this system; EngineKindBolt delegates to an
// existing embedded database library instead (see internal/bolten).
type EngineKind string

const (
	EngineKindLog  EngineKind = "log"
	EngineKindBolt EngineKind = "bolt"
)

// Options defines the configuration parameters for an Ignite instance.
// It provides control over storage behavior and, for the network surface,
// which address to bind.
type Options struct {
	// Specifies the base path where segment files (or, for EngineKindBolt,
	// the single database file) are stored.
	//
	// Default: "/var/lib/ignitedb"
	DataDir string `json:"dataDir"`

	// CompactionThreshold is the number of stale bytes the log-structured
	// engine tolerates across its segments before it synchronously runs
	// compaction. Has no effect on EngineKindBolt.
	//
	// Default: 1,048,576 (1 MiB)
	CompactionThreshold uint64 `json:"compactionThreshold"`

	// BindAddr is the TCP address the server binary listens on.
	//
	// Default: "127.0.0.1:8080"
	BindAddr string `json:"bindAddr"`

	// Engine selects the storage engine implementation.
	//
	// Default: EngineKindLog
	Engine EngineKind `json:"engine"`
}

// OptionFunc is a function type that modifies the Ignite system's configuration.
type OptionFunc func(*Options)

// Applies a predefined set of default configuration values to the Options struct.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		opts := NewDefaultOptions()
		o.DataDir = opts.DataDir
		o.BindAddr = opts.BindAddr
		o.Engine = opts.Engine
		o.CompactionThreshold = opts.CompactionThreshold
	}
}

// Sets the primary data directory for Ignite.
func WithDataDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.DataDir = directory
		}
	}
}

// Sets the stale-bytes threshold that triggers synchronous compaction.
func WithCompactionThreshold(bytes uint64) OptionFunc {
	return func(o *Options) {
		if bytes > 0 {
			o.CompactionThreshold = bytes
		}
	}
}

// Sets the TCP address the server binds to.
func WithBindAddr(addr string) OptionFunc {
	return func(o *Options) {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			o.BindAddr = addr
		}
	}
}

// Selects the storage engine implementation.
func WithEngineKind(kind EngineKind) OptionFunc {
	return func(o *Options) {
		if kind == EngineKindLog || kind == EngineKindBolt {
			o.Engine = kind
		}
	}
}
