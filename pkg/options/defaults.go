package options

const (
	// Specifies the default base directory where IgniteDB will store its data files.
	// If no other directory is specified during initialization, this path will be used.
	DefaultDataDir = "/var/lib/ignitedb"

	// DefaultCompactionThreshold is the number of stale bytes tolerated across
	// a data directory's segments before the log-structured engine runs
	// compaction synchronously, after the mutating operation that crossed it.
	DefaultCompactionThreshold uint64 = 1024 * 1024

	// DefaultBindAddr is the address the server binary listens on when none
	// is configured.
	DefaultBindAddr = "127.0.0.1:8080"

	// DefaultEngine is the storage engine used when none is configured.
	DefaultEngine = EngineKindLog
)

// Holds the default configuration settings for an IgniteDB instance.
var defaultOptions = Options{
	DataDir:             DefaultDataDir,
	CompactionThreshold: DefaultCompactionThreshold,
	BindAddr:            DefaultBindAddr,
	Engine:              DefaultEngine,
}

func NewDefaultOptions() Options {
	return defaultOptions
}
