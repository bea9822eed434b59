package errors

// BackendError carries a message surfaced by an alternative storage backend
// (e.g. the bbolt-backed engine) that the log-structured engine's own error
// taxonomy has no vocabulary for. It exists so callers at the network/CLI
// boundary can treat every engine implementation uniformly: extract a
// human-readable message and an ErrorCode, regardless of which backend
// produced the failure.
type BackendError struct {
	*baseError
	backend string // Name of the backend that raised the error, e.g. "bbolt".
}

// NewBackendError wraps an error raised by a delegated storage backend.
func NewBackendError(err error, backend string, msg string) *BackendError {
	return &BackendError{baseError: NewBaseError(err, ErrorCodeBackend, msg), backend: backend}
}

// WithDetail adds contextual information while maintaining the BackendError type.
func (be *BackendError) WithDetail(key string, value any) *BackendError {
	be.baseError.WithDetail(key, value)
	return be
}

// Backend returns the name of the backend that raised this error.
func (be *BackendError) Backend() string {
	return be.backend
}
