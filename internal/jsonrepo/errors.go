package jsonrepo

import "fmt"

// NotFoundError is returned by Load when the document does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("not found: %s", e.Path) }

// ConflictError is returned when the exclusive lock could not be acquired
// before the configured timeout elapsed.
type ConflictError struct {
	Path    string
	Timeout string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: another process holds the lock on %s (timed out after %s)", e.Path, e.Timeout)
}

// InternalError wraps an I/O or serialization failure that does not fit the
// NotFound/Conflict taxonomy. The underlying cause is recoverable via
// errors.Unwrap / errors.As.
type InternalError struct {
	Op    string
	Path  string
	Cause error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error during %s on %s: %s", e.Op, e.Path, e.Cause)
}

func (e *InternalError) Unwrap() error { return e.Cause }
