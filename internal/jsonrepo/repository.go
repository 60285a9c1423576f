// Package jsonrepo implements the generic, lock-protected JSON file
// repository that every aggregate in this module persists through: write to
// a temp file, fsync-free atomic rename over the final path, guarded by an
// exclusive github.com/gofrs/flock lock so two CLI invocations against the
// same environment never interleave writes.
package jsonrepo

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// DefaultLockTimeout bounds how long Save/Load/Delete poll for the
// exclusive lock before returning a ConflictError.
const DefaultLockTimeout = 10 * time.Second

// Repository persists a single document type T as JSON at a caller-chosen
// path. T must be a plain value that round-trips through encoding/json
// (or implements json.Marshaler/Unmarshaler, as the valueobject and
// AnyEnvironmentState types do).
type Repository[T any] struct {
	lockTimeout time.Duration
}

// New returns a Repository with the given lock acquisition timeout. A
// non-positive timeout uses DefaultLockTimeout.
func New[T any](lockTimeout time.Duration) *Repository[T] {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &Repository[T]{lockTimeout: lockTimeout}
}

func lockPathFor(path string) string { return path + ".lock" }

func (r *Repository[T]) withLock(path string, fn func() error) error {
	lock := flock.New(lockPathFor(path))
	locked, err := lock.TryLockContext(timeoutContext(r.lockTimeout), 50*time.Millisecond)
	if err != nil {
		return &InternalError{Op: "lock", Path: path, Cause: err}
	}
	if !locked {
		return &ConflictError{Path: path, Timeout: r.lockTimeout.String()}
	}
	defer lock.Unlock()
	return fn()
}

// Save serializes doc as JSON and atomically writes it to path, creating the
// parent directory if missing.
func (r *Repository[T]) Save(path string, doc T) error {
	return r.withLock(path, func() error {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return &InternalError{Op: "save", Path: path, Cause: err}
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return &InternalError{Op: "save", Path: path, Cause: err}
		}
		tmpPath := path + ".tmp"
		if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
			return &InternalError{Op: "save", Path: path, Cause: err}
		}
		if err := os.Rename(tmpPath, path); err != nil {
			return &InternalError{Op: "save", Path: path, Cause: err}
		}
		return nil
	})
}

// Load reads and deserializes the document at path.
func (r *Repository[T]) Load(path string) (T, error) {
	var doc T
	err := r.withLock(path, func() error {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return &NotFoundError{Path: path}
			}
			return &InternalError{Op: "load", Path: path, Cause: err}
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return &InternalError{Op: "load", Path: path, Cause: err}
		}
		return nil
	})
	return doc, err
}

// Exists is a non-locking file-system check.
func (r *Repository[T]) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Delete removes the document at path and best-effort removes its now-empty
// parent directory. Deleting an absent document is not an error (purge
// idempotence, per the propagation policy).
func (r *Repository[T]) Delete(path string) error {
	return r.withLock(path, func() error {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return &InternalError{Op: "delete", Path: path, Cause: err}
		}
		_ = os.Remove(lockPathFor(path))
		_ = os.Remove(filepath.Dir(path))
		return nil
	})
}
