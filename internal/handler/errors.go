// Package handler implements one handler per CLI command: the only layer
// that combines persistence (C6), state transitions (C5), step execution
// (C7), and trace reporting (C9) into the six-step control flow every
// lifecycle-transition command follows (spec.md §4.8). The read-only and
// housekeeping commands (create, show, list, validate, test, purge,
// render) run no step sequence with a failure state.
package handler

import (
	"errors"
	"fmt"

	"github.com/torrust/tracker-deployer/internal/domain/environment"
	"github.com/torrust/tracker-deployer/internal/jsonrepo"
	"github.com/torrust/tracker-deployer/internal/valueobject"
	pkgerrors "github.com/torrust/tracker-deployer/pkg/errors"
)

// ExitCode mirrors spec.md §6.1's exit-code table so cmd/tracker-deployer
// can translate a handler error straight into os.Exit without its own
// classification logic.
type ExitCode int

const (
	ExitSuccess           ExitCode = 0
	ExitValidationOrState ExitCode = 1
	ExitExternalTool      ExitCode = 2
	ExitIO                ExitCode = 3
)

// HandlerError is the uniform error type every handler returns, carrying
// the exit code the CLI layer should use and, for step failures, the path
// to the trace file written for this run.
type HandlerError struct {
	ExitCode      ExitCode
	Message       string
	TraceFilePath string
	ErrorKind     pkgerrors.ErrorKind
	Cause         error
}

func (e *HandlerError) Error() string {
	if e.TraceFilePath != "" {
		return fmt.Sprintf("%s (trace: %s)", e.Message, e.TraceFilePath)
	}
	return e.Message
}

func (e *HandlerError) Unwrap() error { return e.Cause }

// NotFoundError builds the handler error for an environment name with no
// persisted document.
func NotFoundError(name valueobject.EnvironmentName) *HandlerError {
	return &HandlerError{
		ExitCode: ExitValidationOrState,
		Message:  fmt.Sprintf("environment %q not found", name),
	}
}

// InvalidStateError builds the handler error for a command invoked against
// an environment in the wrong lifecycle state.
func InvalidStateError(name valueobject.EnvironmentName, expected, actual environment.StateName) *HandlerError {
	return &HandlerError{
		ExitCode: ExitValidationOrState,
		Message: fmt.Sprintf(
			"environment %q is %q, expected %q", name, actual, expected,
		),
	}
}

// ConfigurationError builds the handler error for invalid user input (bad
// config file, flag combination).
func ConfigurationError(message string, cause error) *HandlerError {
	return &HandlerError{ExitCode: ExitValidationOrState, Message: message, Cause: cause}
}

// IOError builds the handler error for a persistence or filesystem failure
// unrelated to step execution.
func IOError(message string, cause error) *HandlerError {
	return &HandlerError{ExitCode: ExitIO, Message: message, Cause: cause}
}

// isNotFound reports whether err is (or wraps) a jsonrepo.NotFoundError.
func isNotFound(err error) bool {
	var notFound *jsonrepo.NotFoundError
	return errors.As(err, &notFound)
}

// StepFailureError builds the handler error for a failed step sequence,
// after the failure state has been persisted and a trace file written.
func StepFailureError(message, traceFilePath string, kind pkgerrors.ErrorKind, cause error) *HandlerError {
	return &HandlerError{
		ExitCode:      ExitExternalTool,
		Message:       message,
		TraceFilePath: traceFilePath,
		ErrorKind:     kind,
		Cause:         cause,
	}
}
