// Package step implements the small, independently testable operations a
// command handler sequences to drive an environment from one lifecycle
// state to the next: rendering a project's templates, running a command
// over SSH, or polling a remote host for an expected condition. A step
// receives only the narrow capability it needs — never the environment
// aggregate itself — so it can be exercised with a fake in isolation.
package step

import (
	"context"
	"time"
)

// Step is the uniform shape every step in a command's sequence satisfies.
type Step interface {
	// Name identifies the step for logging and failure-context reporting.
	Name() string
	Execute(ctx context.Context) error
}

// Clock abstracts wall-clock access for poll-based validation steps, so
// tests can run a wait loop without a real timeout.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock, backed by time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FuncStep adapts a plain function to Step, for one-off steps whose
// construction depends on a prior step's result (e.g. an SSH client that
// can't be built until an earlier step has captured the target's address).
type FuncStep struct {
	name string
	fn   func(ctx context.Context) error
}

// NewFuncStep wraps fn as a named Step.
func NewFuncStep(name string, fn func(ctx context.Context) error) *FuncStep {
	return &FuncStep{name: name, fn: fn}
}

func (s *FuncStep) Name() string { return s.name }

func (s *FuncStep) Execute(ctx context.Context) error { return s.fn(ctx) }

var _ Step = (*FuncStep)(nil)
