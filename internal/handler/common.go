package handler

import (
	"context"
	"time"

	"github.com/torrust/tracker-deployer/internal/domain/environment"
	"github.com/torrust/tracker-deployer/internal/step"
)

// Clock is reused from internal/step so handlers, steps, and the trace
// writer all see the same injected notion of "now" in tests.
type Clock = step.Clock

// namedStep pairs a runnable step with the failure-step enum value it
// should report if it fails, so a single generic loop can drive any
// command's step sequence while still producing a typed failure context.
type namedStep[S ~string] struct {
	FailedStep S
	Step       step.Step
}

// stepSequenceResult carries everything a handler needs to build either a
// success transition or a failure context after running a step sequence.
type stepSequenceResult[S ~string] struct {
	StartedAt time.Time
	EndedAt   time.Time
	FailedAt  S
	Err       error
}

// runStepSequence executes entries in order, stopping at the first
// failure. Timestamps bracket the whole sequence, per spec.md §4.8 step 4
// ("capture per-step start/end timestamps").
func runStepSequence[S ~string](ctx context.Context, clock Clock, entries []namedStep[S]) stepSequenceResult[S] {
	result := stepSequenceResult[S]{StartedAt: clock.Now()}
	for _, entry := range entries {
		if err := entry.Step.Execute(ctx); err != nil {
			result.FailedAt = entry.FailedStep
			result.Err = err
			result.EndedAt = clock.Now()
			return result
		}
	}
	result.EndedAt = clock.Now()
	return result
}

// newBaseFailureContext builds the failure-context fields shared across
// every command, from a finished (failing) step sequence result.
func newBaseFailureContext[S ~string](result stepSequenceResult[S], err error) environment.BaseFailureContext {
	return environment.BaseFailureContext{
		ErrorSummary:       err.Error(),
		FailedAt:           result.EndedAt,
		ExecutionStartedAt: result.StartedAt,
		ExecutionDuration:  result.EndedAt.Sub(result.StartedAt),
		TraceID:            environment.NewTraceID(),
	}
}
