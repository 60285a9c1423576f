package handler

import (
	"errors"
	"testing"

	"github.com/torrust/tracker-deployer/internal/domain/environment"
)

func TestShowHandlerReturnsPersistedState(t *testing.T) {
	deps := newTestDeps(t)
	created, err := (&CreateHandler{Deps: deps}).Handle(writeEnvFile(t, "show-env"))
	if err != nil {
		t.Fatalf("create: %s", err)
	}

	state, err := (&ShowHandler{Deps: deps}).Handle(created.Core().Name())
	if err != nil {
		t.Fatalf("Handle: %s", err)
	}
	if state.Kind != environment.KindCreated {
		t.Fatalf("expected KindCreated, got %s", state.Kind)
	}
}

func TestShowHandlerReportsNotFound(t *testing.T) {
	deps := newTestDeps(t)

	_, err := (&ShowHandler{Deps: deps}).Handle(mustParseEnvName(t, "missing-env"))
	var herr *HandlerError
	if !errors.As(err, &herr) {
		t.Fatalf("expected a *HandlerError, got %v (%T)", err, err)
	}
	if herr.ExitCode != ExitValidationOrState {
		t.Fatalf("expected ExitValidationOrState, got %v", herr.ExitCode)
	}
}
