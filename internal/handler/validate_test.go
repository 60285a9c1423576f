package handler

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateHandlerAcceptsValidFile(t *testing.T) {
	deps := newTestDeps(t)
	envFile := writeEnvFile(t, "valid-env")
	h := &ValidateHandler{Deps: deps}

	if err := h.Handle(envFile); err != nil {
		t.Fatalf("Handle: %s", err)
	}
	if deps.Repo.Exists(mustParseEnvName(t, "valid-env")) {
		t.Fatal("validate must not persist anything")
	}
}

func TestValidateHandlerRejectsMalformedFile(t *testing.T) {
	deps := newTestDeps(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"environment_name": ""}`), 0o644); err != nil {
		t.Fatalf("write bad env file: %s", err)
	}
	h := &ValidateHandler{Deps: deps}

	if err := h.Handle(path); err == nil {
		t.Fatal("expected an error for an invalid env file")
	}
}
