package handler

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateHandlerPersistsNewEnvironment(t *testing.T) {
	deps := newTestDeps(t)
	envFile := writeEnvFile(t, "my-env")
	h := &CreateHandler{Deps: deps}

	created, err := h.Handle(envFile, false)
	if err != nil {
		t.Fatalf("Handle: %s", err)
	}
	if created.Core().Name().String() != "my-env" {
		t.Fatalf("unexpected name: %s", created.Core().Name())
	}
	if !deps.Repo.Exists(created.Core().Name()) {
		t.Fatal("expected environment to be persisted")
	}
}

func TestCreateHandlerRejectsAlreadyExisting(t *testing.T) {
	deps := newTestDeps(t)
	envFile := writeEnvFile(t, "dup-env")
	h := &CreateHandler{Deps: deps}

	if _, err := h.Handle(envFile, false); err != nil {
		t.Fatalf("first Handle: %s", err)
	}
	if _, err := h.Handle(envFile, false); err == nil {
		t.Fatal("expected an error re-creating an existing environment")
	}
}

func TestCreateHandlerRejectsMissingFile(t *testing.T) {
	deps := newTestDeps(t)
	h := &CreateHandler{Deps: deps}

	if _, err := h.Handle("/no/such/file.json", false); err == nil {
		t.Fatal("expected an error for a missing env file")
	}
}

func TestCreateHandlerGeneratesSSHKeyWhenRequested(t *testing.T) {
	deps := newTestDeps(t)
	dir := t.TempDir()
	privPath := filepath.Join(dir, "id_rsa")
	pubPath := filepath.Join(dir, "id_rsa.pub")
	envFile := writeEnvFileWithKeyPaths(t, "keygen-env", privPath, pubPath)
	h := &CreateHandler{Deps: deps}

	if _, err := h.Handle(envFile, true); err != nil {
		t.Fatalf("Handle: %s", err)
	}
	if _, err := os.Stat(privPath); err != nil {
		t.Fatalf("expected private key to be generated: %s", err)
	}
	if _, err := os.Stat(pubPath); err != nil {
		t.Fatalf("expected public key to be generated: %s", err)
	}
}

func TestCreateHandlerDoesNotOverwriteExistingSSHKey(t *testing.T) {
	deps := newTestDeps(t)
	dir := t.TempDir()
	privPath := filepath.Join(dir, "id_rsa")
	pubPath := filepath.Join(dir, "id_rsa.pub")
	if err := os.WriteFile(privPath, []byte("existing-private-key"), 0o600); err != nil {
		t.Fatalf("seed private key: %s", err)
	}
	envFile := writeEnvFileWithKeyPaths(t, "keygen-existing-env", privPath, pubPath)
	h := &CreateHandler{Deps: deps}

	if _, err := h.Handle(envFile, true); err != nil {
		t.Fatalf("Handle: %s", err)
	}
	contents, err := os.ReadFile(privPath)
	if err != nil {
		t.Fatalf("read private key: %s", err)
	}
	if string(contents) != "existing-private-key" {
		t.Fatal("expected existing private key to be left untouched")
	}
}
