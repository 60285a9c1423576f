package handler

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRenderHandlerByEnvFileWritesCoreArtifacts(t *testing.T) {
	deps := newTestDeps(t)
	envFile := writeEnvFile(t, "render-env")
	outputDir := filepath.Join(t.TempDir(), "out")

	h := &RenderHandler{Deps: deps}
	dir, err := h.Handle(RenderOptions{EnvFilePath: envFile, OutputDir: outputDir})
	if err != nil {
		t.Fatalf("Handle: %s", err)
	}
	if dir != outputDir {
		t.Fatalf("expected output dir %s, got %s", outputDir, dir)
	}

	for _, rel := range []string{
		filepath.Join("infra", "variables.tf"),
		filepath.Join("tracker", "tracker.env"),
		filepath.Join("compose", "docker-compose.yml"),
	} {
		if _, err := os.Stat(filepath.Join(outputDir, rel)); err != nil {
			t.Fatalf("expected %s to be rendered: %s", rel, err)
		}
	}

	// Optional services were not configured: their artifacts must not appear.
	if _, err := os.Stat(filepath.Join(outputDir, "monitoring")); !os.IsNotExist(err) {
		t.Fatalf("expected no monitoring artifacts, stat err: %v", err)
	}
}

func TestRenderHandlerRequiresOutputDirWithEnvFile(t *testing.T) {
	deps := newTestDeps(t)
	envFile := writeEnvFile(t, "render-env-2")

	h := &RenderHandler{Deps: deps}
	if _, err := h.Handle(RenderOptions{EnvFilePath: envFile}); err == nil {
		t.Fatal("expected an error when --output-dir is missing")
	}
}

func TestRenderHandlerRefusesNonEmptyOutputDirWithoutForce(t *testing.T) {
	deps := newTestDeps(t)
	envFile := writeEnvFile(t, "render-env-3")
	outputDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(outputDir, "existing.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("seed output dir: %s", err)
	}

	h := &RenderHandler{Deps: deps}
	if _, err := h.Handle(RenderOptions{EnvFilePath: envFile, OutputDir: outputDir}); err == nil {
		t.Fatal("expected an error rendering into a non-empty directory without --force")
	}
	if _, err := h.Handle(RenderOptions{EnvFilePath: envFile, OutputDir: outputDir, Force: true}); err != nil {
		t.Fatalf("expected --force to allow rendering: %s", err)
	}
}
