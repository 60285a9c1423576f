package trace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/torrust/tracker-deployer/internal/domain/environment"
	pkgerrors "github.com/torrust/tracker-deployer/pkg/errors"
)

func testBase(t *testing.T, summary string) environment.BaseFailureContext {
	t.Helper()
	now := time.Date(2025, 10, 7, 12, 0, 0, 0, time.UTC)
	return environment.BaseFailureContext{
		ErrorSummary:       summary,
		FailedAt:           now,
		ExecutionStartedAt: now,
		ExecutionDuration:  5 * time.Second,
	}
}

func TestWriteRunTraceUsesTimestampAndCommandFilename(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "traces")
	clock := MockClock{Fixed: time.Date(2025, 10, 7, 12, 0, 0, 0, time.UTC)}
	w := NewWriter(dir, clock)

	ctx := environment.RunFailureContext{
		Base:       testBase(t, "container failed to start"),
		FailedStep: environment.RunStepStartServices,
		ErrorKind:  pkgerrors.InfrastructureOperation,
	}

	path, err := w.WriteRunTrace(ctx, errors.New("docker compose up: exit status 1"))
	if err != nil {
		t.Fatalf("WriteRunTrace: %s", err)
	}

	if !strings.HasSuffix(path, "20251007-120000-run.log") {
		t.Fatalf("unexpected trace filename: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read trace file: %s", err)
	}
	content := string(data)
	for _, want := range []string{
		"RUN FAILURE TRACE",
		"Failed Step: start_services",
		"Error Kind: InfrastructureOperation",
		"Error Summary: container failed to start",
		"ERROR CHAIN",
		"docker compose up: exit status 1",
		"END OF TRACE",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("trace content missing %q:\n%s", want, content)
		}
	}
}

func TestWriteTraceWalksWrappedErrorChain(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "traces")
	w := NewWriter(dir, MockClock{Fixed: time.Now()})

	inner := errors.New("connection refused")
	wrapped := fmt.Errorf("ssh dial failed: %w", inner)

	ctx := environment.ConfigureFailureContext{
		Base:       testBase(t, "ssh dial failed"),
		FailedStep: environment.ConfigureStepWaitForSSH,
		ErrorKind:  pkgerrors.Timeout,
	}
	path, err := w.WriteConfigureTrace(ctx, wrapped)
	if err != nil {
		t.Fatalf("WriteConfigureTrace: %s", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read trace file: %s", err)
	}
	content := string(data)
	if !strings.Contains(content, "1. ssh dial failed: connection refused") {
		t.Errorf("expected outer chain entry, got:\n%s", content)
	}
	if !strings.Contains(content, "2. connection refused") {
		t.Errorf("expected inner chain entry, got:\n%s", content)
	}
}
