// Package trace writes human-readable trace files for command failures:
// one file per failed run under the Writer's traces directory, named
// {timestamp}-{command}.log. The CLI roots that directory at
// {data-dir}/traces, shared by every environment; trace files are not
// kept per environment. Each file carries the failure metadata and the full
// error chain so an operator can diagnose a failure without re-running
// the command with more verbose logging.
package trace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/torrust/tracker-deployer/internal/domain/environment"
	pkgerrors "github.com/torrust/tracker-deployer/pkg/errors"
)

// Writer generates trace files under a fixed traces directory.
type Writer struct {
	tracesDir string
	clock     Clock
}

// NewWriter returns a Writer rooted at tracesDir. A nil clock uses
// SystemClock.
func NewWriter(tracesDir string, clock Clock) *Writer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Writer{tracesDir: tracesDir, clock: clock}
}

// TracesDir returns the directory trace files are written under.
func (w *Writer) TracesDir() string { return w.tracesDir }

func formatTrace[S ~string](
	title string,
	base environment.BaseFailureContext,
	failedStep S,
	errorKind pkgerrors.ErrorKind,
	err error,
) string {
	var b strings.Builder
	b.WriteString(header(title))
	fmt.Fprintf(&b, "Trace ID: %s\n", base.TraceID)
	fmt.Fprintf(&b, "Failed At: %s\n", base.FailedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Execution Started: %s\n", base.ExecutionStartedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Execution Duration: %s\n", base.ExecutionDuration)
	fmt.Fprintf(&b, "Error Summary: %s\n", base.ErrorSummary)
	fmt.Fprintf(&b, "Failed Step: %s\n", string(failedStep))
	fmt.Fprintf(&b, "Error Kind: %s\n\n", errorKind)
	b.WriteString(errorChainHeader())
	b.WriteString(formatErrorChain(err))
	b.WriteString(footer())
	return b.String()
}

// writeTrace creates the traces directory if needed and writes content to
// {timestamp}-{command}.log, returning the full path.
func (w *Writer) writeTrace(command, content string) (string, error) {
	if err := os.MkdirAll(w.tracesDir, 0o755); err != nil {
		return "", fmt.Errorf("trace: create traces dir %s: %w", w.tracesDir, err)
	}
	filename := fmt.Sprintf("%s-%s.log", w.clock.Now().Format("20060102-150405"), command)
	path := filepath.Join(w.tracesDir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("trace: write %s: %w", path, err)
	}
	return path, nil
}

// WriteProvisionTrace writes a trace file for a ProvisionFailed environment.
func (w *Writer) WriteProvisionTrace(ctx environment.ProvisionFailureContext, err error) (string, error) {
	content := formatTrace("PROVISION FAILURE TRACE", ctx.Base, ctx.FailedStep, ctx.ErrorKind, err)
	return w.writeTrace("provision", content)
}

// WriteConfigureTrace writes a trace file for a ConfigureFailed environment.
func (w *Writer) WriteConfigureTrace(ctx environment.ConfigureFailureContext, err error) (string, error) {
	content := formatTrace("CONFIGURE FAILURE TRACE", ctx.Base, ctx.FailedStep, ctx.ErrorKind, err)
	return w.writeTrace("configure", content)
}

// WriteReleaseTrace writes a trace file for a ReleaseFailed environment.
func (w *Writer) WriteReleaseTrace(ctx environment.ReleaseFailureContext, err error) (string, error) {
	content := formatTrace("RELEASE FAILURE TRACE", ctx.Base, ctx.FailedStep, ctx.ErrorKind, err)
	return w.writeTrace("release", content)
}

// WriteRunTrace writes a trace file for a RunFailed environment.
func (w *Writer) WriteRunTrace(ctx environment.RunFailureContext, err error) (string, error) {
	content := formatTrace("RUN FAILURE TRACE", ctx.Base, ctx.FailedStep, ctx.ErrorKind, err)
	return w.writeTrace("run", content)
}

// WriteDestroyTrace writes a trace file for a DestroyFailed environment.
func (w *Writer) WriteDestroyTrace(ctx environment.DestroyFailureContext, err error) (string, error) {
	content := formatTrace("DESTROY FAILURE TRACE", ctx.Base, ctx.FailedStep, ctx.ErrorKind, err)
	return w.writeTrace("destroy", content)
}

// WriteRegisterTrace writes a trace file for a failed register command. The
// environment itself stays in Created (register has no dedicated failure
// state), but the failure is still traced like every other command.
func (w *Writer) WriteRegisterTrace(ctx environment.RegisterFailureContext, err error) (string, error) {
	content := formatTrace("REGISTER FAILURE TRACE", ctx.Base, ctx.FailedStep, ctx.ErrorKind, err)
	return w.writeTrace("register", content)
}
