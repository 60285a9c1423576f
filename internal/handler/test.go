package handler

import (
	"bytes"
	"fmt"

	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// TestResult reports the outcome of each read-only check `test` runs
// against a deployed environment.
type TestResult struct {
	SSHReachable      bool
	TrackerHealthy    bool
	SSHError          error
	TrackerHealthErr  error
}

// TestHandler implements `test ENV`: a read-only connectivity and
// health-check probe against a running instance. No state transition, no
// persistence, no trace file — a failed check is reported in TestResult,
// not as a HandlerError, since a negative result is the expected output of
// a diagnostic command, not a handler failure.
type TestHandler struct {
	Deps *Deps
}

func (h *TestHandler) Handle(name valueobject.EnvironmentName) (TestResult, error) {
	state, err := h.Deps.load(name)
	if err != nil {
		return TestResult{}, err
	}

	core := state.Core()
	if core.RuntimeOutputs().InstanceIP == nil {
		return TestResult{}, InvalidStateError(name, "provisioned-or-later", state.StateName())
	}

	var result TestResult
	client, err := h.Deps.newSSHClient(core)
	if err != nil {
		result.SSHError = err
		return result, nil
	}
	defer client.Disconnect()
	result.SSHReachable = true

	command := fmt.Sprintf("curl -sf http://127.0.0.1:%d/health_check", core.TrackerConfig().HealthCheckPort.Uint16())
	var stdout, stderr bytes.Buffer
	if err := client.Run(command, &stdout, &stderr); err != nil {
		result.TrackerHealthErr = fmt.Errorf("%w (stderr: %s)", err, stderr.String())
		return result, nil
	}
	result.TrackerHealthy = true
	return result, nil
}
