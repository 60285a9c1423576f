package handler

import (
	"context"
	"fmt"

	"github.com/torrust/tracker-deployer/internal/domain/environment"
	"github.com/torrust/tracker-deployer/internal/step"
	"github.com/torrust/tracker-deployer/internal/valueobject"
	pkgerrors "github.com/torrust/tracker-deployer/pkg/errors"
)

// RunHandler implements `run ENV`: starts the deployed compose project on
// the remote host and waits for the tracker's health-check endpoint to
// respond.
type RunHandler struct {
	Deps *Deps
}

func runErrorKind(failedStep environment.RunStep) pkgerrors.ErrorKind {
	switch failedStep {
	case environment.RunStepStartServices:
		return pkgerrors.CommandExecution
	default:
		return pkgerrors.CommandExecution
	}
}

// Handle runs the run workflow for name, moving it from Released to
// Running (or RunFailed on the first step that errors). Any other state,
// RunFailed included, is rejected with an InvalidStateError.
func (h *RunHandler) Handle(ctx context.Context, name valueobject.EnvironmentName) (environment.Running, error) {
	state, err := h.Deps.load(name)
	if err != nil {
		return environment.Running{}, err
	}
	released, err := state.TryIntoReleased()
	if err != nil {
		return environment.Running{}, InvalidStateError(name, environment.StateReleased, state.StateName())
	}

	core := released.Core()
	client, err := h.Deps.newSSHClient(core)
	if err != nil {
		return environment.Running{}, ConfigurationError(fmt.Sprintf("environment %q: connect over SSH", name), err)
	}
	defer client.Disconnect()

	composeDir := remoteEtcDir + "/compose"
	healthCheckPort := core.TrackerConfig().HealthCheckPort.Uint16()

	sequence := []namedStep[environment.RunStep]{
		{environment.RunStepStartServices, step.NewRunRemoteCommand(
			"start_services", client, fmt.Sprintf("docker compose -f %s/docker-compose.yml up -d", composeDir),
		)},
		{environment.RunStepStartServices, step.NewWaitForTrackerHealthy(
			"wait_for_tracker_healthy", client, h.Deps.Clock, healthCheckPort, h.Deps.SSHMaxWait, h.Deps.SSHPollInterval,
		)},
	}

	running := released.StartRunning()
	result := runStepSequence(ctx, h.Deps.Clock, sequence)
	if result.Err == nil {
		if err := h.Deps.Repo.SaveRunning(running); err != nil {
			return environment.Running{}, IOError(fmt.Sprintf("persist environment %q as running", name), err)
		}
		return running, nil
	}

	failCtx := environment.RunFailureContext{
		Base:       newBaseFailureContext(result, result.Err),
		FailedStep: result.FailedAt,
		ErrorKind:  runErrorKind(result.FailedAt),
	}
	tracePath, traceErr := h.Deps.Traces.WriteRunTrace(failCtx, result.Err)
	if traceErr != nil {
		h.Deps.Log.Error(traceErr, "failed to write run trace", "environment", name)
	} else {
		failCtx.Base.TraceFilePath = tracePath
	}
	failed := running.RunFailed(failCtx)
	if err := h.Deps.Repo.SaveRunFailed(failed); err != nil {
		return environment.Running{}, IOError(fmt.Sprintf("persist environment %q as run-failed", name), err)
	}
	return environment.Running{}, StepFailureError(
		fmt.Sprintf("run %q failed at step %q", name, failCtx.FailedStep), tracePath, failCtx.ErrorKind, result.Err,
	)
}
