package handler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/torrust/tracker-deployer/internal/domain/environment"
	"github.com/torrust/tracker-deployer/internal/step"
	"github.com/torrust/tracker-deployer/internal/valueobject"
	pkgerrors "github.com/torrust/tracker-deployer/pkg/errors"
)

// DestroyHandler implements `destroy ENV`: tears down infrastructure
// created by provision and removes the local rendered-artifact directory.
// Unlike the other lifecycle-transition handlers, it is callable from any non-terminal state,
// since an operator must be able to tear down a deployment that failed
// partway through provisioning, configuring, or releasing.
type DestroyHandler struct {
	Deps *Deps
}

func destroyErrorKind(failedStep environment.DestroyStep) pkgerrors.ErrorKind {
	switch failedStep {
	case environment.DestroyStepRunOpenTofuDestroy:
		return pkgerrors.InfrastructureOperation
	default:
		return pkgerrors.CommandExecution
	}
}

// destroyFromAny consumes state's typed wrapper through its own Destroy
// method, returning the resulting Destroyed value. Destroyed and
// DestroyFailed have no Destroy method (the former is already torn down,
// the latter must be retried instead), so the caller handles those first.
func destroyFromAny(state environment.AnyEnvironmentState) environment.Destroyed {
	switch state.Kind {
	case environment.KindCreated:
		return state.Created.Destroy()
	case environment.KindProvisioning:
		return state.Provisioning.Destroy()
	case environment.KindProvisioned:
		return state.Provisioned.Destroy()
	case environment.KindProvisionFailed:
		return state.ProvisionFailed.Destroy()
	case environment.KindConfiguring:
		return state.Configuring.Destroy()
	case environment.KindConfigured:
		return state.Configured.Destroy()
	case environment.KindConfigureFailed:
		return state.ConfigureFailed.Destroy()
	case environment.KindReleasing:
		return state.Releasing.Destroy()
	case environment.KindReleased:
		return state.Released.Destroy()
	case environment.KindReleaseFailed:
		return state.ReleaseFailed.Destroy()
	case environment.KindRunning:
		return state.Running.Destroy()
	case environment.KindRunFailed:
		return state.RunFailed.Destroy()
	default:
		panic("handler: destroyFromAny called with unexpected kind " + string(state.Kind))
	}
}

// Handle runs the destroy workflow for name from whatever state it is
// currently in, moving it to Destroyed (or DestroyFailed on the first step
// that errors).
func (h *DestroyHandler) Handle(ctx context.Context, name valueobject.EnvironmentName) (environment.Destroyed, error) {
	state, err := h.Deps.load(name)
	if err != nil {
		return environment.Destroyed{}, err
	}

	var target environment.Destroyed
	switch state.Kind {
	case environment.KindDestroyed:
		return *state.Destroyed, nil
	case environment.KindDestroyFailed:
		target = state.DestroyFailed.Retry()
	default:
		target = destroyFromAny(state)
	}

	core := target.Core()
	infraDir := filepath.Join(h.Deps.buildDir(name), "infra")

	var sequence []namedStep[environment.DestroyStep]
	if core.RuntimeOutputs().ProvisionMethod == environment.ProvisionMethodProvisioned {
		sequence = append(sequence, namedStep[environment.DestroyStep]{
			FailedStep: environment.DestroyStepRunOpenTofuDestroy,
			Step:       step.NewRunLocalCommand("opentofu_destroy", infraDir, "tofu", "destroy", "-auto-approve"),
		})
	}
	sequence = append(sequence, namedStep[environment.DestroyStep]{
		FailedStep: environment.DestroyStepRemoveLocalState,
		Step: step.NewFuncStep("remove_local_state", func(_ context.Context) error {
			return os.RemoveAll(h.Deps.buildDir(name))
		}),
	})

	result := runStepSequence(ctx, h.Deps.Clock, sequence)
	if result.Err == nil {
		if err := h.Deps.Repo.SaveDestroyed(target); err != nil {
			return environment.Destroyed{}, IOError(fmt.Sprintf("persist environment %q as destroyed", name), err)
		}
		return target, nil
	}

	failCtx := environment.DestroyFailureContext{
		Base:       newBaseFailureContext(result, result.Err),
		FailedStep: result.FailedAt,
		ErrorKind:  destroyErrorKind(result.FailedAt),
	}
	tracePath, traceErr := h.Deps.Traces.WriteDestroyTrace(failCtx, result.Err)
	if traceErr != nil {
		h.Deps.Log.Error(traceErr, "failed to write destroy trace", "environment", name)
	} else {
		failCtx.Base.TraceFilePath = tracePath
	}
	failed := state.IntoDestroyFailed(failCtx)
	if err := h.Deps.Repo.SaveDestroyFailed(failed); err != nil {
		return environment.Destroyed{}, IOError(fmt.Sprintf("persist environment %q as destroy-failed", name), err)
	}
	return environment.Destroyed{}, StepFailureError(
		fmt.Sprintf("destroy %q failed at step %q", name, failCtx.FailedStep), tracePath, failCtx.ErrorKind, result.Err,
	)
}
