package handler

import (
	"context"
	"fmt"

	"github.com/torrust/tracker-deployer/internal/domain/environment"
	"github.com/torrust/tracker-deployer/internal/project"
	projectcontext "github.com/torrust/tracker-deployer/internal/project/context"
	"github.com/torrust/tracker-deployer/internal/step"
	"github.com/torrust/tracker-deployer/internal/valueobject"
	pkgerrors "github.com/torrust/tracker-deployer/pkg/errors"
)

// ConfigureHandler implements `configure ENV`: renders the Ansible
// inventory, installs the container runtime over SSH, and waits for it to
// become responsive.
type ConfigureHandler struct {
	Deps *Deps
}

func configureErrorKind(failedStep environment.ConfigureStep) pkgerrors.ErrorKind {
	switch failedStep {
	case environment.ConfigureStepRenderInventory:
		return pkgerrors.TemplateRendering
	case environment.ConfigureStepInstallDocker:
		return pkgerrors.CommandExecution
	case environment.ConfigureStepWaitForContainerRuntime:
		return pkgerrors.Timeout
	case environment.ConfigureStepWaitForSSH:
		return pkgerrors.Timeout
	default:
		return pkgerrors.CommandExecution
	}
}

// Handle runs the configure workflow for name, moving it from Provisioned
// to Configured (or ConfigureFailed on the first step that errors).
func (h *ConfigureHandler) Handle(ctx context.Context, name valueobject.EnvironmentName) (environment.Configured, error) {
	state, err := h.Deps.load(name)
	if err != nil {
		return environment.Configured{}, err
	}
	provisioned, err := state.TryIntoProvisioned()
	if err != nil {
		return environment.Configured{}, InvalidStateError(name, environment.StateProvisioned, state.StateName())
	}

	configuring := provisioned.StartConfiguring()
	if err := h.Deps.Repo.SaveConfiguring(configuring); err != nil {
		return environment.Configured{}, IOError(fmt.Sprintf("persist environment %q as configuring", name), err)
	}

	core := configuring.Core()
	client, err := h.Deps.newSSHClient(core)
	if err != nil {
		return environment.Configured{}, ConfigurationError(fmt.Sprintf("environment %q: connect over SSH", name), err)
	}
	defer client.Disconnect()

	inventoryCtx, err := projectcontext.NewInventoryContextBuilder().
		WithInstanceName(core.InstanceName()).
		WithInstanceIP(core.RuntimeOutputs().InstanceIP).
		WithSSHPort(core.SSHPort()).
		WithSSHUser(core.SSHCredentials().Username).
		WithSSHPrivateKeyPath(core.SSHCredentials().PrivateKeyPath).
		Build()
	if err != nil {
		return environment.Configured{}, ConfigurationError("build inventory rendering context", err)
	}
	inventoryProject, err := project.NewInventoryProject(h.Deps.Engine, inventoryCtx)
	if err != nil {
		return environment.Configured{}, ConfigurationError("build inventory project", err)
	}

	sequence := []namedStep[environment.ConfigureStep]{
		{environment.ConfigureStepWaitForSSH, step.NewWaitForSSH("wait_for_ssh", client, h.Deps.SSHMaxWait)},
		{environment.ConfigureStepRenderInventory, step.NewRenderStep("render_inventory", inventoryProject, h.Deps.buildDir(name))},
		{environment.ConfigureStepInstallDocker, step.NewRunRemoteCommand("install_docker", client, "curl -fsSL https://get.docker.com | sh")},
		{environment.ConfigureStepWaitForContainerRuntime, step.NewWaitForContainerRuntime(
			"wait_for_container_runtime", client, h.Deps.Clock, h.Deps.SSHMaxWait, h.Deps.SSHPollInterval,
		)},
	}

	result := runStepSequence(ctx, h.Deps.Clock, sequence)
	if result.Err == nil {
		configured := configuring.ConfigureSucceeded()
		if err := h.Deps.Repo.SaveConfigured(configured); err != nil {
			return environment.Configured{}, IOError(fmt.Sprintf("persist environment %q as configured", name), err)
		}
		return configured, nil
	}

	failCtx := environment.ConfigureFailureContext{
		Base:       newBaseFailureContext(result, result.Err),
		FailedStep: result.FailedAt,
		ErrorKind:  configureErrorKind(result.FailedAt),
	}
	tracePath, traceErr := h.Deps.Traces.WriteConfigureTrace(failCtx, result.Err)
	if traceErr != nil {
		h.Deps.Log.Error(traceErr, "failed to write configure trace", "environment", name)
	} else {
		failCtx.Base.TraceFilePath = tracePath
	}
	failed := configuring.ConfigureFailed(failCtx)
	if err := h.Deps.Repo.SaveConfigureFailed(failed); err != nil {
		return environment.Configured{}, IOError(fmt.Sprintf("persist environment %q as configure-failed", name), err)
	}
	return environment.Configured{}, StepFailureError(
		fmt.Sprintf("configure %q failed at step %q", name, failCtx.FailedStep), tracePath, failCtx.ErrorKind, result.Err,
	)
}
