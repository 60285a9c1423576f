package handler

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/torrust/tracker-deployer/internal/domain/environment"
	"github.com/torrust/tracker-deployer/internal/project"
	projectcontext "github.com/torrust/tracker-deployer/internal/project/context"
	"github.com/torrust/tracker-deployer/internal/step"
	"github.com/torrust/tracker-deployer/internal/valueobject"
	pkgerrors "github.com/torrust/tracker-deployer/pkg/errors"
)

// ProvisionHandler implements `provision ENV`: renders the OpenTofu
// project for the configured provider, applies it, and waits for the
// instance's first-boot provisioning to finish.
type ProvisionHandler struct {
	Deps *Deps
}

func provisionErrorKind(failedStep environment.ProvisionStep) pkgerrors.ErrorKind {
	switch failedStep {
	case environment.ProvisionStepRenderInfraTemplates:
		return pkgerrors.TemplateRendering
	case environment.ProvisionStepRunOpenTofuApply, environment.ProvisionStepCaptureInstanceIP:
		return pkgerrors.InfrastructureOperation
	case environment.ProvisionStepWaitForCloudInit:
		return pkgerrors.Timeout
	default:
		return pkgerrors.InfrastructureOperation
	}
}

// Handle runs the provision workflow for name, moving it from Created to
// Provisioned (or ProvisionFailed on the first step that errors).
func (h *ProvisionHandler) Handle(ctx context.Context, name valueobject.EnvironmentName) (environment.Provisioned, error) {
	state, err := h.Deps.load(name)
	if err != nil {
		return environment.Provisioned{}, err
	}
	created, err := state.TryIntoCreated()
	if err != nil {
		return environment.Provisioned{}, InvalidStateError(name, environment.StateCreated, state.StateName())
	}

	provisioning := created.StartProvisioning()
	if err := h.Deps.Repo.SaveProvisioning(provisioning); err != nil {
		return environment.Provisioned{}, IOError(fmt.Sprintf("persist environment %q as provisioning", name), err)
	}

	core := provisioning.Core()
	infraDir := filepath.Join(h.Deps.buildDir(name), "infra")

	infraCtx, err := projectcontext.NewInfraContextBuilder().
		WithInstanceName(core.InstanceName()).
		WithSSHPublicKeyPath(core.SSHCredentials().PublicKeyPath).
		WithProvider(core.ProviderConfig()).
		Build()
	if err != nil {
		return environment.Provisioned{}, ConfigurationError("build infra rendering context", err)
	}
	infraProject, err := project.NewInfraProject(h.Deps.Engine, infraCtx, core.ProviderConfig().Kind)
	if err != nil {
		return environment.Provisioned{}, ConfigurationError("build infra project", err)
	}

	capture := step.NewCaptureTofuOutput("capture_instance_ip", infraDir, "instance_ip")

	waitForCloudInit := step.NewFuncStep("wait_for_cloud_init", func(stepCtx context.Context) error {
		client, err := h.Deps.newSSHClientForIP(core, capture.IP())
		if err != nil {
			return fmt.Errorf("connect before waiting for cloud-init: %w", err)
		}
		defer client.Disconnect()
		waiter := step.NewWaitForCloudInit("wait_for_cloud_init", client, h.Deps.Clock, h.Deps.SSHMaxWait, h.Deps.SSHPollInterval)
		return waiter.Execute(stepCtx)
	})

	sequence := []namedStep[environment.ProvisionStep]{
		{environment.ProvisionStepRenderInfraTemplates, step.NewRenderStep("render_infra_templates", infraProject, h.Deps.buildDir(name))},
		{environment.ProvisionStepRunOpenTofuApply, step.NewRunLocalCommand("opentofu_init", infraDir, "tofu", "init", "-input=false")},
		{environment.ProvisionStepRunOpenTofuApply, step.NewRunLocalCommand("opentofu_apply", infraDir, "tofu", "apply", "-auto-approve")},
		{environment.ProvisionStepCaptureInstanceIP, capture},
		{environment.ProvisionStepWaitForCloudInit, waitForCloudInit},
	}

	result := runStepSequence(ctx, h.Deps.Clock, sequence)
	if result.Err == nil {
		provisioned := provisioning.ProvisionSucceeded(capture.IP())
		if err := h.Deps.Repo.SaveProvisioned(provisioned); err != nil {
			return environment.Provisioned{}, IOError(fmt.Sprintf("persist environment %q as provisioned", name), err)
		}
		return provisioned, nil
	}

	failCtx := environment.ProvisionFailureContext{
		Base:       newBaseFailureContext(result, result.Err),
		FailedStep: result.FailedAt,
		ErrorKind:  provisionErrorKind(result.FailedAt),
	}
	tracePath, traceErr := h.Deps.Traces.WriteProvisionTrace(failCtx, result.Err)
	if traceErr != nil {
		h.Deps.Log.Error(traceErr, "failed to write provision trace", "environment", name)
	} else {
		failCtx.Base.TraceFilePath = tracePath
	}
	failed := provisioning.ProvisionFailed(failCtx)
	if err := h.Deps.Repo.SaveProvisionFailed(failed); err != nil {
		return environment.Provisioned{}, IOError(fmt.Sprintf("persist environment %q as provision-failed", name), err)
	}
	return environment.Provisioned{}, StepFailureError(
		fmt.Sprintf("provision %q failed at step %q", name, failCtx.FailedStep), tracePath, failCtx.ErrorKind, result.Err,
	)
}
