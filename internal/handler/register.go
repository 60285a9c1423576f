package handler

import (
	"context"
	"fmt"
	"net"

	"github.com/torrust/tracker-deployer/internal/domain/environment"
	"github.com/torrust/tracker-deployer/internal/project"
	projectcontext "github.com/torrust/tracker-deployer/internal/project/context"
	"github.com/torrust/tracker-deployer/internal/step"
	"github.com/torrust/tracker-deployer/internal/valueobject"
	pkgerrors "github.com/torrust/tracker-deployer/pkg/errors"
	"github.com/torrust/tracker-deployer/pkg/ssh"
)

// RegisterHandler implements `register ENV --instance-ip IP [--ssh-port N]`:
// the reachability-only alternate path to Provisioned, for an instance the
// operator already created outside this tool. It validates SSH
// connectivity and renders the Ansible inventory against instanceIP (so a
// subsequent `configure` has an inventory to run against), but creates no
// infrastructure of its own. A step failure leaves the environment in
// Created (no dedicated RegisterFailed state exists, per spec.md §8
// scenario 5: "on unreachable SSH ... state unchanged (Created)"), but is
// still traced like every other command's step failures.
type RegisterHandler struct {
	Deps *Deps
}

func registerErrorKind(failedStep environment.RegisterStep) pkgerrors.ErrorKind {
	switch failedStep {
	case environment.RegisterStepValidateSSHConnectivity:
		return pkgerrors.Timeout
	case environment.RegisterStepRenderAnsibleTemplates:
		return pkgerrors.TemplateRendering
	default:
		return pkgerrors.InfrastructureOperation
	}
}

// Handle validates that instanceIP is reachable over SSH, renders the
// inventory, and records the environment as Provisioned via registration.
// sshPort overrides the environment's configured SSH port when non-zero
// (e.g. a Docker bridge port mapping onto the registered host).
func (h *RegisterHandler) Handle(
	ctx context.Context, name valueobject.EnvironmentName, instanceIP net.IP, sshPort valueobject.Port,
) (environment.Provisioned, error) {
	state, err := h.Deps.load(name)
	if err != nil {
		return environment.Provisioned{}, err
	}
	created, err := state.TryIntoCreated()
	if err != nil {
		return environment.Provisioned{}, InvalidStateError(name, environment.StateCreated, state.StateName())
	}

	core := created.Core()
	effectiveSSHPort := core.SSHPort()
	if sshPort.Uint16() != 0 {
		effectiveSSHPort = sshPort
	}

	var client ssh.Client
	connectivity := step.NewFuncStep(string(environment.RegisterStepValidateSSHConnectivity), func(context.Context) error {
		c, dialErr := h.Deps.newSSHClientForAddr(core, instanceIP, effectiveSSHPort)
		if dialErr != nil {
			return fmt.Errorf("connect to %s:%d: %w", instanceIP, effectiveSSHPort.Uint16(), dialErr)
		}
		if waitErr := c.WaitForSSH(h.Deps.SSHMaxWait); waitErr != nil {
			c.Disconnect()
			return fmt.Errorf("wait for ssh: %w", waitErr)
		}
		client = c
		return nil
	})

	renderInventory := step.NewFuncStep(string(environment.RegisterStepRenderAnsibleTemplates), func(context.Context) error {
		inventoryCtx, buildErr := projectcontext.NewInventoryContextBuilder().
			WithInstanceName(core.InstanceName()).
			WithInstanceIP(instanceIP).
			WithSSHPort(effectiveSSHPort).
			WithSSHUser(core.SSHCredentials().Username).
			WithSSHPrivateKeyPath(core.SSHCredentials().PrivateKeyPath).
			Build()
		if buildErr != nil {
			return fmt.Errorf("build inventory rendering context: %w", buildErr)
		}
		inventoryProject, newErr := project.NewInventoryProject(h.Deps.Engine, inventoryCtx)
		if newErr != nil {
			return fmt.Errorf("build inventory project: %w", newErr)
		}
		return inventoryProject.Render(h.Deps.buildDir(name))
	})

	sequence := []namedStep[environment.RegisterStep]{
		{environment.RegisterStepValidateSSHConnectivity, connectivity},
		{environment.RegisterStepRenderAnsibleTemplates, renderInventory},
	}

	result := runStepSequence(ctx, h.Deps.Clock, sequence)
	if client != nil {
		defer client.Disconnect()
	}

	if result.Err == nil {
		provisioned := created.Register(instanceIP)
		if err := h.Deps.Repo.SaveProvisioned(provisioned); err != nil {
			return environment.Provisioned{}, IOError(fmt.Sprintf("persist environment %q as provisioned", name), err)
		}
		return provisioned, nil
	}

	failCtx := environment.RegisterFailureContext{
		Base:       newBaseFailureContext(result, result.Err),
		FailedStep: result.FailedAt,
		ErrorKind:  registerErrorKind(result.FailedAt),
	}
	tracePath, traceErr := h.Deps.Traces.WriteRegisterTrace(failCtx, result.Err)
	if traceErr != nil {
		h.Deps.Log.Error(traceErr, "failed to write register trace", "environment", name)
	} else {
		failCtx.Base.TraceFilePath = tracePath
	}
	return environment.Provisioned{}, StepFailureError(
		fmt.Sprintf("register %q failed at step %q", name, failCtx.FailedStep), tracePath, failCtx.ErrorKind, result.Err,
	)
}
