package handler

import (
	"fmt"
	"net"
	"os"

	"github.com/torrust/tracker-deployer/internal/domain/environment"
	"github.com/torrust/tracker-deployer/internal/project"
	projectcontext "github.com/torrust/tracker-deployer/internal/project/context"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// RenderOptions selects one of `render`'s two modes: by a persisted
// environment's name, or ad hoc from an env file that is never saved to
// the repository.
type RenderOptions struct {
	EnvName *valueobject.EnvironmentName

	EnvFilePath string
	InstanceIP  net.IP
	OutputDir   string
	Force       bool
}

// RenderHandler implements `render`: generates every configured service's
// artifacts the same way `release` would, without deploying them or
// touching any persisted state.
type RenderHandler struct {
	Deps *Deps
}

func (h *RenderHandler) Handle(opts RenderOptions) (string, error) {
	var core environment.Core
	var outputDir string

	switch {
	case opts.EnvName != nil:
		state, err := h.Deps.load(*opts.EnvName)
		if err != nil {
			return "", err
		}
		core = state.Core()
		outputDir = h.Deps.buildDir(*opts.EnvName)
	case opts.EnvFilePath != "":
		params, err := LoadParamsFromFile(opts.EnvFilePath, h.Deps.Clock.Now())
		if err != nil {
			return "", ConfigurationError(fmt.Sprintf("invalid env file %s", opts.EnvFilePath), err)
		}
		created, err := environment.NewCreated(params)
		if err != nil {
			return "", ConfigurationError(fmt.Sprintf("env file %s failed validation", opts.EnvFilePath), err)
		}
		core = created.Core()
		if opts.OutputDir == "" {
			return "", ConfigurationError("render: --output-dir is required with --env-file", nil)
		}
		outputDir = opts.OutputDir
	default:
		return "", ConfigurationError("render: either --env-name or --env-file is required", nil)
	}

	if !opts.Force {
		if entries, err := os.ReadDir(outputDir); err == nil && len(entries) > 0 {
			return "", ConfigurationError(fmt.Sprintf("render: output directory %s is not empty (use --force)", outputDir), nil)
		}
	}

	if err := h.renderAll(core, opts.InstanceIP, outputDir); err != nil {
		return "", err
	}
	return outputDir, nil
}

// renderAll drives every project generator configured for core into
// outputDir, mirroring the rendering steps ReleaseHandler and
// ProvisionHandler/ConfigureHandler run before deploying their output.
func (h *RenderHandler) renderAll(core environment.Core, instanceIP net.IP, outputDir string) error {
	tracker := core.TrackerConfig()
	prometheus := core.PrometheusConfig()
	grafana := core.GrafanaConfig()
	https := core.HTTPSConfig()
	backup := core.BackupConfig()

	infraCtx, err := projectcontext.NewInfraContextBuilder().
		WithInstanceName(core.InstanceName()).
		WithSSHPublicKeyPath(core.SSHCredentials().PublicKeyPath).
		WithProvider(core.ProviderConfig()).
		Build()
	if err != nil {
		return ConfigurationError("build infra rendering context", err)
	}
	infraProject, err := project.NewInfraProject(h.Deps.Engine, infraCtx, core.ProviderConfig().Kind)
	if err != nil {
		return ConfigurationError("build infra project", err)
	}
	if err := infraProject.Render(outputDir); err != nil {
		return ConfigurationError("render infra templates", err)
	}

	if instanceIP != nil {
		inventoryCtx, err := projectcontext.NewInventoryContextBuilder().
			WithInstanceName(core.InstanceName()).
			WithInstanceIP(instanceIP).
			WithSSHPort(core.SSHPort()).
			WithSSHUser(core.SSHCredentials().Username).
			WithSSHPrivateKeyPath(core.SSHCredentials().PrivateKeyPath).
			Build()
		if err != nil {
			return ConfigurationError("build inventory rendering context", err)
		}
		inventoryProject, err := project.NewInventoryProject(h.Deps.Engine, inventoryCtx)
		if err != nil {
			return ConfigurationError("build inventory project", err)
		}
		if err := inventoryProject.Render(outputDir); err != nil {
			return ConfigurationError("render inventory", err)
		}
	}

	trackerEnvCtx, err := projectcontext.NewTrackerEnvContextBuilder().WithTrackerConfig(tracker).Build()
	if err != nil {
		return ConfigurationError("build tracker env rendering context", err)
	}
	trackerProject, err := project.NewTrackerProject(h.Deps.Engine, trackerEnvCtx)
	if err != nil {
		return ConfigurationError("build tracker project", err)
	}
	if err := trackerProject.Render(outputDir); err != nil {
		return ConfigurationError("render tracker templates", err)
	}

	if prometheus != nil {
		prometheusCtx, err := projectcontext.NewPrometheusContextBuilder().
			WithInstanceName(core.InstanceName()).
			WithPrometheusConfig(*prometheus).
			WithTrackerAPIPort(tracker.APIPort).
			WithHealthCheckPort(tracker.HealthCheckPort).
			Build()
		if err != nil {
			return ConfigurationError("build prometheus rendering context", err)
		}
		var grafanaCtxPtr *projectcontext.GrafanaContext
		if grafana != nil {
			grafanaCtx, err := projectcontext.NewGrafanaContextBuilder().
				WithPrometheusPort(prometheus.Port).
				WithGrafanaConfig(*grafana).
				Build()
			if err != nil {
				return ConfigurationError("build grafana rendering context", err)
			}
			grafanaCtxPtr = &grafanaCtx
		}
		monitoring, err := project.NewMonitoringProject(h.Deps.Engine, prometheusCtx, grafanaCtxPtr)
		if err != nil {
			return ConfigurationError("build monitoring project", err)
		}
		if err := monitoring.Render(outputDir); err != nil {
			return ConfigurationError("render monitoring templates", err)
		}
	}

	if backup != nil {
		backupCtx, err := projectcontext.NewBackupContextBuilder().
			WithBackupConfig(*backup).
			WithDatabase(tracker.Database).
			WithInstanceName(core.InstanceName()).
			Build()
		if err != nil {
			return ConfigurationError("build backup rendering context", err)
		}
		backupProject, err := project.NewBackupProject(h.Deps.Engine, backupCtx)
		if err != nil {
			return ConfigurationError("build backup project", err)
		}
		if err := backupProject.Render(outputDir); err != nil {
			return ConfigurationError("render backup templates", err)
		}
	}

	if https != nil {
		caddyCtx, err := projectcontext.NewCaddyContextBuilder().
			WithHTTPSConfig(*https).
			WithUpstreamPort(tracker.HTTPPort).
			Build()
		if err != nil {
			return ConfigurationError("build caddy rendering context", err)
		}
		tlsProxy, err := project.NewTLSProxyProject(h.Deps.Engine, caddyCtx)
		if err != nil {
			return ConfigurationError("build tls proxy project", err)
		}
		if err := tlsProxy.Render(outputDir); err != nil {
			return ConfigurationError("render caddy templates", err)
		}
	}

	composeCtxBuilder := projectcontext.NewComposeContextBuilder(tracker)
	if prometheus != nil {
		composeCtxBuilder = composeCtxBuilder.WithPrometheus(*prometheus)
	}
	if grafana != nil {
		composeCtxBuilder = composeCtxBuilder.WithGrafana(*grafana)
	}
	if https != nil {
		composeCtxBuilder = composeCtxBuilder.WithHTTPS(*https)
	}
	if backup != nil {
		composeCtxBuilder = composeCtxBuilder.WithBackup(*backup)
	}
	composeCtx, err := composeCtxBuilder.Build()
	if err != nil {
		return ConfigurationError("build compose rendering context", err)
	}
	composeProject, err := project.NewComposeProject(h.Deps.Engine, composeCtx)
	if err != nil {
		return ConfigurationError("build compose project", err)
	}
	if err := composeProject.Render(outputDir); err != nil {
		return ConfigurationError("render docker compose templates", err)
	}

	return nil
}
