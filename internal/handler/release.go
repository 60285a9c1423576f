package handler

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/torrust/tracker-deployer/internal/domain/config"
	"github.com/torrust/tracker-deployer/internal/domain/environment"
	"github.com/torrust/tracker-deployer/internal/project"
	projectcontext "github.com/torrust/tracker-deployer/internal/project/context"
	"github.com/torrust/tracker-deployer/internal/step"
	"github.com/torrust/tracker-deployer/internal/valueobject"
	pkgerrors "github.com/torrust/tracker-deployer/pkg/errors"
)

// Remote paths the release workflow deploys configuration under. Storage
// directories (under remoteVarDir) are bind-mounted into the containers
// started by `run`; config directories (under remoteEtcDir) hold the
// rendered files docker-compose.yml and its services reference.
const (
	remoteEtcDir = "/etc/torrust"
	remoteVarDir = "/var/lib/torrust"
)

// ReleaseHandler implements `release ENV`: renders and deploys every
// configured service's configuration to the remote host, in dependency
// order (tracker first, optional services after, docker-compose.yml last).
type ReleaseHandler struct {
	Deps *Deps
}

func releaseErrorKind(failedStep environment.ReleaseStep) pkgerrors.ErrorKind {
	switch failedStep {
	case environment.ReleaseStepRenderTrackerTemplates,
		environment.ReleaseStepRenderPrometheusTemplates,
		environment.ReleaseStepRenderGrafanaTemplates,
		environment.ReleaseStepRenderBackupTemplates,
		environment.ReleaseStepRenderCaddyTemplates,
		environment.ReleaseStepRenderDockerComposeTemplates:
		return pkgerrors.TemplateRendering
	default:
		return pkgerrors.CommandExecution
	}
}

// prometheusRenderer and grafanaRenderer adapt MonitoringProject's two
// single-artifact render methods to step.Renderer, so each becomes its own
// RenderStep instead of one combined step.
type prometheusRenderer struct{ monitoring *project.MonitoringProject }

func (r prometheusRenderer) Render(outputDir string) error { return r.monitoring.RenderPrometheus(outputDir) }

type grafanaRenderer struct{ monitoring *project.MonitoringProject }

func (r grafanaRenderer) Render(outputDir string) error { return r.monitoring.RenderGrafana(outputDir) }

// Handle runs the release workflow for name, moving it from Configured to
// Released (or ReleaseFailed on the first step that errors).
func (h *ReleaseHandler) Handle(ctx context.Context, name valueobject.EnvironmentName) (environment.Released, error) {
	state, err := h.Deps.load(name)
	if err != nil {
		return environment.Released{}, err
	}
	configured, err := state.TryIntoConfigured()
	if err != nil {
		return environment.Released{}, InvalidStateError(name, environment.StateConfigured, state.StateName())
	}

	releasing := configured.StartReleasing()
	if err := h.Deps.Repo.SaveReleasing(releasing); err != nil {
		return environment.Released{}, IOError(fmt.Sprintf("persist environment %q as releasing", name), err)
	}

	core := releasing.Core()
	client, err := h.Deps.newSSHClient(core)
	if err != nil {
		return environment.Released{}, ConfigurationError(fmt.Sprintf("environment %q: connect over SSH", name), err)
	}
	defer client.Disconnect()

	buildDir := h.Deps.buildDir(name)
	tracker := core.TrackerConfig()
	prometheus := core.PrometheusConfig()
	grafana := core.GrafanaConfig()
	https := core.HTTPSConfig()
	backup := core.BackupConfig()

	sequence := []namedStep[environment.ReleaseStep]{
		{environment.ReleaseStepCreateTrackerStorage, step.NewRunRemoteCommand(
			"create_tracker_storage", client,
			fmt.Sprintf("mkdir -p %s %s", filepath.Join(remoteEtcDir, "tracker"), filepath.Join(remoteVarDir, "tracker")),
		)},
		{environment.ReleaseStepInitTrackerDatabase, step.NewRunRemoteCommand(
			"init_tracker_database", client, trackerDatabaseInitCommand(tracker.Database),
		)},
	}

	trackerEnvCtx, err := projectcontext.NewTrackerEnvContextBuilder().WithTrackerConfig(tracker).Build()
	if err != nil {
		return environment.Released{}, ConfigurationError("build tracker env rendering context", err)
	}
	trackerProject, err := project.NewTrackerProject(h.Deps.Engine, trackerEnvCtx)
	if err != nil {
		return environment.Released{}, ConfigurationError("build tracker project", err)
	}
	sequence = append(sequence,
		namedStep[environment.ReleaseStep]{
			FailedStep: environment.ReleaseStepRenderTrackerTemplates,
			Step:       step.NewRenderStep("render_tracker_templates", trackerProject, buildDir),
		},
		namedStep[environment.ReleaseStep]{
			FailedStep: environment.ReleaseStepDeployTrackerConfigToRemote,
			Step: step.NewUploadFile(
				"deploy_tracker_config_to_remote", client,
				filepath.Join(buildDir, "tracker", "tracker.env"),
				filepath.Join(remoteEtcDir, "tracker", "tracker.env"),
				0o600,
			),
		},
	)

	if tracker.Database.Kind == config.DatabaseMysql {
		sequence = append(sequence, namedStep[environment.ReleaseStep]{
			FailedStep: environment.ReleaseStepCreateMysqlStorage,
			Step: step.NewRunRemoteCommand(
				"create_mysql_storage", client, fmt.Sprintf("mkdir -p %s", filepath.Join(remoteVarDir, "mysql")),
			),
		})
	}

	var monitoring *project.MonitoringProject
	if prometheus != nil {
		prometheusCtx, err := projectcontext.NewPrometheusContextBuilder().
			WithInstanceName(core.InstanceName()).
			WithPrometheusConfig(*prometheus).
			WithTrackerAPIPort(tracker.APIPort).
			WithHealthCheckPort(tracker.HealthCheckPort).
			Build()
		if err != nil {
			return environment.Released{}, ConfigurationError("build prometheus rendering context", err)
		}
		var grafanaCtxPtr *projectcontext.GrafanaContext
		if grafana != nil {
			grafanaCtx, err := projectcontext.NewGrafanaContextBuilder().
				WithPrometheusPort(prometheus.Port).
				WithGrafanaConfig(*grafana).
				Build()
			if err != nil {
				return environment.Released{}, ConfigurationError("build grafana rendering context", err)
			}
			grafanaCtxPtr = &grafanaCtx
		}
		monitoring, err = project.NewMonitoringProject(h.Deps.Engine, prometheusCtx, grafanaCtxPtr)
		if err != nil {
			return environment.Released{}, ConfigurationError("build monitoring project", err)
		}

		sequence = append(sequence,
			namedStep[environment.ReleaseStep]{
				FailedStep: environment.ReleaseStepCreatePrometheusStorage,
				Step: step.NewRunRemoteCommand(
					"create_prometheus_storage", client, fmt.Sprintf("mkdir -p %s", filepath.Join(remoteVarDir, "prometheus")),
				),
			},
			namedStep[environment.ReleaseStep]{
				FailedStep: environment.ReleaseStepRenderPrometheusTemplates,
				Step:       step.NewRenderStep("render_prometheus_templates", prometheusRenderer{monitoring}, buildDir),
			},
			namedStep[environment.ReleaseStep]{
				FailedStep: environment.ReleaseStepDeployPrometheusConfigToRemote,
				Step: step.NewUploadFile(
					"deploy_prometheus_config_to_remote", client,
					filepath.Join(buildDir, "monitoring", "prometheus.yml"),
					filepath.Join(remoteEtcDir, "prometheus", "prometheus.yml"),
					0o644,
				),
			},
		)

		if grafana != nil {
			sequence = append(sequence,
				namedStep[environment.ReleaseStep]{
					FailedStep: environment.ReleaseStepCreateGrafanaStorage,
					Step: step.NewRunRemoteCommand(
						"create_grafana_storage", client, fmt.Sprintf("mkdir -p %s", filepath.Join(remoteVarDir, "grafana")),
					),
				},
				namedStep[environment.ReleaseStep]{
					FailedStep: environment.ReleaseStepRenderGrafanaTemplates,
					Step:       step.NewRenderStep("render_grafana_templates", grafanaRenderer{monitoring}, buildDir),
				},
				namedStep[environment.ReleaseStep]{
					FailedStep: environment.ReleaseStepDeployGrafanaProvisioning,
					Step: step.NewUploadFile(
						"deploy_grafana_provisioning", client,
						filepath.Join(buildDir, "monitoring", "grafana", "provisioning", "datasources", "datasource.yml"),
						filepath.Join(remoteEtcDir, "grafana", "provisioning", "datasources", "datasource.yml"),
						0o644,
					),
				},
			)
		}
	}

	if backup != nil {
		backupCtx, err := projectcontext.NewBackupContextBuilder().
			WithBackupConfig(*backup).
			WithDatabase(tracker.Database).
			WithInstanceName(core.InstanceName()).
			Build()
		if err != nil {
			return environment.Released{}, ConfigurationError("build backup rendering context", err)
		}
		backupProject, err := project.NewBackupProject(h.Deps.Engine, backupCtx)
		if err != nil {
			return environment.Released{}, ConfigurationError("build backup project", err)
		}
		sequence = append(sequence,
			namedStep[environment.ReleaseStep]{
				FailedStep: environment.ReleaseStepRenderBackupTemplates,
				Step:       step.NewRenderStep("render_backup_templates", backupProject, buildDir),
			},
			namedStep[environment.ReleaseStep]{
				FailedStep: environment.ReleaseStepCreateBackupStorage,
				Step: step.NewRunRemoteCommand(
					"create_backup_storage", client, fmt.Sprintf("mkdir -p %s", filepath.Join(remoteVarDir, "backup")),
				),
			},
			namedStep[environment.ReleaseStep]{
				FailedStep: environment.ReleaseStepDeployBackupConfigToRemote,
				Step: step.NewUploadFile(
					"deploy_backup_config_to_remote", client,
					filepath.Join(buildDir, "backup", "maintenance-cron.sh"),
					filepath.Join(remoteEtcDir, "backup", "maintenance-cron.sh"),
					0o755,
				),
			},
			namedStep[environment.ReleaseStep]{
				FailedStep: environment.ReleaseStepInstallBackupCrontab,
				Step: step.NewInstallCrontab(
					"install_backup_crontab", client, client,
					filepath.Join(buildDir, "backup", "crontab"),
					filepath.Join(remoteEtcDir, "backup", "crontab"),
				),
			},
		)
	}

	var tlsProxy *project.TLSProxyProject
	if https != nil {
		caddyCtx, err := projectcontext.NewCaddyContextBuilder().
			WithHTTPSConfig(*https).
			WithUpstreamPort(tracker.HTTPPort).
			Build()
		if err != nil {
			return environment.Released{}, ConfigurationError("build caddy rendering context", err)
		}
		tlsProxy, err = project.NewTLSProxyProject(h.Deps.Engine, caddyCtx)
		if err != nil {
			return environment.Released{}, ConfigurationError("build tls proxy project", err)
		}
		sequence = append(sequence,
			namedStep[environment.ReleaseStep]{
				FailedStep: environment.ReleaseStepRenderCaddyTemplates,
				Step:       step.NewRenderStep("render_caddy_templates", tlsProxy, buildDir),
			},
			namedStep[environment.ReleaseStep]{
				FailedStep: environment.ReleaseStepDeployCaddyConfigToRemote,
				Step: step.NewUploadFile(
					"deploy_caddy_config_to_remote", client,
					filepath.Join(buildDir, "compose", "Caddyfile"),
					filepath.Join(remoteEtcDir, "compose", "Caddyfile"),
					0o644,
				),
			},
		)
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
		return environment.Released{}, ConfigurationError("build compose rendering context", err)
	}
	composeProject, err := project.NewComposeProject(h.Deps.Engine, composeCtx)
	if err != nil {
		if conflict, ok := err.(*projectcontext.PortConflictError); ok {
			return environment.Released{}, ConfigurationError(fmt.Sprintf("environment %q: %s", name, conflict), err)
		}
		return environment.Released{}, ConfigurationError("build compose project", err)
	}

	sequence = append(sequence,
		namedStep[environment.ReleaseStep]{
			FailedStep: environment.ReleaseStepRenderDockerComposeTemplates,
			Step:       step.NewRenderStep("render_docker_compose_templates", composeProject, buildDir),
		},
		namedStep[environment.ReleaseStep]{
			FailedStep: environment.ReleaseStepDeployComposeFilesToRemote,
			Step: step.NewDeployComposeFiles("deploy_compose_files_to_remote", client, []step.FileDeployment{
				{
					LocalPath:  filepath.Join(buildDir, "compose", "docker-compose.yml"),
					RemotePath: filepath.Join(remoteEtcDir, "compose", "docker-compose.yml"),
					Mode:       0o644,
				},
			}),
		},
	)

	result := runStepSequence(ctx, h.Deps.Clock, sequence)
	if result.Err == nil {
		released := releasing.ReleaseSucceeded()
		if err := h.Deps.Repo.SaveReleased(released); err != nil {
			return environment.Released{}, IOError(fmt.Sprintf("persist environment %q as released", name), err)
		}
		return released, nil
	}

	failCtx := environment.ReleaseFailureContext{
		Base:       newBaseFailureContext(result, result.Err),
		FailedStep: result.FailedAt,
		ErrorKind:  releaseErrorKind(result.FailedAt),
	}
	tracePath, traceErr := h.Deps.Traces.WriteReleaseTrace(failCtx, result.Err)
	if traceErr != nil {
		h.Deps.Log.Error(traceErr, "failed to write release trace", "environment", name)
	} else {
		failCtx.Base.TraceFilePath = tracePath
	}
	failed := releasing.ReleaseFailed(failCtx)
	if err := h.Deps.Repo.SaveReleaseFailed(failed); err != nil {
		return environment.Released{}, IOError(fmt.Sprintf("persist environment %q as release-failed", name), err)
	}
	return environment.Released{}, StepFailureError(
		fmt.Sprintf("release %q failed at step %q", name, failCtx.FailedStep), tracePath, failCtx.ErrorKind, result.Err,
	)
}

// trackerDatabaseInitCommand returns the remote command that prepares the
// tracker's database backend ahead of the first `docker compose up`: for
// sqlite this just ensures the data directory exists (the tracker binary
// creates the file itself on first run); mysql's schema is created by its
// own container image on first start, so this only verifies that the
// tracker storage root created by CreateTrackerStorage exists (it runs
// before CreateMysqlStorage).
func trackerDatabaseInitCommand(db config.DatabaseConfig) string {
	if db.Kind == config.DatabaseMysql {
		return fmt.Sprintf("test -d %s", remoteVarDir)
	}
	return fmt.Sprintf("mkdir -p %s", filepath.Join(remoteVarDir, "tracker", "database"))
}
