package environment

import (
	"time"

	pkgerrors "github.com/torrust/tracker-deployer/pkg/errors"
)

// BaseFailureContext carries the fields every command-specific failure
// context embeds: a human summary, timing, and trace identification.
type BaseFailureContext struct {
	ErrorSummary        string
	FailedAt            time.Time
	ExecutionStartedAt  time.Time
	ExecutionDuration   time.Duration
	TraceID             TraceID
	TraceFilePath       string // empty when no trace file was written
}

// ProvisionStep enumerates the steps the provision command can execute.
type ProvisionStep string

const (
	ProvisionStepRenderInfraTemplates ProvisionStep = "render_infra_templates"
	ProvisionStepRunOpenTofuApply     ProvisionStep = "run_opentofu_apply"
	ProvisionStepWaitForCloudInit     ProvisionStep = "wait_for_cloud_init"
	ProvisionStepCaptureInstanceIP    ProvisionStep = "capture_instance_ip"
)

// ProvisionFailureContext is embedded in the ProvisionFailed state.
type ProvisionFailureContext struct {
	Base      BaseFailureContext
	FailedStep ProvisionStep
	ErrorKind  pkgerrors.ErrorKind
}

// ConfigureStep enumerates the steps the configure command can execute.
type ConfigureStep string

const (
	ConfigureStepRenderInventory          ConfigureStep = "render_inventory"
	ConfigureStepInstallDocker            ConfigureStep = "install_docker"
	ConfigureStepWaitForContainerRuntime  ConfigureStep = "wait_for_container_runtime"
	ConfigureStepWaitForSSH               ConfigureStep = "wait_for_ssh"
)

// ConfigureFailureContext is embedded in the ConfigureFailed state.
type ConfigureFailureContext struct {
	Base       BaseFailureContext
	FailedStep ConfigureStep
	ErrorKind  pkgerrors.ErrorKind
}

// ReleaseStep enumerates the steps the release command can execute, in the
// order they are attempted. Mirrors the 19-variant catalogue the release
// workflow walks through: storage creation, template rendering, and
// Ansible-driven deployment, per optional service.
type ReleaseStep string

const (
	ReleaseStepCreateTrackerStorage          ReleaseStep = "create_tracker_storage"
	ReleaseStepInitTrackerDatabase           ReleaseStep = "init_tracker_database"
	ReleaseStepRenderTrackerTemplates        ReleaseStep = "render_tracker_templates"
	ReleaseStepDeployTrackerConfigToRemote   ReleaseStep = "deploy_tracker_config_to_remote"
	ReleaseStepCreatePrometheusStorage       ReleaseStep = "create_prometheus_storage"
	ReleaseStepRenderPrometheusTemplates     ReleaseStep = "render_prometheus_templates"
	ReleaseStepDeployPrometheusConfigToRemote ReleaseStep = "deploy_prometheus_config_to_remote"
	ReleaseStepCreateGrafanaStorage          ReleaseStep = "create_grafana_storage"
	ReleaseStepRenderGrafanaTemplates        ReleaseStep = "render_grafana_templates"
	ReleaseStepDeployGrafanaProvisioning     ReleaseStep = "deploy_grafana_provisioning"
	ReleaseStepCreateMysqlStorage            ReleaseStep = "create_mysql_storage"
	ReleaseStepRenderBackupTemplates         ReleaseStep = "render_backup_templates"
	ReleaseStepCreateBackupStorage           ReleaseStep = "create_backup_storage"
	ReleaseStepDeployBackupConfigToRemote    ReleaseStep = "deploy_backup_config_to_remote"
	ReleaseStepInstallBackupCrontab          ReleaseStep = "install_backup_crontab"
	ReleaseStepRenderCaddyTemplates          ReleaseStep = "render_caddy_templates"
	ReleaseStepDeployCaddyConfigToRemote     ReleaseStep = "deploy_caddy_config_to_remote"
	ReleaseStepRenderDockerComposeTemplates  ReleaseStep = "render_docker_compose_templates"
	ReleaseStepDeployComposeFilesToRemote    ReleaseStep = "deploy_compose_files_to_remote"
)

// ReleaseFailureContext is embedded in the ReleaseFailed state.
type ReleaseFailureContext struct {
	Base       BaseFailureContext
	FailedStep ReleaseStep
	ErrorKind  pkgerrors.ErrorKind
}

// RunStep enumerates the steps the run command can execute.
type RunStep string

const (
	RunStepStartServices RunStep = "start_services"
)

// RunFailureContext is embedded in the RunFailed state.
type RunFailureContext struct {
	Base       BaseFailureContext
	FailedStep RunStep
	ErrorKind  pkgerrors.ErrorKind
}

// DestroyStep enumerates the steps the destroy command can execute.
type DestroyStep string

const (
	DestroyStepRunOpenTofuDestroy DestroyStep = "run_opentofu_destroy"
	DestroyStepRemoveLocalState   DestroyStep = "remove_local_state"
)

// DestroyFailureContext is embedded in the DestroyFailed state.
type DestroyFailureContext struct {
	Base       BaseFailureContext
	FailedStep DestroyStep
	ErrorKind  pkgerrors.ErrorKind
}

// RegisterStep enumerates the steps the register command can execute.
// Unlike the other commands, a register failure leaves the environment in
// Created (spec.md §8 scenario 5: "on unreachable SSH ... state unchanged
// (Created)") rather than moving it into a dedicated failure state, so
// RegisterFailureContext below is used only to drive trace-file output,
// never persisted into the aggregate.
type RegisterStep string

const (
	RegisterStepValidateSSHConnectivity RegisterStep = "validate_ssh_connectivity"
	RegisterStepRenderAnsibleTemplates  RegisterStep = "render_ansible_templates"
)

// RegisterFailureContext mirrors the other commands' failure contexts for
// trace-writing purposes, even though register has no RegisterFailed state
// to embed it in.
type RegisterFailureContext struct {
	Base       BaseFailureContext
	FailedStep RegisterStep
	ErrorKind  pkgerrors.ErrorKind
}
