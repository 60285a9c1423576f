// Package environment implements the Environment aggregate as a type-state
// machine: one named wrapper type per lifecycle state (Created,
// Provisioning, Provisioned, ...), each embedding the same shared core.
// Go has no direct equivalent of Rust's Environment<State> generic with
// per-instantiation impl blocks, so each state gets its own concrete struct
// and its own transition methods; AnyEnvironmentState is the persisted,
// type-erased tagged union that the repository (C6) actually stores.
package environment

import (
	"fmt"
	"net"
	"time"

	"github.com/torrust/tracker-deployer/internal/domain/config"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// ProvisionMethod records how the environment reached the Provisioned
// state: through a full `provision` or through `register` (reachability
// check only, no infrastructure created by this tool).
type ProvisionMethod string

const (
	ProvisionMethodProvisioned ProvisionMethod = "provisioned"
	ProvisionMethodRegistered  ProvisionMethod = "registered"
)

// RuntimeOutputs is populated once the environment has an address to reach,
// either via provisioning or registration.
type RuntimeOutputs struct {
	InstanceIP      net.IP
	ProvisionMethod ProvisionMethod
}

// Core holds the fields shared by every lifecycle state. Each state type
// holds it in a `core` field and exposes it through its Core() method; it
// is never constructed outside newCore.
type Core struct {
	name            valueobject.EnvironmentName
	instanceName    valueobject.InstanceName
	providerConfig  config.ProviderConfig
	sshCredentials  config.SSHCredentials
	sshPort         valueobject.Port
	trackerConfig   config.TrackerConfig
	prometheusConfig *config.PrometheusConfig
	grafanaConfig    *config.GrafanaConfig
	httpsConfig      *config.HTTPSConfig
	backupConfig     *config.BackupConfig
	createdAt        time.Time
	runtimeOutputs   RuntimeOutputs
}

// Params bundles the constructor arguments for NewCreated.
type Params struct {
	Name             valueobject.EnvironmentName
	InstanceName     *valueobject.InstanceName // nil derives from Name
	ProviderConfig   config.ProviderConfig
	SSHCredentials   config.SSHCredentials
	SSHPort          valueobject.Port
	TrackerConfig    config.TrackerConfig
	PrometheusConfig *config.PrometheusConfig
	GrafanaConfig    *config.GrafanaConfig
	HTTPSConfig      *config.HTTPSConfig
	BackupConfig     *config.BackupConfig
	CreatedAt        time.Time
}

// validate enforces the cross-field invariants that require several
// optional configs to be visible at once: Grafana requires Prometheus,
// HTTPS requires at least one TLS domain in HTTPSConfig.Domains (the set
// is not compared with TrackerConfig.TLSDomains), and no two services may
// claim the same host port.
func (p Params) validate() error {
	if p.GrafanaConfig != nil && p.PrometheusConfig == nil {
		return fmt.Errorf("grafana_config requires prometheus_config to also be set")
	}
	if p.HTTPSConfig != nil && len(p.HTTPSConfig.Domains) == 0 {
		return fmt.Errorf("https_config requires at least one TLS domain")
	}

	type portClaim struct {
		port  uint16
		owner string
	}
	claims := []portClaim{
		{p.SSHPort.Uint16(), "ssh_port"},
		{p.TrackerConfig.HTTPPort.Uint16(), "tracker_config.http_port"},
		{p.TrackerConfig.UDPPort.Uint16(), "tracker_config.udp_port"},
		{p.TrackerConfig.APIPort.Uint16(), "tracker_config.api_port"},
		{p.TrackerConfig.HealthCheckPort.Uint16(), "tracker_config.health_check_port"},
	}
	if p.PrometheusConfig != nil {
		claims = append(claims, portClaim{p.PrometheusConfig.Port.Uint16(), "prometheus_config.port"})
	}
	if p.GrafanaConfig != nil {
		claims = append(claims, portClaim{p.GrafanaConfig.Port.Uint16(), "grafana_config.port"})
	}

	claimedBy := make(map[uint16]string, len(claims))
	for _, c := range claims {
		if existing, taken := claimedBy[c.port]; taken {
			return fmt.Errorf("port conflict: %s and %s both claim port %d", existing, c.owner, c.port)
		}
		claimedBy[c.port] = c.owner
	}
	return nil
}

func newCore(p Params) (Core, error) {
	if err := p.validate(); err != nil {
		return Core{}, err
	}
	instanceName := valueobject.DeriveInstanceName(p.Name)
	if p.InstanceName != nil {
		instanceName = *p.InstanceName
	}
	return Core{
		name:             p.Name,
		instanceName:     instanceName,
		providerConfig:   p.ProviderConfig,
		sshCredentials:   p.SSHCredentials,
		sshPort:          p.SSHPort,
		trackerConfig:    p.TrackerConfig,
		prometheusConfig: p.PrometheusConfig,
		grafanaConfig:    p.GrafanaConfig,
		httpsConfig:      p.HTTPSConfig,
		backupConfig:     p.BackupConfig,
		createdAt:        p.CreatedAt,
	}, nil
}

func (c Core) Name() valueobject.EnvironmentName            { return c.name }
func (c Core) InstanceName() valueobject.InstanceName        { return c.instanceName }
func (c Core) ProviderConfig() config.ProviderConfig          { return c.providerConfig }
func (c Core) SSHCredentials() config.SSHCredentials           { return c.sshCredentials }
func (c Core) SSHPort() valueobject.Port                       { return c.sshPort }
func (c Core) TrackerConfig() config.TrackerConfig             { return c.trackerConfig }
func (c Core) PrometheusConfig() *config.PrometheusConfig      { return c.prometheusConfig }
func (c Core) GrafanaConfig() *config.GrafanaConfig            { return c.grafanaConfig }
func (c Core) HTTPSConfig() *config.HTTPSConfig                { return c.httpsConfig }
func (c Core) BackupConfig() *config.BackupConfig              { return c.backupConfig }
func (c Core) CreatedAt() time.Time                            { return c.createdAt }
func (c Core) RuntimeOutputs() RuntimeOutputs                  { return c.runtimeOutputs }

func (c Core) withRuntimeOutputs(out RuntimeOutputs) Core {
	c.runtimeOutputs = out
	return c
}
