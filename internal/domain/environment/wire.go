package environment

import (
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/torrust/tracker-deployer/internal/domain/config"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// coreWire is the JSON shape of Core shared by every AnyEnvironmentState
// variant. Fields here are the "common identity fields" spec.md §6.3 says
// every variant includes.
type coreWire struct {
	EnvironmentName  valueobject.EnvironmentName `json:"environment_name"`
	InstanceName     valueobject.InstanceName    `json:"instance_name"`
	ProviderConfig   config.ProviderConfig       `json:"provider_config"`
	SSHCredentials   config.SSHCredentials       `json:"ssh_credentials"`
	SSHPort          valueobject.Port            `json:"ssh_port"`
	TrackerConfig    config.TrackerConfig        `json:"tracker_config"`
	PrometheusConfig *config.PrometheusConfig    `json:"prometheus_config,omitempty"`
	GrafanaConfig    *config.GrafanaConfig       `json:"grafana_config,omitempty"`
	HTTPSConfig      *config.HTTPSConfig         `json:"https_config,omitempty"`
	BackupConfig     *config.BackupConfig        `json:"backup_config,omitempty"`
	CreatedAt        time.Time                   `json:"created_at"`
	InstanceIP       string                      `json:"instance_ip,omitempty"`
	ProvisionMethod  ProvisionMethod             `json:"provision_method,omitempty"`
}

func (c Core) toWire() coreWire {
	ip := ""
	if c.runtimeOutputs.InstanceIP != nil {
		ip = c.runtimeOutputs.InstanceIP.String()
	}
	return coreWire{
		EnvironmentName:  c.name,
		InstanceName:     c.instanceName,
		ProviderConfig:   c.providerConfig,
		SSHCredentials:   c.sshCredentials,
		SSHPort:          c.sshPort,
		TrackerConfig:    c.trackerConfig,
		PrometheusConfig: c.prometheusConfig,
		GrafanaConfig:    c.grafanaConfig,
		HTTPSConfig:      c.httpsConfig,
		BackupConfig:     c.backupConfig,
		CreatedAt:        c.createdAt,
		InstanceIP:       ip,
		ProvisionMethod:  c.runtimeOutputs.ProvisionMethod,
	}
}

// fromWire reconstructs a Core from its persisted wire form without
// re-running Params.validate: the document was validated once, at
// construction, before it was ever saved (spec.md §4.1's "parsed once,
// never re-validated" rule extended to the aggregate as a whole).
func (w coreWire) fromWire() Core {
	var ip net.IP
	if w.InstanceIP != "" {
		ip = net.ParseIP(w.InstanceIP)
	}
	return Core{
		name:             w.EnvironmentName,
		instanceName:     w.InstanceName,
		providerConfig:   w.ProviderConfig,
		sshCredentials:   w.SSHCredentials,
		sshPort:          w.SSHPort,
		trackerConfig:    w.TrackerConfig,
		prometheusConfig: w.PrometheusConfig,
		grafanaConfig:    w.GrafanaConfig,
		httpsConfig:      w.HTTPSConfig,
		backupConfig:     w.BackupConfig,
		createdAt:        w.CreatedAt,
		runtimeOutputs: RuntimeOutputs{
			InstanceIP:      ip,
			ProvisionMethod: w.ProvisionMethod,
		},
	}
}

// wireDocument is the full persisted shape of environment.json: the common
// core fields, the state discriminator, and (for failure states) the
// state-specific failure context. Extra carries any field this version of
// the code doesn't recognize, so round-tripping through an older or newer
// binary never silently drops data (spec.md §6.3's forward-compatibility
// rule).
type wireDocument struct {
	coreWire
	State   Kind            `json:"state"`
	Context json.RawMessage `json:"context,omitempty"`
	Extra   map[string]json.RawMessage `json:"-"`
}

func (d wireDocument) MarshalJSON() ([]byte, error) {
	type alias wireDocument
	base, err := json.Marshal(alias(d))
	if err != nil {
		return nil, err
	}
	if len(d.Extra) == 0 {
		return base, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range d.Extra {
		if _, known := merged[k]; !known {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

func (d *wireDocument) UnmarshalJSON(data []byte) error {
	type alias wireDocument
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*d = wireDocument(a)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	known := map[string]bool{
		"environment_name": true, "instance_name": true, "provider_config": true,
		"ssh_credentials": true, "ssh_port": true, "tracker_config": true,
		"prometheus_config": true, "grafana_config": true, "https_config": true,
		"backup_config": true, "created_at": true, "instance_ip": true,
		"provision_method": true, "state": true, "context": true,
	}
	d.Extra = make(map[string]json.RawMessage)
	for k, v := range raw {
		if !known[k] {
			d.Extra[k] = v
		}
	}
	return nil
}

func toWireDocument(state AnyEnvironmentState) (wireDocument, error) {
	doc := wireDocument{coreWire: state.Core().toWire(), State: state.Kind}
	var ctx interface{}
	switch state.Kind {
	case KindProvisionFailed:
		ctx = state.ProvisionFailed.context
	case KindConfigureFailed:
		ctx = state.ConfigureFailed.context
	case KindReleaseFailed:
		ctx = state.ReleaseFailed.context
	case KindRunFailed:
		ctx = state.RunFailed.context
	case KindDestroyFailed:
		ctx = state.DestroyFailed.context
	default:
		return doc, nil
	}
	raw, err := json.Marshal(ctx)
	if err != nil {
		return wireDocument{}, err
	}
	doc.Context = raw
	return doc, nil
}

func fromWireDocument(doc wireDocument) (AnyEnvironmentState, error) {
	core := doc.coreWire.fromWire()
	switch doc.State {
	case KindCreated:
		v := Created{core: core}
		return v.IntoAny(), nil
	case KindProvisioning:
		v := Provisioning{core: core}
		return v.IntoAny(), nil
	case KindProvisioned:
		v := Provisioned{core: core}
		return v.IntoAny(), nil
	case KindConfiguring:
		v := Configuring{core: core}
		return v.IntoAny(), nil
	case KindConfigured:
		v := Configured{core: core}
		return v.IntoAny(), nil
	case KindReleasing:
		v := Releasing{core: core}
		return v.IntoAny(), nil
	case KindReleased:
		v := Released{core: core}
		return v.IntoAny(), nil
	case KindRunning:
		v := Running{core: core}
		return v.IntoAny(), nil
	case KindDestroyed:
		v := Destroyed{core: core}
		return v.IntoAny(), nil
	case KindProvisionFailed:
		var ctx ProvisionFailureContext
		if err := json.Unmarshal(doc.Context, &ctx); err != nil {
			return AnyEnvironmentState{}, err
		}
		v := ProvisionFailed{core: core, context: ctx}
		return v.IntoAny(), nil
	case KindConfigureFailed:
		var ctx ConfigureFailureContext
		if err := json.Unmarshal(doc.Context, &ctx); err != nil {
			return AnyEnvironmentState{}, err
		}
		v := ConfigureFailed{core: core, context: ctx}
		return v.IntoAny(), nil
	case KindReleaseFailed:
		var ctx ReleaseFailureContext
		if err := json.Unmarshal(doc.Context, &ctx); err != nil {
			return AnyEnvironmentState{}, err
		}
		v := ReleaseFailed{core: core, context: ctx}
		return v.IntoAny(), nil
	case KindRunFailed:
		var ctx RunFailureContext
		if err := json.Unmarshal(doc.Context, &ctx); err != nil {
			return AnyEnvironmentState{}, err
		}
		v := RunFailed{core: core, context: ctx}
		return v.IntoAny(), nil
	case KindDestroyFailed:
		var ctx DestroyFailureContext
		if err := json.Unmarshal(doc.Context, &ctx); err != nil {
			return AnyEnvironmentState{}, err
		}
		v := DestroyFailed{core: core, context: ctx}
		return v.IntoAny(), nil
	default:
		return AnyEnvironmentState{}, fmt.Errorf("environment: unknown persisted state %q", doc.State)
	}
}
