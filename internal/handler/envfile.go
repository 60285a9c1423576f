package handler

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/torrust/tracker-deployer/internal/domain/config"
	"github.com/torrust/tracker-deployer/internal/domain/environment"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// envFileWire is the JSON shape of the file `create environment --env-file`
// reads. It mirrors coreWire's field names so a saved environment.json's
// core section can be edited and replayed as an env file, but only carries
// what a not-yet-created environment has: no created_at, no runtime
// outputs.
type envFileWire struct {
	EnvironmentName  string                   `json:"environment_name"`
	InstanceName     string                   `json:"instance_name,omitempty"`
	ProviderConfig   config.ProviderConfig    `json:"provider_config"`
	SSHCredentials   sshCredentialsWire       `json:"ssh_credentials"`
	SSHPort          int                      `json:"ssh_port"`
	TrackerConfig    config.TrackerConfig     `json:"tracker_config"`
	PrometheusConfig *config.PrometheusConfig `json:"prometheus_config,omitempty"`
	GrafanaConfig    *config.GrafanaConfig    `json:"grafana_config,omitempty"`
	HTTPSConfig      *config.HTTPSConfig      `json:"https_config,omitempty"`
	BackupConfig     *config.BackupConfig     `json:"backup_config,omitempty"`
}

// sshCredentialsWire carries the raw username string so it can be run
// through NewSSHCredentials (and so NewUsername) rather than decoded
// straight into config.SSHCredentials, which has no validating Unmarshal
// of its own.
type sshCredentialsWire struct {
	PrivateKeyPath string `json:"private_key_path"`
	PublicKeyPath  string `json:"public_key_path"`
	Username       string `json:"username"`
}

// LoadParamsFromFile reads path, decodes it, and validates every field
// through its owning constructor, returning the Params NewCreated needs.
// createdAt is the timestamp recorded against the new environment.
func LoadParamsFromFile(path string, createdAt time.Time) (environment.Params, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return environment.Params{}, fmt.Errorf("read env file %s: %w", path, err)
	}
	var wire envFileWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return environment.Params{}, fmt.Errorf("parse env file %s: %w", path, err)
	}

	name, err := valueobject.NewEnvironmentName(wire.EnvironmentName)
	if err != nil {
		return environment.Params{}, err
	}

	var instanceName *valueobject.InstanceName
	if wire.InstanceName != "" {
		parsed, err := valueobject.NewInstanceName(wire.InstanceName)
		if err != nil {
			return environment.Params{}, err
		}
		instanceName = &parsed
	}

	username, err := valueobject.NewUsername(wire.SSHCredentials.Username)
	if err != nil {
		return environment.Params{}, err
	}
	creds, err := config.NewSSHCredentials(wire.SSHCredentials.PrivateKeyPath, wire.SSHCredentials.PublicKeyPath, username)
	if err != nil {
		return environment.Params{}, err
	}

	sshPort, err := valueobject.NewPort(wire.SSHPort)
	if err != nil {
		return environment.Params{}, fmt.Errorf("ssh_port: %w", err)
	}

	return environment.Params{
		Name:             name,
		InstanceName:     instanceName,
		ProviderConfig:   wire.ProviderConfig,
		SSHCredentials:   creds,
		SSHPort:          sshPort,
		TrackerConfig:    wire.TrackerConfig,
		PrometheusConfig: wire.PrometheusConfig,
		GrafanaConfig:    wire.GrafanaConfig,
		HTTPSConfig:      wire.HTTPSConfig,
		BackupConfig:     wire.BackupConfig,
		CreatedAt:        createdAt,
	}, nil
}
