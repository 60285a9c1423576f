// Package config holds the environment's configuration entities: provider
// selection, SSH access, and the optional service configs (tracker,
// prometheus, grafana, https, backup). These sit between the raw value
// objects (internal/valueobject) and the Environment aggregate
// (internal/domain/environment).
package config

import (
	"encoding/json"
	"fmt"

	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// ProviderKind discriminates the ProviderConfig tagged variant.
type ProviderKind string

const (
	ProviderLxd     ProviderKind = "lxd"
	ProviderHetzner ProviderKind = "hetzner"
)

// LxdProviderConfig provisions the instance as an LXD container on the
// local host, identified by an LXD profile.
type LxdProviderConfig struct {
	ProfileName valueobject.ProfileName `json:"profile_name"`
}

// HetznerProviderConfig provisions the instance as a Hetzner Cloud server.
// No Hetzner SDK is wired in: the actual create/destroy calls are external
// OpenTofu invocations (internal/step), so this struct only carries the
// values that flow into the rendered OpenTofu variables file.
type HetznerProviderConfig struct {
	APIToken   valueobject.APIToken `json:"api_token"`
	ServerType string               `json:"server_type"`
	Location   string               `json:"location"`
	Image      string               `json:"image"`
}

func (h HetznerProviderConfig) validate() error {
	if h.ServerType == "" {
		return fmt.Errorf("hetzner provider: server_type must not be empty")
	}
	if h.Location == "" {
		return fmt.Errorf("hetzner provider: location must not be empty")
	}
	if h.Image == "" {
		return fmt.Errorf("hetzner provider: image must not be empty")
	}
	return nil
}

// ProviderConfig is the tagged { Lxd | Hetzner } variant. Exactly one of
// Lxd/Hetzner is populated, selected by Kind.
type ProviderConfig struct {
	Kind    ProviderKind
	Lxd     *LxdProviderConfig
	Hetzner *HetznerProviderConfig
}

// NewLxdProviderConfig builds a ProviderConfig wrapping an LXD profile.
func NewLxdProviderConfig(profile valueobject.ProfileName) ProviderConfig {
	return ProviderConfig{Kind: ProviderLxd, Lxd: &LxdProviderConfig{ProfileName: profile}}
}

// NewHetznerProviderConfig validates cfg and wraps it in a ProviderConfig.
func NewHetznerProviderConfig(cfg HetznerProviderConfig) (ProviderConfig, error) {
	if err := cfg.validate(); err != nil {
		return ProviderConfig{}, err
	}
	return ProviderConfig{Kind: ProviderHetzner, Hetzner: &cfg}, nil
}

type providerConfigWire struct {
	Provider ProviderKind           `json:"provider"`
	Lxd      *LxdProviderConfig     `json:"lxd,omitempty"`
	Hetzner  *HetznerProviderConfig `json:"hetzner,omitempty"`
}

func (p ProviderConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(providerConfigWire{Provider: p.Kind, Lxd: p.Lxd, Hetzner: p.Hetzner})
}

func (p *ProviderConfig) UnmarshalJSON(data []byte) error {
	var wire providerConfigWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	switch wire.Provider {
	case ProviderLxd:
		if wire.Lxd == nil {
			return fmt.Errorf("provider_config: provider=lxd requires an lxd object")
		}
		*p = ProviderConfig{Kind: ProviderLxd, Lxd: wire.Lxd}
	case ProviderHetzner:
		if wire.Hetzner == nil {
			return fmt.Errorf("provider_config: provider=hetzner requires a hetzner object")
		}
		if err := wire.Hetzner.validate(); err != nil {
			return err
		}
		*p = ProviderConfig{Kind: ProviderHetzner, Hetzner: wire.Hetzner}
	default:
		return fmt.Errorf("provider_config: unknown provider %q", wire.Provider)
	}
	return nil
}
