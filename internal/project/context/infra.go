// Package context holds one dedicated, builder-constructed context type per
// template file rendered by internal/project's generators (C3). Each
// context's fields are internal/valueobject types, so by the time a context
// reaches internal/template.Engine its values are already validated; the
// builder only enforces that required fields were supplied at all.
package context

import (
	"fmt"

	"github.com/torrust/tracker-deployer/internal/domain/config"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// InfraContext feeds the OpenTofu variables file for whichever provider is
// configured (Lxd or Hetzner).
type InfraContext struct {
	instanceName valueobject.InstanceName
	sshPublicKeyPath string
	provider     config.ProviderConfig
}

// ToMap serializes the context for internal/template.Engine.
func (c InfraContext) ToMap() (map[string]any, error) {
	m := map[string]any{
		"instance_name":       c.instanceName.String(),
		"ssh_public_key_path": c.sshPublicKeyPath,
		"provider":            string(c.provider.Kind),
	}
	switch c.provider.Kind {
	case config.ProviderLxd:
		m["profile_name"] = c.provider.Lxd.ProfileName.String()
	case config.ProviderHetzner:
		m["server_type"] = c.provider.Hetzner.ServerType
		m["location"] = c.provider.Hetzner.Location
		m["image"] = c.provider.Hetzner.Image
		m["api_token"] = c.provider.Hetzner.APIToken.Reveal()
	}
	return m, nil
}

// InfraContextBuilder builds an InfraContext, enforcing that instance name,
// SSH public key path, and provider config were all supplied.
type InfraContextBuilder struct {
	instanceName     *valueobject.InstanceName
	sshPublicKeyPath string
	provider         *config.ProviderConfig
}

func NewInfraContextBuilder() *InfraContextBuilder { return &InfraContextBuilder{} }

func (b *InfraContextBuilder) WithInstanceName(n valueobject.InstanceName) *InfraContextBuilder {
	b.instanceName = &n
	return b
}

func (b *InfraContextBuilder) WithSSHPublicKeyPath(path string) *InfraContextBuilder {
	b.sshPublicKeyPath = path
	return b
}

func (b *InfraContextBuilder) WithProvider(p config.ProviderConfig) *InfraContextBuilder {
	b.provider = &p
	return b
}

// Build enforces required fields and returns the InfraContext.
func (b *InfraContextBuilder) Build() (InfraContext, error) {
	if b.instanceName == nil {
		return InfraContext{}, fmt.Errorf("infra context: missing instance_name")
	}
	if b.sshPublicKeyPath == "" {
		return InfraContext{}, fmt.Errorf("infra context: missing ssh_public_key_path")
	}
	if b.provider == nil {
		return InfraContext{}, fmt.Errorf("infra context: missing provider")
	}
	return InfraContext{
		instanceName:     *b.instanceName,
		sshPublicKeyPath: b.sshPublicKeyPath,
		provider:         *b.provider,
	}, nil
}
