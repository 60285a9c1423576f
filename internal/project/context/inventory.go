package context

import (
	"fmt"
	"net"

	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// InventoryContext feeds the remote-configuration-management inventory
// file: the single host this environment targets, its SSH access, and the
// become (sudo) behavior used by every subsequent remote-action step.
type InventoryContext struct {
	instanceName   valueobject.InstanceName
	instanceIP     net.IP
	sshPort        valueobject.Port
	sshUser        valueobject.Username
	sshPrivateKeyPath string
}

func (c InventoryContext) ToMap() (map[string]any, error) {
	return map[string]any{
		"instance_name":      c.instanceName.String(),
		"instance_ip":        c.instanceIP.String(),
		"ssh_port":           c.sshPort.Uint16(),
		"ssh_user":           c.sshUser.String(),
		"ssh_private_key_path": c.sshPrivateKeyPath,
	}, nil
}

// InventoryContextBuilder builds an InventoryContext.
type InventoryContextBuilder struct {
	instanceName      *valueobject.InstanceName
	instanceIP        net.IP
	sshPort           *valueobject.Port
	sshUser           *valueobject.Username
	sshPrivateKeyPath string
}

func NewInventoryContextBuilder() *InventoryContextBuilder { return &InventoryContextBuilder{} }

func (b *InventoryContextBuilder) WithInstanceName(n valueobject.InstanceName) *InventoryContextBuilder {
	b.instanceName = &n
	return b
}

func (b *InventoryContextBuilder) WithInstanceIP(ip net.IP) *InventoryContextBuilder {
	b.instanceIP = ip
	return b
}

func (b *InventoryContextBuilder) WithSSHPort(p valueobject.Port) *InventoryContextBuilder {
	b.sshPort = &p
	return b
}

func (b *InventoryContextBuilder) WithSSHUser(u valueobject.Username) *InventoryContextBuilder {
	b.sshUser = &u
	return b
}

func (b *InventoryContextBuilder) WithSSHPrivateKeyPath(path string) *InventoryContextBuilder {
	b.sshPrivateKeyPath = path
	return b
}

func (b *InventoryContextBuilder) Build() (InventoryContext, error) {
	if b.instanceName == nil {
		return InventoryContext{}, fmt.Errorf("inventory context: missing instance_name")
	}
	if b.instanceIP == nil {
		return InventoryContext{}, fmt.Errorf("inventory context: missing instance_ip")
	}
	if b.sshPort == nil {
		return InventoryContext{}, fmt.Errorf("inventory context: missing ssh_port")
	}
	if b.sshUser == nil {
		return InventoryContext{}, fmt.Errorf("inventory context: missing ssh_user")
	}
	if b.sshPrivateKeyPath == "" {
		return InventoryContext{}, fmt.Errorf("inventory context: missing ssh_private_key_path")
	}
	return InventoryContext{
		instanceName:      *b.instanceName,
		instanceIP:        b.instanceIP,
		sshPort:           *b.sshPort,
		sshUser:           *b.sshUser,
		sshPrivateKeyPath: b.sshPrivateKeyPath,
	}, nil
}
