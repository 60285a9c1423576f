package config

import (
	"fmt"

	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// SSHCredentials names the key pair and user the deployer uses to reach the
// provisioned instance. Unlike pkg/ssh.Credentials (the live-connection
// struct consumed by a transport client), this is environment-level config:
// paths on the operator's machine, not key material.
type SSHCredentials struct {
	PrivateKeyPath string             `json:"private_key_path"`
	PublicKeyPath  string             `json:"public_key_path"`
	Username       valueobject.Username `json:"username"`
}

// NewSSHCredentials validates that both key paths are non-empty.
func NewSSHCredentials(privateKeyPath, publicKeyPath string, username valueobject.Username) (SSHCredentials, error) {
	if privateKeyPath == "" {
		return SSHCredentials{}, fmt.Errorf("ssh_credentials: private_key_path must not be empty")
	}
	if publicKeyPath == "" {
		return SSHCredentials{}, fmt.Errorf("ssh_credentials: public_key_path must not be empty")
	}
	return SSHCredentials{PrivateKeyPath: privateKeyPath, PublicKeyPath: publicKeyPath, Username: username}, nil
}
