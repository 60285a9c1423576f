package handler

import (
	"fmt"
	"os"

	"github.com/torrust/tracker-deployer/internal/domain/environment"
	"github.com/torrust/tracker-deployer/pkg/ssh"
)

// CreateHandler implements `create environment --env-file F [--generate-ssh-key]`:
// parse, validate, and persist a new environment in the Created state.
// There is no prior state to type-check against, so this handler skips
// steps 1-2 of the six-step control flow and no step sequence runs, so
// there is no failure state or trace to write either.
type CreateHandler struct {
	Deps *Deps
}

// Handle parses envFilePath and persists the resulting environment.
// Re-creating an already-existing environment is rejected: create is not
// idempotent (spec.md §4.8). When generateSSHKey is set, a fresh RSA
// keypair is written to the env file's configured private/public key
// paths before validation, so an operator pointing a fresh env file at
// paths that don't exist yet doesn't have to run ssh-keygen by hand first;
// an existing private key at that path is left untouched.
func (h *CreateHandler) Handle(envFilePath string, generateSSHKey bool) (environment.Created, error) {
	params, err := LoadParamsFromFile(envFilePath, h.Deps.Clock.Now())
	if err != nil {
		return environment.Created{}, ConfigurationError(fmt.Sprintf("invalid env file %s", envFilePath), err)
	}

	if h.Deps.Repo.Exists(params.Name) {
		return environment.Created{}, ConfigurationError(
			fmt.Sprintf("environment %q already exists", params.Name), nil,
		)
	}

	if generateSSHKey {
		if err := generateSSHKeyIfMissing(params.SSHCredentials.PrivateKeyPath, params.SSHCredentials.PublicKeyPath); err != nil {
			return environment.Created{}, ConfigurationError("generate ssh keypair", err)
		}
	}

	created, err := environment.NewCreated(params)
	if err != nil {
		return environment.Created{}, ConfigurationError("env file failed validation", err)
	}

	if err := h.Deps.Repo.SaveCreated(created); err != nil {
		return environment.Created{}, IOError(fmt.Sprintf("persist environment %q", params.Name), err)
	}
	return created, nil
}

// generateSSHKeyIfMissing writes a freshly generated RSA keypair to
// privateKeyPath/publicKeyPath, unless a private key already exists there.
func generateSSHKeyIfMissing(privateKeyPath, publicKeyPath string) error {
	if _, err := os.Stat(privateKeyPath); err == nil {
		return nil
	}
	keyPair, err := ssh.NewKeyPair()
	if err != nil {
		return fmt.Errorf("generate keypair: %w", err)
	}
	if err := keyPair.WriteToFile(privateKeyPath, publicKeyPath); err != nil {
		return fmt.Errorf("write keypair to %s/%s: %w", privateKeyPath, publicKeyPath, err)
	}
	return nil
}
