package handler

import (
	"fmt"
	"net"
	"path/filepath"
	"time"

	"github.com/go-logr/logr"

	"github.com/torrust/tracker-deployer/internal/domain/config"
	"github.com/torrust/tracker-deployer/internal/domain/environment"
	"github.com/torrust/tracker-deployer/internal/template"
	"github.com/torrust/tracker-deployer/internal/trace"
	"github.com/torrust/tracker-deployer/internal/valueobject"
	"github.com/torrust/tracker-deployer/pkg/ssh"
)

// Deps bundles everything every handler needs, so constructing one is a
// single call regardless of which command it serves.
type Deps struct {
	Repo   *environment.Repository
	Traces *trace.Writer
	Engine *template.Engine
	Clock  Clock
	Log    logr.Logger

	// BuildRoot is the directory rendered templates and deployment
	// artifacts are written under, one subdirectory per environment:
	// {BuildRoot}/{env_name}/...
	BuildRoot string

	// SSHConnectTimeout bounds each dial attempt; SSHMaxWait bounds the
	// whole wait_for_ssh retry loop.
	SSHConnectTimeout time.Duration
	SSHMaxWait        time.Duration
	SSHPollInterval   time.Duration

	// DialSSH overrides how newSSHClientForAddr obtains a connected client,
	// so handler tests can substitute pkg/ssh.MockSSHClient instead of
	// dialing a real host. Nil means dial for real via ssh.SSHClient.
	DialSSH func(creds config.SSHCredentials, ip net.IP, port valueobject.Port, timeout time.Duration) (ssh.Client, error)
}

// buildDir returns the per-environment output directory templates render
// into and steps deploy from.
func (d *Deps) buildDir(name valueobject.EnvironmentName) string {
	return filepath.Join(d.BuildRoot, name.String())
}

// newSSHClient builds a transport client for the instance recorded in
// core's runtime outputs, authenticating with its configured key pair.
func (d *Deps) newSSHClient(core environment.Core) (ssh.Client, error) {
	outputs := core.RuntimeOutputs()
	if outputs.InstanceIP == nil {
		return nil, fmt.Errorf("environment %q has no recorded instance IP", core.Name())
	}
	return d.newSSHClientForIP(core, outputs.InstanceIP)
}

// newSSHClientForIP builds a transport client for an address not yet
// recorded on core (e.g. the address a provision run just captured, before
// ProvisionSucceeded has been applied), using core's configured SSH port.
func (d *Deps) newSSHClientForIP(core environment.Core, ip net.IP) (ssh.Client, error) {
	return d.newSSHClientForAddr(core, ip, core.SSHPort())
}

// newSSHClientForAddr builds a transport client for ip:port, overriding
// core's configured SSH port (e.g. `register --ssh-port` against a Docker
// bridge port mapping onto an already-running host).
func (d *Deps) newSSHClientForAddr(core environment.Core, ip net.IP, port valueobject.Port) (ssh.Client, error) {
	creds := core.SSHCredentials()
	if d.DialSSH != nil {
		return d.DialSSH(creds, ip, port, d.SSHConnectTimeout)
	}
	client := &ssh.SSHClient{
		Creds: &ssh.Credentials{
			SSHUser:       creds.Username.String(),
			SSHPrivateKey: creds.PrivateKeyPath,
		},
		IP:   ip,
		Port: int(port.Uint16()),
		Options: ssh.Options{
			ConnectTimeout: d.SSHConnectTimeout,
		},
	}
	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("connect to %s:%d: %w", ip, port.Uint16(), err)
	}
	return client, nil
}

// load fetches the persisted state for name, translating a missing
// document into the uniform NotFoundError.
func (d *Deps) load(name valueobject.EnvironmentName) (environment.AnyEnvironmentState, error) {
	state, err := d.Repo.Load(name)
	if err != nil {
		if isNotFound(err) {
			return environment.AnyEnvironmentState{}, NotFoundError(name)
		}
		return environment.AnyEnvironmentState{}, IOError(fmt.Sprintf("load environment %q", name), err)
	}
	return state, nil
}
