package handler

import (
	"io"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/torrust/tracker-deployer/internal/domain/config"
	"github.com/torrust/tracker-deployer/internal/domain/environment"
	"github.com/torrust/tracker-deployer/internal/step"
	"github.com/torrust/tracker-deployer/internal/template"
	"github.com/torrust/tracker-deployer/internal/trace"
	"github.com/torrust/tracker-deployer/internal/valueobject"
	"github.com/torrust/tracker-deployer/pkg/log"
	"github.com/torrust/tracker-deployer/pkg/ssh"
)

// newTestDeps builds a Deps rooted under t.TempDir(), wired the same way
// cmd/tracker-deployer's app.newDeps wires a real one, for handlers whose
// tests never open an SSH connection.
func newTestDeps(t *testing.T) *Deps {
	t.Helper()
	base := t.TempDir()
	return &Deps{
		Repo:      environment.NewRepository(filepath.Join(base, "environments"), time.Second),
		Traces:    trace.NewWriter(filepath.Join(base, "traces"), trace.SystemClock{}),
		Engine:    template.NewEngine(),
		Clock:     step.SystemClock{},
		Log:       log.NewDefault(),
		BuildRoot: filepath.Join(base, "build"),
	}
}

// writeEnvFile writes a minimal, valid env file (envFileWire's shape) and
// returns its path.
func writeEnvFile(t *testing.T, name string) string {
	t.Helper()
	return writeEnvFileWithKeyPaths(t, name, "/tmp/id_ed25519", "/tmp/id_ed25519.pub")
}

// writeEnvFileWithKeyPaths is writeEnvFile with caller-chosen SSH key
// paths, for tests that exercise --generate-ssh-key against a real
// t.TempDir() path.
func writeEnvFileWithKeyPaths(t *testing.T, name, privateKeyPath, publicKeyPath string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name+".json")
	body := `{
  "environment_name": "` + name + `",
  "provider_config": {"provider": "lxd", "lxd": {"profile_name": "torrust-profile"}},
  "ssh_credentials": {"private_key_path": "` + privateKeyPath + `", "public_key_path": "` + publicKeyPath + `", "username": "torrust"},
  "ssh_port": 22,
  "tracker_config": {
    "database": {"database": "sqlite"},
    "http_port": 7070,
    "udp_port": 6969,
    "api_port": 1212,
    "api_token": "test-token",
    "health_check_port": 1313
  }
}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write env file: %s", err)
	}
	return path
}

func mustParseEnvName(t *testing.T, raw string) valueobject.EnvironmentName {
	t.Helper()
	name, err := valueobject.NewEnvironmentName(raw)
	if err != nil {
		t.Fatalf("NewEnvironmentName(%q): %s", raw, err)
	}
	return name
}

// fakeClock hands out a strictly increasing sequence of instants, so
// handler tests asserting on BaseFailureContext's timestamps don't depend
// on wall-clock time.Now() resolution.
type fakeClock struct{ calls int }

func (c *fakeClock) Now() time.Time {
	c.calls++
	return time.Unix(int64(c.calls), 0)
}

// newCreatedFixture parses envFile the same way CreateHandler does and
// returns the resulting Created aggregate, without persisting it, for
// tests that need to drive it through further transitions by hand before
// seeding the repository.
func newCreatedFixture(t *testing.T, deps *Deps, envFile string) environment.Created {
	t.Helper()
	params, err := LoadParamsFromFile(envFile, deps.Clock.Now())
	if err != nil {
		t.Fatalf("LoadParamsFromFile: %s", err)
	}
	created, err := environment.NewCreated(params)
	if err != nil {
		t.Fatalf("NewCreated: %s", err)
	}
	return created
}

// succeedingSSHMock returns a MockSSHClient whose every hook reports
// success, for handler success-path tests that only care that some SSH
// calls happened, not their exact sequencing.
func succeedingSSHMock() *ssh.MockSSHClient {
	return &ssh.MockSSHClient{
		MockRun:        func(string, io.Writer, io.Writer) error { return nil },
		MockWaitForSSH: func(time.Duration) error { return nil },
		MockUpload:     func(io.Reader, string, uint32) error { return nil },
		MockDisconnect: func() {},
	}
}

// dialMock installs a DialSSH override on deps that always hands back
// client, regardless of the address/port a handler asks to connect to.
func dialMock(deps *Deps, client ssh.Client) {
	deps.DialSSH = func(config.SSHCredentials, net.IP, valueobject.Port, time.Duration) (ssh.Client, error) {
		return client, nil
	}
}

// dialMockErr installs a DialSSH override that always fails the dial
// itself with err, for exercising a handler's SSH-unreachable path.
func dialMockErr(deps *Deps, err error) {
	deps.DialSSH = func(config.SSHCredentials, net.IP, valueobject.Port, time.Duration) (ssh.Client, error) {
		return nil, err
	}
}

// writeFakeBinary writes an executable shell script named name into a
// fresh directory prepended to PATH, so steps that shell out (tofu init/
// apply/destroy/output) run against a script instead of a real external
// tool. body is the script's body, run by `/bin/sh` with its argv ($1, $2,
// ...) set to the real invocation's arguments.
func writeFakeBinary(t *testing.T, name, body string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake binary shell scripts require a POSIX shell")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake binary %s: %s", name, err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}
