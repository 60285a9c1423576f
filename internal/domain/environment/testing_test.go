package environment

import (
	"testing"
	"time"

	"github.com/torrust/tracker-deployer/internal/domain/config"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// newTestParams builds a minimal, valid Params for name: lxd provider,
// sqlite tracker database, no optional services.
func newTestParams(t *testing.T, name string) Params {
	t.Helper()

	envName, err := valueobject.NewEnvironmentName(name)
	if err != nil {
		t.Fatalf("NewEnvironmentName(%q): %s", name, err)
	}
	profile, err := valueobject.NewProfileName("torrust-profile")
	if err != nil {
		t.Fatalf("NewProfileName: %s", err)
	}
	username, err := valueobject.NewUsername("torrust")
	if err != nil {
		t.Fatalf("NewUsername: %s", err)
	}
	sshCreds, err := config.NewSSHCredentials("/tmp/id_ed25519", "/tmp/id_ed25519.pub", username)
	if err != nil {
		t.Fatalf("NewSSHCredentials: %s", err)
	}
	sshPort, err := valueobject.NewPort(22)
	if err != nil {
		t.Fatalf("NewPort(22): %s", err)
	}
	httpPort, err := valueobject.NewPort(7070)
	if err != nil {
		t.Fatalf("NewPort(7070): %s", err)
	}
	udpPort, err := valueobject.NewPort(6969)
	if err != nil {
		t.Fatalf("NewPort(6969): %s", err)
	}
	apiPort, err := valueobject.NewPort(1212)
	if err != nil {
		t.Fatalf("NewPort(1212): %s", err)
	}
	healthPort, err := valueobject.NewPort(1313)
	if err != nil {
		t.Fatalf("NewPort(1313): %s", err)
	}
	apiToken, err := valueobject.NewAPIToken("test-token")
	if err != nil {
		t.Fatalf("NewAPIToken: %s", err)
	}

	return Params{
		Name:           envName,
		ProviderConfig: config.ProviderConfig{Kind: config.ProviderLxd, Lxd: &config.LxdProviderConfig{ProfileName: profile}},
		SSHCredentials: sshCreds,
		SSHPort:        sshPort,
		TrackerConfig: config.NewTrackerConfig(
			config.NewSqliteDatabaseConfig(),
			httpPort, udpPort, apiPort, healthPort,
			apiToken, nil,
		),
		CreatedAt: time.Unix(1700000000, 0).UTC(),
	}
}
