package handler

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"

	"github.com/torrust/tracker-deployer/internal/domain/environment"
)

// configuredFixture drives a Created aggregate through provision and
// configure without invoking either handler, to seed a Configured
// environment for release_test.go.
func configuredFixture(t *testing.T, deps *Deps, envFile string, instanceIP net.IP) environment.Configured {
	t.Helper()
	created := newCreatedFixture(t, deps, envFile)
	provisioning := created.StartProvisioning()
	provisioned := provisioning.ProvisionSucceeded(instanceIP)
	configuring := provisioned.StartConfiguring()
	return configuring.ConfigureSucceeded()
}

// The minimal env file (writeEnvFile) configures no optional services, so
// release's sequence is just: storage dirs, database init, tracker
// templates, tracker upload, compose templates, compose upload — no mysql,
// prometheus, grafana, backup, or TLS steps.
func TestReleaseHandlerSucceeds(t *testing.T) {
	deps := newTestDeps(t)
	dialMock(deps, succeedingSSHMock())

	name := mustParseEnvName(t, "release-ok")
	configured := configuredFixture(t, deps, writeEnvFile(t, "release-ok"), net.ParseIP("203.0.113.70"))
	if err := deps.Repo.SaveConfigured(configured); err != nil {
		t.Fatalf("SaveConfigured: %s", err)
	}

	h := &ReleaseHandler{Deps: deps}
	released, err := h.Handle(context.Background(), name)
	if err != nil {
		t.Fatalf("Handle: %s", err)
	}
	if released.Core().Name() != name {
		t.Fatalf("unexpected core name: %s", released.Core().Name())
	}

	state, err := deps.Repo.Load(name)
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	if state.Kind != environment.KindReleased {
		t.Fatalf("expected persisted state Released, got %s", state.Kind)
	}
}

func TestReleaseHandlerFailsAtFirstStep(t *testing.T) {
	deps := newTestDeps(t)
	mock := succeedingSSHMock()
	mock.MockRun = func(string, io.Writer, io.Writer) error {
		return errors.New("mkdir: permission denied")
	}
	dialMock(deps, mock)

	name := mustParseEnvName(t, "release-fail")
	configured := configuredFixture(t, deps, writeEnvFile(t, "release-fail"), net.ParseIP("203.0.113.71"))
	if err := deps.Repo.SaveConfigured(configured); err != nil {
		t.Fatalf("SaveConfigured: %s", err)
	}

	h := &ReleaseHandler{Deps: deps}
	if _, err := h.Handle(context.Background(), name); err == nil {
		t.Fatal("expected an error when create_tracker_storage fails")
	}

	state, err := deps.Repo.Load(name)
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	if state.Kind != environment.KindReleaseFailed {
		t.Fatalf("expected persisted state ReleaseFailed, got %s", state.Kind)
	}
	if state.ReleaseFailed.Context().FailedStep != environment.ReleaseStepCreateTrackerStorage {
		t.Fatalf("expected failure at create_tracker_storage, got %s", state.ReleaseFailed.Context().FailedStep)
	}
}
