package handler

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"

	"github.com/torrust/tracker-deployer/internal/domain/environment"
)

// releasedFixture drives a Created aggregate through the transitions a
// real provision/configure/release run would apply, without invoking any
// of those handlers, to seed a Released environment for run_test.go and
// test_test.go.
func releasedFixture(t *testing.T, deps *Deps, envFile string, instanceIP net.IP) environment.Released {
	t.Helper()
	created := newCreatedFixture(t, deps, envFile)
	provisioning := created.StartProvisioning()
	provisioned := provisioning.ProvisionSucceeded(instanceIP)
	configuring := provisioned.StartConfiguring()
	configured := configuring.ConfigureSucceeded()
	releasing := configured.StartReleasing()
	return releasing.ReleaseSucceeded()
}

func TestRunHandlerSucceeds(t *testing.T) {
	deps := newTestDeps(t)
	dialMock(deps, succeedingSSHMock())

	name := mustParseEnvName(t, "run-ok")
	released := releasedFixture(t, deps, writeEnvFile(t, "run-ok"), net.ParseIP("203.0.113.30"))
	if err := deps.Repo.SaveReleased(released); err != nil {
		t.Fatalf("SaveReleased: %s", err)
	}

	h := &RunHandler{Deps: deps}
	running, err := h.Handle(context.Background(), name)
	if err != nil {
		t.Fatalf("Handle: %s", err)
	}
	if running.Core().Name() != name {
		t.Fatalf("unexpected core name: %s", running.Core().Name())
	}

	state, err := deps.Repo.Load(name)
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	if state.Kind != environment.KindRunning {
		t.Fatalf("expected persisted state Running, got %s", state.Kind)
	}
}

func TestRunHandlerFailsAtFirstStep(t *testing.T) {
	deps := newTestDeps(t)
	mock := succeedingSSHMock()
	mock.MockRun = func(string, io.Writer, io.Writer) error {
		return errors.New("compose binary not found")
	}
	dialMock(deps, mock)

	name := mustParseEnvName(t, "run-fail")
	released := releasedFixture(t, deps, writeEnvFile(t, "run-fail"), net.ParseIP("203.0.113.31"))
	if err := deps.Repo.SaveReleased(released); err != nil {
		t.Fatalf("SaveReleased: %s", err)
	}

	h := &RunHandler{Deps: deps}
	if _, err := h.Handle(context.Background(), name); err == nil {
		t.Fatal("expected an error when start_services fails")
	}

	state, err := deps.Repo.Load(name)
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	if state.Kind != environment.KindRunFailed {
		t.Fatalf("expected persisted state RunFailed, got %s", state.Kind)
	}
	if state.RunFailed.Context().FailedStep != environment.RunStepStartServices {
		t.Fatalf("expected failure at start_services, got %s", state.RunFailed.Context().FailedStep)
	}
}
