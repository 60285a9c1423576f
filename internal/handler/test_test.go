package handler

import (
	"errors"
	"net"
	"testing"
)

func TestTestHandlerReportsHealthyInstance(t *testing.T) {
	deps := newTestDeps(t)
	dialMock(deps, succeedingSSHMock())

	name := mustParseEnvName(t, "test-ok")
	released := releasedFixture(t, deps, writeEnvFile(t, "test-ok"), net.ParseIP("203.0.113.40"))
	if err := deps.Repo.SaveReleased(released); err != nil {
		t.Fatalf("SaveReleased: %s", err)
	}

	h := &TestHandler{Deps: deps}
	result, err := h.Handle(name)
	if err != nil {
		t.Fatalf("Handle: %s", err)
	}
	if !result.SSHReachable || !result.TrackerHealthy {
		t.Fatalf("expected both checks to pass, got %+v", result)
	}
}

func TestTestHandlerReportsUnreachableSSHWithoutFailingTheCommand(t *testing.T) {
	deps := newTestDeps(t)
	dialMockErr(deps, errors.New("connection refused"))

	name := mustParseEnvName(t, "test-unreachable")
	released := releasedFixture(t, deps, writeEnvFile(t, "test-unreachable"), net.ParseIP("203.0.113.41"))
	if err := deps.Repo.SaveReleased(released); err != nil {
		t.Fatalf("SaveReleased: %s", err)
	}

	h := &TestHandler{Deps: deps}
	result, err := h.Handle(name)
	if err != nil {
		t.Fatalf("Handle should report failures in TestResult, not as an error: %s", err)
	}
	if result.SSHReachable {
		t.Fatal("expected SSHReachable to be false")
	}
	if result.SSHError == nil {
		t.Fatal("expected SSHError to be set")
	}
	if result.TrackerHealthy {
		t.Fatal("expected TrackerHealthy to be false when SSH itself is unreachable")
	}
}
