package handler

import (
	"testing"

	"github.com/torrust/tracker-deployer/internal/domain/environment"
)

func TestListHandlerListsEveryPersistedEnvironment(t *testing.T) {
	deps := newTestDeps(t)
	for _, name := range []string{"alpha", "beta"} {
		if _, err := (&CreateHandler{Deps: deps}).Handle(writeEnvFile(t, name)); err != nil {
			t.Fatalf("create %s: %s", name, err)
		}
	}

	summaries, err := (&ListHandler{Deps: deps}).Handle()
	if err != nil {
		t.Fatalf("Handle: %s", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 environments, got %d", len(summaries))
	}
	seen := map[string]environment.StateName{}
	for _, s := range summaries {
		seen[s.Name] = s.State
	}
	for _, name := range []string{"alpha", "beta"} {
		if seen[name] != environment.StateCreated {
			t.Fatalf("expected %s to be created, got %q", name, seen[name])
		}
	}
}

func TestListHandlerReturnsEmptyWhenNoneExist(t *testing.T) {
	deps := newTestDeps(t)

	summaries, err := (&ListHandler{Deps: deps}).Handle()
	if err != nil {
		t.Fatalf("Handle: %s", err)
	}
	if len(summaries) != 0 {
		t.Fatalf("expected no environments, got %d", len(summaries))
	}
}
