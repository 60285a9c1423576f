package project

import (
	"testing"

	"github.com/torrust/tracker-deployer/internal/domain/config"
	"github.com/torrust/tracker-deployer/internal/project/context"
	"github.com/torrust/tracker-deployer/internal/template"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

func mustPort(t *testing.T, n int) valueobject.Port {
	t.Helper()
	p, err := valueobject.NewPort(n)
	if err != nil {
		t.Fatalf("NewPort(%d): %s", n, err)
	}
	return p
}

func mustAPIToken(t *testing.T, raw string) valueobject.APIToken {
	t.Helper()
	tok, err := valueobject.NewAPIToken(raw)
	if err != nil {
		t.Fatalf("NewAPIToken(%q): %s", raw, err)
	}
	return tok
}

func TestComposeProjectRejectsPortConflict(t *testing.T) {
	tracker := config.NewTrackerConfig(
		config.NewSqliteDatabaseConfig(),
		mustPort(t, 7070), mustPort(t, 6969), mustPort(t, 1212), mustPort(t, 9090),
		mustAPIToken(t, "secret"), nil,
	)
	prometheus := config.NewPrometheusConfig(mustPort(t, 9090), 15)

	ctx, err := context.NewComposeContextBuilder(tracker).WithPrometheus(prometheus).Build()
	if err != nil {
		t.Fatalf("unexpected build error: %s", err)
	}

	_, err = NewComposeProject(template.NewEngine(), ctx)
	if err == nil {
		t.Fatal("expected a port conflict error (tracker health_check_port and prometheus_port both 9090)")
	}
	conflictErr, ok := err.(*context.PortConflictError)
	if !ok {
		t.Fatalf("expected *context.PortConflictError, got %T: %s", err, err)
	}
	if conflictErr.Port != 9090 {
		t.Fatalf("expected conflict on port 9090, got %d", conflictErr.Port)
	}
}

func TestComposeProjectSucceedsWithDistinctPorts(t *testing.T) {
	tracker := config.NewTrackerConfig(
		config.NewSqliteDatabaseConfig(),
		mustPort(t, 7070), mustPort(t, 6969), mustPort(t, 1212), mustPort(t, 1313),
		mustAPIToken(t, "secret"), nil,
	)
	prometheus := config.NewPrometheusConfig(mustPort(t, 9090), 15)

	ctx, err := context.NewComposeContextBuilder(tracker).WithPrometheus(prometheus).Build()
	if err != nil {
		t.Fatalf("unexpected build error: %s", err)
	}

	if _, err := NewComposeProject(template.NewEngine(), ctx); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
}
