package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/torrust/tracker-deployer/internal/domain/config"
	"github.com/torrust/tracker-deployer/internal/project/context"
	"github.com/torrust/tracker-deployer/internal/template"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

func mustDomainName(t *testing.T, raw string) valueobject.DomainName {
	t.Helper()
	d, err := valueobject.NewDomainName(raw)
	if err != nil {
		t.Fatalf("NewDomainName(%q): %s", raw, err)
	}
	return d
}

func TestTLSProxyProjectRendersCaddyfile(t *testing.T) {
	https, err := config.NewHTTPSConfig("ops@example.com", []valueobject.DomainName{mustDomainName(t, "tracker.example.com")})
	if err != nil {
		t.Fatalf("NewHTTPSConfig: %s", err)
	}
	ctx, err := context.NewCaddyContextBuilder().
		WithHTTPSConfig(https).
		WithUpstreamPort(mustPort(t, 7070)).
		Build()
	if err != nil {
		t.Fatalf("Build: %s", err)
	}

	proj, err := NewTLSProxyProject(template.NewEngine(), ctx)
	if err != nil {
		t.Fatalf("NewTLSProxyProject: %s", err)
	}

	outputDir := t.TempDir()
	if err := proj.Render(outputDir); err != nil {
		t.Fatalf("Render: %s", err)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "compose", "Caddyfile")); err != nil {
		t.Fatalf("expected Caddyfile: %s", err)
	}
}

func TestCaddyContextBuilderRejectsNoDomains(t *testing.T) {
	https := config.HTTPSConfig{ContactEmail: "ops@example.com"}
	_, err := context.NewCaddyContextBuilder().
		WithHTTPSConfig(https).
		WithUpstreamPort(mustPort(t, 7070)).
		Build()
	if err == nil {
		t.Fatal("expected an error when no TLS domain is configured")
	}
}
