package project

import (
	_ "embed"
	"path/filepath"

	"github.com/torrust/tracker-deployer/internal/project/context"
	"github.com/torrust/tracker-deployer/internal/template"
)

//go:embed templates/compose/docker-compose.yml.tmpl
var composeTemplate string

// ComposeProject renders docker-compose.yml. It additionally owns the
// spec's static port-conflict validation (P5): before rendering anything,
// it collects every enabled service's declared host port binding and fails
// if any port is claimed twice, naming both claimants.
type ComposeProject struct {
	compose *template.Wrapper
}

// NewComposeProject validates ctx's port bindings and, if they're unique,
// renders docker-compose.yml against it.
func NewComposeProject(engine *template.Engine, ctx context.ComposeContext) (*ComposeProject, error) {
	if err := context.ValidatePortUniqueness(ctx.PortBindings()); err != nil {
		return nil, err
	}
	wrapper, err := template.NewWrapper(engine, "docker-compose.yml", composeTemplate, ctx)
	if err != nil {
		return nil, err
	}
	return &ComposeProject{compose: wrapper}, nil
}

// Render writes docker-compose.yml under outputDir/compose.
func (p *ComposeProject) Render(outputDir string) error {
	return p.compose.Render(filepath.Join(outputDir, "compose", "docker-compose.yml"))
}
