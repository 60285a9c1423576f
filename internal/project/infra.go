// Package project implements the project generators (C3): each owns a
// destination directory and composes one or more internal/template
// wrappers into a coherent on-disk artifact subtree, deciding which
// templates apply from the optional configuration fields it's given.
package project

import (
	_ "embed"
	"path/filepath"

	"github.com/torrust/tracker-deployer/internal/domain/config"
	"github.com/torrust/tracker-deployer/internal/project/context"
	"github.com/torrust/tracker-deployer/internal/template"
)

//go:embed templates/infra/lxd_variables.tf.tmpl
var lxdVariablesTemplate string

//go:embed templates/infra/hetzner_variables.tf.tmpl
var hetznerVariablesTemplate string

// InfraProject renders the infrastructure-provisioner variables file for
// whichever provider (Lxd or Hetzner) the environment is configured with.
type InfraProject struct {
	variables *template.Wrapper
}

// NewInfraProject selects the provider-specific template and renders it
// once against ctx.
func NewInfraProject(engine *template.Engine, ctx context.InfraContext, provider config.ProviderKind) (*InfraProject, error) {
	raw := lxdVariablesTemplate
	name := "lxd_variables.tf"
	if provider == config.ProviderHetzner {
		raw = hetznerVariablesTemplate
		name = "hetzner_variables.tf"
	}
	wrapper, err := template.NewWrapper(engine, name, raw, ctx)
	if err != nil {
		return nil, err
	}
	return &InfraProject{variables: wrapper}, nil
}

// Render writes variables.tf under outputDir/infra.
func (p *InfraProject) Render(outputDir string) error {
	return p.variables.Render(filepath.Join(outputDir, "infra", "variables.tf"))
}
