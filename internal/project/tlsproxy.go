package project

import (
	_ "embed"
	"path/filepath"

	"github.com/torrust/tracker-deployer/internal/project/context"
	"github.com/torrust/tracker-deployer/internal/template"
)

//go:embed templates/tlsproxy/Caddyfile.tmpl
var caddyfileTemplate string

// TLSProxyProject renders the Caddy-style reverse-proxy config. Only
// instantiated when HTTPSConfig is present.
type TLSProxyProject struct {
	caddyfile *template.Wrapper
}

func NewTLSProxyProject(engine *template.Engine, ctx context.CaddyContext) (*TLSProxyProject, error) {
	wrapper, err := template.NewWrapper(engine, "Caddyfile", caddyfileTemplate, ctx)
	if err != nil {
		return nil, err
	}
	return &TLSProxyProject{caddyfile: wrapper}, nil
}

// Render writes Caddyfile under outputDir/compose, alongside
// docker-compose.yml, since the caddy service mounts it from there.
func (p *TLSProxyProject) Render(outputDir string) error {
	return p.caddyfile.Render(filepath.Join(outputDir, "compose", "Caddyfile"))
}
