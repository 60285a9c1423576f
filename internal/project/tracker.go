package project

import (
	_ "embed"
	"path/filepath"

	"github.com/torrust/tracker-deployer/internal/project/context"
	"github.com/torrust/tracker-deployer/internal/template"
)

//go:embed templates/tracker/tracker.env.tmpl
var trackerEnvTemplate string

// TrackerProject renders the tracker service's own env file, deployed ahead
// of (and independent from) the full docker-compose project so a failure
// deploying it is reported against the tracker specifically.
type TrackerProject struct {
	env *template.Wrapper
}

func NewTrackerProject(engine *template.Engine, ctx context.TrackerEnvContext) (*TrackerProject, error) {
	wrapper, err := template.NewWrapper(engine, "tracker.env", trackerEnvTemplate, ctx)
	if err != nil {
		return nil, err
	}
	return &TrackerProject{env: wrapper}, nil
}

// Render writes tracker.env under outputDir/tracker.
func (p *TrackerProject) Render(outputDir string) error {
	return p.env.Render(filepath.Join(outputDir, "tracker", "tracker.env"))
}
