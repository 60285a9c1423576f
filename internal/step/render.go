package step

import "context"

// Renderer is satisfied by every internal/project generator
// (InfraProject, InventoryProject, ComposeProject, MonitoringProject,
// BackupProject, TLSProxyProject): each exposes Render(outputDir).
type Renderer interface {
	Render(outputDir string) error
}

// RenderStep wraps a single project generator. One instance per generator
// is sequenced into a command's step list (rendering steps, spec.md §4.7).
type RenderStep struct {
	name      string
	project   Renderer
	outputDir string
}

// NewRenderStep returns a step that renders project into outputDir when
// executed. name identifies it in logs and failure reporting (e.g.
// "render_tracker_templates").
func NewRenderStep(name string, project Renderer, outputDir string) *RenderStep {
	return &RenderStep{name: name, project: project, outputDir: outputDir}
}

func (s *RenderStep) Name() string { return s.name }

func (s *RenderStep) Execute(_ context.Context) error {
	return s.project.Render(s.outputDir)
}

var _ Step = (*RenderStep)(nil)
