package project

import (
	_ "embed"
	"path/filepath"

	"github.com/torrust/tracker-deployer/internal/project/context"
	"github.com/torrust/tracker-deployer/internal/template"
)

//go:embed templates/monitoring/prometheus.yml.tmpl
var prometheusTemplate string

//go:embed templates/monitoring/grafana_datasource.yml.tmpl
var grafanaDatasourceTemplate string

// MonitoringProject renders Prometheus' scrape config and, when Grafana is
// also configured, its datasource provisioning file. It is only
// instantiated when PrometheusConfig is present; Grafana's provisioning is
// itself conditional on grafanaCtx being non-nil, since Grafana additionally
// requires Prometheus (enforced at Environment construction).
type MonitoringProject struct {
	prometheus *template.Wrapper
	grafana    *template.Wrapper // nil when Grafana is not configured
}

// NewMonitoringProject renders prometheusCtx, and grafanaCtx when non-nil.
func NewMonitoringProject(engine *template.Engine, prometheusCtx context.PrometheusContext, grafanaCtx *context.GrafanaContext) (*MonitoringProject, error) {
	prometheusWrapper, err := template.NewWrapper(engine, "prometheus.yml", prometheusTemplate, prometheusCtx)
	if err != nil {
		return nil, err
	}

	mp := &MonitoringProject{prometheus: prometheusWrapper}
	if grafanaCtx != nil {
		grafanaWrapper, err := template.NewWrapper(engine, "grafana_datasource.yml", grafanaDatasourceTemplate, *grafanaCtx)
		if err != nil {
			return nil, err
		}
		mp.grafana = grafanaWrapper
	}
	return mp, nil
}

// Render writes prometheus.yml under outputDir/monitoring and, when
// Grafana is configured, the datasource provisioning file under
// outputDir/monitoring/grafana/provisioning/datasources.
func (p *MonitoringProject) Render(outputDir string) error {
	if err := p.RenderPrometheus(outputDir); err != nil {
		return err
	}
	return p.RenderGrafana(outputDir)
}

// RenderPrometheus writes prometheus.yml under outputDir/monitoring. Split
// out from Render so the release workflow can report a Prometheus-specific
// rendering failure distinct from Grafana's.
func (p *MonitoringProject) RenderPrometheus(outputDir string) error {
	return p.prometheus.Render(filepath.Join(outputDir, "monitoring", "prometheus.yml"))
}

// RenderGrafana writes the datasource provisioning file under
// outputDir/monitoring/grafana/provisioning/datasources, a no-op when
// Grafana is not configured.
func (p *MonitoringProject) RenderGrafana(outputDir string) error {
	if p.grafana == nil {
		return nil
	}
	return p.grafana.Render(filepath.Join(outputDir, "monitoring", "grafana", "provisioning", "datasources", "datasource.yml"))
}
