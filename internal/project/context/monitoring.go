package context

import (
	"fmt"

	"github.com/torrust/tracker-deployer/internal/domain/config"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// PrometheusContext feeds prometheus.yml's scrape config: the tracker's
// metrics/health endpoints, polled at the configured interval.
type PrometheusContext struct {
	instanceName    valueobject.InstanceName
	scrapeIntervalS uint
	trackerAPIPort  valueobject.Port
	healthCheckPort valueobject.Port
}

func (c PrometheusContext) ToMap() (map[string]any, error) {
	return map[string]any{
		"instance_name":     c.instanceName.String(),
		"scrape_interval_s": c.scrapeIntervalS,
		"tracker_api_port":  c.trackerAPIPort.Uint16(),
		"health_check_port": c.healthCheckPort.Uint16(),
	}, nil
}

// PrometheusContextBuilder builds a PrometheusContext.
type PrometheusContextBuilder struct {
	instanceName    *valueobject.InstanceName
	prometheus      *config.PrometheusConfig
	trackerAPIPort  *valueobject.Port
	healthCheckPort *valueobject.Port
}

func NewPrometheusContextBuilder() *PrometheusContextBuilder { return &PrometheusContextBuilder{} }

func (b *PrometheusContextBuilder) WithInstanceName(n valueobject.InstanceName) *PrometheusContextBuilder {
	b.instanceName = &n
	return b
}

func (b *PrometheusContextBuilder) WithPrometheusConfig(p config.PrometheusConfig) *PrometheusContextBuilder {
	b.prometheus = &p
	return b
}

func (b *PrometheusContextBuilder) WithTrackerAPIPort(p valueobject.Port) *PrometheusContextBuilder {
	b.trackerAPIPort = &p
	return b
}

func (b *PrometheusContextBuilder) WithHealthCheckPort(p valueobject.Port) *PrometheusContextBuilder {
	b.healthCheckPort = &p
	return b
}

func (b *PrometheusContextBuilder) Build() (PrometheusContext, error) {
	if b.instanceName == nil {
		return PrometheusContext{}, fmt.Errorf("prometheus context: missing instance_name")
	}
	if b.prometheus == nil {
		return PrometheusContext{}, fmt.Errorf("prometheus context: missing prometheus config")
	}
	if b.trackerAPIPort == nil {
		return PrometheusContext{}, fmt.Errorf("prometheus context: missing tracker_api_port")
	}
	if b.healthCheckPort == nil {
		return PrometheusContext{}, fmt.Errorf("prometheus context: missing health_check_port")
	}
	return PrometheusContext{
		instanceName:    *b.instanceName,
		scrapeIntervalS: b.prometheus.ScrapeIntervalS,
		trackerAPIPort:  *b.trackerAPIPort,
		healthCheckPort: *b.healthCheckPort,
	}, nil
}

// GrafanaContext feeds the Grafana provisioning files: a single Prometheus
// datasource and the admin password. Only buildable when PrometheusConfig
// is also present (enforced at Environment construction, not re-checked
// here).
type GrafanaContext struct {
	prometheusPort valueobject.Port
	adminPassword  valueobject.APIToken
}

func (c GrafanaContext) ToMap() (map[string]any, error) {
	return map[string]any{
		"prometheus_port": c.prometheusPort.Uint16(),
		"admin_password":  c.adminPassword.Reveal(),
	}, nil
}

// GrafanaContextBuilder builds a GrafanaContext.
type GrafanaContextBuilder struct {
	prometheusPort *valueobject.Port
	grafana        *config.GrafanaConfig
}

func NewGrafanaContextBuilder() *GrafanaContextBuilder { return &GrafanaContextBuilder{} }

func (b *GrafanaContextBuilder) WithPrometheusPort(p valueobject.Port) *GrafanaContextBuilder {
	b.prometheusPort = &p
	return b
}

func (b *GrafanaContextBuilder) WithGrafanaConfig(g config.GrafanaConfig) *GrafanaContextBuilder {
	b.grafana = &g
	return b
}

func (b *GrafanaContextBuilder) Build() (GrafanaContext, error) {
	if b.prometheusPort == nil {
		return GrafanaContext{}, fmt.Errorf("grafana context: missing prometheus_port")
	}
	if b.grafana == nil {
		return GrafanaContext{}, fmt.Errorf("grafana context: missing grafana config")
	}
	return GrafanaContext{prometheusPort: *b.prometheusPort, adminPassword: b.grafana.AdminPassword}, nil
}
