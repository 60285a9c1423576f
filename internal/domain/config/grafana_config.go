package config

import (
	"fmt"

	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// GrafanaConfig, when present, deploys a Grafana instance provisioned with
// a Prometheus datasource. Requiring PrometheusConfig to also be present is
// a cross-field invariant enforced at Environment construction, where both
// optional configs are visible together.
type GrafanaConfig struct {
	Port          valueobject.Port     `json:"port"`
	AdminPassword valueobject.APIToken `json:"admin_password"`
}

// NewGrafanaConfig validates that an admin password was supplied.
func NewGrafanaConfig(port valueobject.Port, adminPassword valueobject.APIToken) (GrafanaConfig, error) {
	if adminPassword.Reveal() == "" {
		return GrafanaConfig{}, fmt.Errorf("grafana config: admin_password must not be empty")
	}
	return GrafanaConfig{Port: port, AdminPassword: adminPassword}, nil
}
