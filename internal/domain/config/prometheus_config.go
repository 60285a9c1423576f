package config

import "github.com/torrust/tracker-deployer/internal/valueobject"

// PrometheusConfig, when present, deploys a Prometheus instance scraping
// the tracker's metrics/health endpoints. Its absence means no metrics
// collector is deployed.
type PrometheusConfig struct {
	Port            valueobject.Port `json:"port"`
	ScrapeIntervalS uint             `json:"scrape_interval_seconds"`
}

// NewPrometheusConfig defaults ScrapeIntervalS to 15 when zero.
func NewPrometheusConfig(port valueobject.Port, scrapeIntervalSeconds uint) PrometheusConfig {
	if scrapeIntervalSeconds == 0 {
		scrapeIntervalSeconds = 15
	}
	return PrometheusConfig{Port: port, ScrapeIntervalS: scrapeIntervalSeconds}
}
