package context

import (
	"fmt"

	"github.com/torrust/tracker-deployer/internal/domain/config"
)

// PortBinding names one service's claim on a host port, used by
// internal/project's compose generator to detect conflicts (P5) before any
// template is rendered.
type PortBinding struct {
	Service string
	Port    uint16
}

// ComposeContext feeds docker-compose.yml: the tracker service plus
// whichever optional services (Prometheus, Grafana, MySQL, Caddy) are
// enabled. Unlike the other contexts, it is also consulted directly by the
// compose project generator for port-conflict validation via
// PortBindings(), since that check needs to see every enabled service's
// binding at once.
type ComposeContext struct {
	tracker    config.TrackerConfig
	prometheus *config.PrometheusConfig
	grafana    *config.GrafanaConfig
	https      *config.HTTPSConfig
	backup     *config.BackupConfig
}

func (c ComposeContext) ToMap() (map[string]any, error) {
	m := map[string]any{
		"database": map[string]any{
			"driver": string(c.tracker.Database.Kind),
		},
		"http_port":         c.tracker.HTTPPort.Uint16(),
		"udp_port":          c.tracker.UDPPort.Uint16(),
		"api_port":          c.tracker.APIPort.Uint16(),
		"api_token":         c.tracker.APIToken.Reveal(),
		"health_check_port": c.tracker.HealthCheckPort.Uint16(),
		"has_prometheus":    c.prometheus != nil,
		"has_grafana":       c.grafana != nil,
		"has_https":         c.https != nil,
		"has_backup":        c.backup != nil,
	}
	if c.tracker.Database.Kind == config.DatabaseMysql {
		m["mysql_database"] = c.tracker.Database.Mysql.Database
		m["mysql_user"] = c.tracker.Database.Mysql.User
		m["mysql_password"] = c.tracker.Database.Mysql.Password.Reveal()
	}
	if c.prometheus != nil {
		m["prometheus_port"] = c.prometheus.Port.Uint16()
	}
	if c.grafana != nil {
		m["grafana_port"] = c.grafana.Port.Uint16()
		m["grafana_admin_password"] = c.grafana.AdminPassword.Reveal()
	}
	return m, nil
}

// PortBindings lists every host port claimed by an enabled service, named
// by the service that claims it. The compose project generator walks this
// list to detect duplicates.
func (c ComposeContext) PortBindings() []PortBinding {
	bindings := []PortBinding{
		{Service: "tracker_http", Port: c.tracker.HTTPPort.Uint16()},
		{Service: "tracker_udp", Port: c.tracker.UDPPort.Uint16()},
		{Service: "tracker_api", Port: c.tracker.APIPort.Uint16()},
		{Service: "tracker_health_check", Port: c.tracker.HealthCheckPort.Uint16()},
	}
	if c.prometheus != nil {
		bindings = append(bindings, PortBinding{Service: "prometheus", Port: c.prometheus.Port.Uint16()})
	}
	if c.grafana != nil {
		bindings = append(bindings, PortBinding{Service: "grafana", Port: c.grafana.Port.Uint16()})
	}
	return bindings
}

// ComposeContextBuilder builds a ComposeContext. Only TrackerConfig is
// required; the optional services default to absent.
type ComposeContextBuilder struct {
	tracker    *config.TrackerConfig
	prometheus *config.PrometheusConfig
	grafana    *config.GrafanaConfig
	https      *config.HTTPSConfig
	backup     *config.BackupConfig
}

func NewComposeContextBuilder(tracker config.TrackerConfig) *ComposeContextBuilder {
	return &ComposeContextBuilder{tracker: &tracker}
}

func (b *ComposeContextBuilder) WithPrometheus(p config.PrometheusConfig) *ComposeContextBuilder {
	b.prometheus = &p
	return b
}

func (b *ComposeContextBuilder) WithGrafana(g config.GrafanaConfig) *ComposeContextBuilder {
	b.grafana = &g
	return b
}

func (b *ComposeContextBuilder) WithHTTPS(h config.HTTPSConfig) *ComposeContextBuilder {
	b.https = &h
	return b
}

func (b *ComposeContextBuilder) WithBackup(bk config.BackupConfig) *ComposeContextBuilder {
	b.backup = &bk
	return b
}

func (b *ComposeContextBuilder) Build() (ComposeContext, error) {
	if b.tracker == nil {
		return ComposeContext{}, fmt.Errorf("compose context: missing tracker config")
	}
	return ComposeContext{
		tracker:    *b.tracker,
		prometheus: b.prometheus,
		grafana:    b.grafana,
		https:      b.https,
		backup:     b.backup,
	}, nil
}

// PortConflictError reports that two services claim the same host port.
// Returned by internal/project's compose generator before any template is
// rendered (spec.md P5).
type PortConflictError struct {
	Port   uint16
	First  string
	Second string
}

func (e *PortConflictError) Error() string {
	return fmt.Sprintf("port conflict: %s and %s both claim host port %d", e.First, e.Second, e.Port)
}

// ValidatePortUniqueness checks bindings for duplicate host ports, naming
// both claimants in the returned error.
func ValidatePortUniqueness(bindings []PortBinding) error {
	claimedBy := make(map[uint16]string, len(bindings))
	for _, b := range bindings {
		if existing, taken := claimedBy[b.Port]; taken {
			return &PortConflictError{Port: b.Port, First: existing, Second: b.Service}
		}
		claimedBy[b.Port] = b.Service
	}
	return nil
}
