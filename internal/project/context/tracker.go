package context

import (
	"fmt"

	"github.com/torrust/tracker-deployer/internal/domain/config"
)

// TrackerEnvContext feeds tracker.env, the tracker service's own env file
// deployed ahead of the docker-compose project so the release workflow can
// report a tracker-specific failure (spec.md's `DeployTrackerConfigToRemote`)
// distinct from the aggregate compose deployment.
type TrackerEnvContext struct {
	tracker config.TrackerConfig
}

func (c TrackerEnvContext) ToMap() (map[string]any, error) {
	m := map[string]any{
		"database": map[string]any{
			"driver": string(c.tracker.Database.Kind),
		},
		"http_port":         c.tracker.HTTPPort.Uint16(),
		"udp_port":          c.tracker.UDPPort.Uint16(),
		"api_port":          c.tracker.APIPort.Uint16(),
		"api_token":         c.tracker.APIToken.Reveal(),
		"health_check_port": c.tracker.HealthCheckPort.Uint16(),
	}
	if c.tracker.Database.Kind == config.DatabaseMysql {
		m["mysql_user"] = c.tracker.Database.Mysql.User
		m["mysql_password"] = c.tracker.Database.Mysql.Password.Reveal()
	}
	return m, nil
}

// TrackerEnvContextBuilder builds a TrackerEnvContext.
type TrackerEnvContextBuilder struct {
	tracker *config.TrackerConfig
}

func NewTrackerEnvContextBuilder() *TrackerEnvContextBuilder { return &TrackerEnvContextBuilder{} }

func (b *TrackerEnvContextBuilder) WithTrackerConfig(t config.TrackerConfig) *TrackerEnvContextBuilder {
	b.tracker = &t
	return b
}

func (b *TrackerEnvContextBuilder) Build() (TrackerEnvContext, error) {
	if b.tracker == nil {
		return TrackerEnvContext{}, fmt.Errorf("tracker env context: missing tracker config")
	}
	return TrackerEnvContext{tracker: *b.tracker}, nil
}
