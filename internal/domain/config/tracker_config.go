package config

import (
	"encoding/json"
	"fmt"

	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// DatabaseKind discriminates the tracker's persisted-storage backend.
type DatabaseKind string

const (
	DatabaseSqlite DatabaseKind = "sqlite"
	DatabaseMysql  DatabaseKind = "mysql"
)

// DatabaseConfig is the tagged { Sqlite | Mysql } variant driving the
// compose-project generator's storage steps (CreateMysqlStorage is only
// issued when Kind is DatabaseMysql).
type DatabaseConfig struct {
	Kind  DatabaseKind
	Mysql *MysqlDatabaseConfig
}

// MysqlDatabaseConfig names the MySQL database, user, and password used by
// the tracker and the compose-rendered MySQL service.
type MysqlDatabaseConfig struct {
	Database string `json:"database"`
	User     string `json:"user"`
	Password valueobject.APIToken `json:"password"`
}

// NewSqliteDatabaseConfig returns the zero-configuration sqlite variant.
func NewSqliteDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{Kind: DatabaseSqlite}
}

// NewMysqlDatabaseConfig validates cfg and wraps it in a DatabaseConfig.
func NewMysqlDatabaseConfig(cfg MysqlDatabaseConfig) (DatabaseConfig, error) {
	if cfg.Database == "" {
		return DatabaseConfig{}, fmt.Errorf("mysql database config: database must not be empty")
	}
	if cfg.User == "" {
		return DatabaseConfig{}, fmt.Errorf("mysql database config: user must not be empty")
	}
	return DatabaseConfig{Kind: DatabaseMysql, Mysql: &cfg}, nil
}

type databaseConfigWire struct {
	Database DatabaseKind         `json:"database"`
	Mysql    *MysqlDatabaseConfig `json:"mysql,omitempty"`
}

func (d DatabaseConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(databaseConfigWire{Database: d.Kind, Mysql: d.Mysql})
}

func (d *DatabaseConfig) UnmarshalJSON(data []byte) error {
	var wire databaseConfigWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	switch wire.Database {
	case DatabaseSqlite:
		*d = DatabaseConfig{Kind: DatabaseSqlite}
	case DatabaseMysql:
		if wire.Mysql == nil {
			return fmt.Errorf("database config: database=mysql requires a mysql object")
		}
		parsed, err := NewMysqlDatabaseConfig(*wire.Mysql)
		if err != nil {
			return err
		}
		*d = parsed
	default:
		return fmt.Errorf("database config: unknown database kind %q", wire.Database)
	}
	return nil
}

// TrackerConfig is the tracker application's own configuration: database
// choice, listener endpoints, API token, health-check endpoint, TLS domains.
type TrackerConfig struct {
	Database        DatabaseConfig       `json:"database"`
	HTTPPort        valueobject.Port     `json:"http_port"`
	UDPPort         valueobject.Port     `json:"udp_port"`
	APIPort         valueobject.Port     `json:"api_port"`
	APIToken        valueobject.APIToken `json:"api_token"`
	HealthCheckPort valueobject.Port     `json:"health_check_port"`
	TLSDomains      []valueobject.DomainName `json:"tls_domains,omitempty"`
}

// NewTrackerConfig assembles a TrackerConfig from already-validated parts.
// No additional invariant is enforced here; cross-field invariants (HTTPS
// requires at least one TLS domain, no two services share a host port) are
// checked once at Environment construction, where the full port set and
// optional-service set are visible together.
func NewTrackerConfig(
	database DatabaseConfig,
	httpPort, udpPort, apiPort, healthCheckPort valueobject.Port,
	apiToken valueobject.APIToken,
	tlsDomains []valueobject.DomainName,
) TrackerConfig {
	return TrackerConfig{
		Database:        database,
		HTTPPort:        httpPort,
		UDPPort:         udpPort,
		APIPort:         apiPort,
		APIToken:        apiToken,
		HealthCheckPort: healthCheckPort,
		TLSDomains:      tlsDomains,
	}
}
