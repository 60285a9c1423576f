package context

import (
	"fmt"

	"github.com/torrust/tracker-deployer/internal/domain/config"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// BackupContext feeds the maintenance cron script and its crontab
// fragment: when it runs, how long archives are retained, and which
// database backend it needs to dump.
type BackupContext struct {
	schedule      valueobject.CronSchedule
	retentionDays uint
	database      config.DatabaseConfig
	instanceName  valueobject.InstanceName
}

func (c BackupContext) ToMap() (map[string]any, error) {
	m := map[string]any{
		"schedule":       c.schedule.String(),
		"retention_days": c.retentionDays,
		"instance_name":  c.instanceName.String(),
		"database":       string(c.database.Kind),
	}
	if c.database.Kind == config.DatabaseMysql {
		m["mysql_database"] = c.database.Mysql.Database
		m["mysql_user"] = c.database.Mysql.User
	}
	return m, nil
}

// BackupContextBuilder builds a BackupContext.
type BackupContextBuilder struct {
	backup       *config.BackupConfig
	database      *config.DatabaseConfig
	instanceName *valueobject.InstanceName
}

func NewBackupContextBuilder() *BackupContextBuilder { return &BackupContextBuilder{} }

func (b *BackupContextBuilder) WithBackupConfig(cfg config.BackupConfig) *BackupContextBuilder {
	b.backup = &cfg
	return b
}

func (b *BackupContextBuilder) WithDatabase(db config.DatabaseConfig) *BackupContextBuilder {
	b.database = &db
	return b
}

func (b *BackupContextBuilder) WithInstanceName(n valueobject.InstanceName) *BackupContextBuilder {
	b.instanceName = &n
	return b
}

func (b *BackupContextBuilder) Build() (BackupContext, error) {
	if b.backup == nil {
		return BackupContext{}, fmt.Errorf("backup context: missing backup config")
	}
	if b.database == nil {
		return BackupContext{}, fmt.Errorf("backup context: missing database config")
	}
	if b.instanceName == nil {
		return BackupContext{}, fmt.Errorf("backup context: missing instance_name")
	}
	return BackupContext{
		schedule:      b.backup.Schedule,
		retentionDays: b.backup.RetentionDays,
		database:      *b.database,
		instanceName:  *b.instanceName,
	}, nil
}
