package config

import "github.com/torrust/tracker-deployer/internal/valueobject"

// BackupConfig, when present, installs a maintenance crontab entry on the
// instance that archives the tracker's database on the given schedule.
type BackupConfig struct {
	Schedule      valueobject.CronSchedule `json:"schedule"`
	RetentionDays uint                     `json:"retention_days"`
}

// NewBackupConfig defaults RetentionDays to 7 when zero.
func NewBackupConfig(schedule valueobject.CronSchedule, retentionDays uint) BackupConfig {
	if retentionDays == 0 {
		retentionDays = 7
	}
	return BackupConfig{Schedule: schedule, RetentionDays: retentionDays}
}
