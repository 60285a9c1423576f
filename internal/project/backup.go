package project

import (
	_ "embed"
	"path/filepath"

	"github.com/torrust/tracker-deployer/internal/project/context"
	"github.com/torrust/tracker-deployer/internal/template"
)

//go:embed templates/backup/maintenance-cron.sh.tmpl
var maintenanceCronTemplate string

//go:embed templates/backup/crontab.tmpl
var crontabTemplate string

// BackupProject renders the maintenance cron script and its crontab
// fragment. Only instantiated when BackupConfig is present.
type BackupProject struct {
	script  *template.Wrapper
	crontab *template.Wrapper
}

func NewBackupProject(engine *template.Engine, ctx context.BackupContext) (*BackupProject, error) {
	script, err := template.NewWrapper(engine, "maintenance-cron.sh", maintenanceCronTemplate, ctx)
	if err != nil {
		return nil, err
	}
	crontab, err := template.NewWrapper(engine, "crontab", crontabTemplate, ctx)
	if err != nil {
		return nil, err
	}
	return &BackupProject{script: script, crontab: crontab}, nil
}

// Render writes maintenance-cron.sh and its crontab fragment under
// outputDir/backup.
func (p *BackupProject) Render(outputDir string) error {
	if err := p.script.Render(filepath.Join(outputDir, "backup", "maintenance-cron.sh")); err != nil {
		return err
	}
	return p.crontab.Render(filepath.Join(outputDir, "backup", "crontab"))
}
