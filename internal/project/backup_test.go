package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/torrust/tracker-deployer/internal/domain/config"
	"github.com/torrust/tracker-deployer/internal/project/context"
	"github.com/torrust/tracker-deployer/internal/template"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

func mustCronSchedule(t *testing.T, raw string) valueobject.CronSchedule {
	t.Helper()
	s, err := valueobject.NewCronSchedule(raw)
	if err != nil {
		t.Fatalf("NewCronSchedule(%q): %s", raw, err)
	}
	return s
}

func TestBackupProjectRendersScriptAndCrontab(t *testing.T) {
	backupCfg := config.NewBackupConfig(mustCronSchedule(t, "0 3 * * *"), 7)
	ctx, err := context.NewBackupContextBuilder().
		WithBackupConfig(backupCfg).
		WithDatabase(config.NewSqliteDatabaseConfig()).
		WithInstanceName(mustInstanceName(t, "torrust-tracker-vm-demo")).
		Build()
	if err != nil {
		t.Fatalf("Build: %s", err)
	}

	proj, err := NewBackupProject(template.NewEngine(), ctx)
	if err != nil {
		t.Fatalf("NewBackupProject: %s", err)
	}

	outputDir := t.TempDir()
	if err := proj.Render(outputDir); err != nil {
		t.Fatalf("Render: %s", err)
	}
	for _, rel := range []string{
		filepath.Join("backup", "maintenance-cron.sh"),
		filepath.Join("backup", "crontab"),
	} {
		if _, err := os.Stat(filepath.Join(outputDir, rel)); err != nil {
			t.Fatalf("expected %s: %s", rel, err)
		}
	}
}

func TestBackupContextBuilderRequiresEveryField(t *testing.T) {
	if _, err := context.NewBackupContextBuilder().Build(); err == nil {
		t.Fatal("expected an error when every field is missing")
	}
}
