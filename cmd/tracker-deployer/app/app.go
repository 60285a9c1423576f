// Package app wires the tracker-deployer CLI: one cobra subcommand per
// entry in spec.md §6.1's command table, sharing the global flags and
// handler.Deps constructed in NewRootCommand.
package app

import (
	"flag"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/torrust/tracker-deployer/internal/domain/environment"
	"github.com/torrust/tracker-deployer/internal/handler"
	"github.com/torrust/tracker-deployer/internal/step"
	"github.com/torrust/tracker-deployer/internal/template"
	"github.com/torrust/tracker-deployer/internal/trace"
	"github.com/torrust/tracker-deployer/pkg/log"
)

const binaryName = "tracker-deployer"

const repositoryLockTimeout = 10 * time.Second

// depsHolder carries the handler.Deps built by the root command's
// PersistentPreRunE, so subcommand closures registered before that run can
// still see the finished value at RunE time.
type depsHolder struct {
	deps *handler.Deps
}

// NewRootCommand builds the tracker-deployer CLI.
func NewRootCommand() *cobra.Command {
	opts := &GlobalOptions{}
	fs := flag.NewFlagSet(binaryName, flag.ContinueOnError)
	opts.AddFlags(fs)

	holder := &depsHolder{}

	cmd := &cobra.Command{
		Use:           binaryName,
		Short:         "Provisions, configures, and runs a Torrust tracker deployment",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newDeps(opts)
			if err != nil {
				return err
			}
			holder.deps = deps
			return nil
		},
	}
	cmd.PersistentFlags().AddGoFlagSet(fs)

	cmd.AddCommand(
		newCreateCommand(holder),
		newValidateCommand(holder),
		newProvisionCommand(holder),
		newRegisterCommand(holder),
		newConfigureCommand(holder),
		newReleaseCommand(holder),
		newRunCommand(holder),
		newTestCommand(holder),
		newDestroyCommand(holder),
		newPurgeCommand(holder),
		newRenderCommand(holder),
		newShowCommand(holder),
		newListCommand(holder),
	)
	return cmd
}

// newDeps builds the handler.Deps every subcommand shares, rooted at
// opts.DataDir: environments/ holds one persisted document per environment,
// traces/ holds failure trace files, build/ holds rendered artifacts.
func newDeps(opts *GlobalOptions) (*handler.Deps, error) {
	logger, err := log.NewZapLogger(opts.LogLevel, opts.LogFormat)
	if err != nil {
		return nil, err
	}

	repo := environment.NewRepository(filepath.Join(opts.DataDir, "environments"), repositoryLockTimeout)
	traces := trace.NewWriter(filepath.Join(opts.DataDir, "traces"), trace.SystemClock{})

	return &handler.Deps{
		Repo:              repo,
		Traces:            traces,
		Engine:            template.NewEngine(),
		Clock:             step.SystemClock{},
		Log:               logger,
		BuildRoot:         filepath.Join(opts.DataDir, "build"),
		SSHConnectTimeout: opts.SSHConnectTimeout,
		SSHMaxWait:        opts.SSHMaxWait,
		SSHPollInterval:   opts.SSHPollInterval,
	}, nil
}
