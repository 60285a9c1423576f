package app

import (
	"flag"
	"time"

	"github.com/torrust/tracker-deployer/pkg/log"
)

// GlobalOptions collects the flags shared by every subcommand: where state
// is persisted, how verbose logging is, and how long the SSH-backed steps
// may wait on a remote host.
type GlobalOptions struct {
	DataDir string

	LogLevel  log.LogLevel
	LogFormat log.Format

	SSHConnectTimeout time.Duration
	SSHMaxWait        time.Duration
	SSHPollInterval   time.Duration
}

// AddFlags registers every global flag on fs, following the teacher's
// options.ControllerManagerRunOptions.AddFlags idiom: one FlagSet built
// once by the caller and merged into cobra via AddGoFlagSet.
func (o *GlobalOptions) AddFlags(fs *flag.FlagSet) {
	fs.StringVar(&o.DataDir, "data-dir", "./.tracker-deployer",
		"directory environment documents, traces, and rendered build artifacts are stored under")

	o.LogLevel = log.InfoLevel
	o.LogFormat = log.FormatConsole
	fs.Var(&o.LogLevel, "log-level", "log verbosity: debug, info, error")
	fs.Var(&o.LogFormat, "log-format", "log encoding: Console, JSON")

	fs.DurationVar(&o.SSHConnectTimeout, "ssh-connect-timeout", 10*time.Second,
		"timeout for a single SSH dial attempt")
	fs.DurationVar(&o.SSHMaxWait, "ssh-max-wait", 5*time.Minute,
		"maximum time to wait for a remote condition (SSH reachability, cloud-init, container runtime, tracker health)")
	fs.DurationVar(&o.SSHPollInterval, "ssh-poll-interval", 5*time.Second,
		"interval between retries while waiting for a remote condition")
}
