package step

import (
	"bytes"
	"context"
	"fmt"
	"os"
)

// RunRemoteCommand executes a single command on the target host and keeps
// its combined stdout/stderr for the handler to fold into a trace file on
// failure.
type RunRemoteCommand struct {
	name    string
	runner  RemoteRunner
	command string

	stdout bytes.Buffer
	stderr bytes.Buffer
}

func NewRunRemoteCommand(name string, runner RemoteRunner, command string) *RunRemoteCommand {
	return &RunRemoteCommand{name: name, runner: runner, command: command}
}

func (s *RunRemoteCommand) Name() string { return s.name }

func (s *RunRemoteCommand) Execute(_ context.Context) error {
	if err := s.runner.Run(s.command, &s.stdout, &s.stderr); err != nil {
		return fmt.Errorf("run %q: %w", s.command, err)
	}
	return nil
}

// Stdout returns the command's captured standard output.
func (s *RunRemoteCommand) Stdout() string { return s.stdout.String() }

// Stderr returns the command's captured standard error.
func (s *RunRemoteCommand) Stderr() string { return s.stderr.String() }

// CombinedOutput interleaves stdout then stderr, for embedding in a trace
// file or error summary.
func (s *RunRemoteCommand) CombinedOutput() string {
	if s.stderr.Len() == 0 {
		return s.stdout.String()
	}
	return s.stdout.String() + "\n--- stderr ---\n" + s.stderr.String()
}

var _ Step = (*RunRemoteCommand)(nil)

// UploadFile copies a single local file to the target host at a fixed
// remote path and mode.
type UploadFile struct {
	name       string
	uploader   Uploader
	localPath  string
	remotePath string
	mode       uint32
}

func NewUploadFile(name string, uploader Uploader, localPath, remotePath string, mode uint32) *UploadFile {
	return &UploadFile{name: name, uploader: uploader, localPath: localPath, remotePath: remotePath, mode: mode}
}

func (s *UploadFile) Name() string { return s.name }

func (s *UploadFile) Execute(_ context.Context) error {
	f, err := os.Open(s.localPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.localPath, err)
	}
	defer f.Close()

	if err := s.uploader.Upload(f, s.remotePath, s.mode); err != nil {
		return fmt.Errorf("upload %s to %s: %w", s.localPath, s.remotePath, err)
	}
	return nil
}

var _ Step = (*UploadFile)(nil)

// FileDeployment names one file to upload in a DeployComposeFiles batch.
type FileDeployment struct {
	LocalPath  string
	RemotePath string
	Mode       uint32
}

// DeployComposeFiles uploads every file deployment it is given to the
// remote host in one step, so a partial upload is reported as a single
// failed step rather than one per file. The release handler passes it
// docker-compose.yml only; the tracker env file and the Caddyfile are
// uploaded by their own steps.
type DeployComposeFiles struct {
	name     string
	uploader Uploader
	files    []FileDeployment
}

func NewDeployComposeFiles(name string, uploader Uploader, files []FileDeployment) *DeployComposeFiles {
	return &DeployComposeFiles{name: name, uploader: uploader, files: files}
}

func (s *DeployComposeFiles) Name() string { return s.name }

func (s *DeployComposeFiles) Execute(_ context.Context) error {
	for _, file := range s.files {
		f, err := os.Open(file.LocalPath)
		if err != nil {
			return fmt.Errorf("open %s: %w", file.LocalPath, err)
		}
		uploadErr := s.uploader.Upload(f, file.RemotePath, file.Mode)
		f.Close()
		if uploadErr != nil {
			return fmt.Errorf("upload %s to %s: %w", file.LocalPath, file.RemotePath, uploadErr)
		}
	}
	return nil
}

var _ Step = (*DeployComposeFiles)(nil)

// InstallCrontab uploads a crontab fragment and installs it for the
// deploy user via the remote `crontab` command.
type InstallCrontab struct {
	name             string
	uploader         Uploader
	runner           RemoteRunner
	localCrontabPath string
	remoteCrontabPath string
}

func NewInstallCrontab(name string, uploader Uploader, runner RemoteRunner, localCrontabPath, remoteCrontabPath string) *InstallCrontab {
	return &InstallCrontab{
		name:              name,
		uploader:          uploader,
		runner:            runner,
		localCrontabPath:  localCrontabPath,
		remoteCrontabPath: remoteCrontabPath,
	}
}

func (s *InstallCrontab) Name() string { return s.name }

func (s *InstallCrontab) Execute(ctx context.Context) error {
	upload := NewUploadFile(s.name+"_upload", s.uploader, s.localCrontabPath, s.remoteCrontabPath, 0o644)
	if err := upload.Execute(ctx); err != nil {
		return err
	}
	var stdout, stderr bytes.Buffer
	if err := s.runner.Run(fmt.Sprintf("crontab %s", s.remoteCrontabPath), &stdout, &stderr); err != nil {
		return fmt.Errorf("install crontab %s: %w", s.remoteCrontabPath, err)
	}
	return nil
}

var _ Step = (*InstallCrontab)(nil)
