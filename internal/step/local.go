package step

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// RunLocalCommand runs an external tool (opentofu, ansible-playbook) on the
// operator's machine. Unlike RunRemoteCommand, this never crosses SSH: the
// provision and configure workflows invoke these tools locally, pointed at
// the target instance through their own inventory/variables files.
type RunLocalCommand struct {
	name   string
	dir    string
	argv   []string
	stdout bytes.Buffer
	stderr bytes.Buffer
}

// NewRunLocalCommand builds a step that runs argv[0] with argv[1:] from
// dir (the rendered project directory the command operates on).
func NewRunLocalCommand(name, dir string, argv ...string) *RunLocalCommand {
	return &RunLocalCommand{name: name, dir: dir, argv: argv}
}

func (s *RunLocalCommand) Name() string { return s.name }

func (s *RunLocalCommand) Execute(ctx context.Context) error {
	if len(s.argv) == 0 {
		return fmt.Errorf("run local command %q: empty argv", s.name)
	}
	cmd := exec.CommandContext(ctx, s.argv[0], s.argv[1:]...)
	cmd.Dir = s.dir
	cmd.Stdout = &s.stdout
	cmd.Stderr = &s.stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run %q: %w (stderr: %s)", s.name, err, s.stderr.String())
	}
	return nil
}

func (s *RunLocalCommand) Stdout() string { return s.stdout.String() }
func (s *RunLocalCommand) Stderr() string { return s.stderr.String() }

var _ Step = (*RunLocalCommand)(nil)
