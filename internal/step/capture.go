package step

import (
	"context"
	"fmt"
	"net"
	"strings"
)

// CaptureTofuOutput runs `tofu output -raw <name>` against dir and parses
// the result as an IP address, storing it for the handler to read back
// after the step sequence completes.
type CaptureTofuOutput struct {
	name       string
	dir        string
	outputName string
	ip         net.IP
}

func NewCaptureTofuOutput(name, dir, outputName string) *CaptureTofuOutput {
	return &CaptureTofuOutput{name: name, dir: dir, outputName: outputName}
}

func (s *CaptureTofuOutput) Name() string { return s.name }

func (s *CaptureTofuOutput) Execute(ctx context.Context) error {
	runner := NewRunLocalCommand(s.name+"_exec", s.dir, "tofu", "output", "-raw", s.outputName)
	if err := runner.Execute(ctx); err != nil {
		return err
	}
	raw := strings.TrimSpace(runner.Stdout())
	ip := net.ParseIP(raw)
	if ip == nil {
		return fmt.Errorf("capture tofu output %q: %q is not a valid IP address", s.outputName, raw)
	}
	s.ip = ip
	return nil
}

// IP returns the captured address. Only valid after a successful Execute.
func (s *CaptureTofuOutput) IP() net.IP { return s.ip }

var _ Step = (*CaptureTofuOutput)(nil)
