package step

import (
	"bytes"
	"context"
	"fmt"
	"time"
)

// sleep is an indirection point so wait-loop steps can be exercised in
// tests without a real timeout, mirroring pkg/ssh's dial/readPrivateKey
// package-var substitution idiom.
var sleep = time.Sleep

// pollUntilSuccess calls probe on interval until it returns nil, the
// context is cancelled, or maxWait has elapsed since start.
func pollUntilSuccess(ctx context.Context, clock Clock, start time.Time, maxWait, interval time.Duration, probe func() error) error {
	deadline := start.Add(maxWait)
	var lastErr error
	for {
		if err := probe(); err == nil {
			return nil
		} else {
			lastErr = err
		}
		if !clock.Now().Before(deadline) {
			return fmt.Errorf("timed out after %s: %w", maxWait, lastErr)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			sleep(interval)
		}
	}
}

// WaitForSSH blocks until the target host accepts SSH connections or
// maxWait elapses.
type WaitForSSH struct {
	name    string
	waiter  SSHWaiter
	maxWait time.Duration
}

func NewWaitForSSH(name string, waiter SSHWaiter, maxWait time.Duration) *WaitForSSH {
	return &WaitForSSH{name: name, waiter: waiter, maxWait: maxWait}
}

func (s *WaitForSSH) Name() string { return s.name }

func (s *WaitForSSH) Execute(_ context.Context) error {
	if err := s.waiter.WaitForSSH(s.maxWait); err != nil {
		return fmt.Errorf("wait for ssh: %w", err)
	}
	return nil
}

var _ Step = (*WaitForSSH)(nil)

// probeCommand runs command over runner and treats any non-nil error as
// "condition not yet met", folding combined output into the returned error
// so the final timeout error carries the last observed output.
func probeCommand(runner RemoteRunner, command string) error {
	var stdout, stderr bytes.Buffer
	if err := runner.Run(command, &stdout, &stderr); err != nil {
		return fmt.Errorf("%s: %w (stderr: %s)", command, err, stderr.String())
	}
	return nil
}

// WaitForCloudInit polls `cloud-init status --wait` until the instance's
// first-boot provisioning has finished.
type WaitForCloudInit struct {
	name     string
	runner   RemoteRunner
	clock    Clock
	maxWait  time.Duration
	interval time.Duration
}

func NewWaitForCloudInit(name string, runner RemoteRunner, clock Clock, maxWait, interval time.Duration) *WaitForCloudInit {
	return &WaitForCloudInit{name: name, runner: runner, clock: clock, maxWait: maxWait, interval: interval}
}

func (s *WaitForCloudInit) Name() string { return s.name }

func (s *WaitForCloudInit) Execute(ctx context.Context) error {
	return pollUntilSuccess(ctx, s.clock, s.clock.Now(), s.maxWait, s.interval, func() error {
		return probeCommand(s.runner, "cloud-init status --wait")
	})
}

var _ Step = (*WaitForCloudInit)(nil)

// WaitForContainerRuntime polls `docker info` until the container runtime
// installed by the configure command responds.
type WaitForContainerRuntime struct {
	name     string
	runner   RemoteRunner
	clock    Clock
	maxWait  time.Duration
	interval time.Duration
}

func NewWaitForContainerRuntime(name string, runner RemoteRunner, clock Clock, maxWait, interval time.Duration) *WaitForContainerRuntime {
	return &WaitForContainerRuntime{name: name, runner: runner, clock: clock, maxWait: maxWait, interval: interval}
}

func (s *WaitForContainerRuntime) Name() string { return s.name }

func (s *WaitForContainerRuntime) Execute(ctx context.Context) error {
	return pollUntilSuccess(ctx, s.clock, s.clock.Now(), s.maxWait, s.interval, func() error {
		return probeCommand(s.runner, "docker info")
	})
}

var _ Step = (*WaitForContainerRuntime)(nil)

// WaitForTrackerHealthy polls the tracker's health-check endpoint until it
// returns a successful response.
type WaitForTrackerHealthy struct {
	name     string
	runner   RemoteRunner
	clock    Clock
	healthCheckPort uint16
	maxWait  time.Duration
	interval time.Duration
}

func NewWaitForTrackerHealthy(name string, runner RemoteRunner, clock Clock, healthCheckPort uint16, maxWait, interval time.Duration) *WaitForTrackerHealthy {
	return &WaitForTrackerHealthy{name: name, runner: runner, clock: clock, healthCheckPort: healthCheckPort, maxWait: maxWait, interval: interval}
}

func (s *WaitForTrackerHealthy) Name() string { return s.name }

func (s *WaitForTrackerHealthy) Execute(ctx context.Context) error {
	command := fmt.Sprintf("curl -sf http://127.0.0.1:%d/health_check", s.healthCheckPort)
	return pollUntilSuccess(ctx, s.clock, s.clock.Now(), s.maxWait, s.interval, func() error {
		return probeCommand(s.runner, command)
	})
}

var _ Step = (*WaitForTrackerHealthy)(nil)
