package step

import (
	"io"
	"time"
)

// RemoteRunner is the capability remote-action and validation steps use to
// run a command on the target host and capture its combined output. It is
// a strict subset of pkg/ssh.Client's method set, satisfied by *ssh.SSHClient
// and *ssh.MockSSHClient without either needing to know this package exists.
type RemoteRunner interface {
	Run(command string, stdout, stderr io.Writer) error
}

// Uploader is the capability UploadFile and its derivatives use to place a
// local file on the target host.
type Uploader interface {
	Upload(src io.Reader, dst string, mode uint32) error
}

// SSHWaiter is the capability WaitForSSH uses to poll until the target
// host accepts SSH connections.
type SSHWaiter interface {
	WaitForSSH(maxWait time.Duration) error
}
