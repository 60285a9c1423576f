/*
Copyright 2024 Forge.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package ssh provides the SSH capability used to reach a provisioned
// instance: connecting, running remote commands, and transferring files.
package ssh

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"

	cssh "golang.org/x/crypto/ssh"
)

const (
	sshPort = 22

	// PasswordAuth selects password-based authentication.
	PasswordAuth = "password"
	// KeyAuth selects private-key-based authentication.
	KeyAuth = "key"

	// Timeout is the default dial/handshake timeout for a connection attempt.
	Timeout = 60 * time.Second
)

var (
	ErrInvalidUsername        = errors.New("a valid username must be supplied")
	ErrInvalidAuth            = errors.New("invalid authorization method: missing password or key")
	ErrSSHInvalidMessageLength = errors.New("invalid message length")
	ErrTimeout                 = errors.New("timed out waiting for sshd to respond")
	ErrKeyGeneration           = errors.New("unable to generate key")
	ErrValidation              = errors.New("unable to validate key")
	ErrPublicKey               = errors.New("unable to convert public key")
	ErrUnableToWriteFile       = errors.New("unable to write file")
	ErrNotImplemented          = errors.New("operation not implemented")
)

var closeMutex sync.Mutex

// dial and readPrivateKey are indirection points so tests can substitute
// fakes without opening a real TCP connection.
var dial = cssh.Dial

var readPrivateKey = func(path string) (cssh.AuthMethod, error) {
	key, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	signer, err := cssh.ParsePrivateKey(key)
	if err != nil {
		return nil, err
	}
	return cssh.PublicKeys(signer), nil
}

// Credentials carries everything needed to authenticate against a host.
type Credentials struct {
	SSHUser       string
	SSHPassword   string
	SSHPrivateKey string
}

// Options tunes the underlying SSH session (currently just the connect
// timeout; kept as a struct so future options don't break callers).
type Options struct {
	ConnectTimeout time.Duration
}

// Client is the capability interface steps depend on. Production code
// uses *SSHClient; tests substitute *MockSSHClient.
type Client interface {
	Connect() error
	Disconnect()
	Run(command string, stdout, stderr io.Writer) error
	Upload(src io.Reader, dst string, mode uint32) error
	Download(src io.WriteCloser, dst string) error
	Validate() error
	WaitForSSH(maxWait time.Duration) error
	SetSSHPrivateKey(string)
	GetSSHPrivateKey() string
	SetSSHPassword(string)
	GetSSHPassword() string
}

// SSHClient is the production Client backed by golang.org/x/crypto/ssh.
type SSHClient struct {
	Creds   *Credentials
	IP      net.IP
	Port    int
	Options Options

	cryptoClient *cssh.Client
	close        chan bool
}

func getAuth(creds *Credentials, method string) (cssh.AuthMethod, error) {
	switch method {
	case KeyAuth:
		return readPrivateKey(creds.SSHPrivateKey)
	case PasswordAuth:
		return cssh.Password(creds.SSHPassword), nil
	default:
		return nil, ErrInvalidAuth
	}
}

// Validate checks that the credentials are minimally usable.
func (c *SSHClient) Validate() error {
	if c.Creds == nil || c.Creds.SSHUser == "" {
		return ErrInvalidUsername
	}
	if c.Creds.SSHPassword == "" && c.Creds.SSHPrivateKey == "" {
		return ErrInvalidAuth
	}
	return nil
}

// Connect establishes the SSH session, preferring key auth over password
// auth when both are supplied.
func (c *SSHClient) Connect() error {
	if err := c.Validate(); err != nil {
		return err
	}

	method := PasswordAuth
	if c.Creds.SSHPrivateKey != "" {
		method = KeyAuth
	}
	auth, err := getAuth(c.Creds, method)
	if err != nil {
		return err
	}

	timeout := c.Options.ConnectTimeout
	if timeout == 0 {
		timeout = Timeout
	}

	port := c.Port
	if port == 0 {
		port = sshPort
	}

	config := &cssh.ClientConfig{
		User:            c.Creds.SSHUser,
		Auth:            []cssh.AuthMethod{auth},
		HostKeyCallback: cssh.InsecureIgnoreHostKey(), //nolint:gosec // target host key is not known ahead of provisioning
		Timeout:         timeout,
	}

	client, err := dial("tcp", fmt.Sprintf("%s:%d", c.IP.String(), port), config)
	if err != nil {
		return err
	}
	c.cryptoClient = client
	c.close = make(chan bool, 1)
	return nil
}

// Disconnect closes the underlying connection, if any.
func (c *SSHClient) Disconnect() {
	closeMutex.Lock()
	defer closeMutex.Unlock()
	if c.cryptoClient != nil {
		_ = c.cryptoClient.Close()
		c.cryptoClient = nil
	}
	if c.close != nil {
		close(c.close)
		c.close = nil
	}
}

// Run executes command on the remote host, streaming stdout/stderr into the
// supplied writers so callers can capture combined output for a trace file.
func (c *SSHClient) Run(command string, stdout, stderr io.Writer) error {
	if c.cryptoClient == nil {
		return ErrNotImplemented
	}
	session, err := c.cryptoClient.NewSession()
	if err != nil {
		return err
	}
	defer session.Close()

	session.Stdout = stdout
	session.Stderr = stderr
	return session.Run(command)
}

// Upload copies src to dst on the remote host with the given file mode,
// by piping it into a remote `install -m MODE /dev/stdin DST` (no SFTP
// subsystem dependency).
func (c *SSHClient) Upload(src io.Reader, dst string, mode uint32) error {
	if c.cryptoClient == nil {
		return ErrNotImplemented
	}
	session, err := c.cryptoClient.NewSession()
	if err != nil {
		return err
	}
	defer session.Close()

	session.Stdin = src
	cmd := fmt.Sprintf("install -m %#o /dev/stdin %s", mode, dst)
	return session.Run(cmd)
}

// Download reads the remote file at dst and writes its content into src.
func (c *SSHClient) Download(src io.WriteCloser, dst string) error {
	if c.cryptoClient == nil {
		return ErrNotImplemented
	}
	defer src.Close()

	session, err := c.cryptoClient.NewSession()
	if err != nil {
		return err
	}
	defer session.Close()

	var buf bytes.Buffer
	session.Stdout = &buf
	if err := session.Run(fmt.Sprintf("cat %s", dst)); err != nil {
		return err
	}
	_, err = io.Copy(src, &buf)
	return err
}

// WaitForSSH polls Connect until it succeeds or maxWait elapses.
func (c *SSHClient) WaitForSSH(maxWait time.Duration) error {
	deadline := time.Now().Add(maxWait)
	var lastErr error
	for time.Now().Before(deadline) {
		if err := c.Connect(); err == nil {
			c.Disconnect()
			return nil
		} else {
			lastErr = err
		}
		time.Sleep(time.Second)
	}
	if lastErr != nil {
		return ErrTimeout
	}
	return ErrTimeout
}

func (c *SSHClient) SetSSHPrivateKey(s string) {
	if c.Creds == nil {
		c.Creds = &Credentials{}
	}
	c.Creds.SSHPrivateKey = s
}

func (c *SSHClient) GetSSHPrivateKey() string {
	if c.Creds == nil {
		return ""
	}
	return c.Creds.SSHPrivateKey
}

func (c *SSHClient) SetSSHPassword(s string) {
	if c.Creds == nil {
		c.Creds = &Credentials{}
	}
	c.Creds.SSHPassword = s
}

func (c *SSHClient) GetSSHPassword() string {
	if c.Creds == nil {
		return ""
	}
	return c.Creds.SSHPassword
}

var _ Client = (*SSHClient)(nil)
