// Package shell executes include commands through the configured
// shell.
package shell

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner defines the interface for shell command execution. Command
// includes go through a Runner so tests can stub it out.
type Runner interface {
	Run(command string) (string, error)
}

type runner struct {
	shell string
}

// New returns a Runner that executes commands via `shell -c`.
func New(shell string) Runner {
	return &runner{shell: shell}
}

// Run executes a shell command and returns its stdout with the
// trailing newline removed.
func (r *runner) Run(command string) (string, error) {
	cmd := exec.Command(r.shell, "-c", command)
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("shell error: %w: %s", err, stderr.String())
	}

	return strings.TrimRight(stdout.String(), "\n"), nil
}

// DefaultShell returns $SHELL, or /bin/bash when unset.
func DefaultShell() string {
	if s := os.Getenv("SHELL"); s != "" {
		return s
	}
	return "/bin/bash"
}
