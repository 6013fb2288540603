package runner

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

// DefaultShell is the interpreter demoed commands are handed to.
const DefaultShell = "/bin/sh"

// HostRunner runs a command string on the host and reports its exit status.
type HostRunner interface {
	Run(ctx context.Context, command string) (int, error)
}

// IOBindings wires a child process to the terminal.
type IOBindings struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// StdIO binds to the process' own standard streams.
func StdIO() IOBindings {
	return IOBindings{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// ShellRunner runs commands through `sh -c`, like system(3).
type ShellRunner struct {
	Shell string
	IO    IOBindings
}

// NewShellRunner returns a ShellRunner using DefaultShell.
func NewShellRunner(io IOBindings) *ShellRunner {
	return &ShellRunner{Shell: DefaultShell, IO: io}
}

// Command builds the exec.Cmd for command without binding any streams, so
// callers such as tea.ExecProcess can attach their own.
func (r *ShellRunner) Command(ctx context.Context, command string) *exec.Cmd {
	shell := r.Shell
	if shell == "" {
		shell = DefaultShell
	}
	return exec.CommandContext(ctx, shell, "-c", command)
}

// Run executes command and waits for it. Output goes straight to the
// terminal, it is not captured.
func (r *ShellRunner) Run(ctx context.Context, command string) (int, error) {
	cmd := r.Command(ctx, command)
	cmd.Stdin = r.IO.Stdin
	cmd.Stdout = r.IO.Stdout
	cmd.Stderr = r.IO.Stderr
	return ExitCode(cmd.Run())
}

// ExitCode turns the error of a finished command into its exit status.
// A non-zero exit is not an error; anything that kept the shell from
// running at all is, and is reported with status -1.
func ExitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, errors.Wrap(err, "failed to start shell")
}
