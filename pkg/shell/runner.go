package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/arthur-debert/cuepine/pkg/logging"
)

// DefaultShell interprets command strings when no shell is configured
const DefaultShell = "/bin/sh"

// Purpose tags why a command runs
type Purpose string

const (
	PurposePre       Purpose = "pre"
	PurposePost      Purpose = "post"
	PurposeCondition Purpose = "condition"
)

// Command is one shell string to run in a directory
type Command struct {
	Script  string
	Dir     string
	Purpose Purpose
}

// Result is the outcome of a command that started
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports a zero exit code
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner executes shell command strings synchronously
type Runner interface {
	// Run blocks until the command exits. A nonzero exit is reported in
	// Result, not as an error; err is set only when the command could not run.
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner runs commands through `<shell> -c`
type ExecRunner struct {
	Shell string
	// Stdout and Stderr receive hook output as it is produced. Condition
	// output is captured only.
	Stdout io.Writer
	Stderr io.Writer
	// Env is appended to the current environment
	Env []string
}

// NewExecRunner creates a runner for the given shell, streaming hook output
// to the process's stdout and stderr.
func NewExecRunner(shell string) *ExecRunner {
	if shell == "" {
		shell = DefaultShell
	}
	return &ExecRunner{
		Shell:  shell,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run implements Runner
func (r *ExecRunner) Run(ctx context.Context, c Command) (Result, error) {
	logger := logging.GetLogger("shell.runner")

	if c.Dir != "" {
		info, err := os.Stat(c.Dir)
		if err != nil || !info.IsDir() {
			return Result{}, fmt.Errorf("working directory does not exist: %s", c.Dir)
		}
	}

	cmd := exec.CommandContext(ctx, r.Shell, "-c", c.Script)
	cmd.Dir = c.Dir

	cmd.Env = append(os.Environ(), r.Env...)
	cmd.Env = append(cmd.Env,
		fmt.Sprintf("CUEPINE_SOURCE_DIR=%s", c.Dir),
		fmt.Sprintf("CUEPINE_HOOK=%s", c.Purpose),
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if c.Purpose != PurposeCondition {
		if r.Stdout != nil {
			cmd.Stdout = io.MultiWriter(&stdout, r.Stdout)
		}
		if r.Stderr != nil {
			cmd.Stderr = io.MultiWriter(&stderr, r.Stderr)
		}
	}

	logging.LogCommand(logger, c.Script, c.Dir)
	err := cmd.Run()

	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		if result.ExitCode == 0 {
			// terminated by a signal
			result.ExitCode = -1
		}
	default:
		logger.Error().Err(err).Str("shell", r.Shell).Msg("Command could not be started")
		return result, fmt.Errorf("cannot run %s: %w", filepath.Base(r.Shell), err)
	}

	logger.Debug().
		Str("command", c.Script).
		Str("purpose", string(c.Purpose)).
		Int("exit", result.ExitCode).
		Str("stderr", result.Stderr).
		Msg("Command finished")
	return result, nil
}
