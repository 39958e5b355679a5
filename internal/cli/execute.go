package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/style"
)

// Exit codes
const (
	ExitOK    = 0
	ExitAbort = 1
	ExitUsage = 2
)

// reportedError marks an error the reporter already printed
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// ExitCode maps an error returned by the root command to a process exit
// code. Aborted runs exit 1; bad arguments and missing targets exit 2.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch errors.GetErrorCode(err) {
	case errors.ErrInvalidInput, errors.ErrNotFound:
		return ExitUsage
	case errors.ErrUnknown:
		// flag and argument errors from cobra
		return ExitUsage
	}
	return ExitAbort
}

// Execute runs the root command with os.Args and returns the exit code.
// An interrupt cancels the running hook or condition.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(os.Stderr, err)
	}
	return ExitCode(err)
}

func printError(w io.Writer, err error) {
	var rep *reportedError
	if stderrors.As(err, &rep) {
		return
	}
	theme := style.NewTheme(style.NewRenderer(w, style.ColorAuto))
	fmt.Fprintln(w, theme.Error.Render("Error:"), err)
}
