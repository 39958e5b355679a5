package shell

import (
	"context"

	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/logging"
)

// HookResult records one executed hook command
type HookResult struct {
	Command  string
	ExitCode int
}

// RunHooks runs commands in order in dir. The first command that fails stops
// the list and is returned as an ErrShellCommand error along with the
// results of every command that ran.
func RunHooks(ctx context.Context, runner Runner, dir string, purpose Purpose, commands []string) ([]HookResult, error) {
	logger := logging.GetLogger("shell.hooks")

	results := make([]HookResult, 0, len(commands))
	for i, script := range commands {
		logger.Info().
			Str("hook", string(purpose)).
			Int("index", i).
			Str("command", script).
			Msg("Running hook")

		res, err := runner.Run(ctx, Command{Script: script, Dir: dir, Purpose: purpose})
		if err != nil {
			results = append(results, HookResult{Command: script, ExitCode: -1})
			return results, errors.Wrapf(err, errors.ErrShellCommand, "%s command %q could not run", purpose, script).
				WithDetail("command", script).
				WithDetail("dir", dir)
		}

		results = append(results, HookResult{Command: script, ExitCode: res.ExitCode})
		if !res.Success() {
			return results, errors.Newf(errors.ErrShellCommand, "%s command %q exited with status %d", purpose, script, res.ExitCode).
				WithDetail("command", script).
				WithDetail("dir", dir).
				WithDetail("exitCode", res.ExitCode)
		}
	}
	return results, nil
}
