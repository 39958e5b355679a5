package shell

import (
	"context"
	"strings"

	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/logging"
)

// ConditionEvaluator decides whether an entry proceeds
type ConditionEvaluator struct {
	runner Runner
}

// NewConditionEvaluator creates an evaluator on top of runner
func NewConditionEvaluator(runner Runner) *ConditionEvaluator {
	return &ConditionEvaluator{runner: runner}
}

// Evaluate runs condition in dir. A nil condition always proceeds; a
// nonzero exit means skip. The error is set only when the condition could
// not be run at all, in which case the entry is skipped too.
func (e *ConditionEvaluator) Evaluate(ctx context.Context, condition *string, dir string) (bool, error) {
	if condition == nil {
		return true, nil
	}
	logger := logging.GetLogger("shell.condition")

	// An empty string is a command that trivially succeeds
	if strings.TrimSpace(*condition) == "" {
		return true, nil
	}

	res, err := e.runner.Run(ctx, Command{Script: *condition, Dir: dir, Purpose: PurposeCondition})
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrShellCommand, "condition %q could not run", *condition).
			WithDetail("dir", dir)
	}

	logger.Debug().
		Str("condition", *condition).
		Int("exit", res.ExitCode).
		Bool("proceed", res.Success()).
		Msg("Condition evaluated")
	return res.Success(), nil
}
