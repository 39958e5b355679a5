package testutil

import (
	"context"
	"sync"

	"github.com/arthur-debert/cuepine/pkg/shell"
	"github.com/stretchr/testify/mock"
)

// RecordingRunner is a scriptable shell.Runner that records every call.
// Scripts without a configured exit code succeed.
type RecordingRunner struct {
	mu        sync.Mutex
	calls     []shell.Command
	exitCodes map[string]int
	errs      map[string]error
	// OnRun, when set, runs before the result is returned. Tests use it to
	// simulate side effects of a command.
	OnRun func(cmd shell.Command)
}

// NewRecordingRunner creates an empty RecordingRunner
func NewRecordingRunner() *RecordingRunner {
	return &RecordingRunner{
		exitCodes: make(map[string]int),
		errs:      make(map[string]error),
	}
}

// ExitWith makes script exit with code
func (r *RecordingRunner) ExitWith(script string, code int) *RecordingRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exitCodes[script] = code
	return r
}

// FailToStart makes script return err as if the shell could not start
func (r *RecordingRunner) FailToStart(script string, err error) *RecordingRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs[script] = err
	return r
}

// Run implements shell.Runner
func (r *RecordingRunner) Run(_ context.Context, cmd shell.Command) (shell.Result, error) {
	r.mu.Lock()
	r.calls = append(r.calls, cmd)
	code := r.exitCodes[cmd.Script]
	err := r.errs[cmd.Script]
	onRun := r.OnRun
	r.mu.Unlock()

	if onRun != nil {
		onRun(cmd)
	}
	if err != nil {
		return shell.Result{}, err
	}
	return shell.Result{ExitCode: code}, nil
}

// Calls returns every recorded command in order
func (r *RecordingRunner) Calls() []shell.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]shell.Command(nil), r.calls...)
}

// Scripts returns the recorded scripts, optionally filtered by purpose
func (r *RecordingRunner) Scripts(purposes ...shell.Purpose) []string {
	var scripts []string
	for _, c := range r.Calls() {
		if len(purposes) > 0 && !hasPurpose(purposes, c.Purpose) {
			continue
		}
		scripts = append(scripts, c.Script)
	}
	return scripts
}

func hasPurpose(purposes []shell.Purpose, p shell.Purpose) bool {
	for _, want := range purposes {
		if want == p {
			return true
		}
	}
	return false
}

// MockRunner is a testify mock of shell.Runner
type MockRunner struct {
	mock.Mock
}

// Run implements shell.Runner
func (m *MockRunner) Run(ctx context.Context, cmd shell.Command) (shell.Result, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(shell.Result), args.Error(1)
}
