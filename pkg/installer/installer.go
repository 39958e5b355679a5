package installer

import (
	stderrors "errors"
	"fmt"
	"os"
	"syscall"

	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/logging"
	"github.com/arthur-debert/cuepine/pkg/types"
	"github.com/rs/zerolog"
)

const dirPerm = 0755

// Skip reasons reported on operations
const (
	ReasonAlreadyInstalled = "already installed"
	ReasonExists           = "destination exists"
	ReasonNotInstalled     = "not installed"
	ReasonForeignLink      = "symlink points elsewhere"
	ReasonNotSymlink       = "not a symlink"
	ReasonDirExists        = "directory exists"
)

// Installer performs plans against a filesystem
type Installer struct {
	fs types.FS
}

// New creates an Installer
func New(fs types.FS) *Installer {
	return &Installer{fs: fs}
}

// EntryResult is the outcome of applying one plan
type EntryResult struct {
	Entry      string
	Dir        string
	Operations []types.Operation
	Warnings   []types.Warning
}

// Count returns the number of operations with the given status
func (r EntryResult) Count(status types.OperationStatus) int {
	n := 0
	for _, op := range r.Operations {
		if op.Status == status {
			n++
		}
	}
	return n
}

// Failed reports whether any operation of the entry failed
func (r EntryResult) Failed() bool {
	return r.Count(types.StatusError) > 0
}

// Changed reports whether the entry did (or in dry-run would) change anything
func (r EntryResult) Changed() bool {
	return r.Count(types.StatusDone)+r.Count(types.StatusPlanned) > 0
}

// Apply performs plan according to the context's mode
func (i *Installer) Apply(docCtx types.DocumentContext, plan Plan) EntryResult {
	a := &applier{
		fs:     i.fs,
		doc:    docCtx.Document.Path,
		result: EntryResult{Entry: plan.Entry.String(), Dir: plan.Dir},
	}
	a.logger = logging.GetLogger("installer").With().
		Str("entry", a.result.Entry).
		Str("mode", string(docCtx.Mode)).
		Logger()

	switch docCtx.Mode {
	case types.ModeUninstall:
		a.uninstall(plan)
	case types.ModeDryRun:
		a.install(plan, true)
	default:
		a.install(plan, false)
	}
	return a.result
}

type applier struct {
	fs     types.FS
	doc    string
	logger zerolog.Logger
	result EntryResult
}

func (a *applier) record(op types.Operation) {
	a.result.Operations = append(a.result.Operations, op)
}

func (a *applier) fail(op types.Operation, err error, kind types.WarningKind) {
	op.Status = types.StatusError
	op.Reason = err.Error()
	a.record(op)
	a.logger.Warn().Err(err).Str("target", op.Target).Msg("Placement failed")
	a.result.Warnings = append(a.result.Warnings, types.Warning{
		Kind:     kind,
		Document: a.doc,
		Entry:    a.result.Entry,
		Message:  err.Error(),
	})
}

func (a *applier) warn(kind types.WarningKind, msg string) {
	a.result.Warnings = append(a.result.Warnings, types.Warning{
		Kind:     kind,
		Document: a.doc,
		Entry:    a.result.Entry,
		Message:  msg,
	})
}

// ensureDir creates the destination directory. It reports false when the
// directory cannot be made available, in which case every placement fails.
func (a *applier) ensureDir(dir string, dryRun bool) bool {
	op := types.Operation{Type: types.OperationCreateDir, Target: dir}

	info, err := a.fs.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		a.logger.Trace().Str("dir", dir).Msg("Directory exists")
		return true
	case err == nil:
		a.fail(op, errors.Newf(errors.ErrPlacement, "%s exists and is not a directory", dir), types.WarnPlacement)
		return false
	case !os.IsNotExist(err):
		a.fail(op, errors.Wrapf(err, errors.ErrPlacement, "cannot access %s", dir), types.WarnPlacement)
		return false
	}

	if dryRun {
		op.Status = types.StatusPlanned
		a.record(op)
		return true
	}

	if err := a.fs.MkdirAll(dir, dirPerm); err != nil {
		a.fail(op, errors.Wrapf(err, errors.ErrPlacement, "cannot create %s", dir), types.WarnPlacement)
		return false
	}
	op.Status = types.StatusDone
	a.record(op)
	a.logger.Debug().Str("dir", dir).Msg("Created directory")
	return true
}

func (a *applier) install(plan Plan, dryRun bool) {
	if !a.ensureDir(plan.Dir, dryRun) {
		for _, p := range plan.Placements {
			op := types.Operation{Type: types.OperationCreateSymlink, Source: p.Source, Target: p.Dest}
			op.Status = types.StatusError
			op.Reason = fmt.Sprintf("directory %s unavailable", plan.Dir)
			a.record(op)
		}
		return
	}

	for _, p := range plan.Placements {
		a.place(p, dryRun)
	}
}

func (a *applier) place(p Placement, dryRun bool) {
	op := types.Operation{Type: types.OperationCreateSymlink, Source: p.Source, Target: p.Dest}

	if _, err := a.fs.Stat(p.Source); err != nil {
		a.fail(op, errors.Wrapf(err, errors.ErrPlacement, "source %s is missing", p.Source), types.WarnPlacement)
		return
	}

	state, err := DestinationState(a.fs, p.Dest)
	if err != nil {
		a.fail(op, errors.Wrapf(err, errors.ErrPlacement, "cannot inspect %s", p.Dest), types.WarnPlacement)
		return
	}

	if state.Exists() {
		op.Status = types.StatusSkipped
		op.Reason = ReasonExists
		if linksTo(state, p.Dest, p.Source) {
			op.Reason = ReasonAlreadyInstalled
		}
		a.record(op)
		a.logger.Debug().Str("target", p.Dest).Str("state", state.Kind.String()).Msg("Destination exists, skipping")
		return
	}

	if dryRun {
		op.Status = types.StatusPlanned
		a.record(op)
		return
	}

	// Lstat and Symlink run back to back; a concurrent creator shows up as
	// EEXIST and is treated like any other existing destination.
	if err := a.fs.Symlink(p.Source, p.Dest); err != nil {
		if os.IsExist(err) {
			op.Status = types.StatusSkipped
			op.Reason = ReasonExists
			a.record(op)
			return
		}
		a.fail(op, errors.Wrapf(err, errors.ErrPlacement, "cannot link %s", p.Dest), types.WarnPlacement)
		return
	}

	op.Status = types.StatusDone
	a.record(op)
	a.logger.Info().Str("source", p.Source).Str("target", p.Dest).Msg("Created symlink")
}

func (a *applier) uninstall(plan Plan) {
	for _, p := range plan.Placements {
		op := types.Operation{Type: types.OperationRemoveSymlink, Source: p.Source, Target: p.Dest}

		state, err := DestinationState(a.fs, p.Dest)
		if err != nil {
			if isNotDir(err) {
				op.Status = types.StatusSkipped
				op.Reason = ReasonNotInstalled
				a.record(op)
				continue
			}
			a.fail(op, errors.Wrapf(err, errors.ErrPlacement, "cannot inspect %s", p.Dest), types.WarnUninstall)
			continue
		}

		switch {
		case state.Kind == types.DestAbsent:
			op.Status = types.StatusSkipped
			op.Reason = ReasonNotInstalled
			a.record(op)

		case state.Kind == types.DestOther:
			op.Status = types.StatusSkipped
			op.Reason = ReasonNotSymlink
			a.record(op)
			a.warn(types.WarnUninstall, fmt.Sprintf("%s is not a symlink, left in place", p.Dest))

		case !linksTo(state, p.Dest, p.Source):
			op.Status = types.StatusSkipped
			op.Reason = ReasonForeignLink
			a.record(op)
			a.warn(types.WarnUninstall, fmt.Sprintf("%s points to %s instead of %s, left in place", p.Dest, state.LinkTarget, p.Source))

		default:
			if err := a.fs.Remove(p.Dest); err != nil && !os.IsNotExist(err) {
				a.fail(op, errors.Wrapf(err, errors.ErrPlacement, "cannot remove %s", p.Dest), types.WarnUninstall)
				continue
			}
			op.Status = types.StatusDone
			a.record(op)
			a.logger.Info().Str("target", p.Dest).Msg("Removed symlink")
		}
	}
}

// isNotDir matches lookups through a path component that is not a directory
func isNotDir(err error) bool {
	return stderrors.Is(err, syscall.ENOTDIR)
}
