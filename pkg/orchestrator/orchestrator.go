package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/cuepine/pkg/deps"
	"github.com/arthur-debert/cuepine/pkg/discovery"
	"github.com/arthur-debert/cuepine/pkg/document"
	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/installer"
	"github.com/arthur-debert/cuepine/pkg/logging"
	"github.com/arthur-debert/cuepine/pkg/paths"
	"github.com/arthur-debert/cuepine/pkg/shell"
	"github.com/arthur-debert/cuepine/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options configures a run
type Options struct {
	// Root is the directory discovery starts from
	Root string
	// File, when set, is an explicitly targeted config file that becomes
	// the top-level document
	File string

	Mode types.Mode
	// Home replaces $HOME in entry dirs; empty means the environment's home
	Home string

	FS       types.FS
	Runner   shell.Runner
	LookPath deps.LookPathFunc

	Discovery discovery.Options
	// StrictHooks makes a failing pre/post command abort the run. When
	// false the failure is a warning and the run continues.
	StrictHooks bool

	Observer Observer
}

// Orchestrator runs the pipeline for one set of options
type Orchestrator struct {
	opts      Options
	installer *installer.Installer
	checker   *deps.Checker
	condition *shell.ConditionEvaluator
	logger    zerolog.Logger

	result *Result
}

// New creates an Orchestrator. FS and Runner are required.
func New(opts Options) *Orchestrator {
	if opts.Mode == "" {
		opts.Mode = types.ModeInstall
	}
	return &Orchestrator{
		opts:      opts,
		installer: installer.New(opts.FS),
		checker:   deps.NewChecker(opts.LookPath),
		condition: shell.NewConditionEvaluator(opts.Runner),
	}
}

// loaded pairs a document with its result record
type loaded struct {
	doc    *types.ConfigDocument
	result *DocumentResult
}

// Run executes the pipeline. The Result is returned even when the run
// aborts; the error is non-nil only for fatal conditions.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	o.logger = logging.WithRunID(logging.GetLogger("orchestrator"), runID).With().
		Str("mode", string(o.opts.Mode)).
		Logger()
	o.result = &Result{RunID: runID, Mode: o.opts.Mode, Root: o.opts.Root}

	done := logging.LogOperationStart(o.logger, "run")
	defer done()

	home, err := o.home()
	if err != nil {
		return o.abort(err)
	}

	docs, err := o.discoverAndLoad()
	if err != nil {
		return o.abort(err)
	}

	if o.opts.Mode == types.ModeUninstall {
		o.transition(StateRemovingEntries)
		for _, l := range docs {
			o.removeDocument(ctx, l, home)
		}
		o.transition(StateDone)
		return o.result, nil
	}

	// the top-level document, when there is one, comes first, so its
	// dependency check precedes every mutation of the run
	for _, l := range docs {
		if err := o.installDocument(ctx, l, home); err != nil {
			return o.abort(err)
		}
	}

	o.transition(StateDone)
	o.logger.Info().
		Int("documents", len(docs)).
		Int("warnings", len(o.result.Warnings)).
		Msg("Run complete")
	return o.result, nil
}

func (o *Orchestrator) home() (string, error) {
	if o.opts.Home != "" {
		return o.opts.Home, nil
	}
	home, err := paths.GetHomeDirectory()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInvalidInput, "cannot determine home directory")
	}
	return home, nil
}

// discoverAndLoad finds and parses every document, top-level first
func (o *Orchestrator) discoverAndLoad() ([]*loaded, error) {
	o.transition(StateDiscovering)

	discOpts := o.opts.Discovery
	discOpts.OnWarning = nil
	candidates, warnings, err := discovery.New(o.opts.FS, discOpts).Discover(o.opts.Root)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		o.warn(w)
	}

	type source struct {
		path     string
		topLevel bool
	}
	var sources []source
	if o.opts.File != "" {
		sources = append(sources, source{path: o.opts.File, topLevel: true})
	}
	for _, c := range candidates {
		if c.Depth == 0 {
			// the root directory's own document is top-level unless a
			// file was targeted explicitly
			if o.opts.File != "" {
				continue
			}
			sources = append(sources, source{path: c.Path, topLevel: true})
			continue
		}
		sources = append(sources, source{path: c.Path})
	}

	o.transition(StateLoading)
	var docs []*loaded
	for _, s := range sources {
		res := &DocumentResult{Path: s.path, TopLevel: s.topLevel, Status: DocPending}
		o.result.Documents = append(o.result.Documents, res)

		doc, warnings, err := document.Load(o.opts.FS, s.path)
		for _, w := range warnings {
			o.warn(w)
		}
		if err != nil {
			res.Status = DocParseError
			if s.topLevel {
				return nil, err
			}
			o.warn(types.Warning{
				Kind:     types.WarnParse,
				Document: s.path,
				Message:  fmt.Sprintf("document skipped: %v", err),
			})
			continue
		}
		res.Path = doc.Path
		docs = append(docs, &loaded{doc: doc, result: res})
	}

	o.logger.Debug().
		Int("candidates", len(sources)).
		Int("loaded", len(docs)).
		Msg("Documents loaded")
	return docs, nil
}

// checkDeps records the dependency report of a document. It returns an
// ErrDependency error when a required dependency is missing.
func (o *Orchestrator) checkDeps(l *loaded) error {
	report := o.checker.Check(l.doc)
	l.result.Deps = report
	o.emit(Event{Kind: EventDependencies, Document: l.result})

	for _, name := range report.MissingOptional {
		o.warn(types.Warning{
			Kind:     types.WarnOptional,
			Document: l.doc.Path,
			Message:  fmt.Sprintf("optional dependency %q not found", name),
		})
	}
	if report.OK() {
		return nil
	}
	return errors.Newf(errors.ErrDependency, "missing required dependencies in %s: %s",
		l.doc.Path, strings.Join(report.MissingRequired, ", ")).
		WithDetail("document", l.doc.Path).
		WithDetail("missing", report.MissingRequired)
}

func (o *Orchestrator) installDocument(ctx context.Context, l *loaded, home string) error {
	docCtx := types.DocumentContext{
		Document: l.doc,
		Home:     home,
		Mode:     o.opts.Mode,
		TopLevel: l.result.TopLevel,
	}
	o.emit(Event{Kind: EventDocumentStarted, Document: l.result})
	defer o.emit(Event{Kind: EventDocumentDone, Document: l.result})

	if l.result.TopLevel {
		o.transition(StateCheckingTopDeps)
	}
	depErr := o.checkDeps(l)
	switch {
	case depErr != nil && l.result.TopLevel:
		l.result.Status = DocAborted
		return depErr
	case depErr != nil:
		l.result.Status = DocSkippedDeps
		msg := fmt.Sprintf("document skipped, missing dependencies: %s",
			strings.Join(l.result.Deps.MissingRequired, ", "))
		o.warn(types.Warning{
			Kind:     types.WarnDependency,
			Document: l.doc.Path,
			Message:  msg,
		})
		for _, ref := range l.doc.Entries() {
			o.addEntry(l.result, EntryOutcome{
				EntryResult: installer.EntryResult{Entry: ref.String()},
				Status:      EntrySkippedDeps,
			})
		}
		return nil
	}

	o.transition(StateRunningPre)
	results, preOK, err := o.hooks(ctx, l, shell.PurposePre, l.doc.Pre)
	l.result.Pre = results
	if err != nil {
		l.result.Status = DocAborted
		return err
	}

	o.transition(StateInstallingEntries)
	for _, ref := range l.doc.Entries() {
		o.addEntry(l.result, o.installEntry(ctx, docCtx, ref))
	}

	o.transition(StateRunningPost)
	if !preOK {
		// post never runs after a failed pre, strict or not
		if len(l.doc.Post) > 0 {
			o.warn(types.Warning{
				Kind:     types.WarnHook,
				Document: l.doc.Path,
				Message:  "post commands skipped: a pre command failed",
			})
		}
		l.result.Status = DocProcessed
		return nil
	}
	results, _, err = o.hooks(ctx, l, shell.PurposePost, l.doc.Post)
	l.result.Post = results
	if err != nil {
		l.result.Status = DocAborted
		return err
	}

	l.result.Status = DocProcessed
	return nil
}

// hooks runs a hook list in install mode and lists it in dry-run. ok is
// false when a command failed. The failure is returned as an error only
// when hooks are strict.
func (o *Orchestrator) hooks(ctx context.Context, l *loaded, purpose shell.Purpose, commands []string) (results []shell.HookResult, ok bool, err error) {
	if len(commands) == 0 {
		return nil, true, nil
	}

	if !o.opts.Mode.RunsHooks() {
		planned := make([]shell.HookResult, 0, len(commands))
		for _, c := range commands {
			o.emit(Event{Kind: EventHook, Document: l.result, Hook: purpose, Command: c})
			planned = append(planned, shell.HookResult{Command: c})
		}
		return planned, true, nil
	}

	l.result.HooksRun = true
	for _, c := range commands {
		o.emit(Event{Kind: EventHook, Document: l.result, Hook: purpose, Command: c})
		res, runErr := shell.RunHooks(ctx, o.opts.Runner, l.doc.SourceDir, purpose, []string{c})
		results = append(results, res...)
		if runErr == nil {
			continue
		}
		if o.opts.StrictHooks {
			o.logger.Error().Err(runErr).Str("document", l.doc.Path).Msg("Hook failed, aborting")
			return results, false, runErr
		}
		o.warn(types.Warning{
			Kind:     types.WarnHook,
			Document: l.doc.Path,
			Message:  runErr.Error(),
		})
		// a failing command still ends its list
		return results, false, nil
	}
	return results, true, nil
}

func (o *Orchestrator) installEntry(ctx context.Context, docCtx types.DocumentContext, ref types.EntryRef) EntryOutcome {
	outcome := EntryOutcome{EntryResult: installer.EntryResult{Entry: ref.String()}}

	if !o.proceed(ctx, docCtx, ref) {
		outcome.Status = EntrySkippedCondition
		return outcome
	}

	plan, err := o.installer.Plan(docCtx, ref)
	if err != nil {
		outcome.Status = EntryFailed
		outcome.Warnings = append(outcome.Warnings, types.Warning{
			Kind:     types.WarnPlacement,
			Document: docCtx.Document.Path,
			Entry:    ref.String(),
			Message:  err.Error(),
		})
		return outcome
	}

	outcome.EntryResult = o.installer.Apply(docCtx, plan)
	switch {
	case outcome.Failed():
		outcome.Status = EntryFailed
	case outcome.Changed():
		outcome.Status = EntryInstalled
	default:
		outcome.Status = EntryUnchanged
	}
	return outcome
}

// proceed evaluates an entry's condition right before its placements
func (o *Orchestrator) proceed(ctx context.Context, docCtx types.DocumentContext, ref types.EntryRef) bool {
	ok, err := o.condition.Evaluate(ctx, ref.Entry.Condition, docCtx.SourceDir())
	if err != nil {
		o.warn(types.Warning{
			Kind:     types.WarnHook,
			Document: docCtx.Document.Path,
			Entry:    ref.String(),
			Message:  fmt.Sprintf("condition could not run, entry skipped: %v", err),
		})
		return false
	}
	if !ok {
		o.logger.Info().
			Str("document", docCtx.Document.Path).
			Str("entry", ref.String()).
			Msg("Condition not met, skipping entry")
	}
	return ok
}

func (o *Orchestrator) removeDocument(ctx context.Context, l *loaded, home string) {
	docCtx := types.DocumentContext{
		Document: l.doc,
		Home:     home,
		Mode:     types.ModeUninstall,
		TopLevel: l.result.TopLevel,
	}
	o.emit(Event{Kind: EventDocumentStarted, Document: l.result})

	for _, ref := range l.doc.Entries() {
		// entries whose condition fails now were never installed
		o.addEntry(l.result, o.installEntry(ctx, docCtx, ref))
	}

	l.result.Status = DocProcessed
	o.emit(Event{Kind: EventDocumentDone, Document: l.result})
}

func (o *Orchestrator) addEntry(doc *DocumentResult, outcome EntryOutcome) {
	doc.Entries = append(doc.Entries, outcome)
	for _, w := range outcome.Warnings {
		o.warn(w)
	}
	o.emit(Event{Kind: EventEntry, Document: doc, Entry: &doc.Entries[len(doc.Entries)-1]})
}

func (o *Orchestrator) transition(s State) {
	if o.result.State == s {
		return
	}
	o.logger.Debug().Str("from", string(o.result.State)).Str("to", string(s)).Msg("State transition")
	o.result.State = s
	o.emit(Event{Kind: EventState, State: s})
}

func (o *Orchestrator) abort(err error) (*Result, error) {
	o.logger.Error().Err(err).Str("state", string(o.result.State)).Msg("Run aborted")
	o.transition(StateAborted)
	return o.result, err
}

func (o *Orchestrator) warn(w types.Warning) {
	o.logger.Warn().
		Str("kind", string(w.Kind)).
		Str("document", relTo(o.opts.Root, w.Document)).
		Str("entry", w.Entry).
		Msg(w.Message)
	o.result.Warnings = append(o.result.Warnings, w)
	o.emit(Event{Kind: EventWarning, Warning: &o.result.Warnings[len(o.result.Warnings)-1]})
}

func (o *Orchestrator) emit(e Event) {
	if o.opts.Observer == nil {
		return
	}
	e.Mode = o.opts.Mode
	if e.State == "" {
		e.State = o.result.State
	}
	o.opts.Observer(e)
}

func relTo(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
