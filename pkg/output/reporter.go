package output

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/arthur-debert/cuepine/pkg/installer"
	"github.com/arthur-debert/cuepine/pkg/logging"
	"github.com/arthur-debert/cuepine/pkg/orchestrator"
	"github.com/arthur-debert/cuepine/pkg/paths"
	"github.com/arthur-debert/cuepine/pkg/shell"
	"github.com/arthur-debert/cuepine/pkg/style"
	"github.com/arthur-debert/cuepine/pkg/types"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var funcs = template.FuncMap{
	"plural": plural,
}

// Section titles
const (
	SectionDependencies   = "Dependencies check"
	SectionPre            = "Pre-scripts"
	SectionPost           = "Post-scripts"
	SectionInstallation   = "Installation"
	SectionUninstallation = "Uninstallation"
	NothingDone           = "Nothing done"
)

// Reporter prints orchestrator events as they arrive
type Reporter struct {
	w         io.Writer
	root      string
	home      string
	markup    *style.MarkupParser
	templates *template.Template

	// sections printed for the current document
	sections map[string]bool
}

// NewReporter creates a Reporter writing to w. Paths under root are shown
// relative to it and paths under home start with "~".
func NewReporter(w io.Writer, root, home string, color style.ColorMode) (*Reporter, error) {
	tmpl, err := template.New("output").Funcs(funcs).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	theme := style.NewTheme(style.NewRenderer(w, color))
	logger := logging.GetLogger("output")
	logger.Debug().
		Str("color", string(color)).
		Str("root", root).
		Msg("Reporter created")

	return &Reporter{
		w:         w,
		root:      root,
		home:      home,
		markup:    style.NewMarkupParser(theme),
		templates: tmpl,
		sections:  map[string]bool{},
	}, nil
}

// Observe renders one event. Its signature matches orchestrator.Observer.
func (r *Reporter) Observe(e orchestrator.Event) {
	switch e.Kind {
	case orchestrator.EventDocumentStarted:
		r.sections = map[string]bool{}
		r.println("")
		r.println("[header]%s[/header]", r.display(e.Document.Path))
	case orchestrator.EventDependencies:
		r.dependencies(e.Document)
	case orchestrator.EventHook:
		r.hook(e)
	case orchestrator.EventEntry:
		r.entry(e)
	case orchestrator.EventWarning:
		r.warning(e.Warning)
	case orchestrator.EventDocumentDone:
		r.documentDone(e)
	}
}

func (r *Reporter) section(title string) {
	if r.sections[title] {
		return
	}
	r.sections[title] = true
	r.println("  [section]%s[/section]", title)
}

func (r *Reporter) dependencies(doc *orchestrator.DocumentResult) {
	rep := doc.Deps
	if len(rep.Resolved)+len(rep.MissingRequired)+len(rep.MissingOptional) == 0 {
		return
	}
	r.section(SectionDependencies)
	for _, name := range sortedKeys(rep.Resolved) {
		r.println("    [success]%s[/success] %s [muted]%s[/muted]", style.SuccessIndicator, style.Escape(name), r.display(rep.Resolved[name]))
	}
	for _, name := range rep.MissingRequired {
		r.println("    [error]%s[/error] %s [muted](missing)[/muted]", style.ErrorIndicator, style.Escape(name))
	}
	for _, name := range rep.MissingOptional {
		r.println("    [warning]%s[/warning] %s [muted](optional, missing)[/muted]", style.WarningIndicator, style.Escape(name))
	}
}

func (r *Reporter) hook(e orchestrator.Event) {
	title := SectionPre
	if e.Hook == shell.PurposePost {
		title = SectionPost
	}
	r.section(title)
	command := style.Escape(e.Command)
	if e.Mode.RunsHooks() {
		r.println("    [command]$ %s[/command]", command)
		return
	}
	r.println("    [muted]would run:[/muted] [command]%s[/command]", command)
}

func (r *Reporter) entry(e orchestrator.Event) {
	title := SectionInstallation
	if e.Mode == types.ModeUninstall {
		title = SectionUninstallation
	}
	r.section(title)

	out := e.Entry
	name := style.Escape(out.Entry)
	label := name
	if out.Dir != "" {
		label = fmt.Sprintf("%s [muted]->[/muted] [path]%s[/path]", name, r.display(out.Dir))
	}

	switch out.Status {
	case orchestrator.EntrySkippedCondition:
		r.println("    [muted]%s %s skipped (condition not met)[/muted]", style.PendingIndicator, name)
		return
	case orchestrator.EntrySkippedDeps:
		r.println("    [muted]%s %s skipped (missing dependencies)[/muted]", style.PendingIndicator, name)
		return
	case orchestrator.EntryFailed:
		r.println("    [error]%s[/error] %s", style.ErrorIndicator, label)
	default:
		r.println("    %s %s", style.InfoIndicator, label)
	}

	if len(out.Operations) == 0 {
		for _, w := range out.Warnings {
			r.println("        [error]%s[/error]", style.Escape(w.Message))
		}
	}

	changed := false
	for _, op := range out.Operations {
		switch op.Status {
		case types.StatusDone:
			changed = true
			r.println("        [success]%s[/success] %s", style.SuccessIndicator, r.operation(op))
		case types.StatusPlanned:
			changed = true
			r.println("        [info]%s[/info] %s", style.PendingIndicator, r.operation(op))
		case types.StatusError:
			r.println("        [error]%s[/error] %s [muted](%s)[/muted]", style.ErrorIndicator, r.operation(op), style.Escape(op.Reason))
		case types.StatusSkipped:
			if op.Reason != installer.ReasonAlreadyInstalled && op.Reason != installer.ReasonDirExists &&
				op.Reason != installer.ReasonNotInstalled {
				r.println("        [warning]%s[/warning] %s [muted](%s)[/muted]", style.WarningIndicator, r.operation(op), style.Escape(op.Reason))
			}
		}
	}
	if !changed && out.Status != orchestrator.EntryFailed {
		r.println("        [muted]%s[/muted]", NothingDone)
	}
}

func (r *Reporter) operation(op types.Operation) string {
	switch op.Type {
	case types.OperationCreateDir:
		return fmt.Sprintf("mkdir [path]%s[/path]", r.display(op.Target))
	case types.OperationCreateSymlink:
		return fmt.Sprintf("[link]%s[/link] => [path]%s[/path]", r.display(op.Target), r.display(op.Source))
	case types.OperationRemoveSymlink:
		return fmt.Sprintf("rm [link]%s[/link]", r.display(op.Target))
	}
	return style.Escape(op.String())
}

func (r *Reporter) warning(w *types.Warning) {
	// placement problems are shown inside their entry block
	if w.Entry != "" && (w.Kind == types.WarnPlacement || w.Kind == types.WarnUninstall) {
		return
	}
	msg := w.Message
	if w.Entry != "" {
		msg = w.Entry + ": " + msg
	}
	r.println("  [warning]%s %s[/warning]", style.WarningIndicator, style.Escape(msg))
}

func (r *Reporter) documentDone(e orchestrator.Event) {
	doc := e.Document
	if doc.Status == orchestrator.DocSkippedDeps || doc.Status == orchestrator.DocAborted {
		return
	}
	if len(doc.Entries) == 0 && len(doc.Pre) == 0 && len(doc.Post) == 0 {
		r.println("  [muted]%s[/muted]", NothingDone)
	}
}

type summaryView struct {
	Title         string
	InstalledVerb string
	Installed     int
	Skipped       int
	Failed        int
	Warnings      int
	Aborted       bool
	Error         string
}

// Summary prints the final status line of a run. err is the error Run
// returned, if any.
func (r *Reporter) Summary(res *orchestrator.Result, err error) error {
	if res == nil {
		if err != nil {
			r.Error(err)
		}
		return nil
	}

	view := summaryView{Title: "Done.", InstalledVerb: "installed"}
	switch res.Mode {
	case types.ModeDryRun:
		view.Title = "Dry run."
		view.InstalledVerb = "to install"
	case types.ModeUninstall:
		view.InstalledVerb = "removed"
	}
	s := res.Summary()
	view.Installed = s.Installed
	view.Skipped = s.Skipped
	view.Failed = s.Failed
	view.Warnings = s.Warnings
	if err != nil {
		view.Aborted = true
		view.Error = style.Escape(err.Error())
	}

	r.println("")
	return r.execute("summary", view)
}

type depsDocView struct {
	Path     string
	Found    []string
	Missing  []string
	Optional []string
	Empty    bool
}

// DependencyReport prints the result of a dependency-only check
func (r *Reporter) DependencyReport(report *orchestrator.DependencyReport) error {
	view := struct {
		Documents []depsDocView
		Missing   int
	}{Missing: report.MissingCount()}

	for _, doc := range report.Documents {
		d := depsDocView{
			Path:     r.display(doc.Path),
			Found:    escapeAll(sortedKeys(doc.Deps.Resolved)),
			Missing:  escapeAll(doc.Deps.MissingRequired),
			Optional: escapeAll(doc.Deps.MissingOptional),
		}
		d.Empty = len(d.Found)+len(d.Missing)+len(d.Optional) == 0
		view.Documents = append(view.Documents, d)
	}
	return r.execute("deps", view)
}

// Error prints a fatal error that happened before any run started
func (r *Reporter) Error(err error) {
	r.println("[error]Error:[/error] %s", style.Escape(err.Error()))
}

func (r *Reporter) execute(name string, data interface{}) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	_, err := io.WriteString(r.w, r.markup.Render(buf.String()))
	return err
}

func (r *Reporter) println(format string, args ...interface{}) {
	line := format
	if len(args) > 0 {
		line = fmt.Sprintf(format, args...)
	}
	fmt.Fprintln(r.w, r.markup.Render(line))
}

// display shortens a path for humans: relative to the root when inside it,
// "~" based when inside home. The result is escaped for markup.
func (r *Reporter) display(path string) string {
	if path == "" {
		return ""
	}
	if r.root != "" {
		if rel, err := filepath.Rel(r.root, path); err == nil && !strings.HasPrefix(rel, "..") {
			return style.Escape(filepath.Join(filepath.Base(r.root), rel))
		}
	}
	if r.home != "" {
		return style.Escape(paths.ContractHome(path, r.home))
	}
	return style.Escape(path)
}

func escapeAll(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = style.Escape(item)
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	if strings.HasSuffix(word, "y") {
		return strings.TrimSuffix(word, "y") + "ies"
	}
	return word + "s"
}
