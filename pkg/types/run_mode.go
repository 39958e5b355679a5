package types

// Mode selects what the engine does with the placements it computes
type Mode string

const (
	// ModeInstall creates directories and symlinks
	ModeInstall Mode = "install"

	// ModeUninstall removes previously placed symlinks and never runs hooks
	ModeUninstall Mode = "uninstall"

	// ModeDryRun reports the install plan without mutating the filesystem
	ModeDryRun Mode = "dry-run"
)

// Mutates reports whether the mode writes to the filesystem
func (m Mode) Mutates() bool {
	return m == ModeInstall || m == ModeUninstall
}

// RunsHooks reports whether pre/post commands are executed in this mode
func (m Mode) RunsHooks() bool {
	return m == ModeInstall
}

// DocumentContext is the explicit per-document context handed to the
// installer and shell boundary instead of the process working directory.
type DocumentContext struct {
	Document *ConfigDocument
	Home     string
	Mode     Mode
	TopLevel bool
}

// SourceDir returns the document's directory
func (c DocumentContext) SourceDir() string {
	return c.Document.SourceDir
}
