package types

import "fmt"

// WarningKind mirrors the recoverable classes of the error taxonomy
type WarningKind string

const (
	WarnDiscovery  WarningKind = "discovery"
	WarnParse      WarningKind = "parse"
	WarnUnknownKey WarningKind = "unknown_key"
	WarnDependency WarningKind = "dependency"
	WarnOptional   WarningKind = "optional_dependency"
	WarnPlacement  WarningKind = "placement"
	WarnUninstall  WarningKind = "uninstall"
	WarnHook       WarningKind = "hook"
)

// Warning is a human-readable recoverable problem tied to a document or entry
type Warning struct {
	Kind     WarningKind
	Document string
	Entry    string
	Message  string
}

func (w Warning) String() string {
	switch {
	case w.Document != "" && w.Entry != "":
		return fmt.Sprintf("%s [%s]: %s", w.Document, w.Entry, w.Message)
	case w.Document != "":
		return fmt.Sprintf("%s: %s", w.Document, w.Message)
	}
	return w.Message
}
