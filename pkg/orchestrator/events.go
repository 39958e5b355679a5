package orchestrator

import (
	"github.com/arthur-debert/cuepine/pkg/shell"
	"github.com/arthur-debert/cuepine/pkg/types"
)

// EventKind names a progress notification
type EventKind string

const (
	EventState           EventKind = "state"
	EventDocumentStarted EventKind = "document_started"
	EventDependencies    EventKind = "dependencies"
	EventHook            EventKind = "hook"
	EventEntry           EventKind = "entry"
	EventWarning         EventKind = "warning"
	EventDocumentDone    EventKind = "document_done"
)

// Event is emitted synchronously while a run progresses. Hook events are
// sent before the command starts so its streamed output lands under them.
type Event struct {
	Kind     EventKind
	Mode     types.Mode
	State    State
	Document *DocumentResult
	Entry    *EntryOutcome
	Hook     shell.Purpose
	Command  string
	Warning  *types.Warning
}

// Observer receives events
type Observer func(Event)
