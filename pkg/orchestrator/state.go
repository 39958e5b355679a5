package orchestrator

// State is a step of the run state machine
type State string

const (
	StateDiscovering       State = "discovering"
	StateLoading           State = "loading"
	StateCheckingTopDeps   State = "checking_top_deps"
	StateRunningPre        State = "running_pre"
	StateInstallingEntries State = "installing_entries"
	StateRunningPost       State = "running_post"
	StateRemovingEntries   State = "removing_entries"
	StateDone              State = "done"
	StateAborted           State = "aborted"
)

// Terminal reports whether no further transition is possible
func (s State) Terminal() bool {
	return s == StateDone || s == StateAborted
}

// DocumentStatus is the per-document sub-state
type DocumentStatus string

const (
	DocPending     DocumentStatus = "pending"
	DocProcessed   DocumentStatus = "processed"
	DocSkippedDeps DocumentStatus = "skipped_deps"
	DocParseError  DocumentStatus = "parse_error"
	DocAborted     DocumentStatus = "aborted"
)

// EntryStatus classifies the outcome of one entry
type EntryStatus string

const (
	// EntryInstalled means at least one operation was performed or planned
	EntryInstalled EntryStatus = "installed"

	// EntryUnchanged means everything was already in the desired state
	EntryUnchanged EntryStatus = "unchanged"

	EntryFailed           EntryStatus = "failed"
	EntrySkippedCondition EntryStatus = "skipped_condition"
	EntrySkippedDeps      EntryStatus = "skipped_deps"
)
