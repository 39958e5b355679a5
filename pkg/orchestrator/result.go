package orchestrator

import (
	"github.com/arthur-debert/cuepine/pkg/deps"
	"github.com/arthur-debert/cuepine/pkg/installer"
	"github.com/arthur-debert/cuepine/pkg/shell"
	"github.com/arthur-debert/cuepine/pkg/types"
)

// EntryOutcome is the result of one entry of one document
type EntryOutcome struct {
	installer.EntryResult
	Status EntryStatus
}

// DocumentResult collects everything that happened to one document
type DocumentResult struct {
	Path     string
	TopLevel bool
	Status   DocumentStatus
	Deps     deps.Report

	// Pre and Post hold executed hooks. In dry-run they list the commands
	// that would run, and HooksRun is false.
	Pre      []shell.HookResult
	Post     []shell.HookResult
	HooksRun bool

	Entries []EntryOutcome
}

// Summary counts entry outcomes across the run
type Summary struct {
	Installed int
	Unchanged int
	Skipped   int
	Failed    int
	Warnings  int
}

// Result is the full record of a run
type Result struct {
	RunID     string
	Mode      types.Mode
	Root      string
	State     State
	Documents []*DocumentResult
	Warnings  []types.Warning
}

// Summary counts entries by outcome. Unchanged entries are counted as
// skipped in the final status line.
func (r *Result) Summary() Summary {
	s := Summary{Warnings: len(r.Warnings)}
	for _, doc := range r.Documents {
		for _, e := range doc.Entries {
			switch e.Status {
			case EntryInstalled:
				s.Installed++
			case EntryUnchanged:
				s.Unchanged++
				s.Skipped++
			case EntryFailed:
				s.Failed++
			default:
				s.Skipped++
			}
		}
	}
	return s
}

// Operations returns every operation of the run in execution order
func (r *Result) Operations() []types.Operation {
	var ops []types.Operation
	for _, doc := range r.Documents {
		for _, e := range doc.Entries {
			ops = append(ops, e.Operations...)
		}
	}
	return ops
}
