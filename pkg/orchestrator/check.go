package orchestrator

import (
	"context"

	"github.com/arthur-debert/cuepine/pkg/logging"
	"github.com/google/uuid"
)

// DependencyReport is the outcome of a dependency-only run
type DependencyReport struct {
	Documents []*DocumentResult
	// Missing maps each document path to its missing required commands
	Missing  map[string][]string
	Warnings int
}

// CheckDependencies discovers and loads every document and reports their
// dependencies without running hooks or touching destinations. The error is
// ErrDependency when the top-level document has a missing required
// dependency.
func (o *Orchestrator) CheckDependencies(_ context.Context) (*DependencyReport, error) {
	runID := uuid.NewString()
	o.logger = logging.WithRunID(logging.GetLogger("orchestrator"), runID)
	o.result = &Result{RunID: runID, Mode: o.opts.Mode, Root: o.opts.Root}

	docs, err := o.discoverAndLoad()
	if err != nil {
		_, err = o.abort(err)
		return nil, err
	}

	report := &DependencyReport{Missing: make(map[string][]string)}
	var topErr error
	for _, l := range docs {
		o.emit(Event{Kind: EventDocumentStarted, Document: l.result})
		if err := o.checkDeps(l); err != nil {
			report.Missing[l.doc.Path] = l.result.Deps.MissingRequired
			if l.result.TopLevel {
				topErr = err
			}
		}
		report.Documents = append(report.Documents, l.result)
		o.emit(Event{Kind: EventDocumentDone, Document: l.result})
	}
	report.Warnings = len(o.result.Warnings)

	return report, topErr
}

// MissingCount returns the number of missing required dependencies
func (r *DependencyReport) MissingCount() int {
	n := 0
	for _, m := range r.Missing {
		n += len(m)
	}
	return n
}
