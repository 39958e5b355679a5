// Package deps resolves declared command names against the search path.
package deps

import (
	"os/exec"
	"strings"

	"github.com/arthur-debert/cuepine/pkg/logging"
	"github.com/arthur-debert/cuepine/pkg/types"
)

// LookPathFunc resolves a command name to an executable path
type LookPathFunc func(file string) (string, error)

// Report lists the unresolved dependencies of one document
type Report struct {
	Document string
	// Resolved maps each found command to its executable path
	Resolved        map[string]string
	MissingRequired []string
	MissingOptional []string
}

// OK reports whether every required dependency resolved
func (r Report) OK() bool {
	return len(r.MissingRequired) == 0
}

// Checker resolves dependencies. It never runs the commands it checks.
type Checker struct {
	lookPath LookPathFunc
}

// NewChecker creates a Checker. A nil lookPath uses exec.LookPath.
func NewChecker(lookPath LookPathFunc) *Checker {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	return &Checker{lookPath: lookPath}
}

// Check resolves a document's required and optional dependencies.
// Duplicate names are checked once, and blank names are ignored.
func (c *Checker) Check(doc *types.ConfigDocument) Report {
	logger := logging.GetLogger("deps")

	report := Report{
		Document: doc.Path,
		Resolved: make(map[string]string),
	}
	report.MissingRequired = c.missing(doc.Dependencies, report.Resolved)
	report.MissingOptional = c.missing(doc.OptDependencies, report.Resolved)

	logger.Debug().
		Str("document", doc.Path).
		Strs("missing", report.MissingRequired).
		Strs("missingOptional", report.MissingOptional).
		Msg("Dependencies checked")
	return report
}

func (c *Checker) missing(names []string, resolved map[string]string) []string {
	var missing []string
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		path, err := c.lookPath(name)
		if err != nil {
			missing = append(missing, name)
			continue
		}
		resolved[name] = path
	}
	return missing
}
