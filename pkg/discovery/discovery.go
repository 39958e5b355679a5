// Package discovery finds install.<ext> documents below a root directory.
package discovery

import (
	"fmt"
	"iter"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/cuepine/pkg/document"
	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/logging"
	"github.com/arthur-debert/cuepine/pkg/types"
)

// DefaultExcludedDirs are never descended into
var DefaultExcludedDirs = []string{".git", "node_modules", "venv"}

// DefaultConfigNames is the per-directory priority list
var DefaultConfigNames = []string{
	"install.json",
	"install.yaml",
	"install.yml",
	"install.toml",
	"install.hcl",
	"install.py",
}

// Options controls a Discoverer
type Options struct {
	// ExcludedDirs are directory base names pruned with everything beneath them
	ExcludedDirs []string
	// ConfigNames lists accepted file names, highest priority first. Only
	// the first match in a directory is used.
	ConfigNames []string
	// Recursive enables descending into subdirectories of the root
	Recursive bool
	// OnWarning receives recoverable problems such as unreadable directories
	OnWarning func(types.Warning)
}

// Candidate is one discovered config file
type Candidate struct {
	Path   string
	Dir    string
	Format document.Format
	// Depth is 0 for the root directory
	Depth int
}

// Discoverer walks a tree in lexicographic order yielding config files
type Discoverer struct {
	fs       types.FS
	excluded map[string]bool
	names    []string
	opts     Options
}

// New creates a Discoverer. Empty option lists fall back to the defaults.
func New(fs types.FS, opts Options) *Discoverer {
	if len(opts.ExcludedDirs) == 0 {
		opts.ExcludedDirs = DefaultExcludedDirs
	}
	if len(opts.ConfigNames) == 0 {
		opts.ConfigNames = DefaultConfigNames
	}

	excluded := make(map[string]bool, len(opts.ExcludedDirs))
	for _, name := range opts.ExcludedDirs {
		excluded[name] = true
	}

	return &Discoverer{
		fs:       fs,
		excluded: excluded,
		names:    opts.ConfigNames,
		opts:     opts,
	}
}

// Walk lazily yields one candidate per directory. Directories are visited
// depth-first with children sorted by name, so the order is stable for a
// given filesystem snapshot. Symlinked directories are not followed.
func (d *Discoverer) Walk(root string) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		d.walk(filepath.Clean(root), 0, yield)
	}
}

func (d *Discoverer) walk(dir string, depth int, yield func(Candidate) bool) bool {
	logger := logging.GetLogger("discovery")

	entries, err := d.fs.ReadDir(dir)
	if err != nil {
		logger.Warn().Err(err).Str("dir", dir).Msg("Cannot read directory, skipping")
		d.warn(dir, errors.Wrapf(err, errors.ErrDiscovery, "cannot read directory %s", dir))
		return true
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	files := make(map[string]bool)
	var subdirs []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			if d.excluded[name] {
				logger.Trace().Str("dir", filepath.Join(dir, name)).Msg("Pruning excluded directory")
				continue
			}
			subdirs = append(subdirs, name)
			continue
		}
		files[name] = true
	}

	if c, ok := d.pick(dir, depth, files); ok {
		logger.Trace().Str("path", c.Path).Int("depth", depth).Msg("Found config document")
		if !yield(c) {
			return false
		}
	}

	if !d.opts.Recursive {
		return true
	}
	for _, name := range subdirs {
		if !d.walk(filepath.Join(dir, name), depth+1, yield) {
			return false
		}
	}
	return true
}

// pick selects the highest-priority config name present in a directory
func (d *Discoverer) pick(dir string, depth int, files map[string]bool) (Candidate, bool) {
	for _, name := range d.names {
		if !files[name] {
			continue
		}
		format, ok := document.FormatFromPath(name)
		if !ok {
			continue
		}
		return Candidate{
			Path:   filepath.Join(dir, name),
			Dir:    dir,
			Format: format,
			Depth:  depth,
		}, true
	}
	return Candidate{}, false
}

func (d *Discoverer) warn(dir string, err error) {
	if d.opts.OnWarning == nil {
		return
	}
	d.opts.OnWarning(types.Warning{
		Kind:     types.WarnDiscovery,
		Document: dir,
		Message:  fmt.Sprintf("directory skipped: %v", err),
	})
}

// Discover collects every candidate under root along with discovery warnings.
// A root that is missing or not a directory is an error.
func (d *Discoverer) Discover(root string) ([]Candidate, []types.Warning, error) {
	info, err := d.fs.Stat(root)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrNotFound, "discovery root does not exist").
			WithDetail("path", root)
	}
	if !info.IsDir() {
		return nil, nil, errors.New(errors.ErrInvalidInput, "discovery root is not a directory").
			WithDetail("path", root)
	}

	var warnings []types.Warning
	collector := *d
	collector.opts.OnWarning = func(w types.Warning) {
		warnings = append(warnings, w)
		if d.opts.OnWarning != nil {
			d.opts.OnWarning(w)
		}
	}

	var candidates []Candidate
	for c := range collector.Walk(root) {
		candidates = append(candidates, c)
	}

	logger := logging.GetLogger("discovery")
	logger.Debug().
		Str("root", root).
		Int("count", len(candidates)).
		Msg("Discovery complete")
	return candidates, warnings, nil
}
