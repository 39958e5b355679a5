package types

import (
	"path/filepath"
	"sort"
)

// Recognized top-level keys of a config document, in canonical order
const (
	KeyPre             = "pre"
	KeyPost            = "post"
	KeyDependencies    = "dependencies"
	KeyOptDependencies = "opt_dependencies"
	KeyInstallation    = "installation"
)

// TopLevelKeys lists the recognized top-level keys in canonical order
var TopLevelKeys = []string{KeyPre, KeyPost, KeyDependencies, KeyOptDependencies, KeyInstallation}

// EntryKeys lists the recognized install entry keys in canonical order
var EntryKeys = []string{"dir", "files", "renamed_files", "strip_ext", "condition"}

// ConfigDocument is one discovered config file normalized to the canonical schema
type ConfigDocument struct {
	Pre             []string                           `mapstructure:"pre"`
	Post            []string                           `mapstructure:"post"`
	Dependencies    []string                           `mapstructure:"dependencies"`
	OptDependencies []string                           `mapstructure:"opt_dependencies"`
	Installation    map[string]map[string]InstallEntry `mapstructure:"installation" validate:"dive,dive"`

	// Path is the config file the document was loaded from
	Path string `mapstructure:"-"`
	// SourceDir is the directory containing the config file
	SourceDir string `mapstructure:"-"`
}

// InstallEntry is one unit of installable content
type InstallEntry struct {
	Dir          string        `mapstructure:"dir" validate:"required"`
	Files        []string      `mapstructure:"files" validate:"dive,required"`
	RenamedFiles []RenamedFile `mapstructure:"renamed_files" validate:"dive"`
	StripExt     bool          `mapstructure:"strip_ext"`
	Condition    *string       `mapstructure:"condition"`
}

// RenamedFile is an explicit source to destination-name override
type RenamedFile struct {
	Src string `mapstructure:"src" validate:"required"`
	Dst string `mapstructure:"dst" validate:"required"`
}

// EntryRef names an entry within a document
type EntryRef struct {
	Category string
	Name     string
	Entry    InstallEntry
}

// String returns "category.name"
func (r EntryRef) String() string {
	return r.Category + "." + r.Name
}

// Entries returns every install entry ordered by category then entry name.
// Entries are independent, so any stable order is valid; sorting keeps
// install and uninstall walking them in the same relative order.
func (d *ConfigDocument) Entries() []EntryRef {
	categories := make([]string, 0, len(d.Installation))
	for category := range d.Installation {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var refs []EntryRef
	for _, category := range categories {
		entries := d.Installation[category]
		names := make([]string, 0, len(entries))
		for name := range entries {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			refs = append(refs, EntryRef{Category: category, Name: name, Entry: entries[name]})
		}
	}
	return refs
}

// EntryCount returns the number of install entries in the document
func (d *ConfigDocument) EntryCount() int {
	n := 0
	for _, entries := range d.Installation {
		n += len(entries)
	}
	return n
}

// ResolveSource resolves a source path against the document's directory
func (d *ConfigDocument) ResolveSource(src string) string {
	if filepath.IsAbs(src) {
		return filepath.Clean(src)
	}
	return filepath.Join(d.SourceDir, src)
}

// HasCondition reports whether the entry is gated by a condition
func (e InstallEntry) HasCondition() bool {
	return e.Condition != nil
}
