package installer

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/paths"
	"github.com/arthur-debert/cuepine/pkg/types"
)

// Placement is one source file linked into the destination directory
type Placement struct {
	// Source is the absolute source path
	Source string
	// Dest is the absolute destination path
	Dest string
	// Renamed marks placements from renamed_files
	Renamed bool
}

// Plan is the fully resolved form of one install entry
type Plan struct {
	Entry      types.EntryRef
	Dir        string
	Placements []Placement
}

// ResolveDir substitutes $HOME in dir and anchors relative dirs at the
// document's directory
func ResolveDir(dir, home, sourceDir string) (string, error) {
	if strings.Contains(dir, paths.HomeToken) && home == "" {
		return "", errors.New(errors.ErrInvalidInput, "dir uses $HOME but no home directory is known").
			WithDetail("dir", dir)
	}
	return paths.ResolveDir(dir, home, sourceDir), nil
}

// DestName computes the destination file name for a files entry
func DestName(source string, stripExt bool) string {
	name := filepath.Base(source)
	if !stripExt {
		return name
	}
	ext := filepath.Ext(name)
	// ".bashrc" has no extension to strip
	if ext == "" || ext == name {
		return name
	}
	return strings.TrimSuffix(name, ext)
}

// Plan resolves an entry's directory and placements. It performs no I/O.
func (i *Installer) Plan(docCtx types.DocumentContext, ref types.EntryRef) (Plan, error) {
	doc := docCtx.Document
	entry := ref.Entry

	dir, err := ResolveDir(entry.Dir, docCtx.Home, doc.SourceDir)
	if err != nil {
		return Plan{}, errors.Wrapf(err, errors.ErrPlacement, "cannot resolve dir of %s", ref).
			WithDetail("document", doc.Path)
	}

	plan := Plan{Entry: ref, Dir: dir}
	for _, src := range entry.Files {
		plan.Placements = append(plan.Placements, Placement{
			Source: doc.ResolveSource(src),
			Dest:   filepath.Join(dir, DestName(src, entry.StripExt)),
		})
	}
	for _, rf := range entry.RenamedFiles {
		plan.Placements = append(plan.Placements, Placement{
			Source:  doc.ResolveSource(rf.Src),
			Dest:    filepath.Join(dir, rf.Dst),
			Renamed: true,
		})
	}
	return plan, nil
}
