package installer

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/cuepine/pkg/types"
)

// DestinationState inspects path without following a final symlink. A
// broken symlink is reported as DestSymlink with TargetExists false.
func DestinationState(fsys types.FS, path string) (types.DestState, error) {
	info, err := fsys.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.DestState{Kind: types.DestAbsent}, nil
		}
		return types.DestState{}, err
	}

	if info.Mode()&fs.ModeSymlink == 0 {
		return types.DestState{Kind: types.DestOther}, nil
	}

	target, err := fsys.Readlink(path)
	if err != nil {
		return types.DestState{}, err
	}
	_, statErr := fsys.Stat(path)
	return types.DestState{
		Kind:         types.DestSymlink,
		LinkTarget:   target,
		TargetExists: statErr == nil,
	}, nil
}

// linksTo reports whether a link found at dest points at source. Relative
// link targets are resolved against the link's directory.
func linksTo(state types.DestState, dest, source string) bool {
	if state.Kind != types.DestSymlink {
		return false
	}
	target := state.LinkTarget
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(dest), target)
	}
	return filepath.Clean(target) == filepath.Clean(source)
}
