package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// SymlinkPrefix marks a WriteTree value as a symlink target
const SymlinkPrefix = "-> "

// WriteTree creates root and every file below it. Keys are slash-separated
// relative paths. A key ending in "/" creates a directory, and a value
// starting with SymlinkPrefix creates a symlink to the rest of the value.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(root, 0755))

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			require.NoError(t, os.MkdirAll(path, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		if target, ok := strings.CutPrefix(content, SymlinkPrefix); ok {
			require.NoError(t, os.Symlink(target, path))
			continue
		}
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// Entry is the snapshot of a single path
type Entry struct {
	Kind    string // "dir", "file" or "link"
	Content string // file content or link target
}

// Snapshot walks root without following symlinks and records every path
func Snapshot(t *testing.T, root string) map[string]Entry {
	t.Helper()
	snap := make(map[string]Entry)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		rel = filepath.ToSlash(rel)

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}
			snap[rel] = Entry{Kind: "link", Content: target}
		case d.IsDir():
			snap[rel] = Entry{Kind: "dir"}
		default:
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			snap[rel] = Entry{Kind: "file", Content: string(data)}
		}
		return nil
	})
	require.NoError(t, err)
	return snap
}
