package types

import (
	"io/fs"
)

// FS is the filesystem interface required by discovery and placement
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	Remove(name string) error

	// Lstat must not follow symlinks: a broken link is reported, not ErrNotExist
	Lstat(name string) (fs.FileInfo, error)
}
