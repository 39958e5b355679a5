package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertSymlink checks that path is a symlink pointing at target
func AssertSymlink(t *testing.T, path, target string) bool {
	t.Helper()

	info, err := os.Lstat(path)
	if !assert.NoError(t, err, "expected symlink at %s", path) {
		return false
	}
	if !assert.True(t, info.Mode()&os.ModeSymlink != 0, "%s is not a symlink", path) {
		return false
	}
	got, err := os.Readlink(path)
	if !assert.NoError(t, err) {
		return false
	}
	return assert.Equal(t, target, got, "symlink target of %s", path)
}

// AssertNoPath checks that nothing, not even a broken symlink, is at path
func AssertNoPath(t *testing.T, path string) bool {
	t.Helper()

	_, err := os.Lstat(path)
	return assert.True(t, os.IsNotExist(err), "expected nothing at %s, got err=%v", path, err)
}

// AssertFileContent checks that path is a regular file with content
func AssertFileContent(t *testing.T, path, content string) bool {
	t.Helper()

	info, err := os.Lstat(path)
	if !assert.NoError(t, err) {
		return false
	}
	if !assert.True(t, info.Mode().IsRegular(), "%s is not a regular file", path) {
		return false
	}
	data, err := os.ReadFile(path)
	if !assert.NoError(t, err) {
		return false
	}
	return assert.Equal(t, content, string(data))
}
