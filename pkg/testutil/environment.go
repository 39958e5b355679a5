package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/cuepine/pkg/filesystem"
	"github.com/arthur-debert/cuepine/pkg/types"
)

// TestEnvironment is an isolated project root plus fake home directory
type TestEnvironment struct {
	Root string
	Home string
	FS   types.FS

	t *testing.T
}

// NewTestEnvironment creates <tmp>/project and <tmp>/home on the real
// filesystem and points HOME and the XDG directories at the fake home.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	tmp := t.TempDir()
	// macOS temp dirs live behind a /var -> /private/var link
	if resolved, err := filepath.EvalSymlinks(tmp); err == nil {
		tmp = resolved
	}

	env := &TestEnvironment{
		Root: filepath.Join(tmp, "project"),
		Home: filepath.Join(tmp, "home"),
		FS:   filesystem.NewOS(),
		t:    t,
	}
	WriteTree(t, env.Root, nil)
	SetupHome(t, env.Home)
	return env
}

// SetupHome creates home and exports it as HOME along with XDG dirs below it.
// The settings directory is pinned through CUEPINE_CONFIG_DIR because xdg
// resolves XDG_CONFIG_HOME once at startup.
func SetupHome(t *testing.T, home string) {
	t.Helper()
	WriteTree(t, home, nil)
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("CUEPINE_CONFIG_DIR", filepath.Join(home, ".config", "cuepine"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))
}

// Write adds files below the project root
func (env *TestEnvironment) Write(files map[string]string) {
	env.t.Helper()
	WriteTree(env.t, env.Root, files)
}

// Path joins elements onto the project root
func (env *TestEnvironment) Path(elem ...string) string {
	return filepath.Join(append([]string{env.Root}, elem...)...)
}

// HomePath joins elements onto the fake home
func (env *TestEnvironment) HomePath(elem ...string) string {
	return filepath.Join(append([]string{env.Home}, elem...)...)
}

// Snapshot captures the state of both the project root and the fake home
func (env *TestEnvironment) Snapshot() map[string]Entry {
	env.t.Helper()
	snap := Snapshot(env.t, env.Root)
	for k, v := range Snapshot(env.t, env.Home) {
		snap["~/"+k] = v
	}
	return snap
}
