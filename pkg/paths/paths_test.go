package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHomeDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := paths.GetHomeDirectory()
	require.NoError(t, err)
	assert.Equal(t, home, got)
}

func TestResolveDir(t *testing.T) {
	tests := []struct {
		name      string
		dir       string
		home      string
		sourceDir string
		want      string
	}{
		{
			name:      "home prefix",
			dir:       "$HOME/bin",
			home:      "/home/alice",
			sourceDir: "/project",
			want:      "/home/alice/bin",
		},
		{
			name:      "home in the middle is substituted",
			dir:       "/mnt/$HOME/x",
			home:      "/home/alice",
			sourceDir: "/project",
			want:      "/mnt/home/alice/x",
		},
		{
			name:      "absolute without token",
			dir:       "/opt/tools",
			home:      "/home/alice",
			sourceDir: "/project",
			want:      "/opt/tools",
		},
		{
			name:      "relative resolves against source dir",
			dir:       "out/bin",
			home:      "/home/alice",
			sourceDir: "/project/sub",
			want:      "/project/sub/out/bin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paths.ResolveDir(tt.dir, tt.home, tt.sourceDir))
		})
	}
}

func TestResolveDir_UsesEnvironmentHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	resolvedHome, err := paths.GetHomeDirectory()
	require.NoError(t, err)
	assert.Equal(t, home+"/bin", paths.ResolveDir("$HOME/bin", resolvedHome, "/elsewhere"))
}

func TestContractHome(t *testing.T) {
	tests := []struct {
		path string
		home string
		want string
	}{
		{"/home/u/bin/foo", "/home/u", "~/bin/foo"},
		{"/home/u", "/home/u/", "~"},
		{"/home/user2/x", "/home/u", "/home/user2/x"},
		{"/opt/x", "", "/opt/x"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, paths.ContractHome(tt.path, tt.home))
		})
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, home, paths.ExpandHome("~"))
	assert.Equal(t, filepath.Join(home, "dotfiles"), paths.ExpandHome("~/dotfiles"))
	assert.Equal(t, "~bob/x", paths.ExpandHome("~bob/x"))
	assert.Equal(t, "/abs", paths.ExpandHome("/abs"))
}

func TestSettingsPath(t *testing.T) {
	t.Run("explicit file wins", func(t *testing.T) {
		t.Setenv(paths.EnvConfigFile, "/etc/cuepine.toml")
		assert.Equal(t, "/etc/cuepine.toml", paths.SettingsPath())
	})

	t.Run("config dir override", func(t *testing.T) {
		t.Setenv(paths.EnvConfigFile, "")
		t.Setenv(paths.EnvConfigDir, "/tmp/cfg")
		assert.Equal(t, "/tmp/cfg/config.toml", paths.SettingsPath())
	})
}

func TestResolveTarget(t *testing.T) {
	root := t.TempDir()
	cfg := filepath.Join(root, "install.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("{}"), 0644))

	t.Run("directory", func(t *testing.T) {
		target, err := paths.ResolveTarget(root)
		require.NoError(t, err)
		assert.Equal(t, root, target.Root)
		assert.Empty(t, target.File)
	})

	t.Run("explicit file", func(t *testing.T) {
		target, err := paths.ResolveTarget(cfg)
		require.NoError(t, err)
		assert.Equal(t, root, target.Root)
		assert.Equal(t, cfg, target.File)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := paths.ResolveTarget(filepath.Join(root, "nope"))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})
}
