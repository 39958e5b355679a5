package config

import (
	"os"
	"path/filepath"
	"testing"

	pineerrors "github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, []string{".git", "node_modules", "venv"}, cfg.Discovery.ExcludedDirs)
	assert.Equal(t, []string{
		"install.json", "install.yaml", "install.yml", "install.toml", "install.hcl", "install.py",
	}, cfg.Discovery.ConfigNames)
	assert.True(t, cfg.Discovery.Recursive)
	assert.Equal(t, "/bin/sh", cfg.Hooks.Shell)
	assert.True(t, cfg.Hooks.Strict)
	assert.Equal(t, ColorAuto, cfg.Output.Color)
}

func TestLoadFrom_UserFileOverrides(t *testing.T) {
	dir := t.TempDir()
	settings := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(settings, []byte(`
[discovery]
excluded_dirs = [".git", "build"]
recursive = false

[hooks]
strict = false
`), 0644))

	cfg, err := LoadFrom(settings)
	require.NoError(t, err)

	assert.Equal(t, []string{".git", "build"}, cfg.Discovery.ExcludedDirs)
	assert.False(t, cfg.Discovery.Recursive)
	assert.False(t, cfg.Hooks.Strict)
	// Untouched keys keep their defaults
	assert.Equal(t, "/bin/sh", cfg.Hooks.Shell)
	assert.Len(t, cfg.Discovery.ConfigNames, 6)
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFrom_InvalidFile(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(settings, []byte("[discovery\nbroken"), 0644))

	_, err := LoadFrom(settings)
	require.Error(t, err)
	assert.True(t, pineerrors.IsErrorCode(err, pineerrors.ErrConfigLoad))
}

func TestLoadFrom_InvalidColor(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(settings, []byte("[output]\ncolor = \"sometimes\"\n"), 0644))

	_, err := LoadFrom(settings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.color")
}

func TestLoadConfiguration_EnvOverrides(t *testing.T) {
	t.Setenv("CUEPINE_CONFIG", filepath.Join(t.TempDir(), "none.toml"))
	t.Setenv("CUEPINE_HOOKS_SHELL", "/bin/bash")
	t.Setenv("CUEPINE_DISCOVERY_EXCLUDED_DIRS", ".git,dist")
	t.Setenv("CUEPINE_DISCOVERY_RECURSIVE", "false")

	cfg, err := LoadConfiguration()
	require.NoError(t, err)

	assert.Equal(t, "/bin/bash", cfg.Hooks.Shell)
	assert.Equal(t, []string{".git", "dist"}, cfg.Discovery.ExcludedDirs)
	assert.False(t, cfg.Discovery.Recursive)
}

func TestLoad_OverridesWinOverEnv(t *testing.T) {
	t.Setenv("CUEPINE_CONFIG", filepath.Join(t.TempDir(), "none.toml"))
	t.Setenv("CUEPINE_HOOKS_STRICT", "true")

	cfg, err := Load(map[string]interface{}{
		"hooks.strict":           false,
		"discovery.config_names": []string{"setup.yaml"},
		"discovery.recursive":    false,
		"output.color":           ColorNever,
	})
	require.NoError(t, err)

	assert.False(t, cfg.Hooks.Strict)
	assert.Equal(t, []string{"setup.yaml"}, cfg.Discovery.ConfigNames)
	assert.False(t, cfg.Discovery.Recursive)
	assert.Equal(t, ColorNever, cfg.Output.Color)
	assert.Equal(t, []string{".git", "node_modules", "venv"}, cfg.Discovery.ExcludedDirs)
}

func TestConfig_TOML(t *testing.T) {
	out, err := Default().TOML()
	require.NoError(t, err)

	assert.Contains(t, out, "[discovery]")
	assert.Contains(t, out, "[hooks]")
	assert.Contains(t, out, "strict = true")
	assert.Regexp(t, `color = ["']auto["']`, out)

	settings := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(settings, []byte(out), 0644))
	cfg, err := LoadFrom(settings)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
