package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/cuepine/pkg/errors"
)

// Environment variable names
const (
	// EnvHome is the standard home directory variable
	EnvHome = "HOME"

	// EnvConfigDir overrides the XDG config directory for cuepine
	EnvConfigDir = "CUEPINE_CONFIG_DIR"

	// EnvConfigFile points at an explicit settings file
	EnvConfigFile = "CUEPINE_CONFIG"
)

const (
	// AppDirName is the directory name used under XDG base directories
	AppDirName = "cuepine"

	// SettingsFile is the name of the tool settings file
	SettingsFile = "config.toml"

	// HomeToken is substituted with the home directory in entry directories
	HomeToken = "$HOME"
)

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get home directory")
	}
	return homeDir, nil
}

// SubstituteHome replaces every literal $HOME token in dir with home
func SubstituteHome(dir, home string) string {
	return strings.ReplaceAll(dir, HomeToken, home)
}

// ResolveDir substitutes $HOME and anchors a relative result at sourceDir.
// It is called when a directory is about to be used, never at load time.
func ResolveDir(dir, home, sourceDir string) string {
	resolved := SubstituteHome(dir, home)
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(sourceDir, resolved)
	}
	return filepath.Clean(resolved)
}

// ExpandHome expands a leading ~ to the home directory. Used for CLI
// arguments only; documents use the $HOME token.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// ContractHome is the inverse of ExpandHome for display: a path inside home
// is returned with a leading "~".
func ContractHome(path, home string) string {
	if home == "" {
		return path
	}
	home = filepath.Clean(home)
	switch {
	case path == home:
		return "~"
	case strings.HasPrefix(path, home+string(filepath.Separator)):
		return "~" + path[len(home):]
	}
	return path
}

// ConfigDir returns the directory holding the tool settings
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// SettingsPath returns the settings file location, honoring CUEPINE_CONFIG
func SettingsPath() string {
	if file := os.Getenv(EnvConfigFile); file != "" {
		return ExpandHome(file)
	}
	return filepath.Join(ConfigDir(), SettingsFile)
}

// Target is the resolved positional argument of a run
type Target struct {
	// Root is the directory discovery starts from
	Root string
	// File is set when the argument named a config file explicitly
	File string
}

// ResolveTarget turns a CLI argument into an absolute crawl root. An empty
// argument means the current working directory.
func ResolveTarget(arg string) (Target, error) {
	if arg == "" {
		arg = "."
	}

	abs, err := filepath.Abs(ExpandHome(arg))
	if err != nil {
		return Target{}, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", arg)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return Target{}, errors.Wrap(err, errors.ErrNotFound, "target does not exist").
				WithDetail("path", abs)
		}
		return Target{}, errors.Wrap(err, errors.ErrFileAccess, "cannot access target").
			WithDetail("path", abs)
	}

	if info.IsDir() {
		return Target{Root: abs}, nil
	}
	return Target{Root: filepath.Dir(abs), File: abs}, nil
}
