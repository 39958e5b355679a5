package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	pineerrors "github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes environment overrides, e.g. CUEPINE_HOOKS_SHELL
const EnvPrefix = "CUEPINE_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

// DefaultContent returns the embedded defaults file, used for `--print-settings`
func DefaultContent() string {
	return string(defaultConfig)
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

type loadOptions struct {
	settingsPath string
	useEnv       bool
	overrides    map[string]interface{}
}

// LoadConfiguration loads defaults, the user settings file and env overrides
func LoadConfiguration() (*Config, error) {
	return Load(nil)
}

// Load is LoadConfiguration with a final layer of overrides keyed by dotted
// setting name, e.g. "hooks.strict". The CLI passes the flags the user set.
func Load(overrides map[string]interface{}) (*Config, error) {
	return load(loadOptions{settingsPath: paths.SettingsPath(), useEnv: true, overrides: overrides})
}

// LoadFrom loads defaults and the given settings file, without env overrides
func LoadFrom(settingsPath string) (*Config, error) {
	return load(loadOptions{settingsPath: settingsPath})
}

func load(opts loadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, pineerrors.Wrap(err, pineerrors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User settings file if it exists
	if opts.settingsPath != "" {
		if _, err := os.Stat(opts.settingsPath); err == nil {
			if err := k.Load(file.Provider(opts.settingsPath), toml.Parser()); err != nil {
				return nil, pineerrors.Wrapf(err, pineerrors.ErrConfigLoad,
					"failed to load settings from %s", opts.settingsPath)
			}
		}
	}

	// 3. Env vars: the first underscore after the prefix separates section from key.
	// The settings location variables are not settings themselves.
	if opts.useEnv {
		err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
			if s == paths.EnvConfigFile || s == paths.EnvConfigDir {
				return ""
			}
			key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
			return strings.Replace(key, "_", ".", 1)
		}), nil)
		if err != nil {
			return nil, pineerrors.Wrap(err, pineerrors.ErrConfigLoad, "failed to load env vars")
		}
	}

	// 4. Explicit overrides
	if len(opts.overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.overrides, "."), nil); err != nil {
			return nil, pineerrors.Wrap(err, pineerrors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, pineerrors.Wrap(err, pineerrors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, pineerrors.Wrap(err, pineerrors.ErrConfigLoad, "invalid configuration")
	}

	return &cfg, nil
}

// TOML renders the effective settings in the settings file format
func (c *Config) TOML() (string, error) {
	out, err := gotoml.Marshal(c)
	if err != nil {
		return "", pineerrors.Wrap(err, pineerrors.ErrInternal, "failed to encode settings")
	}
	return string(out), nil
}

// String renders the effective settings for debug logging
func (c *Config) String() string {
	return fmt.Sprintf("discovery{excluded=%v names=%v recursive=%t} hooks{shell=%s strict=%t} output{color=%s}",
		c.Discovery.ExcludedDirs, c.Discovery.ConfigNames, c.Discovery.Recursive,
		c.Hooks.Shell, c.Hooks.Strict, c.Output.Color)
}
