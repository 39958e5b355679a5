package config

import (
	"fmt"
)

// Discovery holds settings for crawling the project tree
type Discovery struct {
	ExcludedDirs []string `koanf:"excluded_dirs" toml:"excluded_dirs"`
	ConfigNames  []string `koanf:"config_names" toml:"config_names"`
	Recursive    bool     `koanf:"recursive" toml:"recursive"`
}

// Hooks holds settings for pre/post commands and conditions
type Hooks struct {
	Shell  string `koanf:"shell" toml:"shell"`
	Strict bool   `koanf:"strict" toml:"strict"`
}

// Output holds terminal output settings
type Output struct {
	Color string `koanf:"color" toml:"color"`
}

// Config is the main configuration structure
type Config struct {
	Discovery Discovery `koanf:"discovery" toml:"discovery"`
	Hooks     Hooks     `koanf:"hooks" toml:"hooks"`
	Output    Output    `koanf:"output" toml:"output"`
}

// Color modes accepted by output.color
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Default returns the embedded defaults, ignoring user files and environment
func Default() *Config {
	cfg, err := load(loadOptions{})
	if err != nil {
		// The embedded file is part of the binary; failing here is a build bug
		panic(fmt.Sprintf("invalid embedded defaults: %v", err))
	}
	return cfg
}

// Validate checks settings that would make a run meaningless
func (c *Config) Validate() error {
	if len(c.Discovery.ConfigNames) == 0 {
		return fmt.Errorf("discovery.config_names must not be empty")
	}
	if c.Hooks.Shell == "" {
		return fmt.Errorf("hooks.shell must not be empty")
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("output.color must be one of auto, always, never; got %q", c.Output.Color)
	}
	return nil
}
