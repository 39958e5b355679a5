// Package config handles the tool's own settings (not install documents).
//
// Settings are layered with koanf: embedded defaults, then the user file at
// $XDG_CONFIG_HOME/cuepine/config.toml (or $CUEPINE_CONFIG), then CUEPINE_*
// environment variables. Command-line flags are applied on top by the CLI.
package config
