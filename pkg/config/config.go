// Package config loads apiscope settings from defaults, a YAML file and the
// environment.
//
// Order of precedence (low -> high):
//  1. defaults ([New])
//  2. YAML file: $APISCOPE_CONFIG, or $XDG_CONFIG_HOME/apiscope/config.yaml
//     (~/.config/apiscope/config.yaml) when it exists
//  3. environment variables with prefix APISCOPE_ (APISCOPE_INDENT=4, ...)
//
// Command-line flags are applied on top by the CLI.
//
//	log_level: debug
//	indent: 4
//	expand_depth: 1
//	color: false
//	watch: true
package config

import (
	"fmt"
	"slices"
	"strings"
)

// Limits for Indent.
const (
	MinIndent = 1
	MaxIndent = 8
)

// LogLevels lists the accepted log_level values.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config holds user settings.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Indent is the number of spaces per tree level in text output.
	Indent int `koanf:"indent"`

	// ExpandDepth opens this many levels of a payload when it is first shown.
	ExpandDepth int `koanf:"expand_depth"`

	// Color enables styled terminal output.
	Color bool `koanf:"color"`

	// Watch makes the browser reload its file on change.
	Watch bool `koanf:"watch"`

	// File is the config file that was read, if any. Not loadable.
	File string `koanf:"-"`
}

// New returns a Config with default values.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		Indent:      2,
		ExpandDepth: 0,
		Color:       true,
		Watch:       false,
	}
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if !slices.Contains(LogLevels, c.LogLevel) {
		return fmt.Errorf("%w: log_level %q (want one of %s)", ErrInvalidConfig, c.LogLevel, strings.Join(LogLevels, ", "))
	}
	if c.Indent < MinIndent || c.Indent > MaxIndent {
		return fmt.Errorf("%w: indent %d out of range [%d, %d]", ErrInvalidConfig, c.Indent, MinIndent, MaxIndent)
	}
	if c.ExpandDepth < 0 {
		return fmt.Errorf("%w: expand_depth %d must not be negative", ErrInvalidConfig, c.ExpandDepth)
	}
	return nil
}
