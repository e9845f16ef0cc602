package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables read by Load.
const (
	EnvPrefix = "APISCOPE_"
	EnvFile   = "APISCOPE_CONFIG"
)

// Path returns the config file location and whether it was named explicitly
// through APISCOPE_CONFIG.
func Path() (string, bool) {
	if p := os.Getenv(EnvFile); p != "" {
		return p, true
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "apiscope", "config.yaml"), false
}

// Load builds a Config by layering defaults, the optional file, and env vars.
// An explicitly named file must exist; the default location is skipped when
// absent.
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	path, explicit := Path()
	var loaded string
	if path != "" {
		if _, err := os.Stat(path); err == nil || explicit {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
			}
			loaded = path
		}
	}

	// APISCOPE_EXPAND_DEPTH -> expand_depth
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.File = loaded

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// YAML renders c in the file format Load reads.
func (c *Config) YAML() ([]byte, error) {
	k := koanf.New(".")
	for key, val := range map[string]any{
		"log_level":    c.LogLevel,
		"indent":       c.Indent,
		"expand_depth": c.ExpandDepth,
		"color":        c.Color,
		"watch":        c.Watch,
	} {
		if err := k.Set(key, val); err != nil {
			return nil, err
		}
	}
	return k.Marshal(yaml.Parser())
}
