// Package config loads resolver settings from a YAML or JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ceslang/go-ces/validation"
)

// Config holds the settings the compiler and resolver honor.
type Config struct {
	// Root is the structure resolution starts from. Defaults to "Main".
	Root string `yaml:"root" json:"root"`
	// Policy is the coherence policy: "permissive" or "strict".
	Policy string `yaml:"policy" json:"policy"`
	// Database is the SQLite path compiled structures are saved to.
	// Empty disables persistence.
	Database string `yaml:"database" json:"database"`
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Root:     "Main",
		Policy:   "permissive",
		LogLevel: "info",
	}
}

// Load reads a configuration file. A missing file yields the defaults.
// The extension selects the format: .json parses as JSON, anything else
// as YAML.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if cfg.Root == "" {
		cfg.Root = "Main"
	}
	if cfg.Policy == "" {
		cfg.Policy = "permissive"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if _, err := cfg.CoherencePolicy(); err != nil {
		return cfg, err
	}
	if _, err := cfg.Level(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// CoherencePolicy maps the configured policy name to a validation policy.
func (c Config) CoherencePolicy() (validation.Policy, error) {
	switch c.Policy {
	case "permissive":
		return validation.Permissive, nil
	case "strict":
		return validation.Strict, nil
	default:
		return validation.Permissive, fmt.Errorf("unknown coherence policy %q", c.Policy)
	}
}

// Level maps the configured log level to a slog level.
func (c Config) Level() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
}
