// Package config provides configuration management for zendown.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/zendown/internal/logging"
	"github.com/open-cli-collective/zendown/internal/view"
	"github.com/open-cli-collective/zendown/pkg/callout"
)

// DefaultTargetFormat is the output format assumed when pandoc passes none.
const DefaultTargetFormat = "latex"

// Environment variables that override file values.
const (
	EnvLogLevel        = "ZENDOWN_LOG_LEVEL"
	EnvOutputFormat    = "ZENDOWN_OUTPUT_FORMAT"
	EnvUnknownCallouts = "ZENDOWN_UNKNOWN_CALLOUTS"
	EnvDefaultFormat   = "ZENDOWN_DEFAULT_FORMAT"
)

// EnvVars lists every environment variable the configuration reads.
var EnvVars = []string{EnvLogLevel, EnvOutputFormat, EnvUnknownCallouts, EnvDefaultFormat}

// Config holds the zendown configuration. Empty fields select the defaults.
type Config struct {
	LogLevel        string `yaml:"log_level,omitempty"`
	OutputFormat    string `yaml:"output_format,omitempty"`
	UnknownCallouts string `yaml:"unknown_callouts,omitempty"`
	DefaultFormat   string `yaml:"default_format,omitempty"`
}

// Validate checks that every set field holds an accepted value.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if err := view.ValidateFormat(c.OutputFormat); err != nil {
		return err
	}
	if _, err := callout.ParsePolicy(c.UnknownCallouts); err != nil {
		return err
	}
	return nil
}

// Policy returns the configured policy for unrecognized callout labels.
func (c *Config) Policy() callout.Policy {
	policy, err := callout.ParsePolicy(c.UnknownCallouts)
	if err != nil {
		return callout.PolicyWarn
	}
	return policy
}

// TargetFormat returns the configured default target format.
func (c *Config) TargetFormat() string {
	if c.DefaultFormat == "" {
		return DefaultTargetFormat
	}
	return c.DefaultFormat
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		c.OutputFormat = v
	}
	if v := os.Getenv(EnvUnknownCallouts); v != "" {
		c.UnknownCallouts = v
	}
	if v := os.Getenv(EnvDefaultFormat); v != "" {
		c.DefaultFormat = v
	}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "zendown", "config.yml")
	}

	// Fall back to ~/.config/zendown/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".zendown", "config.yml")
	}

	return filepath.Join(home, ".config", "zendown", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment variables.
// A missing file is not an error; a malformed one is.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	return cfg, nil
}
