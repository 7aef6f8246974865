package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/zendown/pkg/callout"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range EnvVars {
		t.Setenv(v, "")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "empty config uses defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name: "valid config",
			config: Config{
				LogLevel:        "debug",
				OutputFormat:    "json",
				UnknownCallouts: "error",
				DefaultFormat:   "beamer",
			},
			wantErr: false,
		},
		{
			name:    "invalid log level",
			config:  Config{LogLevel: "chatty"},
			wantErr: true,
			errMsg:  "invalid log level",
		},
		{
			name:    "invalid output format",
			config:  Config{OutputFormat: "xml"},
			wantErr: true,
			errMsg:  "invalid output format",
		},
		{
			name:    "invalid policy",
			config:  Config{UnknownCallouts: "panic"},
			wantErr: true,
			errMsg:  "invalid unknown_callouts policy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Policy(t *testing.T) {
	assert.Equal(t, callout.PolicyWarn, (&Config{}).Policy())
	assert.Equal(t, callout.PolicyError, (&Config{UnknownCallouts: "error"}).Policy())
	assert.Equal(t, callout.PolicyIgnore, (&Config{UnknownCallouts: "ignore"}).Policy())
	assert.Equal(t, callout.PolicyWarn, (&Config{UnknownCallouts: "bogus"}).Policy())
}

func TestConfig_TargetFormat(t *testing.T) {
	assert.Equal(t, "latex", (&Config{}).TargetFormat())
	assert.Equal(t, "html", (&Config{DefaultFormat: "html"}).TargetFormat())
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Run("loads all env vars", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvLogLevel, "info")
		t.Setenv(EnvOutputFormat, "plain")
		t.Setenv(EnvUnknownCallouts, "ignore")
		t.Setenv(EnvDefaultFormat, "beamer")

		cfg := &Config{}
		cfg.LoadFromEnv()

		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "plain", cfg.OutputFormat)
		assert.Equal(t, "ignore", cfg.UnknownCallouts)
		assert.Equal(t, "beamer", cfg.DefaultFormat)
	})

	t.Run("env vars override existing values", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvLogLevel, "debug")

		cfg := &Config{
			LogLevel:     "error",
			OutputFormat: "json",
		}
		cfg.LoadFromEnv()

		// LogLevel should be overridden
		assert.Equal(t, "debug", cfg.LogLevel)
		// OutputFormat should remain (empty env var doesn't override)
		assert.Equal(t, "json", cfg.OutputFormat)
	})
}

func TestDefaultConfigPath(t *testing.T) {
	t.Run("uses XDG_CONFIG_HOME", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)
		assert.Equal(t, filepath.Join(dir, "zendown", "config.yml"), DefaultConfigPath())
	})

	t.Run("falls back to home", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		path := DefaultConfigPath()

		home, err := os.UserHomeDir()
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(path, home))
		assert.Contains(t, path, "zendown")
		assert.Equal(t, ".yml", filepath.Ext(path))
	})
}

func TestConfig_Save_and_Load(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yml")

	original := Config{
		LogLevel:        "info",
		OutputFormat:    "json",
		UnknownCallouts: "error",
		DefaultFormat:   "latex",
	}

	require.NoError(t, original.Save(configPath))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, original, *loaded)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yml")
	require.Error(t, err)
}

func TestLoad_Malformed(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("log_level: [unterminated"), 0600))

	_, err := Load(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadWithEnv(t *testing.T) {
	t.Run("missing file starts empty", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvOutputFormat, "json")

		cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "absent.yml"))
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.OutputFormat)
		assert.Empty(t, cfg.LogLevel)
	})

	t.Run("env overrides file", func(t *testing.T) {
		clearEnv(t)
		configPath := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, (&Config{LogLevel: "info", UnknownCallouts: "warn"}).Save(configPath))
		t.Setenv(EnvUnknownCallouts, "error")

		cfg, err := LoadWithEnv(configPath)
		require.NoError(t, err)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "error", cfg.UnknownCallouts)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		clearEnv(t)
		configPath := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(configPath, []byte("log_level: [unterminated"), 0600))

		_, err := LoadWithEnv(configPath)
		require.Error(t, err)
	})
}
