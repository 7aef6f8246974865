// Package cmdutil holds the setup shared by zendown commands: global flags,
// configuration and the stderr logger.
package cmdutil

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/zendown/internal/config"
	"github.com/open-cli-collective/zendown/internal/logging"
	"github.com/open-cli-collective/zendown/internal/view"
)

// GlobalOptions are the persistent flags defined on the root command.
type GlobalOptions struct {
	ConfigPath string
	// Output is empty unless --output was given, so the configured format applies.
	Output  string
	NoColor bool
	Verbose bool
}

// Globals reads the persistent flags. Commands run outside the zendown root
// (the standalone filter binary) get zero values.
func Globals(cmd *cobra.Command) GlobalOptions {
	var g GlobalOptions
	g.ConfigPath, _ = cmd.Flags().GetString("config")
	if cmd.Flags().Changed("output") {
		g.Output, _ = cmd.Flags().GetString("output")
	}
	g.NoColor, _ = cmd.Flags().GetBool("no-color")
	g.Verbose, _ = cmd.Flags().GetBool("verbose")
	return g
}

// LoadConfig loads the configuration file with environment overrides and validates it.
func LoadConfig(g GlobalOptions) (*config.Config, error) {
	path := g.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w (run 'zendown init' to configure)", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w (run 'zendown init' to configure)", err)
	}

	return cfg, nil
}

// NewLogger creates the command logger writing to w.
func NewLogger(w io.Writer, cfg *config.Config, g GlobalOptions) (*log.Logger, error) {
	return logging.New(w, cfg.LogLevel, g.Verbose)
}

// OutputFormat resolves the output format: flag, then configuration, then table.
func OutputFormat(cfg *config.Config, g GlobalOptions) (view.Format, error) {
	format := g.Output
	if format == "" {
		format = cfg.OutputFormat
	}
	if err := view.ValidateFormat(format); err != nil {
		return "", err
	}
	if format == "" {
		return view.FormatTable, nil
	}
	return view.Format(format), nil
}
