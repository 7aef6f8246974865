package configcmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/zendown/internal/cmd/cmdutil"
	"github.com/open-cli-collective/zendown/internal/config"
	"github.com/open-cli-collective/zendown/internal/view"
)

// NewCmdClear creates the config clear command.
func NewCmdClear() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove stored configuration",
		Long:  `Delete the zendown configuration file. Environment variables will still be used if set.`,
		Example: `  # Clear config
  zendown config clear`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := cmdutil.Globals(cmd)
			return runClear(cmd.OutOrStdout(), g.ConfigPath, g.NoColor)
		},
	}

	return cmd
}

func runClear(w io.Writer, configPath string, noColor bool) error {
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}

	err := os.Remove(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove config file: %w", err)
	}

	renderer := view.NewRenderer(view.FormatTable, noColor)
	renderer.SetWriter(w)

	if os.IsNotExist(err) {
		renderer.Success("No config file to remove")
	} else {
		renderer.Success("Configuration cleared from %s", configPath)
	}

	var activeVars []string
	for _, v := range config.EnvVars {
		if os.Getenv(v) != "" {
			activeVars = append(activeVars, v)
		}
	}

	if len(activeVars) > 0 {
		renderer.RenderText("")
		renderer.Note("Note: Environment variables will still be used: %s", strings.Join(activeVars, ", "))
	}

	return nil
}
