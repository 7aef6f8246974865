// Package root provides the root command for the zendown CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/zendown/internal/cmd/check"
	"github.com/open-cli-collective/zendown/internal/cmd/configcmd"
	"github.com/open-cli-collective/zendown/internal/cmd/convert"
	"github.com/open-cli-collective/zendown/internal/cmd/filter"
	"github.com/open-cli-collective/zendown/internal/cmd/importcmd"
	initcmd "github.com/open-cli-collective/zendown/internal/cmd/init"
	"github.com/open-cli-collective/zendown/internal/cmd/kinds"
	"github.com/open-cli-collective/zendown/internal/version"
)

// NewCmdRoot creates the root command for zendown.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zendown",
		Short: "Callout tooling for Markdown books rendered with pandoc",
		Long: `zendown turns callout blocks in Markdown into LaTeX environments.

A fenced div whose first class is hs-callout-type-note, -tip, -caution or
-warning is wrapped in \begin{Note} ... \end{Note} (and so on) so the LaTeX
template can style it. Run it as a pandoc filter, or convert Markdown to
pandoc JSON directly.

Get started by running: zendown init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/zendown/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log debug output to stderr")

	// Set version template
	cmd.SetVersionTemplate(version.Info("zendown") + "\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(filter.NewCmdFilter())
	cmd.AddCommand(convert.NewCmdConvert())
	cmd.AddCommand(importcmd.NewCmdImport())
	cmd.AddCommand(check.NewCmdCheck())
	cmd.AddCommand(kinds.NewCmdKinds())
	cmd.AddCommand(configcmd.NewCmdConfig())

	return cmd
}

// NewCmdCallouts creates the root command of the standalone zendown-callouts
// filter, which pandoc runs with the target format as its only argument.
func NewCmdCallouts() *cobra.Command {
	cmd := filter.NewCmdFilter()
	cmd.Use = "zendown-callouts [format]"
	cmd.Version = version.Version
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetVersionTemplate(version.Info("zendown-callouts") + "\n")

	cmd.Flags().StringP("config", "c", "", "config file (default: ~/.config/zendown/config.yml)")
	cmd.Flags().BoolP("verbose", "v", false, "log debug output to stderr")

	return cmd
}
