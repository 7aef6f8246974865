// Package filter provides the pandoc JSON filter command.
package filter

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/zendown/internal/cmd/cmdutil"
	"github.com/open-cli-collective/zendown/pkg/callout"
	"github.com/open-cli-collective/zendown/pkg/pandoc"
)

type filterOptions struct {
	global cmdutil.GlobalOptions
	format string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// outputFormats are offered for shell completion of the format argument.
var outputFormats = []string{"latex", "beamer", "pdf", "html", "docx", "epub", "markdown", "json"}

// NewCmdFilter creates the filter command.
func NewCmdFilter() *cobra.Command {
	opts := &filterOptions{}

	cmd := &cobra.Command{
		Use:   "filter [format]",
		Short: "Run as a pandoc JSON filter",
		Long: `Read a pandoc JSON document on stdin, wrap every callout div in LaTeX
environment markers and write the document to stdout.

A div is a callout when its first class is one of hs-callout-type-note,
hs-callout-type-tip, hs-callout-type-caution or hs-callout-type-warning.
Pandoc passes the target output format as the only argument.`,
		Example: `  # Use with pandoc
  pandoc guide.md --filter zendown-callouts -o guide.pdf

  # Run the filter by hand
  pandoc guide.md -t json | zendown filter latex | pandoc -f json -t latex`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return outputFormats, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.global = cmdutil.Globals(cmd)
			if len(args) > 0 {
				opts.format = args[0]
			}
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()
			return runFilter(opts)
		},
	}

	return cmd
}

func runFilter(opts *filterOptions) error {
	cfg, err := cmdutil.LoadConfig(opts.global)
	if err != nil {
		return err
	}

	logger, err := cmdutil.NewLogger(opts.stderr, cfg, opts.global)
	if err != nil {
		return err
	}

	format := opts.format
	if format == "" {
		format = cfg.TargetFormat()
	}
	if !callout.KeepsMarkers(format) {
		logger.Debug("target format drops latex markers", "format", format)
	}
	if v := os.Getenv("PANDOC_VERSION"); v != "" {
		logger.Debug("running under pandoc", "version", v)
	}

	doc, err := pandoc.Read(opts.stdin)
	if err != nil {
		return err
	}

	f, report := callout.NewFilter(callout.Options{
		Policy: cfg.Policy(),
		Logger: logger,
	})
	if err := pandoc.Apply(doc, f); err != nil {
		return fmt.Errorf("failed to apply callout filter: %w", err)
	}
	if err := report.Err(); err != nil {
		return err
	}

	logger.Debug("filter complete", "wrapped", report.Wrapped(), "unknown", len(report.Unknown()))

	return pandoc.Write(opts.stdout, doc)
}
