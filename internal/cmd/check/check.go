// Package check provides the callout lint command.
package check

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/zendown/internal/cmd/cmdutil"
	"github.com/open-cli-collective/zendown/internal/view"
	"github.com/open-cli-collective/zendown/pkg/callout"
	"github.com/open-cli-collective/zendown/pkg/md"
)

type checkOptions struct {
	global cmdutil.GlobalOptions
	files  []string
	stdout io.Writer
	stderr io.Writer
}

// NewCmdCheck creates the check command.
func NewCmdCheck() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check <file.md>...",
		Short: "List the callouts in Markdown files",
		Long: `List every callout in the given Markdown files.

Divs whose first class resembles a callout label without being one (for
example hs-callout-type-notes) are reported as unrecognized; they would pass
through the filter unwrapped. With unknown_callouts set to "error" the
command fails when any are found.`,
		Example: `  # Check all chapters
  zendown check chapters/*.md

  # Machine readable
  zendown check guide.md -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.global = cmdutil.Globals(cmd)
			opts.files = args
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()
			return runCheck(opts)
		},
	}

	return cmd
}

func runCheck(opts *checkOptions) error {
	cfg, err := cmdutil.LoadConfig(opts.global)
	if err != nil {
		return err
	}

	logger, err := cmdutil.NewLogger(opts.stderr, cfg, opts.global)
	if err != nil {
		return err
	}

	format, err := cmdutil.OutputFormat(cfg, opts.global)
	if err != nil {
		return err
	}

	policy := cfg.Policy()
	unknown := map[string]bool{}
	var rows [][]string

	for _, file := range opts.files {
		source, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		for _, ref := range md.ScanCallouts(source) {
			switch {
			case ref.Known:
				rows = append(rows, []string{file, strconv.Itoa(ref.Line), ref.Label, ref.Kind.String(), "ok"})
			case ref.Lookalike:
				rows = append(rows, []string{file, strconv.Itoa(ref.Line), view.Truncate(ref.Label, 40), "-", "unrecognized"})
				unknown[ref.Label] = true
				if policy == callout.PolicyWarn {
					logger.Warn("unrecognized callout label", "file", file, "line", ref.Line, "label", ref.Label)
				}
			}
		}
	}

	renderer := view.NewRenderer(format, opts.global.NoColor)
	renderer.SetWriter(opts.stdout)

	if len(rows) == 0 && format != view.FormatJSON {
		renderer.RenderText("No callouts found.")
		return nil
	}

	renderer.RenderTable([]string{"FILE", "LINE", "LABEL", "KIND", "STATUS"}, rows)

	if len(unknown) == 0 || policy == callout.PolicyIgnore {
		return nil
	}

	labels := make([]string, 0, len(unknown))
	for l := range unknown {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	if renderer.Human() {
		renderer.Warning("%d unrecognized callout label(s) will pass through unwrapped: %s", len(labels), strings.Join(labels, ", "))
	}
	if policy == callout.PolicyError {
		return fmt.Errorf("%w: %s", callout.ErrUnknownCallouts, strings.Join(labels, ", "))
	}
	return nil
}
