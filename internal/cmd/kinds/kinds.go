// Package kinds provides the command listing recognized callout kinds.
package kinds

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/zendown/internal/cmd/cmdutil"
	"github.com/open-cli-collective/zendown/internal/view"
	"github.com/open-cli-collective/zendown/pkg/callout"
)

type kindsOptions struct {
	global cmdutil.GlobalOptions
	stdout io.Writer
}

// NewCmdKinds creates the kinds command.
func NewCmdKinds() *cobra.Command {
	opts := &kindsOptions{}

	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List the recognized callout kinds",
		Long:  `List each callout kind with the class label that selects it and the LaTeX markers it is wrapped in.`,
		Example: `  zendown kinds
  zendown kinds -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.global = cmdutil.Globals(cmd)
			opts.stdout = cmd.OutOrStdout()
			return runKinds(opts)
		},
	}

	return cmd
}

func runKinds(opts *kindsOptions) error {
	cfg, err := cmdutil.LoadConfig(opts.global)
	if err != nil {
		return err
	}

	format, err := cmdutil.OutputFormat(cfg, opts.global)
	if err != nil {
		return err
	}

	renderer := view.NewRenderer(format, opts.global.NoColor)
	renderer.SetWriter(opts.stdout)

	rows := make([][]string, 0, len(callout.Kinds))
	for _, k := range callout.Kinds {
		rows = append(rows, []string{k.String(), k.Label(), k.Begin(), k.End()})
	}
	renderer.RenderTable([]string{"KIND", "LABEL", "BEGIN", "END"}, rows)

	return nil
}
