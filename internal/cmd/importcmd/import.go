// Package importcmd provides the HTML to Markdown import command.
package importcmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/zendown/internal/cmd/cmdutil"
	"github.com/open-cli-collective/zendown/pkg/md"
)

type importOptions struct {
	global cmdutil.GlobalOptions
	input  string
	out    string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewCmdImport creates the import command.
func NewCmdImport() *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import <file.html>",
		Short: "Convert HTML to Markdown",
		Long: `Convert an HTML page, such as a knowledge base export, to Markdown.

Divs whose first class is a callout label become fenced divs, so the callouts
survive and are wrapped when the Markdown is rendered. Use "-" to read stdin.`,
		Example: `  # Import an exported article
  zendown import article.html --out article.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.global = cmdutil.Globals(cmd)
			opts.input = args[0]
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()
			return runImport(opts)
		},
	}

	cmd.Flags().StringVar(&opts.out, "out", "", "Write Markdown to a file instead of stdout")

	return cmd
}

func runImport(opts *importOptions) error {
	cfg, err := cmdutil.LoadConfig(opts.global)
	if err != nil {
		return err
	}

	logger, err := cmdutil.NewLogger(opts.stderr, cfg, opts.global)
	if err != nil {
		return err
	}

	var data []byte
	if opts.input == "-" {
		data, err = io.ReadAll(opts.stdin)
	} else {
		data, err = os.ReadFile(opts.input)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	markdown, err := md.FromHTML(string(data))
	if err != nil {
		return fmt.Errorf("failed to convert html: %w", err)
	}

	for _, ref := range md.ScanCallouts([]byte(markdown)) {
		if ref.Lookalike {
			logger.Warn("unrecognized callout label", "label", ref.Label, "line", ref.Line)
		}
	}

	if opts.out == "" {
		_, err := fmt.Fprintln(opts.stdout, markdown)
		return err
	}

	if err := os.WriteFile(opts.out, []byte(markdown+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	logger.Info("wrote markdown", "file", opts.out)
	return nil
}
