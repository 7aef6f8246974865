// Package convert provides the Markdown to pandoc JSON command.
package convert

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/zendown/internal/cmd/cmdutil"
	"github.com/open-cli-collective/zendown/pkg/callout"
	"github.com/open-cli-collective/zendown/pkg/md"
	"github.com/open-cli-collective/zendown/pkg/pandoc"
)

type convertOptions struct {
	global     cmdutil.GlobalOptions
	input      string
	out        string
	noCallouts bool
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
}

// NewCmdConvert creates the convert command.
func NewCmdConvert() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert <file.md>",
		Short: "Convert Markdown to pandoc JSON",
		Long: `Convert a Markdown file to a pandoc JSON document with callouts wrapped.

Fenced divs (::: {.hs-callout-type-note}) become pandoc Div elements, so the
result can be rendered directly with pandoc -f json. Use "-" to read stdin.`,
		Example: `  # Render a PDF
  zendown convert guide.md | pandoc -f json -o guide.pdf

  # Write the document to a file
  zendown convert guide.md --out guide.json

  # Skip callout wrapping
  zendown convert guide.md --no-callouts`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.global = cmdutil.Globals(cmd)
			opts.input = args[0]
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()
			return runConvert(opts)
		},
	}

	cmd.Flags().StringVar(&opts.out, "out", "", "Write the document to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.noCallouts, "no-callouts", false, "Do not wrap callouts")

	return cmd
}

func runConvert(opts *convertOptions) error {
	cfg, err := cmdutil.LoadConfig(opts.global)
	if err != nil {
		return err
	}

	logger, err := cmdutil.NewLogger(opts.stderr, cfg, opts.global)
	if err != nil {
		return err
	}

	source, err := readInput(opts.input, opts.stdin)
	if err != nil {
		return err
	}

	doc := md.ToPandoc(source)
	logger.Debug("parsed markdown", "file", opts.input, "blocks", len(doc.Blocks))

	if !opts.noCallouts {
		f, report := callout.NewFilter(callout.Options{
			Policy: cfg.Policy(),
			Logger: logger,
		})
		if err := pandoc.Apply(doc, f); err != nil {
			return fmt.Errorf("failed to apply callout filter: %w", err)
		}
		if err := report.Err(); err != nil {
			return fmt.Errorf("%s: %w", opts.input, err)
		}
		logger.Debug("wrapped callouts", "count", report.Wrapped())
	}

	if opts.out == "" {
		return pandoc.Write(opts.stdout, doc)
	}

	f, err := os.Create(opts.out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := pandoc.Write(f, doc); err != nil {
		return err
	}
	logger.Info("wrote pandoc document", "file", opts.out)
	return f.Close()
}

// readInput reads a file, or stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}
