// Package init provides the init command for zendown.
package init

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/zendown/internal/cmd/cmdutil"
	"github.com/open-cli-collective/zendown/internal/config"
	"github.com/open-cli-collective/zendown/internal/logging"
	"github.com/open-cli-collective/zendown/internal/view"
	"github.com/open-cli-collective/zendown/pkg/callout"
)

type initOptions struct {
	global          cmdutil.GlobalOptions
	logLevel        string
	output          string
	unknownCallouts string
	defaultFormat   string
	noInput         bool
	force           bool
	noVerify        bool
	pandocPath      string
	stdout          io.Writer
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize zendown configuration",
		Long: `Initialize zendown configuration.

This command will guide you through choosing a log level, the output format
for listings, and what to do with labels that look like callouts but are not
recognized. The configuration will be saved to ~/.config/zendown/config.yml.

It also checks that pandoc is installed, since the filter runs under it.`,
		Example: `  # Interactive setup
  zendown init

  # Non-interactive, fail on unrecognized callout labels
  zendown init --no-input --unknown-callouts error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.global = cmdutil.Globals(cmd)
			opts.stdout = cmd.OutOrStdout()
			return runInit(opts)
		},
	}

	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: "+strings.Join(logging.ValidLevels(), ", "))
	cmd.Flags().StringVar(&opts.output, "output-format", "", "Default output format: "+strings.Join(view.ValidFormats(), ", "))
	cmd.Flags().StringVar(&opts.unknownCallouts, "unknown-callouts", "", "Unrecognized callout labels: "+strings.Join(callout.ValidPolicies(), ", "))
	cmd.Flags().StringVar(&opts.defaultFormat, "default-format", "", "Target format assumed when pandoc passes none")
	cmd.Flags().BoolVar(&opts.noInput, "no-input", false, "Do not prompt; use flags and defaults")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing configuration without asking")
	cmd.Flags().BoolVar(&opts.noVerify, "no-verify", false, "Skip the pandoc check")
	cmd.Flags().StringVar(&opts.pandocPath, "pandoc", "pandoc", "pandoc executable to check")

	return cmd
}

func runInit(opts *initOptions) error {
	configPath := opts.global.ConfigPath
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}

	cfg := &config.Config{}

	// Check if config already exists
	if existing, err := config.Load(configPath); err == nil {
		cfg = existing
		if !opts.force {
			if opts.noInput {
				return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", configPath)
			}
			var overwrite bool
			err := huh.NewConfirm().
				Title("Configuration already exists").
				Description(fmt.Sprintf("Overwrite %s?", configPath)).
				Value(&overwrite).
				Run()
			if err != nil {
				return err
			}
			if !overwrite {
				fmt.Fprintln(opts.stdout, "Initialization cancelled.")
				return nil
			}
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	applyFlags(cfg, opts)
	applyDefaults(cfg)

	if !opts.noInput {
		if err := newForm(cfg).Run(); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	renderer := view.NewRenderer(view.FormatTable, opts.global.NoColor)
	renderer.SetWriter(opts.stdout)

	// Verify pandoc unless skipped
	if !opts.noVerify {
		version, err := verifyPandoc(opts.pandocPath)
		if err != nil {
			renderer.Error("pandoc check failed")
			return fmt.Errorf("pandoc verification failed: %w (use --no-verify to skip)", err)
		}
		renderer.Success("Found %s", version)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	renderer.Success("Configuration saved to %s", configPath)
	renderer.RenderText("")
	renderer.RenderText("You're all set! Try running:")
	renderer.Note("  pandoc guide.md --filter zendown-callouts -o guide.pdf")
	renderer.Note("  zendown check guide.md")

	return nil
}

func applyFlags(cfg *config.Config, opts *initOptions) {
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.output != "" {
		cfg.OutputFormat = opts.output
	}
	if opts.unknownCallouts != "" {
		cfg.UnknownCallouts = opts.unknownCallouts
	}
	if opts.defaultFormat != "" {
		cfg.DefaultFormat = opts.defaultFormat
	}
}

// applyDefaults fills empty fields so the saved file shows every setting.
func applyDefaults(cfg *config.Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = logging.DefaultLevel
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = string(view.FormatTable)
	}
	if cfg.UnknownCallouts == "" {
		cfg.UnknownCallouts = string(callout.PolicyWarn)
	}
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = config.DefaultTargetFormat
	}
}

func newForm(cfg *config.Config) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Unrecognized callout labels").
				Description("Labels like hs-callout-type-notes pass through unwrapped").
				Options(huh.NewOptions(callout.ValidPolicies()...)...).
				Value(&cfg.UnknownCallouts),

			huh.NewSelect[string]().
				Title("Log level").
				Description("Logs are written to stderr").
				Options(huh.NewOptions(logging.ValidLevels()...)...).
				Value(&cfg.LogLevel),

			huh.NewSelect[string]().
				Title("Output format").
				Description("Format for zendown check and zendown kinds").
				Options(huh.NewOptions(view.ValidFormats()...)...).
				Value(&cfg.OutputFormat),

			huh.NewInput().
				Title("Default target format").
				Description("Assumed when pandoc does not pass one").
				Placeholder(config.DefaultTargetFormat).
				Value(&cfg.DefaultFormat).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("target format is required")
					}
					return nil
				}),
		),
	)
}

// verifyPandoc runs `pandoc --version` and returns the first line of its output.
func verifyPandoc(path string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "--version")
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", err
	}

	line, _, _ := strings.Cut(out.String(), "\n")
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "pandoc") {
		return "", fmt.Errorf("unexpected version output: %q", line)
	}
	return line, nil
}
