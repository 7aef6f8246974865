package configcmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/zendown/internal/cmd/cmdutil"
	"github.com/open-cli-collective/zendown/internal/config"
	"github.com/open-cli-collective/zendown/internal/logging"
	"github.com/open-cli-collective/zendown/internal/view"
	"github.com/open-cli-collective/zendown/pkg/callout"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the current zendown configuration with the source of each value.`,
		Example: `  # Show current config
  zendown config show

  # As JSON
  zendown config show -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShow(cmd.OutOrStdout(), cmdutil.Globals(cmd))
		},
	}

	return cmd
}

func runShow(w io.Writer, g cmdutil.GlobalOptions) error {
	configPath := g.ConfigPath
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	// A broken output_format in the file must not hide the rest of it.
	effective := *fileCfg
	effective.LoadFromEnv()
	format, err := cmdutil.OutputFormat(&effective, g)
	if err != nil {
		if g.Output != "" {
			return err
		}
		format = view.FormatTable
	}

	field := func(key, fileValue, defaultValue, envVar string) view.Field {
		if v := os.Getenv(envVar); v != "" {
			return view.Field{Key: key, Value: v, Source: envVar}
		}
		if fileValue != "" {
			return view.Field{Key: key, Value: fileValue, Source: "config"}
		}
		return view.Field{Key: key, Value: defaultValue, Source: "default"}
	}

	renderer := view.NewRenderer(format, g.NoColor)
	renderer.SetWriter(w)

	fields := []view.Field{
		field("Unknown callouts", fileCfg.UnknownCallouts, string(callout.PolicyWarn), config.EnvUnknownCallouts),
		field("Log level", fileCfg.LogLevel, logging.DefaultLevel, config.EnvLogLevel),
		field("Output format", fileCfg.OutputFormat, string(view.FormatTable), config.EnvOutputFormat),
		field("Default format", fileCfg.DefaultFormat, config.DefaultTargetFormat, config.EnvDefaultFormat),
	}
	if err := renderer.RenderFields(fields); err != nil {
		return err
	}

	if !renderer.Human() {
		return nil
	}
	renderer.RenderText("")
	renderer.Note("Config file: %s", configPath)
	if fileErr != nil {
		renderer.Note("(file not found)")
	}
	return nil
}
