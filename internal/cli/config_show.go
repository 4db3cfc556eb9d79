package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/relay/internal/config"
	"github.com/mrz1836/relay/internal/errors"
	"github.com/mrz1836/relay/internal/tui"
)

// Output formats for config show.
const (
	OutputYAML = "yaml"
	OutputJSON = tui.FormatJSON
)

// ConfigShowFlags holds flags specific to the config show command.
type ConfigShowFlags struct {
	// OutputFormat specifies the output format (yaml or json).
	OutputFormat string
}

// AddConfigCommand adds the 'config' command group to the root command.
func AddConfigCommand(root *cobra.Command, flags *GlobalFlags) {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect relay configuration",
	}
	configCmd.AddCommand(newConfigShowCmd(flags, &ConfigShowFlags{}))
	root.AddCommand(configCmd)
}

// newConfigShowCmd creates the 'config show' subcommand.
func newConfigShowCmd(globals *GlobalFlags, flags *ConfigShowFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the configuration relay would run with, after merging defaults,
~/.relay/config.yaml, .relay/config.yaml, the --config file and RELAY_*
environment variables.

Examples:
  relay config show
  relay config show --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := tui.NewTTYOutput(cmd.ErrOrStderr())
			ctx := GetLogger().WithContext(cmd.Context())

			cfg, err := config.LoadWithOverrides(ctx, globals.ConfigFile, nil)
			if err != nil {
				out.Error(err)
				return markReported(err)
			}
			return writeConfig(cmd.OutOrStdout(), cfg, flags.OutputFormat)
		},
	}

	cmd.Flags().StringVarP(&flags.OutputFormat, "output", "o", OutputYAML, "output format (yaml or json)")

	return cmd
}

// writeConfig encodes cfg to w in the requested format.
func writeConfig(w io.Writer, cfg *config.Config, format string) error {
	switch format {
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	case OutputJSON:
		return tui.NewOutput(w, tui.FormatJSON).JSON(cfg)
	default:
		return fmt.Errorf("%w: %q must be one of [%s %s]", errors.ErrInvalidOutputFormat, format, OutputYAML, OutputJSON)
	}
}
