package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrz1836/relay/internal/ai"
	"github.com/mrz1836/relay/internal/config"
	"github.com/mrz1836/relay/internal/tui"
)

// AddWhichCommand adds the 'which' command to the root command.
func AddWhichCommand(root *cobra.Command, flags *GlobalFlags, deps *Dependencies) {
	root.AddCommand(&cobra.Command{
		Use:   "which",
		Short: "Print the assistant executable relay would run",
		Long: `Search PATH for the configured assistant names (assistant.executables)
in order and print the first match. Exits 1 if none is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWhich(cmd, flags, deps)
		},
	})
}

func runWhich(cmd *cobra.Command, flags *GlobalFlags, deps *Dependencies) error {
	logger := GetLogger()
	ctx := logger.WithContext(cmd.Context())
	out := tui.NewTTYOutput(cmd.ErrOrStderr())

	cfg, err := config.LoadWithOverrides(ctx, flags.ConfigFile, nil)
	if err != nil {
		out.Error(err)
		return markReported(err)
	}

	opts := []ai.LocatorOption{ai.WithLocatorLogger(logger)}
	if deps.PathLookup != nil {
		opts = append(opts, ai.WithPathLookup(deps.PathLookup))
	}

	path, err := ai.NewLocator(opts...).Locate(cfg.Assistant.Executables)
	if err != nil {
		out.Error(err)
		return markReported(err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
	return err
}
