// Package cli provides the command-line interface for relay.
package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/relay/internal/ai"
	"github.com/mrz1836/relay/internal/tui"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// Dependencies are the seams the commands run through. Zero values select
// the production implementations.
type Dependencies struct {
	// Executor runs the assistant process. Nil means ai.DefaultExecutor.
	Executor ai.CommandExecutor
	// PathLookup resolves executable names. Nil means execabs.LookPath.
	PathLookup ai.PathLookup
	// LogWriter replaces the console and file log sinks when set.
	LogWriter io.Writer
	// StdoutIsTerminal reports whether stdout is a terminal. Nil checks os.Stdout.
	StdoutIsTerminal func() bool
	// StderrIsTerminal reports whether stderr is a terminal. Nil checks os.Stderr.
	StderrIsTerminal func() bool
	// AskPrompt reads a prompt interactively. Nil means tui.AskPrompt.
	AskPrompt func(title string) (string, error)
}

// globalLogger stores the logger initialized in PersistentPreRunE.
// Access is protected by globalLoggerMu.
var (
	globalLogger   zerolog.Logger //nolint:gochecknoglobals // CLI logger requires global access
	globalLoggerMu sync.RWMutex   //nolint:gochecknoglobals // Protects globalLogger
)

// GetLogger returns the initialized logger for use by subcommands.
//
// It MUST only be called after the root command's PersistentPreRunE has run;
// before that it returns a zero-value logger that discards output.
func GetLogger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// newRootCmd creates the root command. Running it without a subcommand
// sends the configured prompt to the assistant.
func newRootCmd(flags *GlobalFlags, info BuildInfo, deps *Dependencies) *cobra.Command {
	if deps == nil {
		deps = &Dependencies{}
	}
	runFlags := &RunFlags{}

	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Send a prompt to the claude CLI and relay its answer",
		Long: `relay runs the claude CLI once in non-interactive mode with a configured
prompt, working directory and permission mode, then prints what it said.

The assistant's exit status becomes relay's exit status, so relay can be
dropped into scripts and CI jobs.

Configuration is read from ~/.relay/config.yaml, .relay/config.yaml,
the --config file, RELAY_* environment variables and flags, in that order.`,
		Example: `  relay --prompt "Summarize the open TODOs"
  relay --prompt-file tasks/fix-tests.md --dir ../webapp
  relay --interactive
  relay which
  relay config show --output json`,
		Version: formatVersion(info),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRelay(cmd, flags, runFlags, deps)
		},
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			tui.CheckNoColor()

			globalLoggerMu.Lock()
			if deps.LogWriter != nil {
				globalLogger = InitLoggerWithWriter(flags.Verbose, flags.Quiet, deps.LogWriter)
			} else {
				globalLogger = InitLogger(flags.Verbose, flags.Quiet)
			}
			globalLoggerMu.Unlock()

			return nil
		},
		// Errors are reported by the commands themselves or by Execute.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd, flags)
	AddRunFlags(cmd, runFlags)

	AddWhichCommand(cmd, flags, deps)
	AddConfigCommand(cmd, flags)

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
// Errors that the commands did not already print are printed here.
func Execute(ctx context.Context, info BuildInfo) error {
	return execute(ctx, info, nil, nil)
}

// execute is Execute with the seams exposed. Nil args means os.Args.
func execute(ctx context.Context, info BuildInfo, args []string, deps *Dependencies, opts ...func(*cobra.Command)) error {
	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info, deps)
	if args != nil {
		cmd.SetArgs(args)
	}
	for _, opt := range opts {
		opt(cmd)
	}
	defer CloseLogFile()

	err := cmd.ExecuteContext(ctx)
	if err != nil && !isReported(err) {
		tui.NewTTYOutput(cmd.ErrOrStderr()).Error(err)
	}
	return err
}

// reportedError marks an error that has already been shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// markReported wraps err so Execute doesn't print it a second time.
func markReported(err error) error {
	return &reportedError{err: err}
}

func isReported(err error) bool {
	_, ok := err.(*reportedError) //nolint:errorlint // only the outermost error is ever marked
	return ok
}
