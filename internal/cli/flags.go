package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/relay/internal/config"
	"github.com/mrz1836/relay/internal/errors"
)

// Exit codes for the CLI. A failed assistant run exits with the assistant's own code.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0
	// ExitError indicates a general error, including a missing executable.
	ExitError = 1
	// ExitInvalidInput indicates invalid user input or configuration.
	ExitInvalidInput = 2
)

// GlobalFlags holds flags available to all commands.
type GlobalFlags struct {
	// ConfigFile is an explicit config file merged over the global and project files.
	ConfigFile string
	// Verbose enables debug-level logging.
	Verbose bool
	// Quiet suppresses non-essential output (warn level only).
	Quiet bool
}

// AddGlobalFlags adds global flags to a command.
// These flags are available to all subcommands via PersistentFlags.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	cmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "config file merged over ~/.relay and .relay configs")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress non-essential output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// RunFlags override configuration for a single run.
type RunFlags struct {
	Interactive    bool
	Prompt         string
	PromptFile     string
	Model          string
	PermissionMode string
	Dir            string
}

// AddRunFlags adds the invocation flags to the root command.
func AddRunFlags(cmd *cobra.Command, flags *RunFlags) {
	cmd.Flags().StringVarP(&flags.Prompt, "prompt", "p", "", "prompt text (overrides prompt.text)")
	cmd.Flags().StringVarP(&flags.PromptFile, "prompt-file", "f", "", "read the prompt from a file (overrides prompt.file)")
	cmd.Flags().StringVarP(&flags.Model, "model", "m", "", "model passed to the assistant (overrides assistant.model)")
	cmd.Flags().StringVar(&flags.PermissionMode, "permission-mode", "", "assistant permission mode (overrides assistant.permission_mode)")
	cmd.Flags().StringVarP(&flags.Dir, "dir", "C", "", "project directory to run in (overrides project.dir)")
	cmd.Flags().BoolVarP(&flags.Interactive, "interactive", "i", false, "type the prompt in an editor instead of configuring it")
	cmd.MarkFlagsMutuallyExclusive("prompt", "prompt-file", "interactive")
}

// overrides converts the flags into a partial Config for config.LoadWithOverrides.
func (f *RunFlags) overrides() *config.Config {
	o := &config.Config{}
	o.Prompt.Text = f.Prompt
	o.Prompt.File = f.PromptFile
	o.Assistant.Model = f.Model
	o.Assistant.PermissionMode = f.PermissionMode
	o.Project.Dir = f.Dir
	return o
}

// ExitCodeForError returns the process exit code for err.
//
// An assistant failure propagates the assistant's own code. Bad input and
// bad configuration return ExitInvalidInput; everything else ExitError.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if code, ok := errors.ExitCode(err); ok {
		return code
	}

	for _, target := range invalidInputErrors() {
		if errors.Is(err, target) {
			return ExitInvalidInput
		}
	}

	// Cobra flag parsing errors (mutually exclusive flags, unknown flags, etc.)
	if isInvalidInputError(err.Error()) {
		return ExitInvalidInput
	}

	return ExitError
}

func invalidInputErrors() []error {
	return []error{
		errors.ErrEmptyPrompt,
		errors.ErrPromptCanceled,
		errors.ErrConfigNotFound,
		errors.ErrConfigInvalidAssistant,
		errors.ErrConfigInvalidOutput,
		errors.ErrUnknownEncoding,
		errors.ErrInvalidOutputFormat,
	}
}

// isInvalidInputError checks if an error message indicates invalid user input.
// This catches Cobra's built-in flag validation errors.
func isInvalidInputError(errMsg string) bool {
	invalidInputPatterns := []string{
		"unknown flag",
		"unknown shorthand flag",
		"flag needs an argument",
		"invalid argument",
		"if any flags in the group",
		"required flag",
		"unknown command",
	}

	for _, pattern := range invalidInputPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
