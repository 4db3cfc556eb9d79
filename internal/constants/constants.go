// Package constants provides centralized constant values used throughout relay.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory names and paths used by relay.
const (
	// RelayHome is the hidden directory name where relay stores its config and logs.
	// It is created in the user's home directory unless RELAY_HOME is set.
	RelayHome = ".relay"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// HomeEnvVar overrides the location of the relay home directory.
	HomeEnvVar = "RELAY_HOME"

	// EnvPrefix is the prefix for environment variables mapped onto config keys.
	EnvPrefix = "RELAY"
)

// Assistant CLI defaults. These mirror the flags the wrapper has always passed
// to the claude binary and are pinned by a regression test in internal/ai.
const (
	// DefaultAssistantName is the display name of the assistant CLI.
	DefaultAssistantName = "claude"

	// DefaultModel is the model requested from the assistant.
	DefaultModel = "sonnet"

	// DefaultTools selects the assistant's default tool set.
	DefaultTools = "default"

	// DefaultPermissionMode lets the assistant apply edits without prompting.
	DefaultPermissionMode = "acceptEdits"

	// DefaultProjectDir is the directory the assistant runs in and is attached to.
	DefaultProjectDir = "."

	// DefaultEncoding is the character encoding used to decode assistant output.
	DefaultEncoding = "utf-8"

	// DefaultAssistantTimeout disables the run deadline.
	DefaultAssistantTimeout time.Duration = 0
)

// DefaultExecutableNames returns the candidate names searched on PATH, in order.
// The suffixed variants cover Windows installs where npm drops .cmd shims.
func DefaultExecutableNames() []string {
	return []string{"claude", "claude.cmd", "claude.exe", "claude.bat"}
}

// Assistant CLI flag names.
const (
	FlagPrint          = "--print"
	FlagModel          = "--model"
	FlagTools          = "--tools"
	FlagPermissionMode = "--permission-mode"
	FlagAddDir         = "--add-dir"
)
