package constants

// Log file names.
const (
	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.relay/logs/relay.log
	CLILogFileName = "relay.log"
)

// Configuration file names.
const (
	// GlobalConfigName is the name of the global relay configuration file.
	// This file is located in the relay home directory.
	GlobalConfigName = "config.yaml"

	// ProjectConfigDir is the directory holding project-specific configuration,
	// relative to the current working directory.
	ProjectConfigDir = ".relay"
)

// Log rotation settings for the CLI log file.
const (
	// LogMaxSizeMB is the maximum size in megabytes before rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated files to keep.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum number of days to retain old log files.
	LogMaxAgeDays = 28

	// LogCompress enables gzip compression of rotated files.
	LogCompress = true
)
