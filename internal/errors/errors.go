// Package errors provides centralized error handling for relay.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
var (
	// ErrExecutableNotFound indicates that none of the candidate assistant
	// executables could be resolved on PATH.
	ErrExecutableNotFound = errors.New("executable not found")

	// ErrAssistantFailed indicates that the assistant CLI ran but exited with
	// a non-zero status.
	ErrAssistantFailed = errors.New("assistant invocation failed")

	// ErrOutputDecode indicates that captured output could not be decoded
	// with the configured encoding in strict mode.
	ErrOutputDecode = errors.New("output decode failed")

	// ErrUnknownEncoding indicates that the configured encoding name is not recognized.
	ErrUnknownEncoding = errors.New("unknown encoding")

	// ErrWorkingDirNotFound indicates that the configured working directory does not exist.
	ErrWorkingDirNotFound = errors.New("working directory not found")

	// ErrEmptyPrompt indicates that no prompt text was configured.
	ErrEmptyPrompt = errors.New("prompt is empty")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidAssistant indicates an invalid assistant configuration value.
	ErrConfigInvalidAssistant = errors.New("invalid assistant configuration")

	// ErrConfigInvalidOutput indicates an invalid output configuration value.
	ErrConfigInvalidOutput = errors.New("invalid output configuration")

	// ErrConfigNotFound indicates that an explicitly requested config file was not found.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrPromptCanceled indicates the interactive prompt editor was closed without input.
	ErrPromptCanceled = errors.New("prompt canceled")
)

// Is reports whether any error in err's chain matches target.
// It forwards to the standard library so callers need only one errors import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
