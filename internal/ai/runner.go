// Package ai runs the external assistant CLI for relay.
//
// The package locates the assistant executable on PATH, starts it with the
// configured flags, writes the prompt to its standard input, and returns the
// decoded output streams and exit code.
//
// IMPORTANT: This package may import internal/constants, internal/errors,
// internal/config, internal/domain, internal/logging and internal/clock.
// It MUST NOT import internal/cli.
package ai

import (
	"context"

	"github.com/mrz1836/relay/internal/domain"
)

// Runner runs one assistant invocation.
//
// On a non-zero exit Run returns the populated result together with an
// *errors.ExitError, so callers get both the captured streams and the code.
type Runner interface {
	Run(ctx context.Context, req *domain.InvocationRequest) (*domain.InvocationResult, error)
}

// Assistant is the narrow view the CLI depends on: send text, get text back.
// Tests substitute a fake instead of spawning a real binary.
type Assistant interface {
	// Ask sends prompt to the assistant and returns its standard output.
	// A non-zero exit is reported as an *errors.ExitError.
	Ask(ctx context.Context, prompt string) (string, error)
}
