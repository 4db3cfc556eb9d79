package ai

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sys/execabs"

	"github.com/mrz1836/relay/internal/clock"
	"github.com/mrz1836/relay/internal/constants"
	"github.com/mrz1836/relay/internal/domain"
	"github.com/mrz1836/relay/internal/errors"
	"github.com/mrz1836/relay/internal/logging"
)

// ClaudeCodeRunner implements Runner for the claude CLI.
// It resolves the executable, runs it once with the request's arguments and
// prompt, and decodes what it printed.
type ClaudeCodeRunner struct {
	name     string
	executor CommandExecutor
	locator  *Locator
	clock    clock.Clock
	newRunID func() string
	logger   zerolog.Logger
}

// ClaudeRunnerOption is a functional option for configuring ClaudeCodeRunner.
type ClaudeRunnerOption func(*ClaudeCodeRunner)

// WithClaudeLogger sets the logger for the ClaudeCodeRunner.
func WithClaudeLogger(logger zerolog.Logger) ClaudeRunnerOption {
	return func(r *ClaudeCodeRunner) {
		r.logger = logger
	}
}

// WithLocator replaces the executable locator.
func WithLocator(locator *Locator) ClaudeRunnerOption {
	return func(r *ClaudeCodeRunner) {
		r.locator = locator
	}
}

// WithClock sets the clock used to measure invocation duration.
func WithClock(c clock.Clock) ClaudeRunnerOption {
	return func(r *ClaudeCodeRunner) {
		r.clock = c
	}
}

// WithRunIDGenerator replaces the uuid-based run ID generator.
func WithRunIDGenerator(gen func() string) ClaudeRunnerOption {
	return func(r *ClaudeCodeRunner) {
		r.newRunID = gen
	}
}

// NewClaudeCodeRunner creates a new ClaudeCodeRunner.
// If executor is nil, a DefaultExecutor is used for real subprocess execution.
func NewClaudeCodeRunner(executor CommandExecutor, opts ...ClaudeRunnerOption) *ClaudeCodeRunner {
	if executor == nil {
		executor = &DefaultExecutor{}
	}
	r := &ClaudeCodeRunner{
		name:     constants.DefaultAssistantName,
		executor: executor,
		clock:    clock.RealClock{},
		newRunID: uuid.NewString,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.locator == nil {
		r.locator = NewLocator(WithLocatorLogger(r.logger))
	}
	return r
}

// Run executes one invocation of the claude CLI.
//
// No process is started when the executable can't be located or the working
// directory is missing. A non-zero exit returns the result and an
// *errors.ExitError carrying the code and decoded stderr.
func (r *ClaudeCodeRunner) Run(ctx context.Context, req *domain.InvocationRequest) (*domain.InvocationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := r.locator.Locate(req.Executables)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.name, err)
	}

	if err := validateWorkingDir(req.WorkingDir); err != nil {
		return nil, err
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	result := &domain.InvocationResult{
		RunID:      r.newRunID(),
		Executable: path,
	}
	logger := r.logger.With().
		Str("component", "ai").
		Str("run_id", result.RunID).
		Str("executable", path).
		Logger()

	cmd := execabs.CommandContext(ctx, path, req.Args...)
	cmd.Dir = req.WorkingDir

	logger.Debug().
		Strs("args", req.Args).
		Str("working_dir", req.WorkingDir).
		Int("prompt_bytes", len(req.Prompt)).
		Msg("starting assistant")

	start := r.clock.Now()
	stdout, stderr, execErr := r.executor.Execute(ctx, cmd, strings.NewReader(req.Prompt))
	result.Duration = clock.Since(r.clock, start)

	if execErr != nil {
		code, err := r.exitCode(ctx, execErr)
		if err != nil {
			return nil, err
		}
		result.ExitCode = code
	}

	if result.Stdout, err = DecodeOutput(stdout, req.Encoding, req.DecodeErrors); err != nil {
		return nil, errors.Wrap(err, "decode stdout")
	}
	if result.Stderr, err = DecodeOutput(stderr, req.Encoding, req.DecodeErrors); err != nil {
		return nil, errors.Wrap(err, "decode stderr")
	}

	if !result.Success() {
		logger.Warn().
			Int("exit_code", result.ExitCode).
			Dur("duration", result.Duration).
			Str("stderr", logging.FilterSensitiveValue(strings.TrimSpace(result.Stderr))).
			Msg("assistant failed")
		return result, &errors.ExitError{Name: r.name, Code: result.ExitCode, Stderr: result.Stderr}
	}

	logger.Debug().
		Int("exit_code", result.ExitCode).
		Dur("duration", result.Duration).
		Int("stdout_bytes", len(stdout)).
		Msg("assistant finished")
	return result, nil
}

// exitCoder is satisfied by *exec.ExitError.
type exitCoder interface {
	ExitCode() int
}

// exitCode extracts the process exit status from an execution error.
// Errors that aren't exit statuses (start failures, cancellation) are returned.
func (r *ClaudeCodeRunner) exitCode(ctx context.Context, execErr error) (int, error) {
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}

	var coder exitCoder
	if !stderrors.As(execErr, &coder) {
		return 0, fmt.Errorf("%w: %s: %w", errors.ErrAssistantFailed, r.name, execErr)
	}

	code := coder.ExitCode()
	if code < 0 {
		// Terminated by a signal; there is no status to propagate.
		code = 1
	}
	return code, nil
}

// validateWorkingDir checks that the working directory exists.
// An empty directory means the current one.
func validateWorkingDir(dir string) error {
	if dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return errors.Wrapf(errors.ErrWorkingDirNotFound, "%s", dir)
	}
	return nil
}

// Compile-time check that ClaudeCodeRunner implements Runner.
var _ Runner = (*ClaudeCodeRunner)(nil)
