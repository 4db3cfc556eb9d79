package ai

// Tests in this package never run the real claude CLI. MockExecutor returns
// canned output, and the integration tests use a generated shell script.

import (
	"context"
	"io"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// EnsureNoRealAPIKeys unsets assistant credentials for the duration of the
// test so a misconfigured test can never reach a real account.
func EnsureNoRealAPIKeys(t *testing.T) {
	t.Helper()
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("CLAUDE_CODE_OAUTH_TOKEN", "")
}

// MockExecutor is a test implementation of CommandExecutor.
type MockExecutor struct {
	StdoutData []byte
	StderrData []byte
	Err        error

	// Calls counts Execute invocations.
	Calls int
	// CapturedCmd stores the last executed command for verification.
	CapturedCmd *exec.Cmd
	// CapturedStdin stores what would have been written to the process.
	CapturedStdin string
	// OnExecute, if set, runs before the canned output is returned.
	OnExecute func()
}

func (m *MockExecutor) Execute(_ context.Context, cmd *exec.Cmd, stdin io.Reader) ([]byte, []byte, error) {
	m.Calls++
	m.CapturedCmd = cmd
	if m.OnExecute != nil {
		m.OnExecute()
	}
	if stdin != nil {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, nil, err
		}
		m.CapturedStdin = string(data)
	}
	return m.StdoutData, m.StderrData, m.Err
}

// fakeExitError mimics *exec.ExitError without spawning a process.
type fakeExitError struct {
	code int
}

func (e fakeExitError) Error() string { return "exit status" }
func (e fakeExitError) ExitCode() int { return e.code }

// stepClock advances by step on every call to Now.
type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// lookupTable returns a PathLookup that resolves only the names in table.
func lookupTable(table map[string]string) PathLookup {
	return func(file string) (string, error) {
		if path, ok := table[file]; ok {
			return path, nil
		}
		return "", exec.ErrNotFound
	}
}

// newTestRunner builds a runner whose locator resolves "claude" to a fixed path.
func newTestRunner(t *testing.T, mock *MockExecutor) *ClaudeCodeRunner {
	t.Helper()
	runner := NewClaudeCodeRunner(mock,
		WithLocator(NewLocator(WithPathLookup(lookupTable(map[string]string{
			"claude": "/usr/local/bin/claude",
		})))),
		WithRunIDGenerator(func() string { return "run-1" }),
		WithClock(&stepClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), step: 2 * time.Second}),
	)
	require.NotNil(t, runner)
	return runner
}
