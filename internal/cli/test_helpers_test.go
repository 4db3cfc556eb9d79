package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/relay/internal/constants"
)

const fakeClaudePath = "/usr/local/bin/claude"

// fakeExecutor records the command it was asked to run and returns canned output.
type fakeExecutor struct {
	stdout string
	stderr string
	err    error

	calls int
	args  []string
	dir   string
	stdin string
}

func (f *fakeExecutor) Execute(_ context.Context, cmd *exec.Cmd, stdin io.Reader) ([]byte, []byte, error) {
	f.calls++
	f.args = cmd.Args[1:]
	f.dir = cmd.Dir
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, nil, err
	}
	f.stdin = string(data)
	return []byte(f.stdout), []byte(f.stderr), f.err
}

// fakeExit stands in for *exec.ExitError.
type fakeExit int

func (e fakeExit) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

func (e fakeExit) ExitCode() int { return int(e) }

// lookupClaudeOnly resolves only "claude".
func lookupClaudeOnly(name string) (string, error) {
	if name == constants.DefaultAssistantName {
		return fakeClaudePath, nil
	}
	return "", exec.ErrNotFound
}

func lookupNothing(string) (string, error) {
	return "", exec.ErrNotFound
}

// isolateCLI gives the test a fresh relay home and project directory and
// clears RELAY_* variables. It returns the project directory as the process
// sees it.
func isolateCLI(t *testing.T) string {
	t.Helper()

	for _, env := range os.Environ() {
		key, _, _ := strings.Cut(env, "=")
		if strings.HasPrefix(key, constants.EnvPrefix+"_") {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}
	t.Setenv(constants.HomeEnvVar, t.TempDir())
	t.Setenv("NO_COLOR", "1")
	t.Chdir(t.TempDir())

	wd, err := os.Getwd()
	require.NoError(t, err)
	return wd
}

type cliResult struct {
	stdout string
	stderr string
	logs   string
	err    error
}

// runCLI runs relay with args through execute and captures everything it prints.
func runCLI(t *testing.T, deps *Dependencies, args ...string) cliResult {
	t.Helper()

	var stdout, stderr, logs bytes.Buffer
	if deps == nil {
		deps = &Dependencies{}
	}
	deps.LogWriter = &logs
	if deps.StderrIsTerminal == nil {
		deps.StderrIsTerminal = func() bool { return false }
	}

	err := execute(context.Background(), BuildInfo{Version: "test"}, args, deps, func(cmd *cobra.Command) {
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
	})

	return cliResult{
		stdout: stdout.String(),
		stderr: stderr.String(),
		logs:   logs.String(),
		err:    err,
	}
}
