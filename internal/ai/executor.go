package ai

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sync/errgroup"
)

// CommandExecutor abstracts command execution for testing.
// The production implementation runs the process; tests return canned output.
type CommandExecutor interface {
	// Execute runs cmd with stdin as its standard input and returns the
	// captured stdout and stderr along with the process error.
	Execute(ctx context.Context, cmd *exec.Cmd, stdin io.Reader) (stdout, stderr []byte, err error)
}

// DefaultExecutor is the production implementation of CommandExecutor.
type DefaultExecutor struct{}

// Execute starts cmd, streams stdin into it, and waits for it to exit.
//
// The stdin writer runs in its own goroutine so a process that produces a lot
// of output before reading its input can't deadlock against us. A broken pipe
// from a process that exits without reading stdin is not an error.
func (e *DefaultExecutor) Execute(_ context.Context, cmd *exec.Cmd, stdin io.Reader) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	pipe, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, nil, err
	}

	var g errgroup.Group
	g.Go(func() error {
		defer func() { _ = pipe.Close() }()
		if stdin == nil {
			return nil
		}
		if _, err := io.Copy(pipe, stdin); err != nil && !isBrokenPipe(err) {
			return err
		}
		return nil
	})

	waitErr := cmd.Wait()
	writeErr := g.Wait()

	if waitErr != nil {
		return stdout.Bytes(), stderr.Bytes(), waitErr
	}
	return stdout.Bytes(), stderr.Bytes(), writeErr
}

func isBrokenPipe(err error) bool {
	return stderrors.Is(err, syscall.EPIPE) || stderrors.Is(err, os.ErrClosed)
}

// Compile-time check that DefaultExecutor implements CommandExecutor.
var _ CommandExecutor = (*DefaultExecutor)(nil)
