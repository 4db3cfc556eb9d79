// Package domain provides shared domain types for relay.
package domain

import (
	"time"

	"github.com/mrz1836/relay/internal/constants"
)

// InvocationRequest contains everything needed to run the assistant CLI once.
// It is built from configuration at startup and not mutated afterwards.
//
// Example JSON representation:
//
//	{
//	    "executables": ["claude", "claude.cmd"],
//	    "args": ["--print", "--model", "sonnet"],
//	    "prompt": "Fix the failing test in chat.tsx",
//	    "working_dir": "/path/to/project",
//	    "encoding": "utf-8",
//	    "decode_errors": "strict"
//	}
type InvocationRequest struct {
	// Executables are the candidate names searched on PATH, in order.
	Executables []string `json:"executables"`

	// Args are the arguments passed to the assistant, excluding the executable itself.
	Args []string `json:"args"`

	// Prompt is written to the assistant's standard input.
	Prompt string `json:"prompt"`

	// WorkingDir is the directory the assistant process runs in.
	// Empty means the current directory.
	WorkingDir string `json:"working_dir,omitempty"`

	// Encoding names the character encoding of the assistant's output.
	Encoding string `json:"encoding"`

	// DecodeErrors selects strict or replacing decoding.
	DecodeErrors constants.DecodeMode `json:"decode_errors"`

	// Timeout bounds the invocation. Zero means no deadline.
	Timeout time.Duration `json:"timeout,omitempty"`
}

// InvocationResult captures the outcome of one assistant process.
//
// Example JSON representation:
//
//	{
//	    "run_id": "6f1c...",
//	    "executable": "/usr/local/bin/claude",
//	    "exit_code": 0,
//	    "stdout": "42%",
//	    "stderr": "",
//	    "duration": 5400000000
//	}
type InvocationResult struct {
	// RunID correlates log lines for a single invocation.
	RunID string `json:"run_id"`

	// Executable is the resolved path that was started.
	Executable string `json:"executable"`

	// ExitCode is the process exit status.
	ExitCode int `json:"exit_code"`

	// Stdout is the decoded standard output.
	Stdout string `json:"stdout"`

	// Stderr is the decoded standard error.
	Stderr string `json:"stderr"`

	// Duration is the wall-clock time the process ran.
	Duration time.Duration `json:"duration"`
}

// Success reports whether the assistant exited with status zero.
func (r *InvocationResult) Success() bool {
	return r.ExitCode == 0
}
