package errors

import "fmt"

// ExitError reports that the assistant process exited with a non-zero code.
// The CLI propagates Code as its own exit status and prints Stderr.
type ExitError struct {
	// Name is the display name of the assistant CLI.
	Name string
	// Code is the process exit status.
	Code int
	// Stderr is the decoded standard error captured from the process.
	Stderr string
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Name, e.Code)
}

// Unwrap lets errors.Is match ErrAssistantFailed.
func (e *ExitError) Unwrap() error {
	return ErrAssistantFailed
}

// ExitCode returns the process exit status carried by err, if any.
// The boolean is false when err does not wrap an *ExitError.
func ExitCode(err error) (int, bool) {
	var exitErr *ExitError
	if As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}
