package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// A slice rather than a map because wrapped errors need errors.Is() traversal.
//
//nolint:gochecknoglobals // Pre-built mapping
var errorInfoEntries = []errorEntry{
	{
		err: ErrExecutableNotFound,
		info: ErrorInfo{
			Message: "The assistant CLI was not found in PATH.",
			Action:  "Install claude code or add its directory to PATH.",
		},
	},
	{
		err: ErrAssistantFailed,
		info: ErrorInfo{
			Message: "The assistant CLI exited with an error.",
			Action:  "Check the error output above. Authentication problems usually mean the CLI needs a login.",
		},
	},
	{
		err: ErrOutputDecode,
		info: ErrorInfo{
			Message: "Assistant output could not be decoded.",
			Action:  "Set output.decode_errors to \"replace\" or pick the right output.encoding.",
		},
	},
	{
		err: ErrUnknownEncoding,
		info: ErrorInfo{
			Message: "The configured output encoding is not recognized.",
			Action:  "Use a WHATWG encoding label such as utf-8 or windows-1252.",
		},
	},
	{
		err: ErrWorkingDirNotFound,
		info: ErrorInfo{
			Message: "The project directory does not exist.",
			Action:  "Fix project.dir in your relay config.",
		},
	},
	{
		err: ErrEmptyPrompt,
		info: ErrorInfo{
			Message: "No prompt configured.",
			Action:  "Set prompt.text or prompt.file, or pass --prompt or --interactive.",
		},
	},
	{
		err: ErrPromptCanceled,
		info: ErrorInfo{
			Message: "No prompt was entered.",
			Action:  "Run relay --interactive from a terminal, or pass --prompt.",
		},
	},
	{
		err: ErrConfigNotFound,
		info: ErrorInfo{
			Message: "The config file passed with --config does not exist.",
		},
	},
	{
		err: ErrConfigInvalidAssistant,
		info: ErrorInfo{
			Message: "Invalid assistant configuration.",
			Action:  "Run 'relay config show' to inspect the effective configuration.",
		},
	},
	{
		err: ErrConfigInvalidOutput,
		info: ErrorInfo{
			Message: "Invalid output configuration.",
			Action:  "Run 'relay config show' to inspect the effective configuration.",
		},
	},
}

// getErrorInfo looks up the ErrorInfo for err, falling back to the error's
// own message when no sentinel matches.
func getErrorInfo(err error) ErrorInfo {
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}
	return ErrorInfo{Message: err.Error()}
}

// Actionable returns a user-friendly error message along with a suggested
// action. The action is empty when there is nothing useful to suggest.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
