package constants

// DecodeMode controls how invalid byte sequences in assistant output are handled.
type DecodeMode string

const (
	// DecodeStrict fails the run when output cannot be decoded.
	DecodeStrict DecodeMode = "strict"

	// DecodeReplace substitutes U+FFFD for undecodable sequences.
	DecodeReplace DecodeMode = "replace"
)

// IsValid reports whether m is a known decode mode.
func (m DecodeMode) IsValid() bool {
	switch m {
	case DecodeStrict, DecodeReplace:
		return true
	}
	return false
}

// String returns the string representation of the mode.
func (m DecodeMode) String() string {
	return string(m)
}

// PermissionModes returns the permission modes the claude CLI accepts.
func PermissionModes() []string {
	return []string{"acceptEdits", "bypassPermissions", "default", "delegate", "dontAsk", "plan"}
}
