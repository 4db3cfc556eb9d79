package tui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mrz1836/relay/internal/errors"
)

// Output is where relay reports status to the user. Assistant output itself
// is written raw by the caller; Output only decorates relay's own messages.
type Output interface {
	// Error prints err with its suggested action, if any.
	Error(err error)
	// Failure prints a banner line followed by detail exactly as captured.
	Failure(title, detail string)
	// JSON outputs a value as formatted JSON.
	JSON(v any) error
}

// FormatJSON selects JSONOutput in NewOutput.
const FormatJSON = "json"

// TTYOutput provides styled output for terminal displays.
type TTYOutput struct {
	w      io.Writer
	styles *OutputStyles
}

// NewTTYOutput creates a new TTYOutput.
func NewTTYOutput(w io.Writer) *TTYOutput {
	return &TTYOutput{
		w:      w,
		styles: NewOutputStyles(),
	}
}

// Error prints an error message and, when known, a "Try:" hint.
func (o *TTYOutput) Error(err error) {
	_, _ = fmt.Fprintln(o.w, o.styles.Error.Render("✗ "+err.Error()))
	if _, action := errors.Actionable(err); action != "" {
		_, _ = fmt.Fprintln(o.w, o.styles.Dim.Render("▸ Try: "+action))
	}
}

// Failure prints a styled banner and then detail unstyled, so captured
// stderr reaches the terminal byte for byte.
func (o *TTYOutput) Failure(title, detail string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Error.Render("✗ "+title))
	writeDetail(o.w, detail)
}

// JSON outputs a value as formatted JSON.
func (o *TTYOutput) JSON(v any) error {
	return encodeJSON(o.w, v)
}

// JSONOutput provides plain JSON output without styling.
type JSONOutput struct {
	w io.Writer
}

// NewJSONOutput creates a new JSONOutput.
func NewJSONOutput(w io.Writer) *JSONOutput {
	return &JSONOutput{w: w}
}

// Error outputs the error as JSON.
func (o *JSONOutput) Error(err error) {
	_ = encodeJSON(o.w, map[string]string{"error": err.Error()})
}

// Failure outputs the banner and detail as one JSON object.
func (o *JSONOutput) Failure(title, detail string) {
	_ = encodeJSON(o.w, map[string]string{"error": title, "detail": detail})
}

// JSON outputs a value as formatted JSON.
func (o *JSONOutput) JSON(v any) error {
	return encodeJSON(o.w, v)
}

// NewOutput creates the appropriate output based on format.
func NewOutput(w io.Writer, format string) Output {
	if format == FormatJSON {
		return NewJSONOutput(w)
	}
	return NewTTYOutput(w)
}

func encodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func writeDetail(w io.Writer, detail string) {
	if detail == "" {
		return
	}
	_, _ = io.WriteString(w, detail)
	if !strings.HasSuffix(detail, "\n") {
		_, _ = io.WriteString(w, "\n")
	}
}

// Compile-time interface checks.
var (
	_ Output = (*TTYOutput)(nil)
	_ Output = (*JSONOutput)(nil)
)
