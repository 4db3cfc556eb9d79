// Package logging provides zerolog helpers that keep credentials out of logs.
//
// The assistant's stderr routinely echoes authentication failures, which can
// include tokens. Everything relay writes to its log file passes through
// FilteringWriter, and call sites logging captured output use FilterSensitiveValue.
package logging

import (
	"io"
	"regexp"

	"github.com/rs/zerolog"
)

// RedactedValue is the replacement string for sensitive data.
const RedactedValue = "[REDACTED]"

//nolint:gochecknoglobals // compiled once, shared by every filter
var sensitivePatterns = []*regexp.Regexp{
	// Anthropic API keys and OAuth tokens (sk-ant-api..., sk-ant-oat...)
	regexp.MustCompile(`sk-ant-[a-z]{3}[a-zA-Z0-9_-]+`),

	// Other sk- style keys
	regexp.MustCompile(`sk-[a-zA-Z0-9]{20,}`),

	// GitHub tokens (ghp_, gho_, ghu_, ghs_, ghr_)
	regexp.MustCompile(`gh[pousr]_[a-zA-Z0-9]{20,}`),

	// key=value style API keys
	regexp.MustCompile(`(?i)(api[_-]?key|apikey)\s*[:=]\s*["']?[a-zA-Z0-9_-]{16,}["']?`),

	// Bearer tokens and Authorization headers
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._-]{20,}`),
	regexp.MustCompile(`(?i)authorization\s*[:=]\s*["']?[a-zA-Z0-9_-]{20,}["']?`),

	// Passwords and secrets with values
	regexp.MustCompile(`(?i)(secret|password|credential|passwd)\s*[:=]\s*["']?[^\s"']{8,}["']?`),
}

// ContainsSensitiveData reports whether s matches any sensitive pattern.
func ContainsSensitiveData(s string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// FilterSensitiveValue replaces every sensitive match in value with [REDACTED].
func FilterSensitiveValue(value string) string {
	for _, pattern := range sensitivePatterns {
		value = pattern.ReplaceAllString(value, RedactedValue)
	}
	return value
}

// SensitiveDataHook flags log events whose message looks like it carries a secret.
// zerolog hooks can't rewrite the message, so the event is marked instead and
// FilteringWriter does the actual redaction on the way to disk.
type SensitiveDataHook struct{}

// NewSensitiveDataHook creates a new SensitiveDataHook.
func NewSensitiveDataHook() *SensitiveDataHook {
	return &SensitiveDataHook{}
}

// Run implements zerolog.Hook.
func (h *SensitiveDataHook) Run(e *zerolog.Event, _ zerolog.Level, msg string) {
	if ContainsSensitiveData(msg) {
		e.Bool("contains_filtered_data", true)
	}
}

// FilteringWriter redacts sensitive data from everything written through it.
type FilteringWriter struct {
	w io.Writer
}

// NewFilteringWriter wraps w.
func NewFilteringWriter(w io.Writer) *FilteringWriter {
	return &FilteringWriter{w: w}
}

// Write implements io.Writer. It reports len(p) on success even when the
// filtered output is shorter, so callers don't see a short write.
func (fw *FilteringWriter) Write(p []byte) (int, error) {
	if _, err := fw.w.Write([]byte(FilterSensitiveValue(string(p)))); err != nil {
		return 0, err
	}
	return len(p), nil
}
