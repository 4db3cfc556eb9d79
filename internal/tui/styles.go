// Package tui renders relay's console output.
//
// Styles use lipgloss AdaptiveColor so they read on light and dark terminals.
// Call CheckNoColor before printing to honor NO_COLOR and TERM=dumb.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

//nolint:gochecknoglobals // package-level palette
var (
	// ColorPrimary is blue, used for informational text.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}

	// ColorError is red.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorMuted is gray, used for hints and secondary text.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}
)

// OutputStyles holds the styles used by TTYOutput and Spinner.
type OutputStyles struct {
	Error lipgloss.Style
	Info  lipgloss.Style
	Dim   lipgloss.Style
}

// NewOutputStyles creates the output styles.
func NewOutputStyles() *OutputStyles {
	return &OutputStyles{
		Error: lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		Info:  lipgloss.NewStyle().Foreground(ColorPrimary),
		Dim:   lipgloss.NewStyle().Foreground(ColorMuted),
	}
}

// CheckNoColor drops lipgloss to the ASCII profile when colors are unwanted.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport returns false if NO_COLOR is present (any value, including
// empty) or TERM=dumb. See https://no-color.org/.
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}
