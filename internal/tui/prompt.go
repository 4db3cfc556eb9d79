package tui

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/mrz1836/relay/internal/errors"
)

// AskPrompt opens a multi-line editor on the terminal and returns what the
// user typed. It fails with errors.ErrPromptCanceled when stdin is not a
// terminal or the user aborts.
func AskPrompt(title string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.Wrap(errors.ErrPromptCanceled, "stdin is not a terminal")
	}

	CheckNoColor()

	var value string
	field := huh.NewText().
		Title(title).
		Placeholder("Describe the task for the assistant").
		Value(&value)

	_, accessible := os.LookupEnv("ACCESSIBLE")
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(Theme()).
		WithAccessible(accessible)

	if err := form.Run(); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) {
			return "", errors.ErrPromptCanceled
		}
		return "", fmt.Errorf("prompt editor failed: %w", err)
	}
	return value, nil
}

// Theme returns the huh theme in relay's colors.
func Theme() *huh.Theme {
	t := huh.ThemeBase()
	t.Focused.Base = t.Focused.Base.BorderForeground(ColorPrimary)
	t.Focused.Title = t.Focused.Title.Foreground(ColorPrimary)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ColorError)
	t.Blurred.Title = t.Blurred.Title.Foreground(ColorMuted)
	return t
}
