package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mrz1836/relay/internal/ai"
	"github.com/mrz1836/relay/internal/config"
	"github.com/mrz1836/relay/internal/errors"
	"github.com/mrz1836/relay/internal/tui"
)

// runRelay loads configuration, sends the prompt to the assistant once,
// and prints the outcome.
//
// Assistant stdout goes to stdout. Relay's own messages, the failure banner
// and the assistant's stderr go to stderr.
func runRelay(cmd *cobra.Command, flags *GlobalFlags, runFlags *RunFlags, deps *Dependencies) error {
	logger := GetLogger()
	ctx := logger.WithContext(cmd.Context())
	out := tui.NewTTYOutput(cmd.ErrOrStderr())

	cfg, err := config.LoadWithOverrides(ctx, flags.ConfigFile, runFlags.overrides())
	if err != nil {
		out.Error(err)
		return markReported(err)
	}

	// Ask only once the configuration is known to be usable.
	if runFlags.Interactive {
		text, err := askPrompt(deps)
		if err != nil {
			out.Error(err)
			return markReported(err)
		}
		cfg.Prompt = config.PromptConfig{Text: text}
	}

	req, err := ai.NewInvocationRequest(cfg)
	if err != nil {
		out.Error(err)
		return markReported(err)
	}

	assistant := ai.NewCLIAssistant(newRunner(deps, logger), req)

	var spinner *tui.Spinner
	if !flags.Quiet && isTerminal(deps.StderrIsTerminal, os.Stderr) {
		spinner = tui.NewSpinner(cmd.ErrOrStderr())
		spinner.Start(ctx, "Waiting for the assistant")
	}
	answer, err := assistant.Ask(ctx, req.Prompt)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		var exitErr *errors.ExitError
		if errors.As(err, &exitErr) {
			out.Failure(fmt.Sprintf("%s failed (exit %d)", exitErr.Name, exitErr.Code), exitErr.Stderr)
		} else {
			out.Error(err)
		}
		return markReported(err)
	}

	if cfg.Output.Markdown && isTerminal(deps.StdoutIsTerminal, os.Stdout) {
		answer = renderMarkdown(logger, answer)
	}
	return writeAnswer(cmd.OutOrStdout(), answer)
}

// newRunner builds the production runner, swapping in any test seams from deps.
func newRunner(deps *Dependencies, logger zerolog.Logger) *ai.ClaudeCodeRunner {
	locatorOpts := []ai.LocatorOption{ai.WithLocatorLogger(logger)}
	if deps.PathLookup != nil {
		locatorOpts = append(locatorOpts, ai.WithPathLookup(deps.PathLookup))
	}

	return ai.NewClaudeCodeRunner(deps.Executor,
		ai.WithClaudeLogger(logger),
		ai.WithLocator(ai.NewLocator(locatorOpts...)),
	)
}

// writeAnswer prints the assistant's answer as-is, ending it with a newline
// when it doesn't already end with one.
func writeAnswer(w io.Writer, answer string) error {
	if !strings.HasSuffix(answer, "\n") {
		answer += "\n"
	}
	_, err := io.WriteString(w, answer)
	return err
}

// renderMarkdown renders answer for the terminal, falling back to the raw
// text if glamour fails.
func renderMarkdown(logger zerolog.Logger, answer string) string {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width = 0
	}

	rendered, err := tui.RenderMarkdown(answer, width)
	if err != nil {
		logger.Warn().Err(err).Msg("markdown rendering failed, printing raw output")
		return answer
	}
	return rendered
}

// askPrompt reads the prompt interactively. A blank answer is ErrEmptyPrompt
// rather than falling back to the configured prompt.
func askPrompt(deps *Dependencies) (string, error) {
	ask := deps.AskPrompt
	if ask == nil {
		ask = tui.AskPrompt
	}

	text, err := ask("Prompt for the assistant")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.ErrEmptyPrompt
	}
	return text, nil
}

// isTerminal calls override when set and otherwise checks f.
func isTerminal(override func() bool, f *os.File) bool {
	if override != nil {
		return override()
	}
	return term.IsTerminal(int(f.Fd()))
}
