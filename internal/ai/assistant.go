package ai

import (
	"context"
	"slices"

	"github.com/mrz1836/relay/internal/domain"
)

// CLIAssistant adapts a Runner and a request template to the Assistant interface.
type CLIAssistant struct {
	runner   Runner
	template domain.InvocationRequest
}

// NewCLIAssistant creates an Assistant that runs every prompt with the
// executables, arguments and output settings of template.
func NewCLIAssistant(runner Runner, template *domain.InvocationRequest) *CLIAssistant {
	return &CLIAssistant{
		runner:   runner,
		template: *template,
	}
}

// Ask runs the assistant once with prompt on stdin and returns its stdout.
func (a *CLIAssistant) Ask(ctx context.Context, prompt string) (string, error) {
	req := a.template
	req.Executables = slices.Clone(a.template.Executables)
	req.Args = slices.Clone(a.template.Args)
	req.Prompt = prompt

	result, err := a.runner.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return result.Stdout, nil
}

// Compile-time check that CLIAssistant implements Assistant.
var _ Assistant = (*CLIAssistant)(nil)
