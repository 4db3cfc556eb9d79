package ai

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mrz1836/relay/internal/config"
	"github.com/mrz1836/relay/internal/constants"
	"github.com/mrz1836/relay/internal/domain"
	"github.com/mrz1836/relay/internal/errors"
)

// NewInvocationRequest builds the request for one run from cfg.
// The project directory is made absolute; it is used both as the working
// directory and as the first --add-dir.
func NewInvocationRequest(cfg *config.Config) (*domain.InvocationRequest, error) {
	if cfg == nil {
		return nil, errors.ErrConfigNil
	}

	prompt, err := ResolvePrompt(&cfg.Prompt)
	if err != nil {
		return nil, err
	}

	dir, err := filepath.Abs(cfg.Project.Dir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve project dir %s", cfg.Project.Dir)
	}

	return &domain.InvocationRequest{
		Executables:  append([]string(nil), cfg.Assistant.Executables...),
		Args:         BuildArgs(&cfg.Assistant, dir, cfg.Project.AddDirs),
		Prompt:       prompt,
		WorkingDir:   dir,
		Encoding:     cfg.Output.Encoding,
		DecodeErrors: cfg.Output.DecodeErrors,
		Timeout:      cfg.Assistant.Timeout,
	}, nil
}

// BuildArgs returns the assistant argument list in its fixed order:
//
//	--print --model <m> --tools <t> --permission-mode <p> --add-dir <dir>... <extra>...
func BuildArgs(cfg *config.AssistantConfig, projectDir string, addDirs []string) []string {
	args := []string{
		constants.FlagPrint,
		constants.FlagModel, cfg.Model,
		constants.FlagTools, cfg.Tools,
		constants.FlagPermissionMode, cfg.PermissionMode,
	}

	if projectDir != "" {
		args = append(args, constants.FlagAddDir, projectDir)
	}
	for _, dir := range addDirs {
		args = append(args, constants.FlagAddDir, dir)
	}

	return append(args, cfg.ExtraArgs...)
}

// ResolvePrompt returns the prompt text, reading it from File when set.
// Whitespace-only prompts are rejected with errors.ErrEmptyPrompt.
func ResolvePrompt(cfg *config.PromptConfig) (string, error) {
	text := cfg.Text
	if cfg.File != "" {
		data, err := os.ReadFile(cfg.File)
		if err != nil {
			return "", errors.Wrapf(err, "read prompt file %s", cfg.File)
		}
		text = string(data)
	}

	if strings.TrimSpace(text) == "" {
		return "", errors.ErrEmptyPrompt
	}
	return text, nil
}
