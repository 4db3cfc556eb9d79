package config

import (
	"slices"
	"strings"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/mrz1836/relay/internal/constants"
	"github.com/mrz1836/relay/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}
	if err := validateAssistantConfig(&cfg.Assistant); err != nil {
		return err
	}
	return validateOutputConfig(&cfg.Output)
}

func validateAssistantConfig(cfg *AssistantConfig) error {
	if len(cfg.Executables) == 0 {
		return errors.Wrap(errors.ErrConfigInvalidAssistant,
			"assistant.executables must list at least one name")
	}
	for i, name := range cfg.Executables {
		if strings.TrimSpace(name) == "" {
			return errors.Wrapf(errors.ErrConfigInvalidAssistant,
				"assistant.executables[%d] is empty", i)
		}
	}

	if cfg.Model == "" {
		return errors.Wrap(errors.ErrConfigInvalidAssistant, "assistant.model must not be empty")
	}
	if cfg.Tools == "" {
		return errors.Wrap(errors.ErrConfigInvalidAssistant, "assistant.tools must not be empty")
	}
	if !slices.Contains(constants.PermissionModes(), cfg.PermissionMode) {
		return errors.Wrapf(errors.ErrConfigInvalidAssistant,
			"assistant.permission_mode must be one of %v, got %q",
			constants.PermissionModes(), cfg.PermissionMode)
	}
	if cfg.Timeout < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidAssistant,
			"assistant.timeout must not be negative, got %s", cfg.Timeout)
	}
	return nil
}

func validateOutputConfig(cfg *OutputConfig) error {
	if !cfg.DecodeErrors.IsValid() {
		return errors.Wrapf(errors.ErrConfigInvalidOutput,
			"output.decode_errors must be %q or %q, got %q",
			constants.DecodeStrict, constants.DecodeReplace, cfg.DecodeErrors)
	}
	if _, err := htmlindex.Get(cfg.Encoding); err != nil {
		return errors.Wrapf(errors.ErrConfigInvalidOutput,
			"output.encoding %q is not a known encoding", cfg.Encoding)
	}
	return nil
}
