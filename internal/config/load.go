package config

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/relay/internal/constants"
	"github.com/mrz1836/relay/internal/errors"
)

// newViperInstance creates a viper instance with defaults, the RELAY_ env
// prefix, and a "." to "_" key replacer (assistant.model -> RELAY_ASSISTANT_MODEL).
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// Load reads configuration from defaults, the global and project config
// files, and RELAY_* environment variables.
//
// Missing config files are not an error; only unreadable or invalid ones are.
func Load(ctx context.Context) (*Config, error) {
	return LoadWithOverrides(ctx, "", nil)
}

// LoadWithOverrides loads configuration, merges the explicit config file
// (if configFile is non-empty), and applies CLI flag overrides on top.
// Only non-zero override values are applied.
func LoadWithOverrides(ctx context.Context, configFile string, overrides *Config) (*Config, error) {
	v := newViperInstance()

	globalPath, err := loadGlobalConfig(v)
	if err != nil {
		return nil, err
	}
	loaded := []string{globalPath}

	projectPath, err := mergeConfigFile(v, ProjectConfigPath(), false)
	if err != nil {
		return nil, err
	}
	loaded = append(loaded, projectPath)

	if configFile != "" {
		explicitPath, err := mergeConfigFile(v, configFile, true)
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, explicitPath)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	resolvePromptFile(&cfg, loaded)

	if overrides != nil {
		applyOverrides(&cfg, overrides)
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Strs("assistant.executables", cfg.Assistant.Executables).
		Str("assistant.model", cfg.Assistant.Model).
		Str("assistant.permission_mode", cfg.Assistant.PermissionMode).
		Str("project.dir", cfg.Project.Dir).
		Str("output.decode_errors", cfg.Output.DecodeErrors.String()).
		Str("config_file", v.ConfigFileUsed()).
		Msg("configuration loaded")

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &cfg, nil
}

// loadGlobalConfig reads ~/.relay/config.yaml if it exists and returns the
// path it read, or "" when there was none.
func loadGlobalConfig(v *viper.Viper) (string, error) {
	path, err := GlobalConfigPath()
	if err != nil || !fileExists(path) {
		// Home dir unavailable or no global config: skip silently
		return "", nil //nolint:nilerr // a missing global config is expected
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return "", errors.Wrap(err, "failed to read global config file")
	}
	return path, nil
}

// mergeConfigFile merges the file at path over the current values and
// returns path, or "" when an optional file is missing.
func mergeConfigFile(v *viper.Viper, path string, required bool) (string, error) {
	if !fileExists(path) {
		if required {
			return "", errors.Wrapf(errors.ErrConfigNotFound, "%s", path)
		}
		return "", nil
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return "", errors.Wrapf(err, "failed to read config file %s", path)
	}
	return path, nil
}

// resolvePromptFile makes a relative prompt.file relative to the directory of
// the last config file in loaded that set it. A value from RELAY_PROMPT_FILE
// stays relative to the working directory.
func resolvePromptFile(cfg *Config, loaded []string) {
	if cfg.Prompt.File == "" || filepath.IsAbs(cfg.Prompt.File) {
		return
	}
	if os.Getenv(constants.EnvPrefix+"_PROMPT_FILE") != "" {
		return
	}

	base := ""
	for _, path := range loaded {
		if path != "" && setsPromptFile(path) {
			base = filepath.Dir(path)
		}
	}
	if base != "" {
		cfg.Prompt.File = filepath.Join(base, cfg.Prompt.File)
	}
}

// setsPromptFile reports whether the config file at path sets prompt.file.
func setsPromptFile(path string) bool {
	fv := viper.New()
	fv.SetConfigFile(path)
	return fv.ReadInConfig() == nil && fv.IsSet("prompt.file")
}

// fileExists returns true if the file at path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// applyOverrides copies the non-zero fields of overrides into cfg.
func applyOverrides(cfg, overrides *Config) {
	if overrides.Assistant.Model != "" {
		cfg.Assistant.Model = overrides.Assistant.Model
	}
	if overrides.Assistant.PermissionMode != "" {
		cfg.Assistant.PermissionMode = overrides.Assistant.PermissionMode
	}
	if overrides.Project.Dir != "" {
		cfg.Project.Dir = overrides.Project.Dir
	}
	if overrides.Prompt.File != "" {
		cfg.Prompt.File = overrides.Prompt.File
	}
	if overrides.Prompt.Text != "" {
		// An explicit prompt must not lose to a configured prompt.file.
		cfg.Prompt.Text = overrides.Prompt.Text
		if overrides.Prompt.File == "" {
			cfg.Prompt.File = ""
		}
	}
}

// viperDecoderOption returns the decoder options for viper unmarshal.
// Durations are accepted as strings ("10m") and lists as comma-separated
// strings so RELAY_ASSISTANT_EXECUTABLES=claude,claude.exe works.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	)
}
