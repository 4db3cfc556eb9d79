package config

import (
	"github.com/spf13/viper"

	"github.com/mrz1836/relay/internal/constants"
)

// DefaultConfig returns a new Config populated with the built-in defaults.
// The assistant flags reproduce the invocation the wrapper has always made:
//
//	claude --print --model sonnet --tools default --permission-mode acceptEdits --add-dir <dir>
func DefaultConfig() *Config {
	return &Config{
		Assistant: AssistantConfig{
			Executables:    constants.DefaultExecutableNames(),
			Model:          constants.DefaultModel,
			Tools:          constants.DefaultTools,
			PermissionMode: constants.DefaultPermissionMode,
			Timeout:        constants.DefaultAssistantTimeout,
		},
		Project: ProjectConfig{
			Dir: constants.DefaultProjectDir,
		},
		Output: OutputConfig{
			Encoding:     constants.DefaultEncoding,
			DecodeErrors: constants.DecodeStrict,
		},
	}
}

// setDefaults registers every config key with viper. Keys must be known to
// viper for AutomaticEnv to map RELAY_* variables onto them.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("assistant.executables", def.Assistant.Executables)
	v.SetDefault("assistant.model", def.Assistant.Model)
	v.SetDefault("assistant.tools", def.Assistant.Tools)
	v.SetDefault("assistant.permission_mode", def.Assistant.PermissionMode)
	v.SetDefault("assistant.extra_args", []string{})
	v.SetDefault("assistant.timeout", def.Assistant.Timeout.String())

	v.SetDefault("project.dir", def.Project.Dir)
	v.SetDefault("project.add_dirs", []string{})

	v.SetDefault("prompt.text", "")
	v.SetDefault("prompt.file", "")

	v.SetDefault("output.encoding", def.Output.Encoding)
	v.SetDefault("output.decode_errors", def.Output.DecodeErrors.String())
	v.SetDefault("output.markdown", def.Output.Markdown)
}
