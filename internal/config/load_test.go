package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/relay/internal/constants"
	"github.com/mrz1836/relay/internal/errors"
)

// isolateConfig points RELAY_HOME and the working directory at fresh temp
// dirs and clears RELAY_* variables so the developer's setup can't leak in.
// It returns the home and project directories.
func isolateConfig(t *testing.T) (string, string) {
	t.Helper()

	for _, env := range os.Environ() {
		key, _, _ := strings.Cut(env, "=")
		if strings.HasPrefix(key, constants.EnvPrefix+"_") {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}

	home := t.TempDir()
	t.Setenv(constants.HomeEnvVar, home)

	project := t.TempDir()
	t.Chdir(project)

	return home, project
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	isolateConfig(t)

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.Assistant.Executables, cfg.Assistant.Executables)
	assert.Equal(t, def.Assistant.Model, cfg.Assistant.Model)
	assert.Equal(t, def.Assistant.Tools, cfg.Assistant.Tools)
	assert.Equal(t, def.Assistant.PermissionMode, cfg.Assistant.PermissionMode)
	assert.Empty(t, cfg.Assistant.ExtraArgs)
	assert.Zero(t, cfg.Assistant.Timeout)
	assert.Equal(t, def.Project.Dir, cfg.Project.Dir)
	assert.Empty(t, cfg.Project.AddDirs)
	assert.Empty(t, cfg.Prompt.Text)
	assert.Empty(t, cfg.Prompt.File)
	assert.Equal(t, def.Output, cfg.Output)
}

func TestLoad_GlobalThenProjectPrecedence(t *testing.T) {
	home, project := isolateConfig(t)

	writeFile(t, filepath.Join(home, "config.yaml"), `
assistant:
  model: opus
  tools: all
prompt:
  text: from global
`)
	writeFile(t, filepath.Join(project, ".relay", "config.yaml"), `
assistant:
  model: haiku
output:
  decode_errors: replace
`)

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "haiku", cfg.Assistant.Model, "project overrides global")
	assert.Equal(t, "all", cfg.Assistant.Tools, "global value survives when project is silent")
	assert.Equal(t, "from global", cfg.Prompt.Text)
	assert.Equal(t, constants.DecodeReplace, cfg.Output.DecodeErrors)
	assert.Equal(t, "acceptEdits", cfg.Assistant.PermissionMode, "default survives")
}

func TestLoad_EnvironmentOverridesFiles(t *testing.T) {
	_, project := isolateConfig(t)

	writeFile(t, filepath.Join(project, ".relay", "config.yaml"), `
assistant:
  model: haiku
`)
	t.Setenv("RELAY_ASSISTANT_MODEL", "opus")
	t.Setenv("RELAY_ASSISTANT_EXECUTABLES", "claude-dev,claude")
	t.Setenv("RELAY_ASSISTANT_TIMEOUT", "15m")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "opus", cfg.Assistant.Model)
	assert.Equal(t, []string{"claude-dev", "claude"}, cfg.Assistant.Executables)
	assert.Equal(t, 15*time.Minute, cfg.Assistant.Timeout)
}

func TestLoadWithOverrides(t *testing.T) {
	t.Run("explicit config file is merged", func(t *testing.T) {
		_, project := isolateConfig(t)

		explicit := filepath.Join(project, "variant.yaml")
		writeFile(t, explicit, `
assistant:
  model: opus
project:
  dir: /srv/app
  add_dirs: [/srv/shared]
prompt:
  text: variant prompt
`)

		cfg, err := LoadWithOverrides(context.Background(), explicit, nil)
		require.NoError(t, err)

		assert.Equal(t, "opus", cfg.Assistant.Model)
		assert.Equal(t, "/srv/app", cfg.Project.Dir)
		assert.Equal(t, []string{"/srv/shared"}, cfg.Project.AddDirs)
		assert.Equal(t, "variant prompt", cfg.Prompt.Text)
	})

	t.Run("missing explicit config file is an error", func(t *testing.T) {
		_, project := isolateConfig(t)

		_, err := LoadWithOverrides(context.Background(), filepath.Join(project, "nope.yaml"), nil)
		require.ErrorIs(t, err, errors.ErrConfigNotFound)
	})

	t.Run("flag overrides win and zero values are ignored", func(t *testing.T) {
		isolateConfig(t)
		t.Setenv("RELAY_ASSISTANT_MODEL", "opus")

		overrides := &Config{
			Assistant: AssistantConfig{Model: "haiku"},
			Prompt:    PromptConfig{File: "prompt.md"},
		}

		cfg, err := LoadWithOverrides(context.Background(), "", overrides)
		require.NoError(t, err)

		assert.Equal(t, "haiku", cfg.Assistant.Model)
		assert.Equal(t, "prompt.md", cfg.Prompt.File)
		assert.Equal(t, "acceptEdits", cfg.Assistant.PermissionMode)
	})

	t.Run("prompt text override beats configured prompt file", func(t *testing.T) {
		_, project := isolateConfig(t)
		writeFile(t, filepath.Join(project, ".relay", "config.yaml"), "prompt:\n  file: task.md\n")

		cfg, err := LoadWithOverrides(context.Background(), "", &Config{Prompt: PromptConfig{Text: "inline"}})
		require.NoError(t, err)

		assert.Equal(t, "inline", cfg.Prompt.Text)
		assert.Empty(t, cfg.Prompt.File)
	})

	t.Run("invalid overrides fail validation", func(t *testing.T) {
		isolateConfig(t)

		overrides := &Config{Assistant: AssistantConfig{PermissionMode: "yolo"}}

		_, err := LoadWithOverrides(context.Background(), "", overrides)
		require.ErrorIs(t, err, errors.ErrConfigInvalidAssistant)
	})
}

func TestLoad_PromptFileRelativeToConfigFile(t *testing.T) {
	t.Run("global config", func(t *testing.T) {
		home, _ := isolateConfig(t)
		writeFile(t, filepath.Join(home, constants.GlobalConfigName), "prompt:\n  file: standup.md\n")

		cfg, err := Load(context.Background())
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(home, "standup.md"), cfg.Prompt.File)
	})

	t.Run("project config", func(t *testing.T) {
		isolateConfig(t)
		writeFile(t, filepath.Join(".relay", "config.yaml"), "prompt:\n  file: task.md\n")

		cfg, err := Load(context.Background())
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(".relay", "task.md"), cfg.Prompt.File)
	})

	t.Run("explicit config beats the file it overrides", func(t *testing.T) {
		home, project := isolateConfig(t)
		writeFile(t, filepath.Join(home, constants.GlobalConfigName), "prompt:\n  file: standup.md\n")
		explicit := filepath.Join(project, "variants", "review.yaml")
		writeFile(t, explicit, "prompt:\n  file: review.md\n")

		cfg, err := LoadWithOverrides(context.Background(), explicit, nil)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(project, "variants", "review.md"), cfg.Prompt.File)
	})

	t.Run("later file without prompt.file keeps the earlier base", func(t *testing.T) {
		home, project := isolateConfig(t)
		writeFile(t, filepath.Join(home, constants.GlobalConfigName), "prompt:\n  file: standup.md\n")
		explicit := filepath.Join(project, "variants", "opus.yaml")
		writeFile(t, explicit, "assistant:\n  model: opus\n")

		cfg, err := LoadWithOverrides(context.Background(), explicit, nil)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(home, "standup.md"), cfg.Prompt.File)
	})

	t.Run("absolute path is kept", func(t *testing.T) {
		home, project := isolateConfig(t)
		abs := filepath.Join(project, "task.md")
		writeFile(t, filepath.Join(home, constants.GlobalConfigName), "prompt:\n  file: "+abs+"\n")

		cfg, err := Load(context.Background())
		require.NoError(t, err)

		assert.Equal(t, abs, cfg.Prompt.File)
	})

	t.Run("environment value stays relative to the working directory", func(t *testing.T) {
		home, _ := isolateConfig(t)
		writeFile(t, filepath.Join(home, constants.GlobalConfigName), "prompt:\n  file: standup.md\n")
		t.Setenv("RELAY_PROMPT_FILE", "local.md")

		cfg, err := Load(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "local.md", cfg.Prompt.File)
	})

	t.Run("flag value stays relative to the working directory", func(t *testing.T) {
		home, _ := isolateConfig(t)
		writeFile(t, filepath.Join(home, constants.GlobalConfigName), "prompt:\n  file: standup.md\n")

		cfg, err := LoadWithOverrides(context.Background(), "", &Config{Prompt: PromptConfig{File: "local.md"}})
		require.NoError(t, err)

		assert.Equal(t, "local.md", cfg.Prompt.File)
	})
}

func TestLoad_MalformedFile(t *testing.T) {
	_, project := isolateConfig(t)

	writeFile(t, filepath.Join(project, ".relay", "config.yaml"), "assistant: [unclosed")

	_, err := Load(context.Background())
	require.Error(t, err)
}

func TestPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv(constants.HomeEnvVar, home)

	dir, err := HomeDir()
	require.NoError(t, err)
	assert.Equal(t, home, dir)

	global, err := GlobalConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "config.yaml"), global)

	logPath, err := LogFilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs", "relay.log"), logPath)

	assert.Equal(t, filepath.Join(".relay", "config.yaml"), ProjectConfigPath())
}
