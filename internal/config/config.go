// Package config provides configuration management for relay with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (RELAY_* prefix)
//  3. Explicit config file (--config)
//  4. Project config (.relay/config.yaml)
//  5. Global config (~/.relay/config.yaml)
//  6. Built-in defaults
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/domain or other internal packages.
package config

import (
	"time"

	"github.com/mrz1836/relay/internal/constants"
)

// Config is the root configuration structure for relay.
type Config struct {
	// Assistant contains settings for the assistant CLI invocation.
	Assistant AssistantConfig `yaml:"assistant" json:"assistant" mapstructure:"assistant"`

	// Project contains the directory the assistant works on.
	Project ProjectConfig `yaml:"project" json:"project" mapstructure:"project"`

	// Prompt contains the text forwarded to the assistant.
	Prompt PromptConfig `yaml:"prompt" json:"prompt" mapstructure:"prompt"`

	// Output contains settings for decoding and printing assistant output.
	Output OutputConfig `yaml:"output" json:"output" mapstructure:"output"`
}

// AssistantConfig controls which CLI is run and with which flags.
type AssistantConfig struct {
	// Executables are the candidate names searched on PATH, in order.
	// Default: claude, claude.cmd, claude.exe, claude.bat
	Executables []string `yaml:"executables" json:"executables" mapstructure:"executables"`

	// Model is passed as --model.
	// Default: "sonnet"
	Model string `yaml:"model" json:"model" mapstructure:"model"`

	// Tools is passed as --tools.
	// Default: "default"
	Tools string `yaml:"tools" json:"tools" mapstructure:"tools"`

	// PermissionMode is passed as --permission-mode.
	// Default: "acceptEdits"
	PermissionMode string `yaml:"permission_mode" json:"permission_mode" mapstructure:"permission_mode"`

	// ExtraArgs are appended after the built-in flags.
	ExtraArgs []string `yaml:"extra_args,omitempty" json:"extra_args,omitempty" mapstructure:"extra_args"`

	// Timeout bounds a single invocation. Zero disables the deadline.
	// Default: 0
	Timeout time.Duration `yaml:"timeout" json:"timeout" mapstructure:"timeout"`
}

// ProjectConfig describes the directory the assistant operates on.
type ProjectConfig struct {
	// Dir is both the assistant's working directory and the first --add-dir.
	// Default: "."
	Dir string `yaml:"dir" json:"dir" mapstructure:"dir"`

	// AddDirs are extra directories attached with --add-dir.
	AddDirs []string `yaml:"add_dirs,omitempty" json:"add_dirs,omitempty" mapstructure:"add_dirs"`
}

// PromptConfig holds the prompt text or a file to read it from.
// When both are set, File wins.
type PromptConfig struct {
	Text string `yaml:"text,omitempty" json:"text,omitempty" mapstructure:"text"`
	File string `yaml:"file,omitempty" json:"file,omitempty" mapstructure:"file"`
}

// OutputConfig controls how captured output is decoded and printed.
type OutputConfig struct {
	// Encoding is a WHATWG encoding label for the assistant's output.
	// Default: "utf-8"
	Encoding string `yaml:"encoding" json:"encoding" mapstructure:"encoding"`

	// DecodeErrors is "strict" (fail on bad bytes) or "replace" (substitute U+FFFD).
	// Default: "strict"
	DecodeErrors constants.DecodeMode `yaml:"decode_errors" json:"decode_errors" mapstructure:"decode_errors"`

	// Markdown renders the assistant output as markdown when stdout is a terminal.
	// Default: false
	Markdown bool `yaml:"markdown" json:"markdown" mapstructure:"markdown"`
}
