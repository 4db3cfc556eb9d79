package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	relayerrors "github.com/mrz1836/relay/internal/errors"
)

func TestSentinelErrors_Messages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"ErrExecutableNotFound", relayerrors.ErrExecutableNotFound, "executable not found"},
		{"ErrAssistantFailed", relayerrors.ErrAssistantFailed, "assistant invocation failed"},
		{"ErrOutputDecode", relayerrors.ErrOutputDecode, "output decode failed"},
		{"ErrEmptyPrompt", relayerrors.ErrEmptyPrompt, "prompt is empty"},
		{"ErrConfigNil", relayerrors.ErrConfigNil, "config is nil"},
		{"ErrPromptCanceled", relayerrors.ErrPromptCanceled, "prompt canceled"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		assert.NoError(t, relayerrors.Wrap(nil, "context"))
		assert.NoError(t, relayerrors.Wrapf(nil, "context %d", 1))
	})

	t.Run("preserves chain", func(t *testing.T) {
		err := relayerrors.Wrap(relayerrors.ErrEmptyPrompt, "build request")

		require.ErrorIs(t, err, relayerrors.ErrEmptyPrompt)
		assert.Equal(t, "build request: prompt is empty", err.Error())
	})

	t.Run("formats message", func(t *testing.T) {
		err := relayerrors.Wrapf(relayerrors.ErrUnknownEncoding, "encoding %q", "klingon")

		require.ErrorIs(t, err, relayerrors.ErrUnknownEncoding)
		assert.Equal(t, `encoding "klingon": unknown encoding`, err.Error())
	})
}

func TestExitError(t *testing.T) {
	exitErr := &relayerrors.ExitError{Name: "claude", Code: 3, Stderr: "auth error"}

	assert.Equal(t, "claude exited with code 3", exitErr.Error())
	require.ErrorIs(t, exitErr, relayerrors.ErrAssistantFailed)

	wrapped := fmt.Errorf("run: %w", exitErr)
	code, ok := relayerrors.ExitCode(wrapped)
	assert.True(t, ok)
	assert.Equal(t, 3, code)

	_, ok = relayerrors.ExitCode(stderrors.New("plain"))
	assert.False(t, ok)
}

func TestActionable(t *testing.T) {
	msg, action := relayerrors.Actionable(nil)
	assert.Empty(t, msg)
	assert.Empty(t, action)

	msg, action = relayerrors.Actionable(&relayerrors.ExitError{Name: "claude", Code: 1})
	assert.Equal(t, "The assistant CLI exited with an error.", msg)
	assert.NotEmpty(t, action)

	msg, action = relayerrors.Actionable(relayerrors.ErrConfigNotFound)
	assert.NotEmpty(t, msg)
	assert.Empty(t, action)
}
