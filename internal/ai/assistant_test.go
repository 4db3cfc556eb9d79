package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/relay/internal/constants"
	"github.com/mrz1836/relay/internal/domain"
	relayerrors "github.com/mrz1836/relay/internal/errors"
)

// MockRunner is a test implementation of Runner.
type MockRunner struct {
	RunFunc  func(ctx context.Context, req *domain.InvocationRequest) (*domain.InvocationResult, error)
	Requests []*domain.InvocationRequest
}

func (m *MockRunner) Run(ctx context.Context, req *domain.InvocationRequest) (*domain.InvocationResult, error) {
	m.Requests = append(m.Requests, req)
	if m.RunFunc != nil {
		return m.RunFunc(ctx, req)
	}
	return &domain.InvocationResult{}, nil
}

func TestCLIAssistant_Ask(t *testing.T) {
	template := &domain.InvocationRequest{
		Executables:  []string{"claude"},
		Args:         []string{"--print"},
		Prompt:       "template prompt",
		Encoding:     "utf-8",
		DecodeErrors: constants.DecodeStrict,
	}

	t.Run("returns stdout and sends prompt", func(t *testing.T) {
		runner := &MockRunner{
			RunFunc: func(_ context.Context, req *domain.InvocationRequest) (*domain.InvocationResult, error) {
				return &domain.InvocationResult{Stdout: "echo: " + req.Prompt}, nil
			},
		}
		assistant := NewCLIAssistant(runner, template)

		out, err := assistant.Ask(context.Background(), "hello")

		require.NoError(t, err)
		assert.Equal(t, "echo: hello", out)
		require.Len(t, runner.Requests, 1)
		assert.Equal(t, []string{"--print"}, runner.Requests[0].Args)
		assert.Equal(t, "template prompt", template.Prompt, "template is not mutated")
	})

	t.Run("propagates exit error", func(t *testing.T) {
		runner := &MockRunner{
			RunFunc: func(context.Context, *domain.InvocationRequest) (*domain.InvocationResult, error) {
				return &domain.InvocationResult{ExitCode: 1, Stderr: "auth error"},
					&relayerrors.ExitError{Name: "claude", Code: 1, Stderr: "auth error"}
			},
		}
		assistant := NewCLIAssistant(runner, template)

		out, err := assistant.Ask(context.Background(), "hello")

		assert.Empty(t, out)
		code, ok := relayerrors.ExitCode(err)
		require.True(t, ok)
		assert.Equal(t, 1, code)
	})

	t.Run("requests do not share slices", func(t *testing.T) {
		runner := &MockRunner{
			RunFunc: func(_ context.Context, req *domain.InvocationRequest) (*domain.InvocationResult, error) {
				req.Args[0] = "--mutated"
				return &domain.InvocationResult{}, nil
			},
		}
		assistant := NewCLIAssistant(runner, template)

		_, err := assistant.Ask(context.Background(), "one")
		require.NoError(t, err)
		_, err = assistant.Ask(context.Background(), "two")
		require.NoError(t, err)

		assert.Equal(t, "--print", template.Args[0])
	})
}
