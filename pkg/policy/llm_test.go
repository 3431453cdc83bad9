package policy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boristopalov/recsim/pkg/core"
)

// mockCompleter implements providers.Completer for testing.
type mockCompleter struct {
	reply      string
	err        error
	lastPrompt string
}

func (m *mockCompleter) Complete(ctx context.Context, model string, prompt string) (string, error) {
	m.lastPrompt = prompt
	return m.reply, m.err
}

func testObservation() core.Observation {
	return core.Observation{
		0.2, 0.2, 0.2, 0.2, 0.2, // interests
		0.5, 0.5, 0.7, 0.5, 0.1, // skill, time, completion, satisfaction, history
		0.3, 0.3, 0.3, 0.3, 0.3, // context
	}
}

func TestLLMParsesAnswer(t *testing.T) {
	mock := &mockCompleter{reply: "The learner looks under-challenged.\nANSWER: 2"}
	p := NewLLM(mock, "gpt-4o-mini")

	action, err := p.SelectAction(context.Background(), testObservation(), core.Discrete{N: 5})
	require.NoError(t, err)
	assert.Equal(t, 2, action)
	assert.Contains(t, mock.lastPrompt, "5 courses")
	assert.Contains(t, mock.lastPrompt, "ANSWER")
}

func TestLLMRejectsMissingAnswer(t *testing.T) {
	mock := &mockCompleter{reply: "I would recommend something fun."}
	p := NewLLM(mock, "gpt-4o-mini")

	_, err := p.SelectAction(context.Background(), testObservation(), core.Discrete{N: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no ANSWER")
}

func TestLLMRejectsOutOfRangeAnswer(t *testing.T) {
	mock := &mockCompleter{reply: "ANSWER: 99"}
	p := NewLLM(mock, "gpt-4o-mini")

	_, err := p.SelectAction(context.Background(), testObservation(), core.Discrete{N: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside catalog")
}

func TestLLMPropagatesClientError(t *testing.T) {
	boom := errors.New("rate limited")
	p := NewLLM(&mockCompleter{err: boom}, "gpt-4o-mini")

	_, err := p.SelectAction(context.Background(), testObservation(), core.Discrete{N: 5})
	require.ErrorIs(t, err, boom)
}
