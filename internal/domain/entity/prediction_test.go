package entity

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelFromIndicator(t *testing.T) {
	assert.Equal(t, LabelSpam, LabelFromIndicator(1))
	assert.Equal(t, LabelHam, LabelFromIndicator(0))
	assert.Equal(t, LabelHam, LabelFromIndicator(2))
	assert.Equal(t, LabelHam, LabelFromIndicator(-1))
}

func TestEchoText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "short text echoed verbatim",
			text:     "Hi there",
			expected: "Hi there",
		},
		{
			name:     "exactly fifty code points",
			text:     strings.Repeat("a", 50),
			expected: strings.Repeat("a", 50),
		},
		{
			name:     "fifty one code points truncated",
			text:     strings.Repeat("a", 51),
			expected: strings.Repeat("a", 50) + "...",
		},
		{
			name:     "multibyte text truncated on code point boundary",
			text:     strings.Repeat("ü", 60),
			expected: strings.Repeat("ü", 50) + "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EchoText(tt.text)

			assert.Equal(t, tt.expected, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestNewBatchPredictionItem(t *testing.T) {
	msg, err := NewMessage(strings.Repeat("win ", 20))
	require.NoError(t, err)

	item := NewBatchPredictionItem(msg, PredictionResult{Label: LabelSpam, Confidence: 0.93})

	assert.Equal(t, LabelSpam, item.Label)
	assert.Equal(t, 0.93, item.Confidence)
	assert.Equal(t, EchoMaxLength+len(EchoEllipsis), utf8.RuneCountInString(item.EchoedText))
	assert.True(t, strings.HasSuffix(item.EchoedText, EchoEllipsis))
}

func TestModelState(t *testing.T) {
	t.Run("string values", func(t *testing.T) {
		assert.Equal(t, "unloaded", ModelStateUnloaded.String())
		assert.Equal(t, "loading", ModelStateLoading.String())
		assert.Equal(t, "ready", ModelStateReady.String())
		assert.Equal(t, "failed", ModelStateFailed.String())
	})

	t.Run("allowed transitions", func(t *testing.T) {
		assert.True(t, ModelStateUnloaded.CanTransitionTo(ModelStateLoading))
		assert.True(t, ModelStateLoading.CanTransitionTo(ModelStateReady))
		assert.True(t, ModelStateLoading.CanTransitionTo(ModelStateFailed))
	})

	t.Run("terminal states do not transition", func(t *testing.T) {
		assert.False(t, ModelStateReady.CanTransitionTo(ModelStateLoading))
		assert.False(t, ModelStateFailed.CanTransitionTo(ModelStateReady))
		assert.False(t, ModelStateUnloaded.CanTransitionTo(ModelStateReady))
		assert.True(t, ModelStateReady.IsTerminal())
		assert.True(t, ModelStateFailed.IsTerminal())
		assert.False(t, ModelStateLoading.IsTerminal())
	})
}
