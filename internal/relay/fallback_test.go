package relay

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sadinipathirana/Simple-AI-Chat-Application/internal/config"
)

func fallbackOnly() *Relay {
	return New(nil, config.LLMConfig{})
}

func TestFallbackReply_Rules(t *testing.T) {
	r := fallbackOnly()

	cases := []struct {
		name    string
		message string
		want    string
	}{
		{"hello", "Hello everyone", "Hello! How can I help you today?"},
		{"hi uppercase", "HI THERE", "Hello! How can I help you today?"},
		{"hi embedded", "this is a test", "Hello! How can I help you today?"},
		{"bye", "ok bye now", "Goodbye! Have a great day!"},
		{"goodbye uppercase", "GOODBYE", "Goodbye! Have a great day!"},
		{"how are you", "so, how are you doing", "I'm doing great! How can I assist you?"},
		{"question", "what is Go?", fmt.Sprintf("Interesting question about 'what is Go?'. %s", fallbackHint)},
		{"echo", "tell me a story", fmt.Sprintf("I see: 'tell me a story'. %s", fallbackHint)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, r.fallbackReply(tc.message))
		})
	}
}

func TestFallbackReply_PriorityOrder(t *testing.T) {
	r := fallbackOnly()

	// Greeting outranks the question rule even when both match.
	require.Equal(t, "Hello! How can I help you today?", r.fallbackReply("hi?"))
	// Farewell outranks the question rule.
	require.Equal(t, "Goodbye! Have a great day!", r.fallbackReply("bye?"))
}

func TestFallbackReply_EmbedsMessageVerbatim(t *testing.T) {
	r := fallbackOnly()

	message := "Does ORDER really matter? Yes/No"
	require.Contains(t, r.fallbackReply(message), "'"+message+"'")
}
