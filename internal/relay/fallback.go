package relay

import (
	"fmt"
	"strings"
)

const fallbackHint = "(Fallback reply: set GEMINI_API_KEY for real AI responses.)"

// fallbackRule pairs a predicate over the lowercased user message with the
// reply it produces. Rules are evaluated in order; first match wins.
type fallbackRule struct {
	matches func(lower string) bool
	reply   func(message string) string
}

func containsAny(substrings ...string) func(string) bool {
	return func(lower string) bool {
		for _, s := range substrings {
			if strings.Contains(lower, s) {
				return true
			}
		}
		return false
	}
}

func fixedReply(text string) func(string) string {
	return func(string) string { return text }
}

func defaultFallbackRules() []fallbackRule {
	return []fallbackRule{
		{
			matches: containsAny("hi", "hello"),
			reply:   fixedReply("Hello! How can I help you today?"),
		},
		{
			matches: containsAny("bye", "goodbye"),
			reply:   fixedReply("Goodbye! Have a great day!"),
		},
		{
			matches: containsAny("how are you"),
			reply:   fixedReply("I'm doing great! How can I assist you?"),
		},
		{
			matches: containsAny("?"),
			reply: func(message string) string {
				return fmt.Sprintf("Interesting question about '%s'. %s", message, fallbackHint)
			},
		},
	}
}

// fallbackReply picks the canned response for a message. Matching is
// case-insensitive substring on the raw message, in rule priority order.
func (r *Relay) fallbackReply(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range r.rules {
		if rule.matches(lower) {
			return rule.reply(message)
		}
	}
	return fmt.Sprintf("I see: '%s'. %s", message, fallbackHint)
}
