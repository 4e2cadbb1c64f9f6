// Package caddy provides the deterministic, concurrency-safe reply engine
// that answers chat messages without calling an external model. It is
// intentionally small and dependency-light:
//
//   - No logging in the library (callers decide how/what to log)
//   - An explicit, ordered rule table: first match wins
//   - Unicode-aware lower-casing for the substring tests
//   - No error conditions: every input, including the empty string, maps to
//     exactly one reply
//
// Matching is plain substring containment over the lower-cased message, so a
// word like "hit" also satisfies the "hi" rule. That looseness is part of the
// published behavior and covered by tests.
package caddy

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Canned replies, one per rule. The fallback interpolates the player's
// original message verbatim (not the lower-cased copy).
const (
	ReplyClub     = "Based on the distance and conditions, I'd recommend using a 7-iron for this shot."
	ReplyDistance = "Could you tell me the distance to the pin and any obstacles in your way?"
	ReplyWind     = "Wind is a crucial factor. For a headwind, club up. For a tailwind, club down."
	ReplyGreeting = "Hello! I'm your AI golf caddy. How can I help improve your game today?"

	// FallbackFormat is the fmt template used when no keyword rule matches.
	FallbackFormat = "I understand you're asking about: '%s'. Let me help you with that shot selection."
)

// Rule pairs a predicate over the lower-cased message with the reply builder
// invoked when the predicate is the first to match. Reply receives the
// original, un-lowered message.
type Rule struct {
	Match func(lowered string) bool
	Reply func(original string) string
}

// Classifier evaluates an ordered rule list against incoming messages.
// The zero value is not usable; construct with NewClassifier. A Classifier
// is immutable after construction and safe for concurrent use.
type Classifier struct {
	locale language.Tag
	rules  []Rule
}

// NewClassifier returns a Classifier with the default caddy rule table.
func NewClassifier() *Classifier {
	return &Classifier{
		locale: language.English,
		rules:  defaultRules(),
	}
}

// Respond maps message to a reply. Rules are tested in priority order against
// the lower-cased message; the final rule matches unconditionally, so Respond
// is total and never returns an empty reply for a non-matching input.
func (c *Classifier) Respond(message string) string {
	lowered := cases.Lower(c.locale).String(message)
	for _, r := range c.rules {
		if r.Match(lowered) {
			return r.Reply(message)
		}
	}
	// Unreachable with the default table; kept so custom tables stay total.
	return fmt.Sprintf(FallbackFormat, message)
}

// defaultRules builds the rule table. Order is the contract: club advice wins
// over distance, distance over wind, wind over greetings, and everything else
// falls through to the echo fallback.
func defaultRules() []Rule {
	return []Rule{
		{
			Match: containsAny("club"),
			Reply: fixed(ReplyClub),
		},
		{
			Match: containsAny("distance", "yards"),
			Reply: fixed(ReplyDistance),
		},
		{
			Match: containsAny("wind"),
			Reply: fixed(ReplyWind),
		},
		{
			Match: containsAny("hello", "hi"),
			Reply: fixed(ReplyGreeting),
		},
		{
			Match: func(string) bool { return true },
			Reply: func(original string) string { return fmt.Sprintf(FallbackFormat, original) },
		},
	}
}

// containsAny reports whether the message contains at least one keyword.
func containsAny(keywords ...string) func(string) bool {
	return func(lowered string) bool {
		for _, kw := range keywords {
			if strings.Contains(lowered, kw) {
				return true
			}
		}
		return false
	}
}

// fixed wraps a constant reply as a Rule reply builder.
func fixed(reply string) func(string) string {
	return func(string) string { return reply }
}
