package caddy

import (
	"fmt"
	"strings"
	"testing"
)

func TestRespond_PriorityOrder(t *testing.T) {
	c := NewClassifier()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"club plain", "which club here?", ReplyClub},
		{"club uppercase", "What CLUB and what wind?", ReplyClub}, // club outranks wind
		{"club beats distance", "club for this distance?", ReplyClub},
		{"distance", "how far is the distance to carry?", ReplyDistance},
		{"yards", "it's 150 yards out", ReplyDistance},
		{"distance beats wind", "distance with this wind?", ReplyDistance},
		{"wind", "What's the wind doing?", ReplyWind},
		{"hello", "hello there", ReplyGreeting},
		{"hi", "hi", ReplyGreeting},
		{"hi inside hit", "should I punch or hit full?", ReplyGreeting}, // "hit" contains "hi"
		{"wind beats greeting", "hi, windy today", ReplyWind},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.Respond(tc.in); got != tc.want {
				t.Fatalf("Respond(%q) = %q; want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestRespond_FallbackEchoesOriginal(t *testing.T) {
	c := NewClassifier()

	in := "Bunker on my LEFT side"
	want := fmt.Sprintf(FallbackFormat, in)
	if got := c.Respond(in); got != want {
		t.Fatalf("fallback should echo the original casing: got %q want %q", got, want)
	}
}

func TestRespond_EmptyString(t *testing.T) {
	c := NewClassifier()

	want := "I understand you're asking about: ''. Let me help you with that shot selection."
	if got := c.Respond(""); got != want {
		t.Fatalf("Respond(\"\") = %q; want %q", got, want)
	}
}

func TestRespond_CaseInsensitiveMatching(t *testing.T) {
	c := NewClassifier()

	for _, in := range []string{"CLUB", "Club", "cLuB advice please"} {
		if got := c.Respond(in); got != ReplyClub {
			t.Fatalf("Respond(%q) = %q; want club reply", in, got)
		}
	}
}

func TestRespond_Deterministic(t *testing.T) {
	c := NewClassifier()

	in := "What's the wind doing?"
	first := c.Respond(in)
	for i := 0; i < 10; i++ {
		if got := c.Respond(in); got != first {
			t.Fatalf("Respond not deterministic: %q vs %q", got, first)
		}
	}
}

func TestDefaultRules_OrderAndTotality(t *testing.T) {
	rules := defaultRules()
	if len(rules) != 5 {
		t.Fatalf("expected 5 rules, got %d", len(rules))
	}
	// The last rule is the catch-all.
	if !rules[len(rules)-1].Match("anything at all") || !rules[len(rules)-1].Match("") {
		t.Fatalf("final rule must match every input")
	}
	// Earlier rules must not match an input meant for the fallback.
	neutral := "bunker trouble" // "bunker trouble" avoids every keyword
	for i, r := range rules[:len(rules)-1] {
		if r.Match(neutral) {
			t.Fatalf("rule %d unexpectedly matches %q", i, neutral)
		}
	}
}

func TestHelpers_containsAny_fixed(t *testing.T) {
	m := containsAny("wind", "breeze")
	if !m("strong wind today") || !m("light breeze") {
		t.Fatalf("containsAny should match either keyword")
	}
	if m("calm day") {
		t.Fatalf("containsAny should not match absent keywords")
	}

	f := fixed("x")
	if f("ignored") != "x" || f("") != "x" {
		t.Fatalf("fixed should ignore its input")
	}
}

func TestRespond_NeverEmpty(t *testing.T) {
	c := NewClassifier()
	for _, in := range []string{"", " ", "....", "par 5 reachable?", strings.Repeat("x", 500)} {
		if c.Respond(in) == "" {
			t.Fatalf("Respond(%q) returned empty reply", in)
		}
	}
}
