package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
)

// ----- Stub generator -----

type stubGenerator struct {
	gotPrompt string
	reply     string
	err       error
}

func (g *stubGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	g.gotPrompt = prompt
	return g.reply, g.err
}

// ----- Tests -----

func TestSmartService_Ask_NilGenerator(t *testing.T) {
	s := NewSmartService(nil)

	_, err := s.Ask(context.Background(), "what should I hit?")
	if !errors.Is(err, ErrRelayNotConfigured) {
		t.Fatalf("expected ErrRelayNotConfigured, got %v", err)
	}
}

func TestSmartService_Ask_ForwardsPromptVerbatim(t *testing.T) {
	g := &stubGenerator{reply: "Take one more club into the wind.\n"}
	s := NewSmartService(g)

	prompt := "  160 yards, Uphill, into a two-club wind?  "
	got, err := s.Ask(context.Background(), prompt)
	if err != nil {
		t.Fatalf("Ask error: %v", err)
	}
	if g.gotPrompt != prompt {
		t.Fatalf("generator saw %q; want the untouched prompt %q", g.gotPrompt, prompt)
	}
	if got != "Take one more club into the wind." {
		t.Fatalf("expected trimmed reply, got %q", got)
	}
}

func TestSmartService_Ask_GeneratorErrorPropagates(t *testing.T) {
	sentinel := errors.New("upstream 503")
	s := NewSmartService(&stubGenerator{err: sentinel})

	_, err := s.Ask(context.Background(), "help")
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected generator error to propagate, got %v", err)
	}
}

func TestSmartService_Ask_EmptyReply(t *testing.T) {
	s := NewSmartService(&stubGenerator{reply: "  \n\t "})

	_, err := s.Ask(context.Background(), "anything")
	if !errors.Is(err, ErrEmptyReply) {
		t.Fatalf("expected ErrEmptyReply, got %v", err)
	}
}

func TestNewGeminiGenerator_RequiresAPIKey(t *testing.T) {
	for _, key := range []string{"", "   "} {
		if _, err := NewGeminiGenerator(context.Background(), key, "gemini-3-flash-preview", ""); err == nil {
			t.Fatalf("expected error for api key %q", key)
		}
	}
}

func TestExtractText_ConcatenatesCandidateParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("Aim left, "), genai.Text("smooth 8-iron.")}}},
			{Content: nil},
		},
	}
	if got := extractText(resp); got != "Aim left, smooth 8-iron." {
		t.Fatalf("extractText = %q", got)
	}

	if got := extractText(&genai.GenerateContentResponse{}); got != "" {
		t.Fatalf("expected empty text for empty response, got %q", got)
	}
}
