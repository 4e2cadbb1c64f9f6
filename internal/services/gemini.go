// Package services – GeminiGenerator
//
// This file implements TextGenerator on top of the Google Generative AI SDK.
// The generator owns a genai.Client configured once at startup; the caddy
// system prompt rides along as a system instruction on every request.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiGenerator implements TextGenerator using the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiGenerator dials the Generative Language API and configures the
// named model. systemPrompt, when non-blank, is attached as the model's
// system instruction.
func NewGeminiGenerator(ctx context.Context, apiKey, modelName, systemPrompt string) (*GeminiGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini api key required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.3)
	model.SetTopP(0.95)
	if sp := strings.TrimSpace(systemPrompt); sp != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(sp)},
		}
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

// GenerateText implements TextGenerator.
func (g *GeminiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return extractText(resp), nil
}

// Close releases the underlying API client.
func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

// extractText concatenates the text parts of all candidates.
func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
