// Package services – SmartService
//
// This file implements SmartService, the relay behind the smart endpoint.
// Prompts are forwarded verbatim to a TextGenerator (Gemini in production,
// see gemini.go) and the generated reply comes back as plain text. Failures
// are returned as errors; the handler layer folds them into the plain-text
// reply shape the endpoint promises.
package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TextGenerator generates a reply for a single user prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// SmartService relays prompts to the configured text generator.
type SmartService struct {
	// Generator produces replies. A nil Generator means the relay is not
	// configured (e.g. no API key) and every Ask returns ErrRelayNotConfigured.
	Generator TextGenerator
}

// NewSmartService constructs a SmartService around g. g may be nil.
func NewSmartService(g TextGenerator) *SmartService {
	return &SmartService{Generator: g}
}

// Ask forwards prompt to the generator and returns the trimmed reply.
func (s *SmartService) Ask(ctx context.Context, prompt string) (string, error) {
	tr := otel.Tracer("services/SmartService")
	ctx, span := tr.Start(ctx, "Ask",
		trace.WithAttributes(attribute.Int("prompt.len", len(prompt))),
	)
	defer span.End()

	if s.Generator == nil {
		return "", ErrRelayNotConfigured
	}
	reply, err := s.Generator.GenerateText(ctx, prompt)
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}
