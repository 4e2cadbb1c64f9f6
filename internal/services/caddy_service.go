// Package services – CaddyService
//
// This file implements CaddyService, which turns a player's chat message into
// an assistant reply. Replies come from the rule-based caddy classifier; the
// service wraps them in a domain.Message stamped with the server-side receipt
// time so clients never have to trust their own clocks for ordering.
//
// Observability: Answer is OpenTelemetry-instrumented like the other services.
package services

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-caddy-backend/internal/caddy"
	"github.com/tbourn/go-caddy-backend/internal/domain"
)

// CaddyService produces assistant replies for the chat endpoint.
type CaddyService struct {
	// Rules is the ordered rule set consulted for every message.
	Rules *caddy.Classifier
}

// NewCaddyService constructs a CaddyService with the default caddy rule set.
func NewCaddyService() *CaddyService {
	return &CaddyService{Rules: caddy.NewClassifier()}
}

// Answer classifies the player's message and returns an assistant message
// stamped with the current server time (UTC, RFC 3339).
func (s *CaddyService) Answer(ctx context.Context, message string) (*domain.Message, error) {
	tr := otel.Tracer("services/CaddyService")
	_, span := tr.Start(ctx, "Answer",
		trace.WithAttributes(attribute.Int("message.len", len(message))),
	)
	defer span.End()

	reply := s.Rules.Respond(message)
	return &domain.Message{
		Role:      domain.RoleAssistant,
		Message:   reply,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}, nil
}
