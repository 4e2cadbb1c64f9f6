// Caddy chat HTTP handlers.
//
// This file exposes the conversational endpoints of the API:
//   - GET  /       (liveness message for the frontend)
//   - POST /chat   (answer a user message with a canned caddy reply)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses. The server keeps no conversation
// state; clients send the full history with every request and only the current
// message is answered.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-caddy-backend/internal/domain"
)

//
// Service contracts (context-aware)
//

// CaddyService defines the rule-based chat operation consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type CaddyService interface {
	// Answer produces an assistant reply for the given user message.
	Answer(ctx context.Context, message string) (*domain.Message, error)
}

// ShotService defines shot-log operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ShotService interface {
	// Record appends a shot and returns the full log including the new entry.
	Record(ctx context.Context, shot *domain.ShotResult) ([]domain.ShotResult, error)
	// List returns the full log in append order without appending.
	List(ctx context.Context) ([]domain.ShotResult, error)
}

// SmartService defines the LLM relay operation consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type SmartService interface {
	// Ask forwards a raw prompt to the external model and returns its text.
	Ask(ctx context.Context, prompt string) (string, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for chat, the shot log, and the smart
// relay. It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	caddySvc CaddyService
	shotSvc  ShotService
	smartSvc SmartService

	// IdempotencyTTL bounds how long a stored Idempotency-Key result stays
	// replayable. New applies a 24h default; the router overrides it from
	// configuration.
	IdempotencyTTL time.Duration
}

// New constructs and returns a Handlers instance bound to the given services.
func New(caddySvc CaddyService, shotSvc ShotService, smartSvc SmartService) *Handlers {
	return &Handlers{
		caddySvc:       caddySvc,
		shotSvc:        shotSvc,
		smartSvc:       smartSvc,
		IdempotencyTTL: 24 * time.Hour,
	}
}

//
// DTOs
//

// ChatRequest is the JSON payload for the chat endpoint.
//
// Messages carries the caller-owned conversation history; the server reads
// only CurrentMessage. CurrentMessage intentionally has no required binding:
// an empty string is a valid prompt (it routes to the classifier fallback).
type ChatRequest struct {
	// Messages is the full prior conversation, oldest first.
	Messages []domain.Message `json:"messages"`
	// CurrentMessage is the new user turn to answer.
	CurrentMessage string `json:"current_message" example:"What club should I use?"`
}

// RootResponse is the JSON body returned by the root liveness endpoint.
type RootResponse struct {
	Message string `json:"message" example:"CaddyBot API is running"`
}

// rootMessage is the fixed liveness string the frontend checks for.
const rootMessage = "CaddyBot API is running"

//
// Handlers
//

// Root godoc
// @ID          root
// @Summary     API liveness message
// @Description Returns a fixed message confirming the API is running.
// @Tags        Chat
// @Produce     json
//
// @Success     200  {object}  handlers.RootResponse
// @Router      / [get]
func (h *Handlers) Root(c *gin.Context) {
	ok(c, http.StatusOK, RootResponse{Message: rootMessage})
}

// Chat godoc
// @ID          chat
// @Summary     Answer a chat message
// @Description Answers the current user message with a rule-based caddy reply.
// @Description The response role is always "assistant" and the timestamp is the
// @Description server's current time.
// @Tags        Chat
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.ChatRequest  true  "Conversation history and current message"
//
// @Success     200  {object}  domain.Message          "Assistant reply"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /chat [post]
func (h *Handlers) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	m, err := h.caddySvc.Answer(c.Request.Context(), req.CurrentMessage)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeAnswerFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, m)
}
