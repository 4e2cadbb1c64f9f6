// Package handlers implements the HTTP endpoints of the CaddyBot API.
//
// Every failure, whether raised by a handler or by the router's fallbacks,
// is answered with the same ErrorResponse envelope so clients can branch on
// one shape. Success bodies are endpoint-specific and written through ok.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-caddy-backend/internal/http/middleware"
)

// ErrorResponse is the error envelope shared by all endpoints. RequestID
// echoes the X-Request-ID response header so a client-side failure can be
// matched to server logs; Code is one of the stable constants in errors.go.
type ErrorResponse struct {
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Code      string `json:"code" example:"bad_request"`
	Message   string `json:"message" example:"invalid JSON body"`
}

// fail writes the envelope with the given status and aborts the chain.
// Causes of 5xx responses go through the request-scoped logger; 4xx is the
// client's problem and the access log already records it at warn.
func fail(c *gin.Context, status int, code, msg string) {
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	})
}

// Fail exposes fail to the router for NoRoute/NoMethod fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
