// Correlation IDs, panic recovery, and access to the request-scoped logger.
//
// Chain order matters: RequestID first, then RedactingLogger, then Recovery,
// so both access logs and panic reports carry the correlation ID.
package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// requestIDKey is the Gin context key holding the correlation ID.
	requestIDKey = "requestID"
	// requestIDHeader propagates the correlation ID to and from clients.
	requestIDHeader = "X-Request-ID"
	// loggerKey is the Gin context key for the request-scoped logger.
	loggerKey = "logger"
)

// RequestID reuses an incoming X-Request-ID or mints a UUIDv4, stores it in
// the context, and echoes it on the response so clients can quote it back.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// Recovery turns panics into logged 500s. The stack goes to the log, never
// the client; the body is the standard envelope with code internal_error.
// When the handler already wrote a response only the status can be forced.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			rid := c.GetString(requestIDKey)
			log.Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Str("request_id", rid).
				Msg("panic recovered")

			if c.Writer.Written() {
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			c.Header("Content-Type", "application/json")
			c.Header(requestIDHeader, rid)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"request_id": rid,
				"code":       "internal_error",
				"message":    "internal server error",
			})
		}()
		c.Next()
	}
}

// LoggerFrom returns the request-scoped logger attached by RedactingLogger,
// or a plain fallback when none is attached, so callers never nil-check.
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	v, _ := c.Get(loggerKey)
	if lg, ok := v.(*zerolog.Logger); ok {
		return lg
	}
	fallback := log.With().Logger()
	return &fallback
}

// truncate caps s at limit bytes, marking the cut with an ellipsis. A limit
// of zero or less disables the cap. Byte truncation can split a rune, which
// is tolerable in log output.
func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	return s[:limit] + "…"
}
