// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements RedactingLogger, the structured access logger for the
// API. Player chat can carry anything a person types, so the logger never
// records request or response bodies; request metadata (query strings, header
// values) is additionally scrubbed of obvious PII before it is emitted.
//
// Besides the access log, RedactingLogger attaches a request-scoped
// zerolog.Logger to the Gin context so handlers can log with the correlation
// ID already bound (see LoggerFrom).
//
// Usage:
//
//	r := gin.New()
//	r.Use(middleware.RequestID())
//	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
//	    MaskHeaders: []string{"X-Api-Key"},
//	}))
//
// Security note: this middleware reduces but does not eliminate the risk of
// sensitive data leaking to logs. Clients should still avoid transmitting PII
// in query strings or headers unless strictly necessary.
package middleware

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// maxQueryLogLength caps the number of bytes of the raw query string logged.
const maxQueryLogLength = 2048

// Patterns for identifiers that must never reach the log. The phone pattern
// is digits-only so it cannot bite into the hex runs of a UUID; examples it
// covers: "+1 212-555-1212", "212 555 1212", "(212) 555-1212".
var (
	idRE    = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	emailRE = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	phoneRE = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

// scrubPII rewrites obvious identifiers in s. IDs go first; the phone
// pattern is loose and would otherwise match digit segments of a UUID.
func scrubPII(s string) string {
	if s == "" {
		return s
	}
	s = idRE.ReplaceAllString(s, "[REDACTED:id]")
	s = emailRE.ReplaceAllString(s, "[REDACTED:email]")
	return phoneRE.ReplaceAllString(s, "[REDACTED:phone]")
}

// maskSet merges opts.MaskHeaders into the always-masked names, lowercased
// so matching is case-insensitive.
func maskSet(extra []string) map[string]struct{} {
	set := map[string]struct{}{
		"authorization": {},
		"cookie":        {},
		"set-cookie":    {},
	}
	for _, h := range extra {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			set[h] = struct{}{}
		}
	}
	return set
}

// scrubHeaders renders request headers for logging: masked names collapse to
// "[REDACTED]", everything else passes through scrubPII.
func scrubHeaders(h http.Header, masked map[string]struct{}) map[string]string {
	out := make(map[string]string, len(h))
	for name, vals := range h {
		if _, hide := masked[strings.ToLower(name)]; hide {
			out[name] = "[REDACTED]"
			continue
		}
		out[name] = scrubPII(strings.Join(vals, ", "))
	}
	return out
}

// RedactOptions configures extra scrub behavior for RedactingLogger.
// MaskHeaders names additional headers whose values are fully replaced,
// on top of the built-in Authorization, Cookie, and Set-Cookie.
type RedactOptions struct {
	MaskHeaders []string
}

// RedactingLogger logs one line per request (route path, scrubbed query and
// headers, status, size, latency) at a level keyed to the outcome: info,
// warn for 4xx, error for 5xx. Before the handler runs it binds a
// request-scoped logger into the context for LoggerFrom.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	masked := maskSet(opts.MaskHeaders)

	return func(c *gin.Context) {
		start := time.Now()

		// The route template, not the raw path, so ids stay out of the log.
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		query := scrubPII(truncate(c.Request.URL.RawQuery, maxQueryLogLength))
		headers := scrubHeaders(c.Request.Header, masked)

		// The response header wins: upstream middleware may have minted a
		// fresh id there that the client never sent.
		rid := c.Writer.Header().Get(requestIDHeader)
		if rid == "" {
			rid = c.GetHeader(requestIDHeader)
		}

		scoped := log.With().
			Str("request_id", rid).
			Str("method", c.Request.Method).
			Str("path", path).
			Logger()
		c.Set(loggerKey, &scoped)

		c.Next()

		status := c.Writer.Status()
		ev := scoped.Info()
		switch {
		case status >= 500:
			ev = scoped.Error()
		case status >= 400:
			ev = scoped.Warn()
		}
		ev.
			Str("query", query).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", headers).
			Msg("http_request")
	}
}
