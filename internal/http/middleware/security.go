// Hardening headers for a JSON API behind a reverse proxy. No CSP: nothing
// here serves HTML.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const exposeHeadersHeader = "Access-Control-Expose-Headers"

// SecurityOptions configures SecurityHeaders.
//
// EnableHSTS must only be set when traffic is HTTPS end-to-end, proxy hop
// included; the header is emitted solely on requests that arrived over HTTPS.
// HSTSMaxAge defaults to 180 days when unset. NoStore adds the no-cache
// trio for sensitive responses. EnablePolicy adds browser feature policies,
// inert for non-browser clients.
type SecurityOptions struct {
	EnableHSTS   bool
	HSTSMaxAge   time.Duration
	NoStore      bool
	EnablePolicy bool
}

// SecurityHeaders attaches a conservative header set to every response:
// always X-Content-Type-Options, X-Frame-Options and Referrer-Policy, plus
// the optional groups selected in opt. When an upstream middleware has set
// X-Request-ID, it is appended to Access-Control-Expose-Headers so browser
// clients can correlate failures with server logs.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	maxAge := opt.HSTSMaxAge
	if maxAge <= 0 {
		maxAge = 180 * 24 * time.Hour
	}
	hstsValue := "max-age=" + strconv.Itoa(int(maxAge.Seconds())) + "; includeSubDomains; preload"

	return func(c *gin.Context) {
		h := c.Writer.Header()

		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")

		if opt.EnablePolicy {
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
		}

		if opt.NoStore {
			h.Set("Cache-Control", "no-store")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")
		}

		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hstsValue)
		}

		if h.Get(requestIDHeader) != "" {
			exposeHeader(h, requestIDHeader)
		}

		c.Next()
	}
}

// exposeHeader appends name to Access-Control-Expose-Headers, leaving any
// existing entries (the CORS layer writes its own) untouched.
func exposeHeader(h http.Header, name string) {
	cur := h.Get(exposeHeadersHeader)
	switch {
	case cur == "":
		h.Set(exposeHeadersHeader, name)
	case strings.Contains(cur, name):
		// already exposed
	default:
		h.Set(exposeHeadersHeader, cur+", "+name)
	}
}

// isHTTPS reports whether the request arrived over TLS, directly or behind a
// proxy that sets X-Forwarded-Proto.
func isHTTPS(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
