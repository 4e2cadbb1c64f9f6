// Idempotency-Key handling for POST /save.
//
// The validator checks the header's shape, stashes the key in the Gin
// context, and asks a caller-supplied lookup whether the key already names a
// completed save. Keys are global: with no authenticated identity a key alone
// names the operation, so clients wanting per-session deduplication embed a
// session marker in the key itself. Replays are only flagged here; the
// handler decides how to serve them (it returns the current log without
// appending). Storage stays behind the IdempotencyLookup type so this file
// never touches the database.
package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey carries the client's dedup key. The value must be
// stable across retries of one semantic operation.
const HeaderIdempotencyKey = "Idempotency-Key"

// Context keys, read back through the accessors below and by the rate
// limiter's bypass check.
const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay"
	ctxKeyRateBypass = "rate.bypass"
)

// defaultKeyPattern accepts an RFC 7230-ish token plus the separators clients
// commonly build keys from.
var defaultKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)

// GetIdempotencyKey returns the validated key stashed by IdempotencyValidator.
// Handlers read this instead of the raw header so they only ever see keys
// that passed validation.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	key := c.GetString(ctxKeyIdemKey)
	return key, key != ""
}

// IsReplay reports whether this request's key matched a stored, unexpired
// record, meaning the operation already completed once.
func IsReplay(c *gin.Context) bool {
	return c.GetBool(ctxKeyIdemReplay)
}

// IdempotencyOptions tunes header validation. MaxLen values <= 0 fall back to
// 200; a nil Pattern falls back to defaultKeyPattern. TTL enforcement belongs
// to the lookup, which owns the storage semantics.
type IdempotencyOptions struct {
	MaxLen  int
	Pattern *regexp.Regexp
}

// IdempotencyLookup reports whether a still-valid completed result exists for
// key at the given time. Errors mean the lookup itself failed; callers should
// treat that as "no replay" rather than blocking the request.
type IdempotencyLookup func(ctx context.Context, key string, now time.Time) (exists bool, err error)

// IdempotencyValidator validates the Idempotency-Key header when present,
// stashes the key, and flags detected replays in the context. Requests
// without the header pass through untouched; malformed keys get a 400 with a
// compact body. Replayed requests also set the rate-limit bypass flag, since
// serving a stored result costs nothing worth limiting.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = defaultKeyPattern
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		switch {
		case key == "":
			// Nothing to validate.
		case len(key) > maxLen, !pat.MatchString(key):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"code":    "bad_idempotency_key",
				"message": "invalid Idempotency-Key",
			})
			return
		default:
			c.Set(ctxKeyIdemKey, key)
			if lookup != nil {
				// Lookup errors read as a miss so a broken store cannot
				// wedge every keyed request.
				if seen, _ := lookup(c.Request.Context(), key, time.Now().UTC()); seen {
					c.Set(ctxKeyIdemReplay, true)
					c.Set(ctxKeyRateBypass, true)
				}
			}
		}
		c.Next()
	}
}
