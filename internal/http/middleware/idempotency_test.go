package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// postSave spins up a bare engine with the validator under test and fires one
// POST /save carrying key (when non-empty). The handler runs inspect before
// answering 200, so flag checks happen inside the request.
func postSave(t *testing.T, opts IdempotencyOptions, lookup IdempotencyLookup, key string, inspect func(*gin.Context)) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(IdempotencyValidator(opts, lookup))
	r.POST("/save", func(c *gin.Context) {
		if inspect != nil {
			inspect(c)
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/save", nil)
	if key != "" {
		req.Header.Set(HeaderIdempotencyKey, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestContextAccessors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	if k, ok := GetIdempotencyKey(c); k != "" || ok {
		t.Fatalf("fresh context: key = %q ok = %v", k, ok)
	}
	if IsReplay(c) {
		t.Fatal("fresh context reported a replay")
	}

	// Foreign value types must read as absent, not panic.
	c.Set(ctxKeyIdemKey, 123)
	if _, ok := GetIdempotencyKey(c); ok {
		t.Fatal("non-string key value reported present")
	}
	c.Set(ctxKeyIdemReplay, "yes")
	if IsReplay(c) {
		t.Fatal("non-bool replay value reported true")
	}

	c.Set(ctxKeyIdemReplay, true)
	if !IsReplay(c) {
		t.Fatal("replay flag not readable")
	}
}

func TestIdempotencyValidator_NoHeaderPassesThrough(t *testing.T) {
	lookupRan := false
	w := postSave(t, IdempotencyOptions{}, func(context.Context, string, time.Time) (bool, error) {
		lookupRan = true
		return false, nil
	}, "", func(c *gin.Context) {
		if _, ok := GetIdempotencyKey(c); ok {
			t.Error("key stashed without a header")
		}
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if lookupRan {
		t.Fatal("lookup ran for a keyless request")
	}
}

func TestIdempotencyValidator_RejectsMalformedKeys(t *testing.T) {
	cases := []struct {
		name string
		opts IdempotencyOptions
		key  string
	}{
		{"over max length", IdempotencyOptions{MaxLen: 5}, "shot-7"},
		{"custom pattern mismatch", IdempotencyOptions{Pattern: regexp.MustCompile(`^[0-9]+$`)}, "abc123"},
		{"default pattern rejects spaces", IdempotencyOptions{}, "save 7"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postSave(t, tc.opts, nil, tc.key, func(*gin.Context) {
				t.Error("handler reached with a malformed key")
			})

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["code"] != "bad_idempotency_key" {
				t.Fatalf("body = %v", body)
			}
		})
	}
}

func TestIdempotencyValidator_StashesKeyWithoutLookup(t *testing.T) {
	w := postSave(t, IdempotencyOptions{}, nil, "save-7:attempt-1", func(c *gin.Context) {
		key, ok := GetIdempotencyKey(c)
		if !ok || key != "save-7:attempt-1" {
			t.Errorf("stashed key = %q ok = %v", key, ok)
		}
		if IsReplay(c) || IsRateBypass(c) {
			t.Error("nil lookup must never flag replay or bypass")
		}
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestIdempotencyValidator_LookupMissAndHit(t *testing.T) {
	t.Run("miss leaves flags unset", func(t *testing.T) {
		var gotKey string
		var gotNow time.Time
		lookup := func(_ context.Context, key string, now time.Time) (bool, error) {
			gotKey, gotNow = key, now
			return false, nil
		}

		w := postSave(t, IdempotencyOptions{}, lookup, "shot-7:attempt-1", func(c *gin.Context) {
			if IsReplay(c) || IsRateBypass(c) {
				t.Error("no replay or bypass expected on a miss")
			}
		})

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		if gotKey != "shot-7:attempt-1" || gotNow.IsZero() {
			t.Fatalf("lookup saw key=%q now=%v", gotKey, gotNow)
		}
	})

	t.Run("hit flags replay and bypass", func(t *testing.T) {
		lookup := func(_ context.Context, key string, _ time.Time) (bool, error) {
			return key == "k-9", nil
		}

		w := postSave(t, IdempotencyOptions{}, lookup, "k-9", func(c *gin.Context) {
			if !IsReplay(c) || !IsRateBypass(c) {
				t.Error("replay and bypass flags expected on a hit")
			}
		})

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
	})
}

func TestIdempotencyValidator_LookupErrorDoesNotBlock(t *testing.T) {
	lookup := func(context.Context, string, time.Time) (bool, error) {
		return false, context.DeadlineExceeded
	}

	w := postSave(t, IdempotencyOptions{}, lookup, "retry-key", func(c *gin.Context) {
		if IsReplay(c) {
			t.Error("lookup error must not mark replay")
		}
	})
	if w.Code != http.StatusOK {
		t.Fatalf("lookup error must not fail the request, got %d", w.Code)
	}
}
