// Shot log HTTP handlers.
//
// This file exposes the endpoint that records golf-shot results:
//   - POST /save   (append a shot and return the full log)
//
// The log is append-only and volatile: nothing updates or deletes entries,
// duplicate client ids are accepted silently, and the sequence is lost on
// process exit. Every successful call returns the complete log in insertion
// order, including the entry just appended.
//
// Idempotency:
// If the client supplies an Idempotency-Key header and a previous successful
// save exists for that key, the handler returns the current full log without
// appending and sets `Idempotency-Replayed: true`.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-caddy-backend/internal/domain"
	"github.com/tbourn/go-caddy-backend/internal/http/middleware"
	"github.com/tbourn/go-caddy-backend/internal/repo"
	"github.com/tbourn/go-caddy-backend/internal/services"
)

// SaveShot godoc
// @ID          saveShot
// @Summary     Record a shot result
// @Description Appends a shot result to the log and returns the full log in
// @Description insertion order. Duplicate ids are accepted. Supports safe
// @Description retries via the Idempotency-Key header (a replayed key returns
// @Description the current log without appending).
// @Tags        Shots
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"  example(save-7:attempt-1)
// @Param       body             body    domain.ShotResult  true  "Shot result payload"
//
// @Success     200  {array}   domain.ShotResult       "Full shot log"
// @Header      200  {string}  Idempotency-Replayed    "true when a stored key was replayed"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /save [post]
func (h *Handlers) SaveShot(c *gin.Context) {
	ctx := c.Request.Context()

	var shot domain.ShotResult
	if err := c.ShouldBindJSON(&shot); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid shot payload")
		return
	}

	// Idempotency (replay path) – the validator middleware stashes the key and
	// marks requests whose key already has a stored result.
	idemKey, _ := middleware.GetIdempotencyKey(c)
	if idemKey != "" && middleware.IsReplay(c) {
		shots, err := h.shotSvc.List(ctx)
		if err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
			return
		}
		c.Header("Idempotency-Replayed", "true")
		ok(c, http.StatusOK, shots)
		return
	}

	shots, err := h.shotSvc.Record(ctx, &shot)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeSaveFailed, err.Error())
		return
	}

	// Idempotency (store path) – best effort; shot.Seq was assigned on append.
	if idemKey != "" {
		if svc, okSvc := h.shotSvc.(*services.ShotService); okSvc && svc.DB != nil {
			_, _ = repo.CreateIdempotency(ctx, svc.DB, idemKey, shot.Seq, http.StatusOK, h.IdempotencyTTL)
		}
	}

	ok(c, http.StatusOK, shots)
}
