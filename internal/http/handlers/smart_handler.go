// Smart relay HTTP handler.
//
// This file exposes the endpoint that forwards a raw prompt to the external
// language model:
//   - POST /smart   (relay a prompt, return the model's text)
//
// The endpoint deliberately answers 200 even when the relay fails: the failure
// description is folded into the response body as the plain string
// "Error processing request: <description>". Clients that need to distinguish
// model output from failures must match that prefix. Failures are still logged
// server-side with the request-scoped logger.
package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-caddy-backend/internal/http/middleware"
)

// smartPrompt decodes the request body into the prompt string. A body sent as
// application/json is accepted when it is a JSON-encoded string; anything else
// is treated as raw text bytes.
func smartPrompt(contentType string, body []byte) string {
	if contentType == "application/json" {
		var s string
		if err := json.Unmarshal(body, &s); err == nil {
			return s
		}
	}
	return string(body)
}

// Smart godoc
// @ID          smart
// @Summary     Ask the smart caddy
// @Description Forwards the request body as a prompt to the configured language
// @Description model and returns its text output. Relay failures are returned
// @Description as a 200 response whose body starts with "Error processing
// @Description request: ".
// @Tags        Chat
// @Accept      json
// @Accept      plain
// @Produce     json
//
// @Param       body  body  string  true  "Prompt text (JSON string or raw text)"
//
// @Success     200  {string}  string                  "Model output or folded error text"
// @Failure     400  {object}  handlers.ErrorResponse  "Unreadable body"
// @Router      /smart [post]
func (h *Handlers) Smart(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unreadable request body")
		return
	}
	prompt := smartPrompt(c.ContentType(), body)

	reply, err := h.smartSvc.Ask(c.Request.Context(), prompt)
	if err != nil {
		middleware.LoggerFrom(c).Error().Err(err).Msg("smart relay failed")
		ok(c, http.StatusOK, fmt.Sprintf("Error processing request: %v", err))
		return
	}
	ok(c, http.StatusOK, reply)
}
