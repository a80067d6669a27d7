// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all
// endpoints. Every response, success or failure, is an Envelope of
// `{message, data}`; failures carry an empty data object plus a stable code
// and the correlation id. `fail()` centralizes error logging and formatting,
// ensuring 5xx responses are logged with request context.
//
// Example success response:
//
//	HTTP/1.1 200 OK
//	{ "message": "Account found by user id", "data": { ...account... } }
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "Account not found",
//	  "data": {}
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hackhub/hackathon-backend/internal/http/middleware"
)

// Envelope is the uniform response body for every endpoint.
//
// Fields:
//   - RequestID: correlation id, set on failures only, echoed from
//     X-Request-ID so server logs and client errors line up.
//   - Code: stable machine-readable code (see errors.go), failures only.
//   - Message: fixed human-readable message from the catalog.
//   - Data: the resource payload on success, an empty object on failure.
type Envelope struct {
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Code      string `json:"code,omitempty"       example:"not_found"`
	Message   string `json:"message"              example:"Account not found"`
	Data      any    `json:"data"`
}

// fail aborts the request with a structured error envelope.
//
// Server errors (>=500) are logged using the request-scoped logger from
// middleware before the envelope is written.
func fail(c *gin.Context, status int, code, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	resp := Envelope{
		RequestID: reqID,
		Code:      code,
		Message:   msg,
		Data:      gin.H{},
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail().
//
// External packages (e.g., router setup) should call Fail to return
// consistent error envelopes without directly depending on unexported helpers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success envelope with the given message and payload.
func ok(c *gin.Context, status int, msg string, data any) {
	c.JSON(status, Envelope{Message: msg, Data: data})
}
