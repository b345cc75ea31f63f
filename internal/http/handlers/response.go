// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response envelope used across all endpoints.
// Every terminal state of a proxy request (success, not-found, validation
// failure, misconfiguration) is a JSON body with a `success` flag; there is
// no case where the handler returns without a body. Front ends only ever
// branch on `success` and `data`.
//
// Example success response:
//
//	HTTP/1.1 200 OK
//	{ "success": true, "data": { "id": 1942, "name": "The Witcher 3..." }, "cached": true }
//
// Example error response:
//
//	HTTP/1.1 503 Service Unavailable
//	{
//	  "success": false,
//	  "data": null,
//	  "code": "IGDB_NOT_CONFIGURED",
//	  "message": "IGDB credentials are not configured",
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kpavlou/go-igdb-proxy/internal/http/middleware"
)

// ProxyResponse is the uniform envelope returned by all endpoints.
//
// Fields:
//   - Success: whether the request completed as an answerable query. A
//     single lookup with no upstream match is still Success=true with null
//     Data; "not found" is not an error at this layer.
//   - Data: a GameRecord, a GameRecord array, or null.
//   - Cached: present on single lookups only; reports a result-cache hit.
//   - Code: stable machine-readable code on failures (see errors.go).
//   - Message: human-readable diagnostics, safe for display.
//   - RequestID: correlation id echoed from X-Request-ID.
type ProxyResponse struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data"`
	Cached    *bool  `json:"cached,omitempty"`
	Code      string `json:"code,omitempty" example:"bad_request"`
	Message   string `json:"message,omitempty" example:"gameName is required"`
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
}

// fail aborts the request with a structured failure envelope and logs
// server-side errors (>=500) with the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	resp := ProxyResponse{
		Success:   false,
		Code:      code,
		Message:   msg,
		RequestID: reqID,
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
// consistent envelopes without depending on unexported helpers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
