package handlers

import (
	"net/http"

	"expense-manager/internal/errors"

	"github.com/labstack/echo/v4"
)

// Every handler reports failures through SendError or SendSystemError so
// the wire format stays uniform: one error envelope, one code catalog, the
// request's trace ID attached. Raw echo.NewHTTPError or ad hoc c.JSON error
// bodies bypass the catalog and must not be used.
//
// SendError is for client and business failures (4xx): validation,
// authentication, not-found, duplicates. SendSystemError is for anything
// internal (5xx); it wraps the cause so database or service details never
// reach the client.

// TraceIDContextKey mirrors the middleware context key. Kept local so
// handlers do not import the middleware package.
const TraceIDContextKey = "trace_id"

// SuccessResponse is the standard success envelope. Meta carries pagination
// where a listing needs it.
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorResponse aliases the shared error envelope for use in assertions.
type ErrorResponse = errors.ErrorResponse

func getTraceID(c echo.Context) string {
	if id, ok := c.Get(TraceIDContextKey).(string); ok {
		return id
	}
	return ""
}

// SendError answers with the catalog entry for code, at the status the
// catalog maps it to.
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	resp := errors.NewErrorResponse(code, getTraceID(c), opts...)
	return c.JSON(resp.GetHTTPStatus(), resp)
}

// SendSystemError answers 500 with a generic envelope; the underlying error
// is recorded for the log but never serialized to the client.
func SendSystemError(c echo.Context, err error) error {
	resp, _ := errors.WrapSystemError(err, getTraceID(c))
	return c.JSON(http.StatusInternalServerError, resp)
}

// SendDatabaseError answers 500 with the retry-suggesting SYSTEM_002
// envelope for failed store round-trips. The store error itself stays
// server-side.
func SendDatabaseError(c echo.Context, err error) error {
	resp, _ := errors.WrapDatabaseError(err, getTraceID(c))
	return c.JSON(http.StatusInternalServerError, resp)
}
