// Package middleware holds the HTTP plumbing shared by every route:
// panic recovery, request correlation IDs, request logging and rate
// limiting.
package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDHeader is the header used to propagate request correlation IDs.
const RequestIDHeader = "X-Request-ID"

// requestIDKey is the echo context key the correlation ID is stored under.
const requestIDKey = "request_id"

// RequestIDFrom returns the correlation ID set by RequestID, or "" when the
// middleware did not run.
func RequestIDFrom(c echo.Context) string {
	rid, _ := c.Get(requestIDKey).(string)
	return rid
}

// RequestID returns middleware that ensures every request carries a
// correlation ID. An inbound X-Request-ID is preserved; otherwise a fresh
// UUID is generated. The ID is stored on the echo context and echoed back
// in the response header.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(RequestIDHeader)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Set(requestIDKey, rid)
			c.Response().Header().Set(RequestIDHeader, rid)
			return next(c)
		}
	}
}
