// Package httperr defines the API error taxonomy and its HTTP rendering.
// Every failure leaving a handler carries a machine-readable kind so
// clients can disambiguate remediation (register as donor vs. already
// responded) without parsing message text.
package httperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Kind classifies an API failure.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindForbidden    Kind = "forbidden"
	KindInvalidState Kind = "invalid_state"
	KindConflict     Kind = "conflict"
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindUnavailable  Kind = "unavailable"
	KindInternal     Kind = "internal"
)

// Error is an API error with a machine-readable kind and a human-readable
// message. Hint is optional remediation advice.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Status maps the error kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindInvalidState, KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func Forbidden(msg string) *Error    { return &Error{Kind: KindForbidden, Message: msg} }
func InvalidState(msg string) *Error { return &Error{Kind: KindInvalidState, Message: msg} }
func Conflict(msg string) *Error     { return &Error{Kind: KindConflict, Message: msg} }
func Validation(msg string) *Error   { return &Error{Kind: KindValidation, Message: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }
func Unavailable(msg string) *Error  { return &Error{Kind: KindUnavailable, Message: msg} }
func Internal(msg string) *Error     { return &Error{Kind: KindInternal, Message: msg} }

// WithHint attaches remediation advice and returns the error.
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

type errorBody struct {
	Error *Error `json:"error"`
}

// Handler returns an echo HTTPErrorHandler that renders the taxonomy.
// echo.HTTPError values (binding failures, RequireRole, 404 routing) are
// folded into the closest kind; anything else becomes an opaque internal
// error so store and driver details never reach the client.
func Handler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		apiErr := asAPIError(err)
		if apiErr.Kind == KindInternal {
			logger.Error().
				Err(err).
				Str("path", c.Request().URL.Path).
				Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(apiErr.Status())
			return
		}
		_ = c.JSON(apiErr.Status(), errorBody{Error: apiErr})
	}
}

func asAPIError(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg := fmt.Sprintf("%v", httpErr.Message)
		switch httpErr.Code {
		case http.StatusNotFound:
			return NotFound(msg)
		case http.StatusForbidden:
			return Forbidden(msg)
		case http.StatusUnauthorized:
			return Unauthorized(msg)
		case http.StatusBadRequest:
			return Validation(msg)
		case http.StatusConflict:
			return Conflict(msg)
		case http.StatusServiceUnavailable:
			return Unavailable(msg)
		default:
			return Internal(msg)
		}
	}

	return Internal("internal server error")
}
