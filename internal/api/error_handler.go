package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/timetrack/timesheet-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors: a
// human-readable message plus a stable machine-readable code.
type errorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "...", "code": "..."}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, msg, code := resolveError(err, log, c)
		_ = c.JSON(status, errorResponse{Message: msg, Code: code})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, string) {
	// Echo's own errors (middleware rejections, bind failures, 404 from
	// the router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), codeForStatus(he.Code)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials", "UNAUTHENTICATED"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden", "FORBIDDEN"
	case errors.Is(err, domain.ErrTimesheetNotFound):
		return http.StatusNotFound, "timesheet not found", "NOT_FOUND"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found", "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusUnprocessableEntity, err.Error(), "INVALID_STATUS"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error(), "VALIDATION_FAILED"
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, "email already registered", "EMAIL_TAKEN"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error", "INTERNAL"
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "UNAUTHENTICATED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusBadRequest:
		return "VALIDATION_FAILED"
	default:
		return "INTERNAL"
	}
}
