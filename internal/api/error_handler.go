package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campuselect/voting-portal/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors: deterministic HTTP codes. The staff UI depends on
	// Expired, NotFound, and AlreadyValidated being distinguishable, since
	// each implies a different in-person action.
	switch {
	case errors.Is(err, domain.ErrCredentialNotFound):
		return http.StatusNotFound, "credential not found"
	case errors.Is(err, domain.ErrFormatUnrecognized):
		return http.StatusUnprocessableEntity, "scanned payload format not recognized"
	case errors.Is(err, domain.ErrAlreadyValidated):
		return http.StatusConflict, "credential already validated"
	case errors.Is(err, domain.ErrAlreadyUsed):
		return http.StatusConflict, "credential already used"
	case errors.Is(err, domain.ErrAlreadyVoted):
		return http.StatusConflict, "voter has already voted"
	case errors.Is(err, domain.ErrCredentialExpired):
		return http.StatusGone, "credential expired"
	case errors.Is(err, domain.ErrNoValidSession):
		return http.StatusForbidden, "no validated voting credential"
	case errors.Is(err, domain.ErrCandidateNotFound):
		return http.StatusNotFound, "candidate not found"
	case errors.Is(err, domain.ErrCandidateInactive):
		return http.StatusUnprocessableEntity, "candidate is not active"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrVoterNotFound):
		return http.StatusNotFound, "voter not found"
	case errors.Is(err, domain.ErrVoterExists):
		return http.StatusConflict, "account already exists"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
