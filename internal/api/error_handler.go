package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Misterious0572/CognifyzInternshipProject/internal/api/handler"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/api/middleware"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/domain"
)

const (
	msgServerError        = "Server error. Please try again."
	msgInvalidCredentials = "Invalid username or password."
	msgInvalidResetToken  = "Invalid or expired password reset token."
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "errors": [...]}.
//     5xx responses also carry the first message under "message".
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msgs := resolveError(err, log, c)
		resp := handler.NewErrorResponse(msgs...)
		if code >= http.StatusInternalServerError {
			resp.Message = msgs[0]
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, []string) {
	// Echo's own errors (bind failures, 404 from router, rate limiting, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			logUnhandled(log, c, he.Internal)
		}
		return he.Code, []string{fmt.Sprintf("%v", he.Message)}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Messages
	}

	var dup *domain.DuplicateKeyError
	if errors.As(err, &dup) {
		return http.StatusBadRequest, []string{dup.Error()}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, []string{msgInvalidCredentials}
	case errors.Is(err, domain.ErrResetTokenNotFound):
		return http.StatusBadRequest, []string{msgInvalidResetToken}
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, []string{middleware.MsgLoginRequired}
	}

	// Unexpected error: log the real cause, return a generic message.
	logUnhandled(log, c, err)
	return http.StatusInternalServerError, []string{msgServerError}
}

func logUnhandled(log zerolog.Logger, c echo.Context, err error) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")
}
