package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/domain"
)

// AccountKey is the echo context key holding the *domain.AccountRef of the
// logged-in account.
const AccountKey = "account"

const (
	MsgLoginRequired = "Please log in to access this resource."
	msgLoginPage     = "Please log in to access this page."
	loginPath        = "/login"
)

// SessionLookup resolves a session ID to the account it belongs to.
type SessionLookup interface {
	Session(ctx context.Context, sessionID string) (*domain.AccountRef, error)
}

// RequireSession rejects requests without a live session with 401.
func RequireSession(sessions SessionLookup, cookieName string) echo.MiddlewareFunc {
	return gate(sessions, cookieName, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusUnauthorized, MsgLoginRequired)
	})
}

// RequireSessionOrRedirect sends browsers without a live session to the
// login page.
func RequireSessionOrRedirect(sessions SessionLookup, cookieName string) echo.MiddlewareFunc {
	target := loginPath + "?error=" + url.QueryEscape(msgLoginPage)
	return gate(sessions, cookieName, func(c echo.Context) error {
		return c.Redirect(http.StatusFound, target)
	})
}

func gate(sessions SessionLookup, cookieName string, deny echo.HandlerFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return deny(c)
			}

			ref, err := sessions.Session(c.Request().Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					return deny(c)
				}
				return err
			}

			c.Set(AccountKey, ref)
			return next(c)
		}
	}
}
