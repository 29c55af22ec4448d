package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Misterious0572/CognifyzInternshipProject/internal/api/middleware"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/domain"
)

// ctxAccount returns the account snapshot injected by the session middleware.
// A missing value means the route was registered without the gate.
func ctxAccount(c echo.Context) (*domain.AccountRef, error) {
	ref, ok := c.Get(middleware.AccountKey).(*domain.AccountRef)
	if !ok || ref == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, middleware.MsgLoginRequired)
	}
	return ref, nil
}

// bind decodes and bounds-checks a request body.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload.")
	}
	return c.Validate(req)
}
