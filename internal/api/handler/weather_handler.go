package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/ports"
)

type WeatherHandler struct {
	service ports.WeatherService
}

func NewWeatherHandler(service ports.WeatherService) *WeatherHandler {
	return &WeatherHandler{service: service}
}

// Current returns the demo weather for the logged-in user.
//
// @Summary      Current weather
// @Tags         weather
// @Produce      json
// @Success      200  {object}  weatherResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/user-weather [get]
func (h *WeatherHandler) Current(c echo.Context) error {
	if _, err := ctxAccount(c); err != nil {
		return err
	}

	w, cached, err := h.service.Current(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, weatherResponse{Success: true, Weather: *w, Cached: cached})
}

// Dashboard is the landing page for logged-in users. Unauthenticated
// clients are redirected by the session gate before reaching it.
//
// @Summary      Dashboard
// @Tags         weather
// @Produce      json
// @Success      200  {object}  userResponse
// @Success      302
// @Router       /dashboard [get]
func (h *WeatherHandler) Dashboard(c echo.Context) error {
	ref, err := ctxAccount(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, User: ref.Public()})
}
