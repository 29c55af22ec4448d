package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Misterious0572/CognifyzInternshipProject/internal/api/middleware"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/domain"
)

type stubWeatherService struct {
	w      domain.Weather
	cached bool
	err    error
}

func (s *stubWeatherService) Current(context.Context) (*domain.Weather, bool, error) {
	if s.err != nil {
		return nil, false, s.err
	}
	return &s.w, s.cached, nil
}

func TestWeatherHandler_Current(t *testing.T) {
	h := NewWeatherHandler(&stubWeatherService{
		w:      domain.Weather{City: "London", Temperature: "20°C", Condition: "Cloudy", Humidity: "50%", WindSpeed: "10 km/h"},
		cached: true,
	})
	c, rec := newJSONContext(http.MethodGet, "/api/user-weather", "")
	c.Set(middleware.AccountKey, &domain.AccountRef{Username: "alice"})

	if err := h.Current(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decode(t, rec)
	w, _ := resp["weather"].(map[string]any)
	if resp["cached"] != true || w["city"] != "London" || w["windSpeed"] != "10 km/h" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestWeatherHandler_Current_RequiresAccount(t *testing.T) {
	h := NewWeatherHandler(&stubWeatherService{})
	c, _ := newJSONContext(http.MethodGet, "/api/user-weather", "")

	var he *echo.HTTPError
	if err := h.Current(c); !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestWeatherHandler_Current_ProviderError(t *testing.T) {
	boom := errors.New("provider down")
	h := NewWeatherHandler(&stubWeatherService{err: boom})
	c, _ := newJSONContext(http.MethodGet, "/api/user-weather", "")
	c.Set(middleware.AccountKey, &domain.AccountRef{Username: "alice"})

	if err := h.Current(c); !errors.Is(err, boom) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestWeatherHandler_Dashboard(t *testing.T) {
	h := NewWeatherHandler(&stubWeatherService{})
	c, rec := newJSONContext(http.MethodGet, "/dashboard", "")
	c.Set(middleware.AccountKey, &domain.AccountRef{Username: "alice", Email: "a@x.com"})

	if err := h.Dashboard(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
