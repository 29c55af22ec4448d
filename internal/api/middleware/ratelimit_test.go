package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRateLimit_DeniesOverBurst(t *testing.T) {
	e := echo.New()
	e.POST("/api/login", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RateLimit(0.001, 2))

	call := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	for i := range 2 {
		if rec := call("10.0.0.1"); rec.Code != http.StatusOK {
			t.Fatalf("request %d within burst: expected 200, got %d", i, rec.Code)
		}
	}

	rec := call("10.0.0.1")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), msgTooManyRequests) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	if rec := call("10.0.0.2"); rec.Code != http.StatusOK {
		t.Fatalf("other clients must have their own budget, got %d", rec.Code)
	}
}
