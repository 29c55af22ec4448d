package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/domain"
)

type stubSessions struct {
	refs map[string]*domain.AccountRef
	err  error
}

func (s *stubSessions) Session(_ context.Context, id string) (*domain.AccountRef, error) {
	if s.err != nil {
		return nil, s.err
	}
	if ref, ok := s.refs[id]; ok {
		return ref, nil
	}
	return nil, domain.ErrSessionNotFound
}

func newSessionContext(cookie string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: cookie})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireSession_ValidSession(t *testing.T) {
	stub := &stubSessions{refs: map[string]*domain.AccountRef{
		"abc": {ID: "1", Username: "alice", Email: "a@x.com"},
	}}
	c, rec := newSessionContext("abc")

	called := false
	handler := RequireSession(stub, "sid")(func(c echo.Context) error {
		called = true
		ref, _ := c.Get(AccountKey).(*domain.AccountRef)
		if ref == nil || ref.Username != "alice" {
			t.Fatalf("account not set in context: %+v", ref)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireSession_MissingCookie(t *testing.T) {
	c, _ := newSessionContext("")

	handler := RequireSession(&stubSessions{}, "sid")(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestRequireSession_UnknownSession(t *testing.T) {
	c, _ := newSessionContext("expired")

	handler := RequireSession(&stubSessions{}, "sid")(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	var he *echo.HTTPError
	if err := handler(c); !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestRequireSession_StoreFailurePropagates(t *testing.T) {
	boom := errors.New("redis down")
	c, _ := newSessionContext("abc")

	handler := RequireSession(&stubSessions{err: boom}, "sid")(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestRequireSessionOrRedirect(t *testing.T) {
	c, rec := newSessionContext("")

	handler := RequireSessionOrRedirect(&stubSessions{}, "sid")(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	loc := rec.Header().Get(echo.HeaderLocation)
	if !strings.HasPrefix(loc, "/login?error=") || !strings.Contains(loc, "Please+log+in") {
		t.Fatalf("unexpected redirect %q", loc)
	}
}
