package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vibast-solutions/ms-go-accounts/app/entity"
	"github.com/vibast-solutions/ms-go-accounts/app/middleware"
	"github.com/vibast-solutions/ms-go-accounts/app/service"

	"github.com/labstack/echo/v4"
)

type stubSessions struct {
	user *entity.User
	err  error
	seen string
}

func (s *stubSessions) CurrentUser(_ context.Context, accessToken string) (*entity.User, error) {
	s.seen = accessToken
	return s.user, s.err
}

type stubRoles struct {
	allowed bool
	err     error
}

func (s *stubRoles) HasRole(context.Context, uint64, string) (bool, error) {
	return s.allowed, s.err
}

func newTestContext(t *testing.T, cookie string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: cookie})
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestRequireAuth_MissingCookie(t *testing.T) {
	m := middleware.NewAuthMiddleware(&stubSessions{}, &stubRoles{})
	c, rec := newTestContext(t, "")

	if err := m.RequireAuth(okHandler)(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	sessions := &stubSessions{err: service.ErrUnauthenticated}
	m := middleware.NewAuthMiddleware(sessions, &stubRoles{})
	c, rec := newTestContext(t, "bad-token")

	if err := m.RequireAuth(okHandler)(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if sessions.seen != "bad-token" {
		t.Fatalf("expected cookie value forwarded, got %q", sessions.seen)
	}
}

func TestRequireAuth_StorageErrorPropagates(t *testing.T) {
	boom := errors.New("connection lost")
	m := middleware.NewAuthMiddleware(&stubSessions{err: boom}, &stubRoles{})
	c, _ := newTestContext(t, "tok")

	if err := m.RequireAuth(okHandler)(c); !errors.Is(err, boom) {
		t.Fatalf("expected storage error to propagate, got %v", err)
	}
}

func TestRequireAuth_SetsUser(t *testing.T) {
	user := &entity.User{ID: 5, Email: "a@x.com"}
	m := middleware.NewAuthMiddleware(&stubSessions{user: user}, &stubRoles{})
	c, rec := newTestContext(t, "tok")

	handler := m.RequireAuth(func(c echo.Context) error {
		got, ok := middleware.UserFromContext(c)
		if !ok || got.ID != 5 {
			t.Fatalf("expected user 5 in context, got %+v (ok=%v)", got, ok)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOptionalAuth_ContinuesWithoutUser(t *testing.T) {
	m := middleware.NewAuthMiddleware(&stubSessions{err: service.ErrUnauthenticated}, &stubRoles{})

	for _, cookie := range []string{"", "expired-token"} {
		c, rec := newTestContext(t, cookie)

		handler := m.OptionalAuth(func(c echo.Context) error {
			if _, ok := middleware.UserFromContext(c); ok {
				t.Fatalf("expected no user in context for cookie %q", cookie)
			}
			return c.NoContent(http.StatusOK)
		})

		if err := handler(c); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	}
}

func TestOptionalAuth_SetsUserWhenValid(t *testing.T) {
	user := &entity.User{ID: 5}
	m := middleware.NewAuthMiddleware(&stubSessions{user: user}, &stubRoles{})
	c, _ := newTestContext(t, "tok")

	handler := m.OptionalAuth(func(c echo.Context) error {
		got, ok := middleware.UserFromContext(c)
		if !ok || got.ID != 5 {
			t.Fatalf("expected user 5 in context, got %+v (ok=%v)", got, ok)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
}

func TestRequireRole_NoUser(t *testing.T) {
	m := middleware.NewAuthMiddleware(&stubSessions{}, &stubRoles{allowed: true})
	c, rec := newTestContext(t, "")

	if err := m.RequireRole("admin")(okHandler)(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_Forbidden(t *testing.T) {
	user := &entity.User{ID: 5}
	m := middleware.NewAuthMiddleware(&stubSessions{user: user}, &stubRoles{allowed: false})
	c, rec := newTestContext(t, "tok")

	handler := m.RequireAuth(m.RequireRole("admin")(okHandler))
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRole_Allowed(t *testing.T) {
	user := &entity.User{ID: 5}
	m := middleware.NewAuthMiddleware(&stubSessions{user: user}, &stubRoles{allowed: true})
	c, rec := newTestContext(t, "tok")

	handler := m.RequireAuth(m.RequireRole("admin")(okHandler))
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
