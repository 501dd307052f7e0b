package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/soyleaf/soyleaf-api/internal/core/ports"
)

type stubSessionStore struct {
	sessions map[string]string
}

func (s *stubSessionStore) Save(_ context.Context, id, username string, _ time.Duration) error {
	s.sessions[id] = username
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (string, error) {
	username, ok := s.sessions[id]
	if !ok {
		return "", ports.ErrSessionNotFound
	}
	return username, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func signSessionToken(t *testing.T, secret, username, jti string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"jti":      jti,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newGateContext(cookie string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSessionGate_ValidSession(t *testing.T) {
	store := &stubSessionStore{sessions: map[string]string{"sess-1": "alice"}}
	token := signSessionToken(t, "secret", "alice", "sess-1")
	c, rec := newGateContext(token)

	called := false
	handler := SessionGate("secret", store)(func(c echo.Context) error {
		called = true
		if c.Get("username") != "alice" {
			t.Fatalf("username not injected")
		}
		if c.Get("session_id") != "sess-1" {
			t.Fatalf("session_id not injected")
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

func TestSessionGate_NoCookieRedirectsToLogin(t *testing.T) {
	store := &stubSessionStore{sessions: map[string]string{}}
	c, rec := newGateContext("")

	handler := SessionGate("secret", store)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %s", loc)
	}
}

func TestSessionGate_GarbageTokenRedirects(t *testing.T) {
	store := &stubSessionStore{sessions: map[string]string{}}
	c, rec := newGateContext("not-a-token")

	handler := SessionGate("secret", store)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
}

func TestSessionGate_WrongSecretRedirects(t *testing.T) {
	store := &stubSessionStore{sessions: map[string]string{"sess-1": "alice"}}
	token := signSessionToken(t, "other-secret", "alice", "sess-1")
	c, rec := newGateContext(token)

	handler := SessionGate("secret", store)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
}

func TestSessionGate_RevokedSessionRedirects(t *testing.T) {
	// Token verifies but its jti is gone from the store: logged out.
	store := &stubSessionStore{sessions: map[string]string{}}
	token := signSessionToken(t, "secret", "alice", "sess-1")
	c, rec := newGateContext(token)

	handler := SessionGate("secret", store)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
}
