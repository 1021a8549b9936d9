package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/memberhub/membership-api/internal/api/middleware"
	"github.com/memberhub/membership-api/internal/core/domain"
	"github.com/memberhub/membership-api/internal/core/ports"
)

type stubAuthService struct {
	loginFn  func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	logoutFn func(ctx context.Context, token string, kind domain.Kind) error
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, token string, kind domain.Kind) error {
	if s.logoutFn != nil {
		return s.logoutFn(ctx, token, kind)
	}
	return nil
}

func TestAuthHandler_Login(t *testing.T) {
	expires := time.Now().UTC().Add(domain.SessionTTL)
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "ada@example.com" || password != "s3cretpass" {
				return nil, domain.ErrInvalidCredentials
			}
			return &ports.LoginResult{
				Principal: &domain.Principal{
					Kind: domain.KindUser,
					User: &domain.User{ID: "u1", Email: email, Verified: true},
				},
				Session: &domain.Session{Token: "tok-9", PrincipalID: "u1", Kind: domain.KindUser, ExpiresAt: expires},
			}, nil
		},
	}
	handler := NewAuthHandler(stub, false)

	c, rec := newTestContext(t, http.MethodPost, "/api/login", `{"email":"ada@example.com","password":"s3cretpass"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["session_token"] != "tok-9" || resp["kind"] != "user" {
		t.Fatalf("unexpected payload: %+v", resp)
	}

	cookie := findSessionCookie(rec.Result().Cookies())
	if cookie == nil {
		t.Fatalf("session cookie not set")
	}
	if cookie.Value != "tok-9" || !cookie.HttpOnly {
		t.Fatalf("unexpected cookie: %+v", cookie)
	}
}

func TestAuthHandler_LoginBadCredentialsPropagates(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, false)

	c, rec := newTestContext(t, http.MethodPost, "/api/login", `{"email":"ada@example.com","password":"wrongwrong"}`)
	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
	if cookie := findSessionCookie(rec.Result().Cookies()); cookie != nil {
		t.Fatalf("failed login must not set a cookie")
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	revoked := ""
	stub := &stubAuthService{
		logoutFn: func(_ context.Context, token string, kind domain.Kind) error {
			revoked = token
			if kind != domain.KindUser {
				t.Fatalf("expected user partition, got %s", kind)
			}
			return nil
		},
	}
	handler := NewAuthHandler(stub, false)

	c, rec := newTestContext(t, http.MethodPost, "/api/logout", "")
	c.Request().AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "tok-9"})
	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if revoked != "tok-9" {
		t.Fatalf("expected revoke of tok-9, got %q", revoked)
	}

	cookie := findSessionCookie(rec.Result().Cookies())
	if cookie == nil || cookie.MaxAge != -1 {
		t.Fatalf("logout must expire the cookie, got %+v", cookie)
	}
}

func TestAuthHandler_LogoutWithoutCookie(t *testing.T) {
	stub := &stubAuthService{
		logoutFn: func(context.Context, string, domain.Kind) error {
			t.Fatalf("revoke must not be called without a cookie")
			return nil
		},
	}
	handler := NewAuthHandler(stub, false)

	c, rec := newTestContext(t, http.MethodPost, "/api/logout", "")
	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout is idempotent, expected 204, got %d", rec.Code)
	}
}

func findSessionCookie(cookies []*http.Cookie) *http.Cookie {
	for _, c := range cookies {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	return nil
}
