package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/memberhub/membership-api/internal/core/domain"
)

type stubSessionService struct {
	issueFn    func(ctx context.Context, principalID string, kind domain.Kind) (*domain.Session, error)
	validateFn func(ctx context.Context, token string, kind domain.Kind) (*domain.Principal, error)
}

func (s *stubSessionService) Issue(ctx context.Context, principalID string, kind domain.Kind) (*domain.Session, error) {
	return s.issueFn(ctx, principalID, kind)
}

func (s *stubSessionService) Validate(ctx context.Context, token string, kind domain.Kind) (*domain.Principal, error) {
	return s.validateFn(ctx, token, kind)
}

func (s *stubSessionService) Revoke(context.Context, string, domain.Kind) error {
	return nil
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSessionHandler_Create(t *testing.T) {
	expires := time.Now().UTC().Add(domain.SessionTTL).Truncate(time.Second)
	stub := &stubSessionService{
		issueFn: func(_ context.Context, principalID string, kind domain.Kind) (*domain.Session, error) {
			if principalID != "u1" || kind != domain.KindUser {
				t.Fatalf("unexpected args: %s %s", principalID, kind)
			}
			return &domain.Session{Token: "tok-1", PrincipalID: "u1", Kind: kind, ExpiresAt: expires}, nil
		},
	}
	handler := NewSessionHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/session/create", `{"principal_id":"u1","kind":"user"}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["session_token"] != "tok-1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestSessionHandler_CreateRejectsBadKind(t *testing.T) {
	handler := NewSessionHandler(&stubSessionService{})

	c, _ := newTestContext(t, http.MethodPost, "/api/session/create", `{"principal_id":"u1","kind":"robot"}`)
	err := handler.Create(c)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestSessionHandler_Validate(t *testing.T) {
	stub := &stubSessionService{
		validateFn: func(_ context.Context, token string, kind domain.Kind) (*domain.Principal, error) {
			if token != "tok-1" || kind != domain.KindAdmin {
				return nil, domain.ErrSessionNotFound
			}
			return &domain.Principal{
				Kind: domain.KindAdmin,
				Admin: &domain.Admin{
					ID:          "a1",
					Username:    "grace",
					Role:        domain.RoleCustomerService,
					Permissions: domain.PermissionsOf(domain.RoleCustomerService),
				},
			}, nil
		},
	}
	handler := NewSessionHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/session/validate", `{"session_token":"tok-1","kind":"admin"}`)
	if err := handler.Validate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	admin, ok := resp["admin"].(map[string]any)
	if !ok {
		t.Fatalf("expected admin in response: %+v", resp)
	}
	if admin["role"] != string(domain.RoleCustomerService) {
		t.Fatalf("unexpected role: %v", admin["role"])
	}
}

func TestSessionHandler_ValidateRejectedTokenPropagates(t *testing.T) {
	stub := &stubSessionService{
		validateFn: func(context.Context, string, domain.Kind) (*domain.Principal, error) {
			return nil, domain.ErrSessionExpired
		},
	}
	handler := NewSessionHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/session/validate", `{"session_token":"old","kind":"user"}`)
	if err := handler.Validate(c); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired to propagate, got %v", err)
	}
}

func TestSessionHandler_ValidateRequiresToken(t *testing.T) {
	handler := NewSessionHandler(&stubSessionService{})

	c, _ := newTestContext(t, http.MethodPost, "/api/session/validate", `{"kind":"user"}`)
	err := handler.Validate(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("missing token must be a client error, got %v", err)
	}
}
