package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/memberhub/membership-api/internal/core/domain"
)

func invokeRBAC(t *testing.T, principal *domain.Principal, required domain.Role) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		c.Set(PrincipalContextKey, principal)
	}

	called := false
	mw := RequireRole(required)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func adminPrincipal(role domain.Role) *domain.Principal {
	return &domain.Principal{
		Kind:  domain.KindAdmin,
		Admin: &domain.Admin{ID: "a1", Username: "grace", Role: role},
	}
}

func TestRequireRole_Allows(t *testing.T) {
	rec, called := invokeRBAC(t, adminPrincipal(domain.RoleCustomerService), domain.RoleCustomerService)
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole_DeniesMismatch(t *testing.T) {
	rec, called := invokeRBAC(t, adminPrincipal(domain.RoleCustomerService), domain.RoleAccountManager)
	if called {
		t.Fatalf("next handler must not be called")
	}
	// Wrong role answers like not-logged-in; the UI redirects to login.
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_DeniesUnknownRole(t *testing.T) {
	rec, _ := invokeRBAC(t, adminPrincipal(domain.Role("superuser")), domain.RoleExecutive)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_DeniesMissingPrincipal(t *testing.T) {
	rec, _ := invokeRBAC(t, nil, domain.RoleExecutive)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_DeniesUserPrincipal(t *testing.T) {
	principal := &domain.Principal{
		Kind: domain.KindUser,
		User: &domain.User{ID: "u1"},
	}
	rec, _ := invokeRBAC(t, principal, domain.RoleExecutive)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
