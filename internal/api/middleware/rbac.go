package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/memberhub/membership-api/internal/core/domain"
)

// RequireRole gates a route behind an exact admin role match. It must run
// after Session, which supplies the freshly validated principal: the role is
// re-checked on every request, never trusted from a client-side flag.
//
// A role mismatch answers 401, the same as "not logged in". The UI treats
// both as redirect-to-login; this merge is current product behavior.
func RequireRole(required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := Principal(c)
			if principal == nil || !domain.Authorize(principal.Admin, required) {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}
