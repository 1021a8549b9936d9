package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/memberhub/membership-api/internal/core/domain"
	"github.com/memberhub/membership-api/internal/core/ports"
)

// SessionCookieName is the HTTP-only cookie set at login. The cookie carries
// the same opaque token as the bearer flow; both channels hit one validator.
const SessionCookieName = "session_token"

// PrincipalContextKey is where the validated principal lands in the echo
// context.
const PrincipalContextKey = "principal"

// Session validates the request's session token for the given partition and
// injects the live principal into the context.
//
// Token lookup order: Authorization bearer header, then the session cookie.
// "No token presented" and "token rejected" are both 401 to the client, with
// distinct messages; transient store failures surface as 503 so clients can
// retry instead of being logged out.
func Session(sessions ports.SessionService, kind domain.Kind) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "no session presented")
			}

			principal, err := sessions.Validate(c.Request().Context(), token, kind)
			if err != nil {
				if errors.Is(err, domain.ErrPersistence) {
					return echo.NewHTTPError(http.StatusServiceUnavailable, "session check unavailable")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}

			c.Set(PrincipalContextKey, principal)
			return next(c)
		}
	}
}

// Principal returns the validated principal injected by Session, or nil when
// the middleware did not run.
func Principal(c echo.Context) *domain.Principal {
	p, _ := c.Get(PrincipalContextKey).(*domain.Principal)
	return p
}

func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
