package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/memberhub/membership-api/internal/api/metrics"
	"github.com/memberhub/membership-api/internal/api/middleware"
	"github.com/memberhub/membership-api/internal/core/domain"
	"github.com/memberhub/membership-api/internal/core/ports"
)

type AuthHandler struct {
	authService  ports.AuthService
	secureCookie bool
}

func NewAuthHandler(authService ports.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

// Login authenticates email/password credentials and mints a session.
//
// The opaque token is returned in the body for bearer use and mirrored into
// an HTTP-only cookie; both channels resolve through the same validator.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("unknown", "failure").Inc()
		}
		return err
	}

	session := result.Session
	metrics.LoginsTotal.WithLabelValues(string(session.Kind), "success").Inc()
	metrics.SessionsIssuedTotal.WithLabelValues(string(session.Kind)).Inc()

	h.setSessionCookie(c, session)

	return c.JSON(http.StatusOK, loginResponse{
		SessionToken: session.Token,
		Kind:         session.Kind,
		ExpiresAt:    session.ExpiresAt,
		User:         result.Principal.User,
		Admin:        result.Principal.Admin,
	})
}

// Logout clears the session cookie and revokes the store row. Revocation is
// best effort: a token the store no longer holds still logs out cleanly.
//
// @Summary      Logout
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        kind  query     string  false  "Session kind (user|admin), defaults to user"
// @Success      204   "logged out"
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	kind := domain.Kind(c.QueryParam("kind"))
	if !domain.ValidKind(kind) {
		kind = domain.KindUser
	}

	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		_ = h.authService.Logout(c.Request().Context(), cookie.Value, kind)
	}

	h.clearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) setSessionCookie(c echo.Context, session *domain.Session) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
