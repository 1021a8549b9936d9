package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/memberhub/membership-api/internal/api/metrics"
	"github.com/memberhub/membership-api/internal/api/middleware"
	"github.com/memberhub/membership-api/internal/core/domain"
	"github.com/memberhub/membership-api/internal/core/ports"
)

type SessionHandler struct {
	sessions ports.SessionService
}

func NewSessionHandler(sessions ports.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Create mints a session for an already-authenticated principal. Callers are
// trusted server-side flows; this endpoint never authenticates credentials
// itself.
//
// @Summary      Create a session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body      createSessionRequest  true  "Principal id and kind"
// @Success      201   {object}  createSessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /api/session/create [post]
func (h *SessionHandler) Create(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.sessions.Issue(c.Request().Context(), req.PrincipalID, domain.Kind(req.Kind))
	if err != nil {
		return err
	}

	metrics.SessionsIssuedTotal.WithLabelValues(req.Kind).Inc()
	return c.JSON(http.StatusCreated, createSessionResponse{
		SessionToken: session.Token,
		ExpiresAt:    session.ExpiresAt,
	})
}

// Validate resolves a token to its live principal record.
//
// @Summary      Validate a session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body      validateSessionRequest  true  "Token and kind"
// @Success      200   {object}  validateSessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /api/session/validate [post]
func (h *SessionHandler) Validate(c echo.Context) error {
	var req validateSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	principal, err := h.sessions.Validate(c.Request().Context(), req.SessionToken, domain.Kind(req.Kind))
	if err != nil {
		metrics.SessionsValidatedTotal.WithLabelValues(req.Kind, validationResult(err)).Inc()
		return err
	}

	metrics.SessionsValidatedTotal.WithLabelValues(req.Kind, "valid").Inc()
	return c.JSON(http.StatusOK, validateSessionResponse{
		Kind:  principal.Kind,
		User:  principal.User,
		Admin: principal.Admin,
	})
}

// Me returns the principal behind the request's own session. Routes mount it
// behind the session middleware for each partition; the member area uses the
// user variant, dashboards read their principal through the RBAC chain.
//
// @Summary      Current principal
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  validateSessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/member [get]
func (h *SessionHandler) Me(c echo.Context) error {
	principal := middleware.Principal(c)
	if principal == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no session presented")
	}
	return c.JSON(http.StatusOK, validateSessionResponse{
		Kind:  principal.Kind,
		User:  principal.User,
		Admin: principal.Admin,
	})
}

func validationResult(err error) string {
	if errors.Is(err, domain.ErrPersistence) {
		return "error"
	}
	return "invalid"
}
