package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/memberhub/membership-api/internal/api/middleware"
	"github.com/memberhub/membership-api/internal/core/domain"
	"github.com/memberhub/membership-api/internal/core/ports"
)

type AdminHandler struct {
	admins         ports.AdminService
	settings       ports.SettingsService
	developerToken string
}

func NewAdminHandler(admins ports.AdminService, settings ports.SettingsService, developerToken string) *AdminHandler {
	return &AdminHandler{admins: admins, settings: settings, developerToken: developerToken}
}

// CreateAccount provisions an admin. Gated by the static developer token, not
// a session: this is an operator bootstrap path, matching how staff accounts
// are seeded before any executive exists.
//
// @Summary      Create an admin account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        Authorization  header    string              true  "Bearer developer token"
// @Param        body           body      createAdminRequest  true  "Admin details"
// @Success      201   {object}  domain.Admin
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/admin/accounts [post]
func (h *AdminHandler) CreateAccount(c echo.Context) error {
	if !h.developerTokenOK(c) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing developer token")
	}

	var req createAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	admin, err := h.admins.CreateAccount(c.Request().Context(), ports.CreateAdminInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      domain.Role(req.Role),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, admin)
}

// SetRegistrationFee overwrites the fee. Route is executive-only (session +
// RBAC middleware).
//
// @Summary      Update the registration fee
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      registrationFeeRequest  true  "New fee"
// @Success      200   {object}  registrationFeeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/admin/registration-fee [put]
func (h *AdminHandler) SetRegistrationFee(c echo.Context) error {
	var req registrationFeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.settings.SetRegistrationFee(c.Request().Context(), req.Fee); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, registrationFeeResponse{Fee: req.Fee})
}

// GetRegistrationFee reads the fee for the executive dashboard.
//
// @Summary      Current registration fee (admin view)
// @Tags         admin
// @Produce      json
// @Success      200  {object}  registrationFeeResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/admin/registration-fee [get]
func (h *AdminHandler) GetRegistrationFee(c echo.Context) error {
	fee, err := h.settings.RegistrationFee(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, registrationFeeResponse{Fee: fee})
}

// Dashboard returns the admin's own record and derived permissions for the
// role-scoped dashboard the middleware already authorized.
//
// @Summary      Admin dashboard payload
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/admin/dashboard/{role} [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	principal := middleware.Principal(c)
	if principal == nil || principal.Admin == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	admin := principal.Admin
	return c.JSON(http.StatusOK, dashboardResponse{
		Role:        admin.Role,
		Permissions: domain.PermissionsOf(admin.Role),
		Admin:       admin,
	})
}

func (h *AdminHandler) developerTokenOK(c echo.Context) bool {
	if h.developerToken == "" {
		return false
	}
	header := c.Request().Header.Get("Authorization")
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.developerToken)) == 1
}
