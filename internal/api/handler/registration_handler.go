package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/memberhub/membership-api/internal/api/metrics"
	"github.com/memberhub/membership-api/internal/core/domain"
	"github.com/memberhub/membership-api/internal/core/ports"
)

type RegistrationHandler struct {
	registration ports.RegistrationService
	settings     ports.SettingsService
}

func NewRegistrationHandler(registration ports.RegistrationService, settings ports.SettingsService) *RegistrationHandler {
	return &RegistrationHandler{registration: registration, settings: settings}
}

// Register creates an unverified member account and emails a verification
// link.
//
// @Summary      Register a new member
// @Tags         registration
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/register [post]
func (h *RegistrationHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.registration.Register(c.Request().Context(), ports.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, registerResponse{
		UserID:  user.ID,
		Message: "Account created. Check your email to verify your account.",
	})
}

// VerifyEmail redeems an emailed verification token.
//
// @Summary      Verify a member email address
// @Tags         registration
// @Accept       json
// @Produce      json
// @Param        body  body      verifyEmailRequest  true  "Verification token"
// @Success      200   {object}  validateSessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/verify-email [post]
func (h *RegistrationHandler) VerifyEmail(c echo.Context) error {
	var req verifyEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.registration.VerifyEmail(c.Request().Context(), req.Token)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, validateSessionResponse{Kind: domain.KindUser, User: user})
}

// RegistrationFee reports the current fee so the funnel can display it before
// initializing payment.
//
// @Summary      Current registration fee
// @Tags         registration
// @Produce      json
// @Success      200  {object}  registrationFeeResponse
// @Router       /api/registration-fee [get]
func (h *RegistrationHandler) RegistrationFee(c echo.Context) error {
	fee, err := h.settings.RegistrationFee(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, registrationFeeResponse{Fee: fee})
}

// InitializePayment starts a registration-fee transaction with the payment
// gateway.
//
// @Summary      Initialize registration payment
// @Tags         registration
// @Accept       json
// @Produce      json
// @Param        body  body      initializePaymentRequest  true  "User id"
// @Success      200   {object}  initializePaymentResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /api/payments/initialize [post]
func (h *RegistrationHandler) InitializePayment(c echo.Context) error {
	var req initializePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	init, err := h.registration.InitializePayment(c.Request().Context(), req.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, initializePaymentResponse{
		AuthorizationURL: init.AuthorizationURL,
		AccessCode:       init.AccessCode,
		Reference:        init.Reference,
	})
}

// ConfirmPayment verifies a gateway reference. Replaying a settled reference
// answers success again without repeating side effects.
//
// @Summary      Confirm registration payment
// @Tags         registration
// @Accept       json
// @Produce      json
// @Param        body  body      confirmPaymentRequest  true  "Gateway reference"
// @Success      200   {object}  confirmPaymentResponse
// @Failure      400   {object}  errorResponse
// @Failure      402   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /api/payments/verify [post]
func (h *RegistrationHandler) ConfirmPayment(c echo.Context) error {
	var req confirmPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	verification, err := h.registration.ConfirmPayment(c.Request().Context(), req.Reference)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentFailed) {
			metrics.PaymentsVerifiedTotal.WithLabelValues("failure").Inc()
		}
		return err
	}

	metrics.PaymentsVerifiedTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, confirmPaymentResponse{
		Reference:      verification.Reference,
		Success:        verification.Success,
		AmountSubunits: verification.AmountSubunits,
	})
}
