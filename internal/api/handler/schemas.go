package handler

import (
	"time"

	"github.com/memberhub/membership-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	SessionToken string        `json:"session_token"`
	Kind         domain.Kind   `json:"kind"`
	ExpiresAt    time.Time     `json:"expires_at"`
	User         *domain.User  `json:"user,omitempty"`
	Admin        *domain.Admin `json:"admin,omitempty"`
}

// --- Sessions ---

type createSessionRequest struct {
	PrincipalID string `json:"principal_id" validate:"required"`
	Kind        string `json:"kind"         validate:"required,oneof=user admin"`
}

type createSessionResponse struct {
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type validateSessionRequest struct {
	SessionToken string `json:"session_token" validate:"required"`
	Kind         string `json:"kind"          validate:"required,oneof=user admin"`
}

type validateSessionResponse struct {
	Kind  domain.Kind   `json:"kind"`
	User  *domain.User  `json:"user,omitempty"`
	Admin *domain.Admin `json:"admin,omitempty"`
}

// --- Registration funnel ---

type registerRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"   validate:"required,min=8"`
}

type registerResponse struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type verifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

type initializePaymentRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type initializePaymentResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type confirmPaymentRequest struct {
	Reference string `json:"reference" validate:"required"`
}

type confirmPaymentResponse struct {
	Reference      string `json:"reference"`
	Success        bool   `json:"success"`
	AmountSubunits int64  `json:"amount_subunits"`
}

// --- Admin ---

type createAdminRequest struct {
	Username  string `json:"username"   validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Role      string `json:"role"       validate:"required,oneof=account-manager customer-service executive"`
}

type registrationFeeRequest struct {
	Fee float64 `json:"fee" validate:"gte=0"`
}

type registrationFeeResponse struct {
	Fee float64 `json:"fee"`
}

type dashboardResponse struct {
	Role        domain.Role   `json:"role"`
	Permissions []string      `json:"permissions"`
	Admin       *domain.Admin `json:"admin"`
}
