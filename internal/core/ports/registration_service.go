package ports

import (
	"context"

	"github.com/memberhub/membership-api/internal/core/domain"
)

// RegisterInput is the data collected by the public registration form.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
}

// RegistrationService drives the signup funnel: account creation, email
// verification, and the registration-fee payment.
type RegistrationService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	VerifyEmail(ctx context.Context, token string) (*domain.User, error)
	InitializePayment(ctx context.Context, userID string) (*domain.PaymentInit, error)
	ConfirmPayment(ctx context.Context, reference string) (*domain.PaymentVerification, error)
}
