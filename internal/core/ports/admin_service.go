package ports

import (
	"context"

	"github.com/memberhub/membership-api/internal/core/domain"
)

// CreateAdminInput is the payload for developer-token-gated admin creation.
type CreateAdminInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      domain.Role
}

// AdminService manages admin accounts. Permissions are always derived from
// the role at creation; there is no way to edit them independently.
type AdminService interface {
	CreateAccount(ctx context.Context, input CreateAdminInput) (*domain.Admin, error)
}
