package ports

import (
	"context"

	"github.com/memberhub/membership-api/internal/core/domain"
)

// LoginResult carries the authenticated principal and its freshly minted
// session. The token in Session is the only credential the client keeps.
type LoginResult struct {
	Principal *domain.Principal
	Session   *domain.Session
}

// AuthService authenticates email/password credentials against the admin and
// user records and issues a session in the matching partition. An email with
// no admin record is treated as a user login.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string, kind domain.Kind) error
}
