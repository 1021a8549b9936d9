package ports

import (
	"context"

	"github.com/memberhub/membership-api/internal/core/domain"
)

// SessionService issues and validates opaque session tokens.
//
// Validate distinguishes its failure modes through the domain sentinels:
// ErrInvalidInput (no token presented / unknown kind), ErrSessionNotFound,
// ErrSessionExpired (row deleted as a side effect), ErrPrincipalNotFound, and
// ErrPersistence for transient store failures that must not force a logout.
type SessionService interface {
	Issue(ctx context.Context, principalID string, kind domain.Kind) (*domain.Session, error)
	Validate(ctx context.Context, token string, kind domain.Kind) (*domain.Principal, error)
	Revoke(ctx context.Context, token string, kind domain.Kind) error
}
