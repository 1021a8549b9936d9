package ports

import (
	"context"

	"github.com/memberhub/membership-api/internal/core/domain"
)

// SessionRepository persists session rows, partitioned by kind. Delete is
// delete-if-exists: removing an already-removed token is a no-op, not an
// error, so concurrent evictions of the same expired row stay idempotent.
type SessionRepository interface {
	Insert(ctx context.Context, session *domain.Session) error
	Find(ctx context.Context, token string, kind domain.Kind) (*domain.Session, error)
	Delete(ctx context.Context, token string, kind domain.Kind) error
}
