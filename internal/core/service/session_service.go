package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/memberhub/membership-api/internal/core/domain"
	"github.com/memberhub/membership-api/internal/core/ports"
)

// SessionService implements opaque-token issuance and validation over a
// kind-partitioned session store. One implementation serves both partitions;
// the principal fetch is dispatched on the session's kind.
type SessionService struct {
	sessions ports.SessionRepository
	users    ports.UserRepository
	admins   ports.AdminRepository
	logger   zerolog.Logger
}

func NewSessionService(sessions ports.SessionRepository, users ports.UserRepository, admins ports.AdminRepository, logger zerolog.Logger) *SessionService {
	return &SessionService{sessions: sessions, users: users, admins: admins, logger: logger}
}

// Issue mints a new session for an already-authenticated principal and
// persists it with a fixed 7-day expiry. A store failure aborts the login:
// the caller must not treat the principal as authenticated.
func (s *SessionService) Issue(ctx context.Context, principalID string, kind domain.Kind) (*domain.Session, error) {
	if principalID == "" || !domain.ValidKind(kind) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	session := &domain.Session{
		Token:       generateToken(now),
		PrincipalID: principalID,
		Kind:        kind,
		ExpiresAt:   now.Add(domain.SessionTTL),
	}

	if err := s.sessions.Insert(ctx, session); err != nil {
		s.logger.Error().Err(err).Str("kind", string(kind)).Msg("session insert failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	s.logger.Info().Str("kind", string(kind)).Str("principal_id", principalID).Msg("session issued")
	return session, nil
}

// Validate resolves a token to its live principal record. Expired rows are
// evicted on read; there is no background sweep. The returned principal is
// always re-fetched so role and permission changes apply without re-login.
func (s *SessionService) Validate(ctx context.Context, token string, kind domain.Kind) (*domain.Principal, error) {
	if token == "" || !domain.ValidKind(kind) {
		return nil, domain.ErrInvalidInput
	}

	session, err := s.sessions.Find(ctx, token, kind)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	if session.Expired(time.Now().UTC()) {
		// Delete-if-exists: a concurrent validation may have evicted first.
		if err := s.sessions.Delete(ctx, token, kind); err != nil {
			s.logger.Warn().Err(err).Str("kind", string(kind)).Msg("expired session eviction failed")
		}
		return nil, domain.ErrSessionExpired
	}

	principal, err := s.fetchPrincipal(ctx, session.PrincipalID, kind)
	if err != nil {
		return nil, err
	}
	return principal, nil
}

// Revoke removes a session row. Revoking an unknown token is a no-op.
func (s *SessionService) Revoke(ctx context.Context, token string, kind domain.Kind) error {
	if token == "" || !domain.ValidKind(kind) {
		return domain.ErrInvalidInput
	}
	if err := s.sessions.Delete(ctx, token, kind); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (s *SessionService) fetchPrincipal(ctx context.Context, id string, kind domain.Kind) (*domain.Principal, error) {
	switch kind {
	case domain.KindUser:
		user, err := s.users.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil, domain.ErrPrincipalNotFound
			}
			return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
		return &domain.Principal{Kind: domain.KindUser, User: user}, nil
	default:
		admin, err := s.admins.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrAdminNotFound) {
				return nil, domain.ErrPrincipalNotFound
			}
			return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
		admin.Permissions = domain.PermissionsOf(admin.Role)
		return &domain.Principal{Kind: domain.KindAdmin, Admin: admin}, nil
	}
}

// generateToken builds an opaque session token from 16 random bytes plus the
// issue time in nanoseconds. Neither component alone would do: time is
// enumerable, and the random part carries the guessing resistance while the
// timestamp disambiguates the astronomically unlikely collision.
func generateToken(now time.Time) string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("session token entropy unavailable: %v", err))
	}
	return fmt.Sprintf("%x-%x", b, now.UnixNano())
}
