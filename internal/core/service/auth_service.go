package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/memberhub/membership-api/internal/core/domain"
	"github.com/memberhub/membership-api/internal/core/ports"
)

// AuthService authenticates email/password logins. The admins table is
// checked first; an email without an admin record is a user login. On success
// a session is issued in the matching partition; if issuance fails, the
// whole login fails.
type AuthService struct {
	users    ports.UserRepository
	admins   ports.AdminRepository
	sessions ports.SessionService
	logger   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, admins ports.AdminRepository, sessions ports.SessionService, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, admins: admins, sessions: sessions, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return s.loginAdmin(ctx, admin, password)
	case errors.Is(err, domain.ErrAdminNotFound):
		// fall through to user login
	default:
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return s.loginUser(ctx, user, password)
}

func (s *AuthService) Logout(ctx context.Context, token string, kind domain.Kind) error {
	return s.sessions.Revoke(ctx, token, kind)
}

func (s *AuthService) loginAdmin(ctx context.Context, admin *domain.Admin, password string) (*ports.LoginResult, error) {
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	session, err := s.sessions.Issue(ctx, admin.ID, domain.KindAdmin)
	if err != nil {
		return nil, err
	}

	admin.Permissions = domain.PermissionsOf(admin.Role)
	s.logger.Info().Str("admin_id", admin.ID).Str("role", string(admin.Role)).Msg("admin login")
	return &ports.LoginResult{
		Principal: &domain.Principal{Kind: domain.KindAdmin, Admin: admin},
		Session:   session,
	}, nil
}

func (s *AuthService) loginUser(ctx context.Context, user *domain.User, password string) (*ports.LoginResult, error) {
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	session, err := s.sessions.Issue(ctx, user.ID, domain.KindUser)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Bool("verified", user.Verified).Msg("user login")
	return &ports.LoginResult{
		Principal: &domain.Principal{Kind: domain.KindUser, User: user},
		Session:   session,
	}, nil
}
