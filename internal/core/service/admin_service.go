package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/memberhub/membership-api/internal/core/domain"
	"github.com/memberhub/membership-api/internal/core/ports"
)

// AdminService creates admin accounts. The HTTP layer gates access with the
// developer token; this service owns validation and persistence.
type AdminService struct {
	admins ports.AdminRepository
	logger zerolog.Logger
}

func NewAdminService(admins ports.AdminRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{admins: admins, logger: logger}
}

func (s *AdminService) CreateAccount(ctx context.Context, input ports.CreateAdminInput) (*domain.Admin, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" ||
		input.FirstName == "" || input.LastName == "" {
		return nil, domain.ErrInvalidInput
	}
	if !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidInput
	}
	if len(input.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.admins.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrAdminExists
	} else if !errors.Is(err, domain.ErrAdminNotFound) {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if _, err := s.admins.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrAdminExists
	} else if !errors.Is(err, domain.ErrAdminNotFound) {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	admin := &domain.Admin{
		Username:     input.Username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Role:         input.Role,
		Permissions:  domain.PermissionsOf(input.Role),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.admins.Create(ctx, admin)
	if err != nil {
		if errors.Is(err, domain.ErrAdminExists) {
			return nil, domain.ErrAdminExists
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	s.logger.Info().Str("admin_id", created.ID).Str("role", string(created.Role)).Msg("admin account created")
	return created, nil
}
