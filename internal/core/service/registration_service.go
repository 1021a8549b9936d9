package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/memberhub/membership-api/internal/core/domain"
	"github.com/memberhub/membership-api/internal/core/ports"
)

const verifyTokenTTL = 24 * time.Hour

// RegistrationService drives the signup funnel: account creation, email
// verification via a signed link token, and the registration-fee payment.
type RegistrationService struct {
	users     ports.UserRepository
	settings  ports.SettingsService
	gateway   ports.PaymentGateway
	dedup     ports.PaymentDeduper
	mailer    ports.Mailer
	jwtSecret string
	baseURL   string
	logger    zerolog.Logger
}

func NewRegistrationService(
	users ports.UserRepository,
	settings ports.SettingsService,
	gateway ports.PaymentGateway,
	dedup ports.PaymentDeduper,
	mailer ports.Mailer,
	jwtSecret, baseURL string,
	logger zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		users:     users,
		settings:  settings,
		gateway:   gateway,
		dedup:     dedup,
		mailer:    mailer,
		jwtSecret: jwtSecret,
		baseURL:   baseURL,
		logger:    logger,
	}
}

// Register creates an unverified user and emails a verification link. Mail
// delivery failure does not roll the account back; the link can be re-issued.
func (s *RegistrationService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.FirstName == "" || input.LastName == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Phone:        input.Phone,
		Verified:     false,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	if err := s.sendVerificationMail(ctx, created); err != nil {
		s.logger.Error().Err(err).Str("user_id", created.ID).Msg("verification mail failed")
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// VerifyEmail validates a signed verification token and marks the user
// verified. Tokens are single-purpose HS256 JWTs carrying the user id.
func (s *RegistrationService) VerifyEmail(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrInvalidInput
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidInput
	}

	userID, _ := claims["sub"].(string)
	purpose, _ := claims["purpose"].(string)
	if userID == "" || purpose != "verify-email" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	if !user.Verified {
		if err := s.users.SetVerified(ctx, user.ID, true); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
		user.Verified = true
	}

	s.logger.Info().Str("user_id", user.ID).Msg("email verified")
	return user, nil
}

// InitializePayment starts a registration-fee transaction for a user. The
// reference is a fresh UUID so replays and enumeration are off the table.
func (s *RegistrationService) InitializePayment(ctx context.Context, userID string) (*domain.PaymentInit, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	fee, err := s.settings.RegistrationFee(ctx)
	if err != nil {
		return nil, err
	}

	reference := "reg-" + uuid.NewString()
	amountSubunits := int64(math.Round(fee * 100))

	init, err := s.gateway.Initialize(ctx, user.Email, amountSubunits, reference)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentGateway, err)
	}

	s.logger.Info().Str("user_id", user.ID).Str("reference", init.Reference).Int64("amount_subunits", amountSubunits).Msg("payment initialized")
	return init, nil
}

// ConfirmPayment verifies a gateway reference. Confirmation is idempotent: a
// reference that already settled reports success again without a second
// gateway round-trip or repeated side effects.
func (s *RegistrationService) ConfirmPayment(ctx context.Context, reference string) (*domain.PaymentVerification, error) {
	if reference == "" {
		return nil, domain.ErrInvalidInput
	}

	processed, err := s.dedup.IsProcessed(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if processed {
		return &domain.PaymentVerification{Reference: reference, Success: true}, nil
	}

	verification, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentGateway, err)
	}
	if !verification.Success {
		return verification, domain.ErrPaymentFailed
	}

	if err := s.dedup.MarkProcessed(ctx, reference); err != nil {
		s.logger.Warn().Err(err).Str("reference", reference).Msg("payment dedup mark failed")
	}

	s.logger.Info().Str("reference", reference).Int64("amount_subunits", verification.AmountSubunits).Msg("payment verified")
	return verification, nil
}

func (s *RegistrationService) sendVerificationMail(ctx context.Context, user *domain.User) error {
	token, err := s.verificationToken(user.ID)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/verify-email?token=%s", s.baseURL, token)
	body := fmt.Sprintf("Hi %s,\n\nConfirm your email address to activate your membership:\n\n%s\n\nThe link expires in 24 hours.", user.FirstName, link)
	return s.mailer.Send(ctx, user.Email, "Verify your email", body)
}

func (s *RegistrationService) verificationToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub":     userID,
		"purpose": "verify-email",
		"exp":     time.Now().Add(verifyTokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
