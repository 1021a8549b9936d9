package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/memberhub/membership-api/internal/core/domain"
	"github.com/memberhub/membership-api/internal/core/ports"
)

// SettingsService reads and writes the registration fee. The value is stored
// as the decimal string the writer supplied so it round-trips exactly.
type SettingsService struct {
	settings ports.SettingsRepository
	logger   zerolog.Logger
}

func NewSettingsService(settings ports.SettingsRepository, logger zerolog.Logger) *SettingsService {
	return &SettingsService{settings: settings, logger: logger}
}

// RegistrationFee returns the current fee, or 0 when the setting is unset.
func (s *SettingsService) RegistrationFee(ctx context.Context) (float64, error) {
	raw, ok, err := s.settings.Get(ctx, domain.SettingRegistrationFee)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if !ok || raw == "" {
		return 0, nil
	}

	fee, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		s.logger.Error().Str("value", raw).Msg("registration fee setting is not a number")
		return 0, domain.ErrInvalidInput
	}
	return fee, nil
}

// SetRegistrationFee overwrites the fee. Last write wins; no history is kept.
func (s *SettingsService) SetRegistrationFee(ctx context.Context, fee float64) error {
	if fee < 0 {
		return domain.ErrInvalidInput
	}
	value := strconv.FormatFloat(fee, 'f', -1, 64)
	if err := s.settings.Set(ctx, domain.SettingRegistrationFee, value); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	s.logger.Info().Str("fee", value).Msg("registration fee updated")
	return nil
}
