package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/memberhub/membership-api/internal/core/domain"
)

func TestSettingsService_UnsetFeeReadsZero(t *testing.T) {
	svc := NewSettingsService(newStubSettingsRepo(), zerolog.Nop())

	fee, err := svc.RegistrationFee(context.Background())
	if err != nil {
		t.Fatalf("read fee: %v", err)
	}
	if fee != 0 {
		t.Fatalf("expected 0 for unset fee, got %v", fee)
	}
}

func TestSettingsService_FeeRoundTrip(t *testing.T) {
	repo := newStubSettingsRepo()
	svc := NewSettingsService(repo, zerolog.Nop())

	if err := svc.SetRegistrationFee(context.Background(), 75.50); err != nil {
		t.Fatalf("set fee: %v", err)
	}

	fee, err := svc.RegistrationFee(context.Background())
	if err != nil {
		t.Fatalf("read fee: %v", err)
	}
	if fee != 75.50 {
		t.Fatalf("expected exactly 75.50, got %v", fee)
	}

	// Stored representation keeps the writer's decimal, no trailing noise.
	if raw, _, _ := repo.Get(context.Background(), domain.SettingRegistrationFee); raw != "75.5" {
		t.Fatalf("unexpected stored value %q", raw)
	}
}

func TestSettingsService_LastWriteWins(t *testing.T) {
	svc := NewSettingsService(newStubSettingsRepo(), zerolog.Nop())

	_ = svc.SetRegistrationFee(context.Background(), 100)
	_ = svc.SetRegistrationFee(context.Background(), 80.25)

	fee, err := svc.RegistrationFee(context.Background())
	if err != nil {
		t.Fatalf("read fee: %v", err)
	}
	if fee != 80.25 {
		t.Fatalf("expected last write 80.25, got %v", fee)
	}
}

func TestSettingsService_NegativeFeeRejected(t *testing.T) {
	svc := NewSettingsService(newStubSettingsRepo(), zerolog.Nop())

	if err := svc.SetRegistrationFee(context.Background(), -1); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
