package ports

import "context"

// SettingsRepository is a key/value store for scalar settings. Get returns
// ("", false, nil) for an unset key; Set is an upsert, last write wins.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// SettingsService exposes the registration fee to the funnel and to the
// executive dashboard. An unset fee reads as 0.
type SettingsService interface {
	RegistrationFee(ctx context.Context) (float64, error)
	SetRegistrationFee(ctx context.Context, fee float64) error
}
