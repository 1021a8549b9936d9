package ports

import (
	"context"

	"github.com/memberhub/membership-api/internal/core/domain"
)

// PaymentGateway is the opaque remote payment contract: initialize a
// transaction for an amount, later verify a reference. Amounts are in the
// currency's subunit (kobo for NGN).
type PaymentGateway interface {
	Initialize(ctx context.Context, email string, amountSubunits int64, reference string) (*domain.PaymentInit, error)
	Verify(ctx context.Context, reference string) (*domain.PaymentVerification, error)
}

// PaymentDeduper remembers gateway references that have already been applied
// so a verify replay cannot double-apply its side effects.
type PaymentDeduper interface {
	IsProcessed(ctx context.Context, reference string) (bool, error)
	MarkProcessed(ctx context.Context, reference string) error
}
