package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Processed references are kept long enough to outlive any gateway retry or
// user double-submit window.
const paymentDedupTTL = 30 * 24 * time.Hour

// PaymentDedup provides idempotency checks for payment references backed by
// Redis. Key format: payment:ref:<reference>
type PaymentDedup struct {
	client *redis.Client
}

// NewPaymentDedup creates a PaymentDedup wrapping the given Redis client.
func NewPaymentDedup(client *redis.Client) *PaymentDedup {
	return &PaymentDedup{client: client}
}

// IsProcessed reports whether this reference has already been applied.
func (d *PaymentDedup) IsProcessed(ctx context.Context, reference string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(reference)).Result()
	if err != nil {
		return false, fmt.Errorf("payment dedup check: %w", err)
	}
	return n > 0, nil
}

// MarkProcessed records that this reference has been applied.
func (d *PaymentDedup) MarkProcessed(ctx context.Context, reference string) error {
	return d.client.Set(ctx, d.key(reference), "1", paymentDedupTTL).Err()
}

func (d *PaymentDedup) key(reference string) string {
	return fmt.Sprintf("payment:ref:%s", reference)
}
