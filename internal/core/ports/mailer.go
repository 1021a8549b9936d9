package ports

import "context"

// Mailer delivers transactional email. Implementations own transport details;
// callers supply fully rendered content.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
