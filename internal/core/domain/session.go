package domain

import "time"

// Kind partitions sessions by principal type. User and admin id spaces are
// disjoint and never interchangeable.
type Kind string

const (
	KindUser  Kind = "user"
	KindAdmin Kind = "admin"
)

// SessionTTL is the fixed validity window from issuance. Sessions are never
// renewed in place; a new login mints a new row.
const SessionTTL = 7 * 24 * time.Hour

// ValidKind reports whether k is one of the two session partitions.
func ValidKind(k Kind) bool {
	return k == KindUser || k == KindAdmin
}

// Session is one row in a kind-partitioned session store. A session is valid
// iff now < ExpiresAt and the row still exists.
type Session struct {
	Token       string    `json:"session_token"`
	PrincipalID string    `json:"principal_id"`
	Kind        Kind      `json:"kind"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
