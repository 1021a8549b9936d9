package domain

import "errors"

// Session and authorization failures. NotFound, Expired and PrincipalNotFound
// are all "invalid session" to callers; they stay distinct here so the
// validator can report which case it hit and trigger eviction on expiry only.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionExpired    = errors.New("session expired")
	ErrPrincipalNotFound = errors.New("principal not found")
	ErrForbidden         = errors.New("access forbidden")
)

// Credential and account failures.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminExists        = errors.New("admin already exists")
)

// ErrPersistence marks transient store failures. It must never be collapsed
// into the invalid-session cases: "could not check" is retryable, "checked and
// rejected" forces a logout.
var ErrPersistence = errors.New("persistence failure")

// Payment failures.
var (
	ErrPaymentFailed  = errors.New("payment verification failed")
	ErrPaymentGateway = errors.New("payment gateway unavailable")
)
