// Package sessionclient is the caller-side view of a session: which token,
// which kind. Server code validates tokens; this package only remembers the
// pair a client currently holds and talks to the session endpoints.
package sessionclient

import "sync"

// Kind mirrors the server's session partitions.
type Kind string

const (
	KindUser  Kind = "user"
	KindAdmin Kind = "admin"
)

// Handle holds at most one (token, kind) pair. Remember overwrites any
// previous pair, and Forget clears both fields under one lock so a reader can
// never observe a token without its kind or vice versa.
type Handle struct {
	mu    sync.Mutex
	token string
	kind  Kind
}

// Remember stores the pair, replacing whatever was held before. Multi-session
// isolation is not attempted: one handle, one active pair.
func (h *Handle) Remember(token string, kind Kind) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = token
	h.kind = kind
}

// Current returns the held pair. ok is false when nothing is remembered.
func (h *Handle) Current() (token string, kind Kind, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.token == "" {
		return "", "", false
	}
	return h.token, h.kind, true
}

// Forget clears the pair atomically from the caller's point of view.
func (h *Handle) Forget() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = ""
	h.kind = ""
}
