package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/memberhub/membership-api/internal/core/domain"
)

// In-memory repository stubs shared by the service tests.

type stubUserRepo struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	nextID  int
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := *user
	clone.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) SetVerified(_ context.Context, id string, verified bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Verified = verified
	return nil
}

type stubAdminRepo struct {
	mu     sync.Mutex
	admins map[string]*domain.Admin
	nextID int
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{admins: make(map[string]*domain.Admin)}
}

func (r *stubAdminRepo) Create(_ context.Context, admin *domain.Admin) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.Email == admin.Email || a.Username == admin.Username {
			return nil, domain.ErrAdminExists
		}
	}
	r.nextID++
	clone := *admin
	clone.ID = fmt.Sprintf("admin-%d", r.nextID)
	r.admins[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubAdminRepo) FindByID(_ context.Context, id string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[id]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAdminRepo) FindByEmail(_ context.Context, email string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.Email == email {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAdminNotFound
}

func (r *stubAdminRepo) FindByUsername(_ context.Context, username string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.Username == username {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAdminNotFound
}

// stubSessionRepo partitions sessions by kind like the Mongo implementation.
// Delete is delete-if-exists.
type stubSessionRepo struct {
	mu        sync.Mutex
	rows      map[domain.Kind]map[string]*domain.Session
	insertErr error
	findErr   error
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{rows: map[domain.Kind]map[string]*domain.Session{
		domain.KindUser:  {},
		domain.KindAdmin: {},
	}}
}

func (r *stubSessionRepo) Insert(_ context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	r.rows[session.Kind][session.Token] = session
	return nil
}

func (r *stubSessionRepo) Find(_ context.Context, token string, kind domain.Kind) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	s, ok := r.rows[kind][token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSessionRepo) Delete(_ context.Context, token string, kind domain.Kind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows[kind], token)
	return nil
}

func (r *stubSessionRepo) has(token string, kind domain.Kind) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[kind][token]
	return ok
}

func (r *stubSessionRepo) forceExpiry(token string, kind domain.Kind, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.rows[kind][token]; ok {
		s.ExpiresAt = at
	}
}

type stubSettingsRepo struct {
	mu     sync.Mutex
	values map[string]string
}

func newStubSettingsRepo() *stubSettingsRepo {
	return &stubSettingsRepo{values: make(map[string]string)}
}

func (r *stubSettingsRepo) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.values[key]
	return v, ok, nil
}

func (r *stubSettingsRepo) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

// stubGateway fakes the payment gateway with scripted verification results.
type stubGateway struct {
	initCalls   int
	verifyCalls int
	lastAmount  int64
	succeed     bool
}

func (g *stubGateway) Initialize(_ context.Context, email string, amountSubunits int64, reference string) (*domain.PaymentInit, error) {
	g.initCalls++
	g.lastAmount = amountSubunits
	return &domain.PaymentInit{
		AuthorizationURL: "https://checkout.example/" + reference,
		AccessCode:       "access_" + strconv.Itoa(g.initCalls),
		Reference:        reference,
	}, nil
}

func (g *stubGateway) Verify(_ context.Context, reference string) (*domain.PaymentVerification, error) {
	g.verifyCalls++
	return &domain.PaymentVerification{
		Reference:      reference,
		Success:        g.succeed,
		AmountSubunits: g.lastAmount,
		PaidAt:         time.Now().UTC(),
	}, nil
}

type stubDeduper struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newStubDeduper() *stubDeduper {
	return &stubDeduper{seen: make(map[string]bool)}
}

func (d *stubDeduper) IsProcessed(_ context.Context, reference string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.seen[reference], nil
}

func (d *stubDeduper) MarkProcessed(_ context.Context, reference string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seen[reference] = true
	return nil
}

type stubMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *stubMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to+"|"+subject+"|"+body)
	return nil
}

var errStoreDown = errors.New("store unreachable")
