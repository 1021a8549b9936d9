package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/memberhub/membership-api/internal/core/domain"
	"github.com/memberhub/membership-api/internal/core/ports"
)

func validAdminInput() ports.CreateAdminInput {
	return ports.CreateAdminInput{
		Username:  "grace",
		Email:     "grace@example.com",
		Password:  "longenough",
		FirstName: "Grace",
		LastName:  "Eze",
		Role:      domain.RoleAccountManager,
	}
}

func TestAdminService_CreateAccount(t *testing.T) {
	svc := NewAdminService(newStubAdminRepo(), zerolog.Nop())

	admin, err := svc.CreateAccount(context.Background(), validAdminInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if admin.ID == "" {
		t.Fatalf("expected an id")
	}
	if admin.PasswordHash == "longenough" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("longenough")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if !reflect.DeepEqual(admin.Permissions, domain.PermissionsOf(domain.RoleAccountManager)) {
		t.Fatalf("permissions not derived from role: %v", admin.Permissions)
	}
}

func TestAdminService_InvalidRole(t *testing.T) {
	svc := NewAdminService(newStubAdminRepo(), zerolog.Nop())

	input := validAdminInput()
	input.Role = domain.Role("superuser")
	if _, err := svc.CreateAccount(context.Background(), input); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown role, got %v", err)
	}
}

func TestAdminService_ShortPassword(t *testing.T) {
	svc := NewAdminService(newStubAdminRepo(), zerolog.Nop())

	input := validAdminInput()
	input.Password = "short"
	if _, err := svc.CreateAccount(context.Background(), input); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}
}

func TestAdminService_DuplicateEmailAndUsername(t *testing.T) {
	svc := NewAdminService(newStubAdminRepo(), zerolog.Nop())

	if _, err := svc.CreateAccount(context.Background(), validAdminInput()); err != nil {
		t.Fatalf("create: %v", err)
	}

	dup := validAdminInput()
	dup.Username = "other"
	if _, err := svc.CreateAccount(context.Background(), dup); !errors.Is(err, domain.ErrAdminExists) {
		t.Fatalf("expected ErrAdminExists for duplicate email, got %v", err)
	}

	dup = validAdminInput()
	dup.Email = "other@example.com"
	if _, err := svc.CreateAccount(context.Background(), dup); !errors.Is(err, domain.ErrAdminExists) {
		t.Fatalf("expected ErrAdminExists for duplicate username, got %v", err)
	}
}
