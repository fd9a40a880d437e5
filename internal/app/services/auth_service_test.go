package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sheikhgalib/academix/internal/app/authz"
	"github.com/sheikhgalib/academix/internal/app/models"
	"github.com/sheikhgalib/academix/internal/app/models/dto"
	"github.com/sheikhgalib/academix/internal/pkg/apperrors"
	"github.com/sheikhgalib/academix/internal/pkg/auth"
)

// memAccountStore is an in-memory AccountStore for service tests.
type memAccountStore struct {
	accounts []*models.Account
	nextID   int64
}

func newMemAccountStore() *memAccountStore {
	return &memAccountStore{nextID: 1}
}

func (m *memAccountStore) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, a := range m.accounts {
		if a.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *memAccountStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, a := range m.accounts {
		if a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memAccountStore) FindByUsername(_ context.Context, username string) (*models.Account, error) {
	for _, a := range m.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, apperrors.ErrAccountNotFound
}

func (m *memAccountStore) Save(_ context.Context, account *models.Account) error {
	if account.ID == 0 {
		account.ID = m.nextID
		m.nextID++
		m.accounts = append(m.accounts, account)
	}
	return nil
}

func (m *memAccountStore) Count(_ context.Context) (int64, error) {
	return int64(len(m.accounts)), nil
}

func newTestAuthService(store *memAccountStore) AuthService {
	loader := authz.NewPrincipalLoader(store)
	return NewAuthService(store, loader, zerolog.Nop())
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username: "newuser",
		Email:    "newuser@example.com",
		Password: "secret123",
		Role:     "student",
	}
}

func TestRegisterCreatesAccount(t *testing.T) {
	store := newMemAccountStore()
	svc := newTestAuthService(store)

	account, err := svc.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if account.ID == 0 {
		t.Error("expected a persisted ID")
	}
	if !account.Enabled {
		t.Error("new accounts must be enabled")
	}
	if len(account.Roles) != 1 || account.Roles[0] != "ROLE_STUDENT" {
		t.Errorf("expected roles [ROLE_STUDENT], got %v", account.Roles)
	}
	if account.Password == "secret123" {
		t.Error("stored password must be hashed")
	}
	if !auth.CheckPassword(account.Password, "secret123") {
		t.Error("stored digest does not verify against the submitted password")
	}
}

func TestRegisterRoleIsCaseInsensitive(t *testing.T) {
	store := newMemAccountStore()
	svc := newTestAuthService(store)

	req := registerRequest()
	req.Role = "Teacher"

	account, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if account.Roles[0] != "ROLE_TEACHER" {
		t.Errorf("expected ROLE_TEACHER, got %v", account.Roles)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	store := newMemAccountStore()
	svc := newTestAuthService(store)

	req := registerRequest()
	req.Role = "superuser"

	if _, err := svc.Register(context.Background(), req); !errors.Is(err, apperrors.ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
	if n, _ := store.Count(context.Background()); n != 0 {
		t.Errorf("no account should be created, found %d", n)
	}
}

func TestRegisterDuplicateUsernameWinsOverEmail(t *testing.T) {
	store := newMemAccountStore()
	svc := newTestAuthService(store)

	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("seed registration failed: %v", err)
	}

	// Same username AND same email: the username check runs first.
	if _, err := svc.Register(context.Background(), registerRequest()); !errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
		t.Errorf("expected ErrUsernameAlreadyExists, got %v", err)
	}

	// Fresh username, taken email.
	req := registerRequest()
	req.Username = "otheruser"
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
	}

	if n, _ := store.Count(context.Background()); n != 1 {
		t.Errorf("expected a single stored account, found %d", n)
	}
}

func TestRegisterValidation(t *testing.T) {
	store := newMemAccountStore()
	svc := newTestAuthService(store)

	cases := []struct {
		name   string
		mutate func(*dto.RegisterRequest)
	}{
		{"empty username", func(r *dto.RegisterRequest) { r.Username = "  " }},
		{"empty email", func(r *dto.RegisterRequest) { r.Email = "" }},
		{"malformed email", func(r *dto.RegisterRequest) { r.Email = "not-an-email" }},
		{"empty password", func(r *dto.RegisterRequest) { r.Password = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := registerRequest()
			tc.mutate(req)
			if _, err := svc.Register(context.Background(), req); !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Errorf("expected ErrValidationFailed, got %v", err)
			}
		})
	}
}

func TestAuthenticateSuccess(t *testing.T) {
	store := newMemAccountStore()
	svc := newTestAuthService(store)

	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	principal, err := svc.Authenticate(context.Background(), "newuser", "secret123")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if principal.Username != "newuser" {
		t.Errorf("expected username newuser, got %q", principal.Username)
	}
	if !principal.HasAuthority("ROLE_STUDENT") {
		t.Errorf("expected ROLE_STUDENT authority, got %v", principal.Authorities)
	}
}

func TestAuthenticateFailuresAreUniform(t *testing.T) {
	store := newMemAccountStore()
	svc := newTestAuthService(store)

	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	// Disable a second account to cover the disabled path.
	hashed, err := auth.HashPassword("disabled123")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if err := store.Save(context.Background(), &models.Account{
		Username: "ghost",
		Email:    "ghost@example.com",
		Password: hashed,
		Roles:    []string{"ROLE_STUDENT"},
		Enabled:  false,
	}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"unknown username", "nobody", "secret123"},
		{"wrong password", "newuser", "wrong"},
		{"disabled account", "ghost", "disabled123"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Authenticate(context.Background(), tc.username, tc.password); !errors.Is(err, apperrors.ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}
