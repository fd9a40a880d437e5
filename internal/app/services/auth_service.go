package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sheikhgalib/academix/internal/app/authz"
	"github.com/sheikhgalib/academix/internal/app/models"
	"github.com/sheikhgalib/academix/internal/app/models/dto"
	"github.com/sheikhgalib/academix/internal/pkg/apperrors"
	"github.com/sheikhgalib/academix/internal/pkg/auth"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// AccountStore is the credential store surface used by the auth service.
type AccountStore interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
	Save(ctx context.Context, account *models.Account) error
	Count(ctx context.Context) (int64, error)
}

// AuthService handles account provisioning and authentication
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.Account, error)
	Authenticate(ctx context.Context, username, password string) (*authz.Principal, error)
}

type authService struct {
	accounts AccountStore
	loader   *authz.PrincipalLoader
	logger   zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(accounts AccountStore, loader *authz.PrincipalLoader, logger zerolog.Logger) AuthService {
	return &authService{
		accounts: accounts,
		loader:   loader,
		logger:   logger,
	}
}

// validateRegistration checks the submitted fields before touching the store
func (s *authService) validateRegistration(req *dto.RegisterRequest) error {
	if strings.TrimSpace(req.Username) == "" {
		return fmt.Errorf("%w: username cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.Email) == "" {
		return fmt.Errorf("%w: email cannot be empty", apperrors.ErrValidationFailed)
	}
	if !emailRegex.MatchString(req.Email) {
		return fmt.Errorf("%w: invalid email format", apperrors.ErrValidationFailed)
	}
	if req.Password == "" {
		return fmt.Errorf("%w: password cannot be empty", apperrors.ErrValidationFailed)
	}
	return nil
}

// Register provisions a new account. Username availability is checked before
// email availability; the first failing check wins. The storage layer's
// unique constraints back these checks under concurrent registration.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.Account, error) {
	if err := s.validateRegistration(req); err != nil {
		return nil, err
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidRole, req.Role)
	}

	exists, err := s.accounts.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("error checking if username exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrUsernameAlreadyExists
	}

	exists, err = s.accounts.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	account := &models.Account{
		Username: req.Username,
		Email:    req.Email,
		Password: hashedPassword,
		Roles:    []string{role.Tag()},
		Enabled:  true,
	}

	if err := s.accounts.Save(ctx, account); err != nil {
		// A concurrent registration may have slipped past the pre-checks;
		// the constraint violation carries the same duplicate errors.
		return nil, err
	}

	s.logger.Info().Str("username", account.Username).Str("role", string(role)).Msg("Account registered")
	return account, nil
}

// Authenticate verifies the submitted credentials and returns the principal.
// Unknown username, wrong password, and disabled account all collapse to
// apperrors.ErrInvalidCredentials so the caller cannot enumerate usernames.
func (s *authService) Authenticate(ctx context.Context, username, password string) (*authz.Principal, error) {
	principal, err := s.loader.Load(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			s.logger.Debug().Str("username", username).Msg("Login attempt for unknown username")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading principal: %w", err)
	}

	if !auth.CheckPassword(principal.Password, password) {
		s.logger.Debug().Str("username", username).Msg("Login attempt with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	if !principal.Enabled {
		s.logger.Warn().Str("username", username).Msg("Login attempt for disabled account")
		return nil, apperrors.ErrInvalidCredentials
	}

	return principal, nil
}
