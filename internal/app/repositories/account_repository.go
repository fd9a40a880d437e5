package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sheikhgalib/academix/internal/app/models"
	"github.com/sheikhgalib/academix/internal/pkg/apperrors"
	"github.com/sheikhgalib/academix/internal/pkg/dberrors"
)

// Unique constraint names enforced by the accounts table. The pre-checks in
// the provisioning service give the friendly error first; these constraints
// are the hard guarantee under concurrent registration.
const (
	accountUsernameConstraint = "accounts_username_key"
	accountEmailConstraint    = "accounts_email_key"
)

// AccountRepository handles database operations for authentication accounts
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

// ExistsByUsername checks if a username is already taken
func (r *AccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM accounts WHERE username = $1)`,
		username).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking username: %w", err)
	}

	return exists, nil
}

// ExistsByEmail checks if an email is already registered
func (r *AccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM accounts WHERE email = $1)`,
		email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}

// FindByUsername retrieves an account by its exact username
func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	account := &models.Account{}
	err := r.db.QueryRow(ctx, `
		SELECT id, username, email, password, roles, enabled, created_at, updated_at
		FROM accounts
		WHERE username = $1`,
		username).Scan(
		&account.ID, &account.Username, &account.Email, &account.Password,
		&account.Roles, &account.Enabled, &account.CreatedAt, &account.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("error retrieving account: %w", err)
	}

	return account, nil
}

// FindByID retrieves an account by ID
func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	account := &models.Account{}
	err := r.db.QueryRow(ctx, `
		SELECT id, username, email, password, roles, enabled, created_at, updated_at
		FROM accounts
		WHERE id = $1`,
		id).Scan(
		&account.ID, &account.Username, &account.Email, &account.Password,
		&account.Roles, &account.Enabled, &account.CreatedAt, &account.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("error retrieving account: %w", err)
	}

	return account, nil
}

// Save inserts the account when it has no ID yet, otherwise updates it.
// Unique violations are mapped back to the provisioning error taxonomy.
func (r *AccountRepository) Save(ctx context.Context, account *models.Account) error {
	var err error
	if account.ID == 0 {
		err = r.db.QueryRow(ctx, `
			INSERT INTO accounts (username, email, password, roles, enabled)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at`,
			account.Username, account.Email, account.Password, account.Roles, account.Enabled).
			Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	} else {
		_, err = r.db.Exec(ctx, `
			UPDATE accounts
			SET email = $1, password = $2, roles = $3, enabled = $4, updated_at = NOW()
			WHERE id = $5`,
			account.Email, account.Password, account.Roles, account.Enabled, account.ID)
	}

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, accountUsernameConstraint) {
			return apperrors.ErrUsernameAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, accountEmailConstraint) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error saving account: %w", err)
	}

	return nil
}

// Count returns the number of accounts. Used by the seeding routine to
// decide whether to bootstrap sample accounts.
func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting accounts: %w", err)
	}
	return count, nil
}
