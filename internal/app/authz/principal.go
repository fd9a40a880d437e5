package authz

import (
	"context"

	"github.com/sheikhgalib/academix/internal/app/models"
)

// Principal is the runtime representation of an authenticated account for
// the duration of one request.
type Principal struct {
	AccountID   int64
	Username    string
	Password    string // bcrypt digest, needed by the authenticator
	Enabled     bool
	Authorities []string // role tags carried verbatim from the account
}

// HasAuthority reports whether the principal carries the exact authority tag.
func (p *Principal) HasAuthority(tag string) bool {
	for _, a := range p.Authorities {
		if a == tag {
			return true
		}
	}
	return false
}

// HasAnyAuthority reports whether the principal carries at least one of the
// given authority tags.
func (p *Principal) HasAnyAuthority(tags ...string) bool {
	for _, tag := range tags {
		if p.HasAuthority(tag) {
			return true
		}
	}
	return false
}

// AccountSource is the slice of the credential store the loader needs.
type AccountSource interface {
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
}

// PrincipalLoader resolves usernames to authenticatable principals.
type PrincipalLoader struct {
	accounts AccountSource
}

// NewPrincipalLoader creates a new PrincipalLoader
func NewPrincipalLoader(accounts AccountSource) *PrincipalLoader {
	return &PrincipalLoader{accounts: accounts}
}

// Load looks up the account by exact username and builds its principal.
// A miss surfaces as apperrors.ErrAccountNotFound; callers at the
// authentication boundary must not let that reach the user distinguishably
// from a wrong password.
func (l *PrincipalLoader) Load(ctx context.Context, username string) (*Principal, error) {
	account, err := l.accounts.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	authorities := make([]string, len(account.Roles))
	copy(authorities, account.Roles)

	return &Principal{
		AccountID:   account.ID,
		Username:    account.Username,
		Password:    account.Password,
		Enabled:     account.Enabled,
		Authorities: authorities,
	}, nil
}
