package models

import (
	"fmt"
	"strings"
	"time"
)

// Role is one of the recognized account roles.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

// RoleTagPrefix prefixes every authority string derived from a role.
const RoleTagPrefix = "ROLE_"

// Tag returns the authority string carried by principals, e.g. "ROLE_ADMIN".
func (r Role) Tag() string {
	return RoleTagPrefix + string(r)
}

// ParseRole resolves a case-insensitive role name to a recognized Role.
func ParseRole(name string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(name))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleTeacher:
		return RoleTeacher, nil
	case RoleStudent:
		return RoleStudent, nil
	default:
		return "", fmt.Errorf("unrecognized role %q", name)
	}
}

// Account defines the authentication identity record based on the 'accounts' table.
type Account struct {
	ID        int64     `json:"id" db:"id" example:"1"`                   // Unique identifier for the account
	Username  string    `json:"username" db:"username" example:"teacher1"` // Login name, unique, immutable after creation
	Email     string    `json:"email" db:"email" example:"teacher1@example.com"` // Contact address, unique
	Password  string    `json:"-" db:"password"`                          // Bcrypt digest (excluded from JSON)
	Roles     []string  `json:"roles" db:"roles" example:"ROLE_TEACHER"`  // Authority tags, never empty after provisioning
	Enabled   bool      `json:"enabled" db:"enabled" example:"true"`      // Whether the account may authenticate
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// HasRole reports whether the account carries the authority tag for r.
func (a *Account) HasRole(r Role) bool {
	for _, tag := range a.Roles {
		if tag == r.Tag() {
			return true
		}
	}
	return false
}
