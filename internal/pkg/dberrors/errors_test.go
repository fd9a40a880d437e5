package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "accounts_username_key"}

	if !IsDuplicateConstraintError(dup, "accounts_username_key") {
		t.Error("expected match on the violated constraint")
	}
	if IsDuplicateConstraintError(dup, "accounts_email_key") {
		t.Error("must not match a different constraint name")
	}

	wrapped := fmt.Errorf("insert failed: %w", dup)
	if !IsDuplicateConstraintError(wrapped, "accounts_username_key") {
		t.Error("expected match through wrapped errors")
	}

	if IsDuplicateConstraintError(errors.New("plain error"), "accounts_username_key") {
		t.Error("plain errors must not match")
	}
	if IsDuplicateConstraintError(nil, "accounts_username_key") {
		t.Error("nil must not match")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "teachers_department_id_fkey"}

	if !IsForeignKeyViolation(fk) {
		t.Error("expected a foreign key violation to match")
	}
	if IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}) {
		t.Error("unique violations must not match")
	}
	if IsForeignKeyViolation(errors.New("plain error")) {
		t.Error("plain errors must not match")
	}
}
