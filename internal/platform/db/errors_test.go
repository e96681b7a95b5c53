package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsNoRows(t *testing.T) {
	if !IsNoRows(fmt.Errorf("get request: %w", pgx.ErrNoRows)) {
		t.Error("expected wrapped ErrNoRows to match")
	}
	if IsNoRows(errors.New("other")) {
		t.Error("unrelated error should not match")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "blood_donor_responses_request_donor_key"}

	if !IsUniqueViolation(dup, "") {
		t.Error("expected any-constraint match")
	}
	if !IsUniqueViolation(dup, "blood_donor_responses_request_donor_key") {
		t.Error("expected named-constraint match")
	}
	if IsUniqueViolation(dup, "users_email_key") {
		t.Error("different constraint should not match")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}, "") {
		t.Error("foreign key violation should not match unique check")
	}

	wrapped := fmt.Errorf("insert response: %w", dup)
	if !IsUniqueViolation(wrapped, "") {
		t.Error("expected wrapped PgError to match")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	if !IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("expected 23503 to match")
	}
	if IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}) {
		t.Error("unique violation should not match")
	}
}

func TestIsUnavailable(t *testing.T) {
	if IsUnavailable(nil) {
		t.Error("nil should not be unavailable")
	}
	if IsUnavailable(&pgconn.PgError{Code: "23505"}) {
		t.Error("statement-level failure should not be unavailable")
	}
	if !IsUnavailable(&pgconn.ConnectError{}) {
		t.Error("connect error should be unavailable")
	}
}
