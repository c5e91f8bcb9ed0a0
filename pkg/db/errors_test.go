package db

import (
	"errors"
	"testing"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := errors.New(`duplicate key value violates unique constraint "idx_operators_mobile_number"`)
	if !IsUniqueViolation(pgErr, "idx_operators_mobile_number") {
		t.Fatal("expected match on named constraint")
	}
	if IsUniqueViolation(pgErr, "idx_bank_details_operator") {
		t.Fatal("should not match a different constraint")
	}
	if !IsUniqueViolation(pgErr, "") {
		t.Fatal("expected generic match on postgres message")
	}

	sqliteErr := errors.New("UNIQUE constraint failed: operators.mobile_number")
	if !IsUniqueViolation(sqliteErr, "") {
		t.Fatal("expected generic match on sqlite message")
	}

	if IsUniqueViolation(errors.New("connection refused"), "") {
		t.Fatal("unrelated errors must not match")
	}
	if IsUniqueViolation(nil, "idx_operators_mobile_number") {
		t.Fatal("nil error must not match")
	}
}
