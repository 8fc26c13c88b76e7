package db

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lib/pq"
)

func TestSQLStateFromPQError(t *testing.T) {
	err := fmt.Errorf("inserting: %w", &pq.Error{Code: "23505", Message: "duplicate key value"})
	if got := SQLState(err); got != "23505" {
		t.Fatalf("expected 23505, got %q", got)
	}
	if got := SQLState(errors.New("plain")); got != "" {
		t.Fatalf("expected empty code for plain error, got %q", got)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	coded := fmt.Errorf("inserting: %w", &pq.Error{Code: "23505"})
	if !IsUniqueViolation(coded, "") {
		t.Fatal("expected SQLSTATE 23505 to classify as unique violation")
	}
	if !IsUniqueViolation(errors.New(`duplicate key value violates unique constraint "staging_customers_pkey"`), "") {
		t.Fatal("expected duplicate key message to classify as unique violation")
	}
	if !IsUniqueViolation(errors.New(`violates unique constraint "staging_customers_pkey"`), "staging_customers_pkey") {
		t.Fatal("expected named constraint match")
	}
	if IsUniqueViolation(errors.New("connection refused"), "") {
		t.Fatal("unrelated error must not classify as unique violation")
	}
}

func TestLoadFailureMessageClassifiesSQLStates(t *testing.T) {
	tests := []struct {
		code   string
		prefix string
	}{
		{"23505", "unique constraint violated"},
		{"23503", "foreign key violated"},
		{"23502", "not-null constraint violated"},
		{"22P02", "malformed row data"},
		{"42703", "schema mismatch"},
		{"08006", "connection lost"},
	}
	for _, tt := range tests {
		err := fmt.Errorf("loading: %w", &pq.Error{Code: pq.ErrorCode(tt.code), Message: "boom"})
		if msg := LoadFailureMessage(err); !strings.HasPrefix(msg, tt.prefix) {
			t.Fatalf("code %s: expected prefix %q, got %q", tt.code, tt.prefix, msg)
		}
	}

	plain := errors.New("disk full")
	if msg := LoadFailureMessage(plain); msg != "disk full" {
		t.Fatalf("unclassified error should pass through, got %q", msg)
	}
}
