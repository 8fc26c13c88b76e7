package errors

import (
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestDumpCapturesCodeAndChain(t *testing.T) {
	wrapped := Wrap(CodeLoad, fmt.Errorf("boom"), "loading staging_customers")

	d := Dump(wrapped)
	if d.Code != CodeLoad {
		t.Fatalf("expected load code, got %s", d.Code)
	}
	if len(d.Chain) < 2 {
		t.Fatalf("expected unwrap chain, got %v", d.Chain)
	}
	if d.PGCode != "" {
		t.Fatalf("non-postgres error should carry no pg fields, got %q", d.PGCode)
	}
}

func TestDumpExtractsPostgresFields(t *testing.T) {
	cause := &pq.Error{
		Code:       "23505",
		Constraint: "staging_customers_pkey",
		Table:      "staging_customers",
		Detail:     "Key (customer_id)=(CUST0001) already exists.",
		Message:    "duplicate key value violates unique constraint",
	}
	err := Wrap(CodeLoad, fmt.Errorf("inserting: %w", cause), "bulk load")

	d := Dump(err)
	if d.PGCode != "23505" {
		t.Fatalf("expected SQLSTATE 23505, got %q", d.PGCode)
	}
	if d.PGConstraint != "staging_customers_pkey" {
		t.Fatalf("expected constraint name, got %q", d.PGConstraint)
	}
	if d.PGTable != "staging_customers" {
		t.Fatalf("expected table name, got %q", d.PGTable)
	}
}

func TestDumpNilError(t *testing.T) {
	if d := Dump(nil); d.TopMessage != "" || len(d.Chain) != 0 {
		t.Fatalf("expected zero dump for nil error, got %+v", d)
	}
}
