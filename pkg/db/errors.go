package db

import (
	"errors"
	"fmt"
	"strings"

	legacypgconn "github.com/jackc/pgconn"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// IsUniqueViolation reports whether the provided error references a Postgres
// unique violation constraint. When constraintName is provided, the helper looks
// for the constraint text in the error message.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	if code := SQLState(err); code == "23505" && constraintName == "" {
		return true
	}
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value")
}

// SQLState extracts the five character SQLSTATE code from whichever
// postgres driver produced the error: pgx (used by GORM), the legacy
// pgconn error type, or lib/pq (used by the COPY path).
func SQLState(err error) string {
	if err == nil {
		return ""
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code
	}

	var legacyErr *legacypgconn.PgError
	if errors.As(err, &legacyErr) {
		return legacyErr.Code
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}

// LoadFailureMessage renders a concise, stable message for per-table load
// results, classifying the common SQLSTATE classes so the ingestion
// summary names the failure kind instead of echoing driver internals.
func LoadFailureMessage(err error) string {
	if err == nil {
		return ""
	}

	code := SQLState(err)
	switch {
	case IsUniqueViolation(err, ""):
		return fmt.Sprintf("unique constraint violated: %s", err.Error())
	case code == "23503":
		return fmt.Sprintf("foreign key violated: %s", err.Error())
	case code == "23502":
		return fmt.Sprintf("not-null constraint violated: %s", err.Error())
	case strings.HasPrefix(code, "22"):
		return fmt.Sprintf("malformed row data: %s", err.Error())
	case strings.HasPrefix(code, "42"):
		return fmt.Sprintf("schema mismatch: %s", err.Error())
	case strings.HasPrefix(code, "08"):
		return fmt.Sprintf("connection lost: %s", err.Error())
	}
	return err.Error()
}
