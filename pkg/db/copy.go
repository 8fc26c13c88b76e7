package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/config"
	"github.com/lib/pq"
)

// CopyFrom streams rows into the table over the Postgres COPY protocol,
// which is far faster than batched inserts for staging-sized loads. It
// opens its own connection because COPY cannot share the GORM session.
// Non-postgres drivers must use BulkInsert instead.
func (c *Client) CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if c.Driver() != config.DriverPostgres {
		return 0, fmt.Errorf("copy protocol requires the postgres driver, have %q", c.Driver())
	}
	if len(rows) == 0 {
		return 0, nil
	}

	conn, err := sql.Open("postgres", c.dsn)
	if err != nil {
		return 0, fmt.Errorf("opening copy connection: %w", err)
	}
	defer conn.Close()

	txn, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning copy transaction: %w", err)
	}

	stmt, err := txn.PrepareContext(ctx, pq.CopyIn(table, columns...))
	if err != nil {
		_ = txn.Rollback()
		return 0, fmt.Errorf("preparing copy statement: %w", err)
	}

	for _, row := range rows {
		if len(row) != len(columns) {
			_ = stmt.Close()
			_ = txn.Rollback()
			return 0, fmt.Errorf("row has %d values, want %d", len(row), len(columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			_ = stmt.Close()
			_ = txn.Rollback()
			return 0, err
		}
	}

	// final Exec with no arguments flushes the buffered copy data
	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = txn.Rollback()
		return 0, err
	}
	if err := stmt.Close(); err != nil {
		_ = txn.Rollback()
		return 0, err
	}
	if err := txn.Commit(); err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}
