package db

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/config"
	pkgerrors "github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/errors"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Client wraps the shared GORM connection and exposes the sink primitives
// the pipeline stages are written against: bulk insert, destructive clear,
// row count, and ad-hoc reads.
type Client struct {
	conn   *gorm.DB
	driver string
	dsn    string
}

// Pinger exposes the health check surface.
type Pinger interface {
	Ping(ctx context.Context) error
}

// New boots a GORM client using the provided configuration. The driver
// selects the dialect: postgres for deployments, sqlite for local runs.
func New(ctx context.Context, cfg config.DBConfig, logg *logger.Logger) (*Client, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN is required")
	}

	var dialector gorm.Dialector
	switch strings.ToLower(cfg.Driver) {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	case config.DriverPostgres, "":
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DSN,
			PreferSimpleProtocol: true,
		})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	gormCfg := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	}

	conn, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeConnectivity, err, "opening db connection")
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql db handle: %w", err)
	}

	applyPoolSettings(sqlDB, cfg)

	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	if logg != nil {
		logg.Info(ctx, "database connection established")
	}

	return &Client{conn: conn, driver: strings.ToLower(cfg.Driver), dsn: cfg.DSN}, nil
}

func applyPoolSettings(sqlDB *sql.DB, cfg config.DBConfig) {
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
}

// DB returns the underlying GORM connection.
func (c *Client) DB() *gorm.DB {
	return c.conn
}

// Driver returns the normalized driver name the client was opened with.
func (c *Client) Driver() string {
	if c.driver == "" {
		return config.DriverPostgres
	}
	return c.driver
}

// Ping verifies the datasource is reachable.
func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.conn.DB()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeConnectivity, err, "getting sql db handle")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeConnectivity, err, "pinging datasource")
	}
	return nil
}

// Close shuts down the pooled connections.
func (c *Client) Close() error {
	sqlDB, err := c.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Exec wraps GORM's Exec with context propagation.
func (c *Client) Exec(ctx context.Context, query string, args ...any) *gorm.DB {
	return c.conn.WithContext(ctx).Exec(query, args...)
}

// Raw wraps GORM's Raw with context propagation.
func (c *Client) Raw(ctx context.Context, query string, args ...any) *gorm.DB {
	return c.conn.WithContext(ctx).Raw(query, args...)
}

// WithTx executes fn inside a transaction, rolling back on error/panic.
func (c *Client) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	tx := c.conn.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// AutoMigrate creates or updates the schema for the given models. The
// sqlite path relies on this; postgres deployments run the SQL migrations.
func (c *Client) AutoMigrate(ctx context.Context, models ...any) error {
	return c.conn.WithContext(ctx).AutoMigrate(models...)
}

// Clear removes every row from the table. Postgres truncates with CASCADE
// so dependent staging tables empty together; other dialects delete.
func (c *Client) Clear(ctx context.Context, table string) error {
	return c.clearWith(c.conn.WithContext(ctx), table)
}

// ClearTx is Clear running on the given transaction handle, so a stage can
// bundle its clears with its inserts and roll them back together.
func (c *Client) ClearTx(tx *gorm.DB, table string) error {
	return c.clearWith(tx, table)
}

func (c *Client) clearWith(db *gorm.DB, table string) error {
	if c.Driver() == config.DriverPostgres {
		return db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error
	}
	return db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error
}

// CountRows returns the row count of the table.
func (c *Client) CountRows(ctx context.Context, table string) (int64, error) {
	var count int64
	err := c.Raw(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count).Error
	return count, err
}

// BulkInsert writes column-aligned rows into the table in batches of the
// given size. Rows are plain values in the same order as columns.
func (c *Client) BulkInsert(ctx context.Context, table string, columns []string, rows [][]any, batchSize int) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	var inserted int64
	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}

		batch := make([]map[string]any, 0, end-start)
		for _, row := range rows[start:end] {
			if len(row) != len(columns) {
				return inserted, fmt.Errorf("row has %d values, want %d", len(row), len(columns))
			}
			record := make(map[string]any, len(columns))
			for i, col := range columns {
				record[col] = row[i]
			}
			batch = append(batch, record)
		}

		res := c.conn.WithContext(ctx).Table(table).Create(batch)
		if res.Error != nil {
			return inserted, res.Error
		}
		inserted += int64(len(batch))
	}
	return inserted, nil
}

// QueryRows runs an ad-hoc read and returns the column names plus every
// row as a value slice aligned with those columns.
func (c *Client) QueryRows(ctx context.Context, query string, args ...any) ([]string, [][]any, error) {
	rows, err := c.conn.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]any
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, nil, err
		}
		out = append(out, values)
	}
	return columns, out, rows.Err()
}
