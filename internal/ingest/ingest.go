// Package ingest moves the generated CSV files into the staging tables.
// The load is idempotent: every run truncates staging first, then bulk
// loads each file and records a per-table outcome. Bad rows are not
// filtered here; staging accepts whatever the files contain so the
// quality checks can measure it.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/multierr"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/internal/generator"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/config"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/db"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/db/models"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/enums"
	pkgerrors "github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/errors"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/logger"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/metrics"
)

// SummaryFile is the JSON artifact written after every ingestion run.
const SummaryFile = "ingestion_summary.json"

const defaultBatchSize = 500

// Sink is the database surface the loader needs.
type Sink interface {
	Clear(ctx context.Context, table string) error
	CountRows(ctx context.Context, table string) (int64, error)
	BulkInsert(ctx context.Context, table string, columns []string, rows [][]any, batchSize int) (int64, error)
	CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)
	Driver() string
}

// TableResult is the outcome of loading one CSV file into one table.
type TableResult struct {
	Table        string           `json:"table"`
	RowsLoaded   int64            `json:"rows_loaded"`
	Status       enums.LoadStatus `json:"status"`
	ErrorMessage string           `json:"error_message,omitempty"`
}

// Summary is the full record of one ingestion run.
type Summary struct {
	IngestionTimestamp        string                 `json:"ingestion_timestamp"`
	TablesLoaded              map[string]TableResult `json:"tables_loaded"`
	Validation                map[string]int64       `json:"validation,omitempty"`
	TotalExecutionTimeSeconds float64                `json:"total_execution_time_seconds"`
	Status                    enums.LoadStatus       `json:"status"`
}

type source struct {
	file  string
	table string
}

// loadOrder lists parents before children; truncation runs it in reverse.
func loadOrder() []source {
	return []source{
		{file: generator.CustomersFile, table: models.StagingCustomer{}.TableName()},
		{file: generator.ProductsFile, table: models.StagingProduct{}.TableName()},
		{file: generator.TransactionsFile, table: models.StagingTransaction{}.TableName()},
		{file: generator.TransactionItemsFile, table: models.StagingTransactionItem{}.TableName()},
	}
}

type Loader struct {
	sink      Sink
	logg      *logger.Logger
	stats     *metrics.StageMetrics
	batchSize int
}

// New builds a staging loader. stats may be nil.
func New(sink Sink, logg *logger.Logger, stats *metrics.StageMetrics) *Loader {
	return &Loader{
		sink:      sink,
		logg:      logg,
		stats:     stats,
		batchSize: defaultBatchSize,
	}
}

// Run truncates staging and loads every CSV from rawDir. The returned
// summary always describes all four tables; the error aggregates whatever
// went wrong and is non-nil exactly when the summary status is failed.
func (l *Loader) Run(ctx context.Context, rawDir string) (Summary, error) {
	start := time.Now()
	summary := Summary{
		IngestionTimestamp: start.Format(time.RFC3339),
		TablesLoaded:       map[string]TableResult{},
		Status:             enums.LoadStatusSuccess,
	}

	l.logg.Info(ctx, "starting data ingestion to staging")

	if err := l.truncate(ctx); err != nil {
		summary.Status = enums.LoadStatusFailed
		summary.TotalExecutionTimeSeconds = time.Since(start).Seconds()
		return summary, err
	}

	var errs error
	for _, src := range loadOrder() {
		result := l.loadFile(ctx, filepath.Join(rawDir, src.file), src.table)
		summary.TablesLoaded[src.table] = result
		if result.Status == enums.LoadStatusFailed {
			errs = multierr.Append(errs, pkgerrors.New(pkgerrors.CodeLoad,
				fmt.Sprintf("loading %s: %s", src.table, result.ErrorMessage)))
			continue
		}
		l.stats.AddRowsLoaded(src.table, result.RowsLoaded)
	}

	summary.Validation = l.validate(ctx)
	summary.TotalExecutionTimeSeconds = time.Since(start).Seconds()
	if errs != nil {
		summary.Status = enums.LoadStatusFailed
	}

	l.logg.Info(ctx, fmt.Sprintf("data ingestion complete in %.2fs", summary.TotalExecutionTimeSeconds))
	return summary, errs
}

func (l *Loader) truncate(ctx context.Context) error {
	l.logg.Info(ctx, "truncating staging tables")
	order := loadOrder()
	for i := len(order) - 1; i >= 0; i-- {
		if err := l.sink.Clear(ctx, order[i].table); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeLoad, err, fmt.Sprintf("truncating %s", order[i].table))
		}
	}
	return nil
}

func (l *Loader) loadFile(ctx context.Context, path, table string) TableResult {
	result := TableResult{Table: table, Status: enums.LoadStatusSuccess}

	tctx := l.logg.WithTable(ctx, table)
	columns, rows, err := readCSV(path)
	if err != nil {
		l.logg.Warn(tctx, fmt.Sprintf("failed to read %s: %v", path, err))
		result.Status = enums.LoadStatusFailed
		result.ErrorMessage = err.Error()
		return result
	}

	loaded, err := l.insert(ctx, table, columns, rows)
	if err != nil {
		// the dump carries the SQLSTATE and constraint fields when a
		// postgres driver produced the error
		dctx := l.logg.WithField(tctx, "error_dump", pkgerrors.Dump(err))
		l.logg.Error(dctx, "bulk load failed", err)
		result.Status = enums.LoadStatusFailed
		result.ErrorMessage = db.LoadFailureMessage(err)
		return result
	}

	result.RowsLoaded = loaded
	l.logg.Info(tctx, fmt.Sprintf("loaded %d rows", loaded))
	return result
}

// insert picks the fastest path the driver supports: COPY on postgres,
// batched inserts elsewhere.
func (l *Loader) insert(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if l.sink.Driver() == config.DriverPostgres {
		return l.sink.CopyFrom(ctx, table, columns, rows)
	}
	return l.sink.BulkInsert(ctx, table, columns, rows, l.batchSize)
}

// validate records the post-load row count per table. A table whose count
// fails is logged and left out; the others still appear in the summary.
func (l *Loader) validate(ctx context.Context) map[string]int64 {
	counts := map[string]int64{}
	for _, src := range loadOrder() {
		count, err := l.sink.CountRows(ctx, src.table)
		if err != nil {
			l.logg.Warn(ctx, fmt.Sprintf("row count failed for %s: %v", src.table, err))
			continue
		}
		counts[src.table] = count
	}
	return counts
}

// readCSV returns the header and all data rows as untyped values. Values
// stay as strings; the database coerces them into the column types, which
// is exactly what a landing zone should do with raw file content.
func readCSV(path string) ([]string, [][]any, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("file not found")
		}
		return nil, nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parsing csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("file has no header row")
	}

	columns := records[0]
	rows := make([][]any, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]any, len(record))
		for i, value := range record {
			row[i] = value
		}
		rows = append(rows, row)
	}
	return columns, rows, nil
}
