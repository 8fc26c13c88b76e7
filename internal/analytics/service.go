// Package analytics runs the analytical query registry against the
// warehouse and exports the results: per-query CSVs, per-table CSV dumps,
// an XLSX workbook, and an optional BigQuery push of the sales fact.
package analytics

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	pkgerrors "github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/errors"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/logger"
)

// Store is the read surface the analytics service needs.
type Store interface {
	QueryRows(ctx context.Context, query string, args ...any) ([]string, [][]any, error)
	CountRows(ctx context.Context, table string) (int64, error)
}

// Result is the tabular outcome of one analytical query.
type Result struct {
	Name    string
	Columns []string
	Rows    [][]any
}

type Service struct {
	store Store
	logg  *logger.Logger
}

func New(store Store, logg *logger.Logger) *Service {
	return &Service{store: store, logg: logg}
}

// RunQueries executes every registered query in order. A failing query
// aborts the run; the warehouse is expected to be loaded by now, so a
// broken query is a defect rather than a data finding.
func (s *Service) RunQueries(ctx context.Context) ([]Result, error) {
	s.logg.Info(ctx, "executing analytical queries")

	queries := Queries()
	results := make([]Result, 0, len(queries))
	for _, q := range queries {
		columns, rows, err := s.store.QueryRows(ctx, q.SQL)
		if err != nil {
			return results, pkgerrors.Wrap(pkgerrors.CodeQuery, err, fmt.Sprintf("running %s", q.Name))
		}
		s.logg.Info(ctx, fmt.Sprintf("query %s returned %d rows", q.Name, len(rows)))
		results = append(results, Result{Name: q.Name, Columns: columns, Rows: rows})
	}
	return results, nil
}

// WriteResults persists each result as query_NN_<name>.csv under dir.
func WriteResults(results []Result, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating analytics dir %s: %w", dir, err)
	}
	for i, result := range results {
		name := fmt.Sprintf("query_%02d_%s.csv", i+1, result.Name)
		if err := writeResultCSV(filepath.Join(dir, name), result); err != nil {
			return err
		}
	}
	return nil
}

func writeResultCSV(path string, result Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(result.Columns); err != nil {
		return fmt.Errorf("writing header of %s: %w", path, err)
	}
	record := make([]string, len(result.Columns))
	for _, row := range result.Rows {
		for i, value := range row {
			record[i] = formatValue(value)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing row of %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}

// formatValue renders a scanned database value for CSV output. NULLs come
// out empty; floats keep their shortest round-trip representation.
func formatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case []byte:
		return string(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	case time.Time:
		return value.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", value)
	}
}
