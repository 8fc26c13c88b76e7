package analytics

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/internal/etl"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/internal/generator"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/internal/ingest"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/config"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/db"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/db/models"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/logger"
)

func newTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "analytics-test", Output: io.Discard})
}

// newLoadedWarehouse generates a small dataset and runs it through
// staging, production and the warehouse so queries have rows to chew on.
func newLoadedWarehouse(t *testing.T) (*db.Client, *generator.Dataset) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	client, err := db.New(context.Background(), config.DBConfig{DSN: dsn, Driver: config.DriverSQLite}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.AutoMigrate(context.Background(), models.All()...))

	cfg := config.DefaultGeneration()
	cfg.Counts.Customers = 15
	cfg.Counts.Products = 12
	cfg.Counts.Transactions = 20
	cfg.Counts.Seed = 7

	gen, err := generator.New(cfg, newTestLogger())
	require.NoError(t, err)
	ds, err := gen.GenerateAll(context.Background())
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, generator.WriteCSV(ds, dir))
	_, err = ingest.New(client, newTestLogger(), nil).Run(context.Background(), dir)
	require.NoError(t, err)
	require.NoError(t, etl.New(client, newTestLogger(), nil, cfg.DateRange).Run(context.Background()))

	return client, ds
}

func TestRunQueriesReturnsEveryRegisteredQuery(t *testing.T) {
	client, _ := newLoadedWarehouse(t)
	svc := New(client, newTestLogger())

	results, err := svc.RunQueries(context.Background())
	require.NoError(t, err)
	require.Len(t, results, len(Queries()))

	for i, result := range results {
		assert.Equal(t, Queries()[i].Name, result.Name)
		assert.NotEmpty(t, result.Columns, "query %s", result.Name)
		assert.NotEmpty(t, result.Rows, "query %s", result.Name)
	}
}

func TestPaymentMethodMixCoversOnlyGeneratedMethods(t *testing.T) {
	client, _ := newLoadedWarehouse(t)
	svc := New(client, newTestLogger())

	results, err := svc.RunQueries(context.Background())
	require.NoError(t, err)

	var mix Result
	for _, r := range results {
		if r.Name == "payment_method_mix" {
			mix = r
		}
	}
	require.NotEmpty(t, mix.Rows)
	assert.LessOrEqual(t, len(mix.Rows), 5)
}

func TestWriteResultsProducesNumberedCSVs(t *testing.T) {
	client, _ := newLoadedWarehouse(t)
	svc := New(client, newTestLogger())

	results, err := svc.RunQueries(context.Background())
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, WriteResults(results, dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, len(results))

	first := filepath.Join(dir, "query_01_monthly_sales_trend.csv")
	f, err := os.Open(first)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.Equal(t, results[0].Columns, records[0])
	assert.Len(t, records, len(results[0].Rows)+1)
}

func TestExportTablesDumpsWarehouse(t *testing.T) {
	client, ds := newLoadedWarehouse(t)
	svc := New(client, newTestLogger())

	dir := t.TempDir()
	counts, err := svc.ExportTables(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, int64(len(ds.Items)), counts["warehouse_fact_sales"])
	assert.Equal(t, int64(len(ds.Customers)), counts["warehouse_dim_customers"])

	for table := range counts {
		_, err := os.Stat(filepath.Join(dir, table+".csv"))
		assert.NoError(t, err, "missing export for %s", table)
	}
}

func TestExportWorkbookHasSheetPerTableAndQuery(t *testing.T) {
	client, _ := newLoadedWarehouse(t)
	svc := New(client, newTestLogger())

	results, err := svc.RunQueries(context.Background())
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := svc.ExportWorkbook(context.Background(), dir, results)
	require.NoError(t, err)

	book, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer book.Close()

	sheets := book.GetSheetList()
	assert.Len(t, sheets, len(warehouseTables())+len(results))
	assert.Contains(t, sheets, "warehouse_fact_sales")
	assert.Contains(t, sheets, "monthly_sales_trend")

	rows, err := book.GetRows("warehouse_dim_payment_method")
	require.NoError(t, err)
	assert.Len(t, rows, 6) // header + five methods
}

func TestExportFactSalesStreamsEveryRow(t *testing.T) {
	client, ds := newLoadedWarehouse(t)
	svc := New(client, newTestLogger())

	fake := &fakeInserter{}
	writer, err := newFactWriter(fake, WriterConfig{Table: "fact_sales", BatchSize: 8})
	require.NoError(t, err)

	exported, err := svc.ExportFactSales(context.Background(), writer)
	require.NoError(t, err)
	assert.Equal(t, int64(len(ds.Items)), exported)
	assert.Equal(t, len(ds.Items), fake.totalRows())

	for _, call := range fake.calls {
		assert.Equal(t, "fact_sales", call.table)
	}
}
