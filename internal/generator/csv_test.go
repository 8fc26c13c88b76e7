package generator

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSVRoundTrip(t *testing.T) {
	gen := newTestGenerator(t, func(cfg *config.GenerationConfig) {
		cfg.Counts.Customers = 10
		cfg.Counts.Products = 12
		cfg.Counts.Transactions = 8
	})

	ds, err := gen.GenerateAll(context.Background())
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, WriteCSV(ds, dir))

	rows := readCSV(t, filepath.Join(dir, CustomersFile))
	require.NotEmpty(t, rows)
	assert.Equal(t, []string{
		"customer_id", "first_name", "last_name", "email", "phone",
		"registration_date", "city", "state", "country", "age_group",
	}, rows[0])
	assert.Len(t, rows, len(ds.Customers)+1)

	rows = readCSV(t, filepath.Join(dir, TransactionItemsFile))
	assert.Equal(t, []string{
		"item_id", "transaction_id", "product_id", "quantity", "unit_price",
		"discount_percentage", "line_total",
	}, rows[0])
	assert.Len(t, rows, len(ds.Items)+1)
}

func TestWriteCSVEmptyDatasetKeepsHeaders(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteCSV(&Dataset{}, dir))

	for _, name := range []string{CustomersFile, ProductsFile, TransactionsFile, TransactionItemsFile} {
		rows := readCSV(t, filepath.Join(dir, name))
		assert.Len(t, rows, 1, "%s must contain only the header row", name)
	}
}

func TestWriteMetadataShape(t *testing.T) {
	gen := newTestGenerator(t, func(cfg *config.GenerationConfig) {
		cfg.Counts.Customers = 5
		cfg.Counts.Products = 6
		cfg.Counts.Transactions = 4
	})

	ds, err := gen.GenerateAll(context.Background())
	require.NoError(t, err)

	meta := BuildMetadata(ds, gen.Config().DateRange, map[string]any{"quality_score": 100})
	assert.Equal(t, len(ds.Customers), meta.RecordCounts.Customers)
	assert.Equal(t, ds.TotalRecords(), meta.RecordCounts.TotalRecords)

	dir := t.TempDir()
	require.NoError(t, WriteMetadata(meta, dir))

	data, err := os.ReadFile(filepath.Join(dir, MetadataFile))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "generation_timestamp")
	assert.Contains(t, decoded, "record_counts")
	assert.Contains(t, decoded, "date_range")
	assert.Contains(t, decoded, "validation_result")

	counts, ok := decoded["record_counts"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, meta.RecordCounts.TotalRecords, counts["total_records"])
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}
