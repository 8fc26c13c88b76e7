package quality

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/internal/generator"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/internal/ingest"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/config"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/db"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/db/models"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/enums"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/logger"
)

func newTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "quality-test", Output: io.Discard})
}

func newTestClient(t *testing.T) *db.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	client, err := db.New(context.Background(), config.DBConfig{DSN: dsn, Driver: config.DriverSQLite}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.AutoMigrate(context.Background(), models.Staging()...))
	return client
}

// seedStaging generates a small clean dataset and ingests it.
func seedStaging(t *testing.T, client *db.Client) {
	t.Helper()

	cfg := config.DefaultGeneration()
	cfg.Counts.Customers = 20
	cfg.Counts.Products = 12
	cfg.Counts.Transactions = 15
	cfg.Counts.Seed = 11

	gen, err := generator.New(cfg, newTestLogger())
	require.NoError(t, err)
	ds, err := gen.GenerateAll(context.Background())
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, generator.WriteCSV(ds, dir))

	_, err = ingest.New(client, newTestLogger(), nil).Run(context.Background(), dir)
	require.NoError(t, err)
}

func TestRunCleanStagingScoresFull(t *testing.T) {
	client := newTestClient(t)
	seedStaging(t, client)

	report, err := New(client, newTestLogger()).Run(context.Background())
	require.NoError(t, err)

	checks := report.ChecksPerformed
	assert.Equal(t, enums.CheckStatusPassed, checks.NullChecks.Status)
	assert.Equal(t, enums.CheckStatusPassed, checks.DuplicateChecks.Status)
	assert.Equal(t, enums.CheckStatusPassed, checks.ValidityChecks.Status)
	assert.Equal(t, enums.CheckStatusPassed, checks.ConsistencyChecks.Status)
	assert.Equal(t, enums.CheckStatusPassed, checks.ReferentialIntegrity.Status)
	assert.Zero(t, report.TotalIssues())
	assert.Equal(t, float64(100), report.OverallQualityScore)
	assert.Equal(t, enums.QualityGradeA, report.QualityGrade)
	assert.NotEmpty(t, report.CheckTimestamp)
}

func TestRunDetectsNullValues(t *testing.T) {
	client := newTestClient(t)
	seedStaging(t, client)
	ctx := context.Background()

	require.NoError(t, client.Exec(ctx,
		"INSERT INTO staging_customers (customer_id) VALUES ('CUST9998')").Error)

	report, err := New(client, newTestLogger()).Run(ctx)
	require.NoError(t, err)

	nulls := report.ChecksPerformed.NullChecks
	assert.Equal(t, enums.CheckStatusFailed, nulls.Status)
	assert.Equal(t, 3, nulls.NullViolations)
	assert.Equal(t, 1, nulls.Details["staging_customers"]["email"])
	assert.Equal(t, 1, nulls.Details["staging_customers"]["first_name"])
	assert.Equal(t, 1, nulls.Details["staging_customers"]["last_name"])
}

func TestRunDetectsDuplicates(t *testing.T) {
	client := newTestClient(t)
	seedStaging(t, client)
	ctx := context.Background()

	require.NoError(t, client.Exec(ctx, `
		INSERT INTO staging_customers (customer_id, first_name, last_name, email)
		SELECT customer_id, first_name, last_name, email
		FROM staging_customers ORDER BY customer_id LIMIT 1`).Error)

	report, err := New(client, newTestLogger()).Run(ctx)
	require.NoError(t, err)

	dups := report.ChecksPerformed.DuplicateChecks
	assert.Equal(t, enums.CheckStatusFailed, dups.Status)
	assert.Equal(t, 1, dups.DuplicatesFound)
	assert.Equal(t, 1, dups.Details["staging_customers"])
}

func TestRunDetectsValidityViolations(t *testing.T) {
	client := newTestClient(t)
	seedStaging(t, client)
	ctx := context.Background()

	require.NoError(t, client.Exec(ctx, `
		UPDATE staging_products SET price = -10
		WHERE product_id = (SELECT product_id FROM staging_products ORDER BY product_id LIMIT 1)`).Error)
	require.NoError(t, client.Exec(ctx, `
		UPDATE staging_products SET cost = 0
		WHERE product_id = (SELECT product_id FROM staging_products ORDER BY product_id LIMIT 1 OFFSET 1)`).Error)
	require.NoError(t, client.Exec(ctx, `
		UPDATE staging_transaction_items SET discount_percentage = 150
		WHERE item_id = (SELECT item_id FROM staging_transaction_items ORDER BY item_id LIMIT 1)`).Error)

	report, err := New(client, newTestLogger()).Run(ctx)
	require.NoError(t, err)

	validity := report.ChecksPerformed.ValidityChecks
	assert.Equal(t, enums.CheckStatusFailed, validity.Status)
	assert.Equal(t, 3, validity.Violations)
	assert.Equal(t, 1, validity.Details["negative_price"])
	assert.Equal(t, 1, validity.Details["negative_cost"])
	assert.Equal(t, 1, validity.Details["invalid_discount"])

	// the tampered discount also breaks the stored line_total
	assert.Equal(t, 1, report.ChecksPerformed.ConsistencyChecks.Violations)
}

func TestRunDetectsLineTotalMismatch(t *testing.T) {
	client := newTestClient(t)
	seedStaging(t, client)
	ctx := context.Background()

	require.NoError(t, client.Exec(ctx, `
		UPDATE staging_transaction_items SET line_total = line_total + 5
		WHERE item_id = (SELECT item_id FROM staging_transaction_items ORDER BY item_id LIMIT 1)`).Error)

	report, err := New(client, newTestLogger()).Run(ctx)
	require.NoError(t, err)

	consistency := report.ChecksPerformed.ConsistencyChecks
	assert.Equal(t, enums.CheckStatusFailed, consistency.Status)
	assert.Equal(t, 1, consistency.Violations)
	assert.Equal(t, 1, consistency.Details["line_total_mismatch"])
}

func TestRunDetectsOrphanRecords(t *testing.T) {
	client := newTestClient(t)
	seedStaging(t, client)
	ctx := context.Background()

	require.NoError(t, client.Exec(ctx, `
		INSERT INTO staging_transactions (transaction_id, customer_id, transaction_date)
		VALUES ('TXN_ORPHAN', 'CUST9999', '2024-06-15')`).Error)
	require.NoError(t, client.Exec(ctx, `
		INSERT INTO staging_transaction_items (item_id, transaction_id, product_id, quantity, line_total)
		VALUES ('ITEM_ORPHAN', 'TXN_ORPHAN', 'PROD9999', 1, 10)`).Error)

	report, err := New(client, newTestLogger()).Run(ctx)
	require.NoError(t, err)

	refs := report.ChecksPerformed.ReferentialIntegrity
	assert.Equal(t, enums.CheckStatusFailed, refs.Status)
	assert.Equal(t, 2, refs.OrphanRecords)
	assert.Equal(t, 1, refs.Details["invalid_customer_in_transactions"])
	assert.Equal(t, 1, refs.Details["invalid_product_in_items"])
}

func TestScorePenalizesByViolationShare(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	// 10 customers, 3 of them with a NULL email: 100 - 3/10*100 = 70 → D.
	rows := make([][]any, 0, 10)
	for i := 1; i <= 10; i++ {
		var email any = fmt.Sprintf("c%d@example.com", i)
		if i <= 3 {
			email = nil
		}
		rows = append(rows, []any{fmt.Sprintf("CUST%04d", i), "First", "Last", email})
	}
	_, err := client.BulkInsert(ctx, "staging_customers",
		[]string{"customer_id", "first_name", "last_name", "email"}, rows, 50)
	require.NoError(t, err)

	report, err := New(client, newTestLogger()).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalIssues())
	assert.Equal(t, 70.0, report.OverallQualityScore)
	assert.Equal(t, enums.QualityGradeD, report.QualityGrade)
}

func TestWriteReportShape(t *testing.T) {
	dir := t.TempDir()
	report := Report{
		CheckTimestamp:      "2024-06-01T10:00:00Z",
		OverallQualityScore: 98.5,
		QualityGrade:        enums.QualityGradeA,
	}
	report.ChecksPerformed.NullChecks = NullCheck{Status: enums.CheckStatusPassed, Details: map[string]map[string]int{}}

	require.NoError(t, WriteReport(report, filepath.Join(dir, "staging")))

	payload, err := os.ReadFile(filepath.Join(dir, "staging", ReportFile))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Contains(t, decoded, "check_timestamp")
	assert.Contains(t, decoded, "checks_performed")
	assert.Contains(t, decoded, "overall_quality_score")
	assert.Equal(t, "A", decoded["quality_grade"])

	checks, ok := decoded["checks_performed"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, checks, "null_checks")
	assert.Contains(t, checks, "duplicate_checks")
	assert.Contains(t, checks, "validity_checks")
	assert.Contains(t, checks, "consistency_checks")
	assert.Contains(t, checks, "referential_integrity")
}
