package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/migrate"
)

func TestStagingMigrationHasNoConstraints(t *testing.T) {
	content := readMigration(t, "*_create_staging_tables.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS staging_customers",
		"CREATE TABLE IF NOT EXISTS staging_products",
		"CREATE TABLE IF NOT EXISTS staging_transactions",
		"CREATE TABLE IF NOT EXISTS staging_transaction_items",
		"DROP TABLE IF EXISTS staging_customers",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}

	// The landing zone must accept broken rows, so no keys or checks.
	for _, sub := range []string{"PRIMARY KEY", "FOREIGN KEY", "NOT NULL", "CHECK ("} {
		if strings.Contains(content, sub) {
			t.Errorf("staging migration must not contain %q", sub)
		}
	}
}

func TestWarehouseMigrationContainsStarSchema(t *testing.T) {
	content := readMigration(t, "*_create_warehouse_tables.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS warehouse_dim_payment_method",
		"payment_method_name VARCHAR(50) UNIQUE",
		"CREATE TABLE IF NOT EXISTS warehouse_dim_date",
		"date_key     INTEGER PRIMARY KEY",
		"CREATE TABLE IF NOT EXISTS warehouse_dim_customers",
		"customer_key      BIGSERIAL PRIMARY KEY",
		"CREATE TABLE IF NOT EXISTS warehouse_dim_products",
		"CREATE TABLE IF NOT EXISTS warehouse_fact_sales",
		"FOREIGN KEY (customer_key) REFERENCES warehouse_dim_customers(customer_key)",
		"FOREIGN KEY (product_key) REFERENCES warehouse_dim_products(product_key)",
		"DROP TABLE IF EXISTS warehouse_fact_sales",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
