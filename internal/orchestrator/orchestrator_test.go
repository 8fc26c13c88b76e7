package orchestrator

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
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/internal/quality"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/config"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/db"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/db/models"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/enums"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/logger"
)

func newTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "orchestrator-test", Output: io.Discard})
}

func newTestClient(t *testing.T) *db.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	client, err := db.New(context.Background(), config.DBConfig{DSN: dsn, Driver: config.DriverSQLite}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.AutoMigrate(context.Background(), models.All()...))
	return client
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	return &config.Config{
		Paths: config.PathsConfig{
			RawDataDir:   filepath.Join(base, "raw"),
			ReportDir:    filepath.Join(base, "processed"),
			AnalyticsDir: filepath.Join(base, "analytics"),
			ExportDir:    filepath.Join(base, "exports"),
		},
	}
}

func smallGeneration() *config.GenerationConfig {
	cfg := config.DefaultGeneration()
	cfg.Counts.Customers = 12
	cfg.Counts.Products = 12
	cfg.Counts.Transactions = 10
	cfg.Counts.Seed = 99
	return cfg
}

func TestRunExecutesAllPhasesInOrder(t *testing.T) {
	client := newTestClient(t)
	cfg := newTestConfig(t)

	svc, err := New(cfg, smallGeneration(), client, newTestLogger(), nil)
	require.NoError(t, err)

	report, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, enums.RunStatusSuccess, report.Status)
	require.Len(t, report.Phases, len(enums.Phases()))
	for i, phase := range enums.Phases() {
		assert.Equal(t, phase, report.Phases[i].Phase)
		assert.Equal(t, enums.RunStatusSuccess, report.Phases[i].Status)
	}

	assert.Equal(t, float64(100), report.IntegrityScore)
	assert.Equal(t, float64(100), report.QualityScore)
	assert.Equal(t, enums.QualityGradeA, report.QualityGrade)
	assert.NotEmpty(t, report.RunID)
	assert.Greater(t, report.TotalDurationSeconds, float64(0))
}

func TestRunLeavesWarehouseLoaded(t *testing.T) {
	client := newTestClient(t)
	cfg := newTestConfig(t)

	svc, err := New(cfg, smallGeneration(), client, newTestLogger(), nil)
	require.NoError(t, err)
	_, err = svc.Run(context.Background())
	require.NoError(t, err)

	facts, err := client.CountRows(context.Background(), "warehouse_fact_sales")
	require.NoError(t, err)
	assert.Greater(t, facts, int64(0))

	staged, err := client.CountRows(context.Background(), "staging_customers")
	require.NoError(t, err)
	assert.Greater(t, staged, int64(0))
}

func TestRunWritesArtifacts(t *testing.T) {
	client := newTestClient(t)
	cfg := newTestConfig(t)

	svc, err := New(cfg, smallGeneration(), client, newTestLogger(), nil)
	require.NoError(t, err)
	report, err := svc.Run(context.Background())
	require.NoError(t, err)

	for _, file := range []string{
		filepath.Join(cfg.Paths.RawDataDir, generator.CustomersFile),
		filepath.Join(cfg.Paths.RawDataDir, generator.TransactionItemsFile),
		filepath.Join(cfg.Paths.ReportDir, generator.MetadataFile),
		filepath.Join(cfg.Paths.ReportDir, ingest.SummaryFile),
		filepath.Join(cfg.Paths.ReportDir, quality.ReportFile),
	} {
		_, err := os.Stat(file)
		assert.NoError(t, err, "missing artifact %s", file)
	}

	path, err := WriteReport(report, cfg.Paths.ReportDir)
	require.NoError(t, err)

	payload, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded Report
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, report.RunID, decoded.RunID)
	assert.Len(t, decoded.Phases, len(enums.Phases()))
}

func TestRunFailFastSkipsRemainingPhases(t *testing.T) {
	client := newTestClient(t)
	cfg := newTestConfig(t)

	// break ingestion by dropping a staging table after generation succeeds
	require.NoError(t, client.Exec(context.Background(), "DROP TABLE staging_customers").Error)

	svc, err := New(cfg, smallGeneration(), client, newTestLogger(), nil)
	require.NoError(t, err)

	report, err := svc.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, enums.RunStatusFailed, report.Status)

	statuses := map[enums.Phase]enums.RunStatus{}
	for _, phase := range report.Phases {
		statuses[phase.Phase] = phase.Status
	}
	assert.Equal(t, enums.RunStatusSuccess, statuses[enums.PhaseDataGeneration])
	assert.Equal(t, enums.RunStatusFailed, statuses[enums.PhaseDataIngestion])
	assert.Equal(t, enums.RunStatusSkipped, statuses[enums.PhaseDataQuality])
	assert.Equal(t, enums.RunStatusSkipped, statuses[enums.PhaseTransformation])
	assert.Equal(t, enums.RunStatusSkipped, statuses[enums.PhaseWarehouseLoading])
}

func TestRunRejectsInvalidGenerationConfig(t *testing.T) {
	client := newTestClient(t)
	cfg := newTestConfig(t)

	bad := smallGeneration()
	bad.Counts.Customers = -1

	svc, err := New(cfg, bad, client, newTestLogger(), nil)
	require.NoError(t, err)

	report, err := svc.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, enums.RunStatusFailed, report.Phases[0].Status)
}
