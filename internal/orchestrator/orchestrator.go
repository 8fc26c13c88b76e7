// Package orchestrator drives a full pipeline run through its five phases:
// generation, ingestion, quality checks, production transform, and warehouse
// loading. A failed phase aborts the phases behind it; the quality phase
// only fails on execution errors, never on a low score.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/internal/etl"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/internal/generator"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/internal/ingest"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/internal/integrity"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/internal/quality"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/config"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/db"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/enums"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/logger"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/metrics"
)

type Service struct {
	cfg    *config.Config
	gencfg *config.GenerationConfig
	client *db.Client
	logg   *logger.Logger
	stats  *metrics.StageMetrics
}

// New wires the orchestrator. stats may be nil; a nil generation config
// falls back to the built-in defaults.
func New(cfg *config.Config, gencfg *config.GenerationConfig, client *db.Client, logg *logger.Logger, stats *metrics.StageMetrics) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if gencfg == nil {
		gencfg = config.DefaultGeneration()
	}
	return &Service{
		cfg:    cfg,
		gencfg: gencfg,
		client: client,
		logg:   logg,
		stats:  stats,
	}, nil
}

// Run executes every phase in order and always returns a complete report;
// the error is the first phase failure, nil on a clean run.
func (s *Service) Run(ctx context.Context) (Report, error) {
	started := time.Now()
	report := Report{
		RunID:     uuid.NewString(),
		StartedAt: started.Format(time.RFC3339),
		Status:    enums.RunStatusSuccess,
	}

	ctx = s.logg.WithRunID(ctx, report.RunID)
	s.logg.Info(ctx, "pipeline run started")

	phases := []struct {
		phase enums.Phase
		run   func(context.Context, *Report) error
	}{
		{enums.PhaseDataGeneration, s.runGeneration},
		{enums.PhaseDataIngestion, s.runIngestion},
		{enums.PhaseDataQuality, s.runQuality},
		{enums.PhaseTransformation, s.runTransformation},
		{enums.PhaseWarehouseLoading, s.runWarehouseLoading},
	}

	var firstErr error
	for _, entry := range phases {
		if firstErr != nil {
			report.Phases = append(report.Phases, PhaseResult{
				Phase:  entry.phase,
				Status: enums.RunStatusSkipped,
			})
			continue
		}
		report.Phases = append(report.Phases, s.runPhase(ctx, entry.phase, &report, entry.run))
		if last := report.Phases[len(report.Phases)-1]; last.Status == enums.RunStatusFailed {
			firstErr = fmt.Errorf("phase %s failed: %s", last.Phase, last.Error)
			report.Status = enums.RunStatusFailed
		}
	}

	finished := time.Now()
	report.FinishedAt = finished.Format(time.RFC3339)
	report.TotalDurationSeconds = finished.Sub(started).Seconds()

	if firstErr != nil {
		s.logg.Error(ctx, "pipeline run failed", firstErr)
	} else {
		s.logg.Info(ctx, fmt.Sprintf("pipeline run complete in %.2fs", report.TotalDurationSeconds))
	}
	return report, firstErr
}

func (s *Service) runPhase(ctx context.Context, phase enums.Phase, report *Report, run func(context.Context, *Report) error) PhaseResult {
	pctx := s.logg.WithPhase(ctx, phase.String())
	s.logg.Info(pctx, "phase started")

	started := time.Now()
	err := run(pctx, report)
	duration := time.Since(started)

	s.stats.ObserveDuration(phase.String(), duration)
	result := PhaseResult{
		Phase:           phase,
		Status:          enums.RunStatusSuccess,
		DurationSeconds: duration.Seconds(),
	}
	if err != nil {
		s.stats.IncFailure(phase.String())
		result.Status = enums.RunStatusFailed
		result.Error = err.Error()
		s.logg.Error(pctx, "phase failed", err)
		return result
	}

	s.stats.IncSuccess(phase.String())
	s.logg.Info(pctx, fmt.Sprintf("phase complete in %.2fs", duration.Seconds()))
	return result
}

func (s *Service) runGeneration(ctx context.Context, report *Report) error {
	gen, err := generator.New(s.gencfg, s.logg)
	if err != nil {
		return err
	}
	ds, err := gen.GenerateAll(ctx)
	if err != nil {
		return err
	}

	validation := integrity.New(s.logg).Validate(ctx, ds)
	report.IntegrityScore = validation.QualityScore

	if err := generator.WriteCSV(ds, s.cfg.Paths.RawDataDir); err != nil {
		return err
	}
	meta := generator.BuildMetadata(ds, s.gencfg.DateRange, validation)
	return generator.WriteMetadata(meta, s.cfg.Paths.ReportDir)
}

func (s *Service) runIngestion(ctx context.Context, _ *Report) error {
	summary, err := ingest.New(s.client, s.logg, s.stats).Run(ctx, s.cfg.Paths.RawDataDir)
	if writeErr := ingest.WriteSummary(summary, s.cfg.Paths.ReportDir); writeErr != nil && err == nil {
		return writeErr
	}
	return err
}

func (s *Service) runQuality(ctx context.Context, report *Report) error {
	qualityReport, err := quality.New(s.client, s.logg).Run(ctx)
	if err != nil {
		return err
	}
	report.QualityScore = qualityReport.OverallQualityScore
	report.QualityGrade = qualityReport.QualityGrade
	return quality.WriteReport(qualityReport, s.cfg.Paths.ReportDir)
}

func (s *Service) runTransformation(ctx context.Context, _ *Report) error {
	_, err := s.etlService().TransformToProduction(ctx)
	return err
}

func (s *Service) runWarehouseLoading(ctx context.Context, _ *Report) error {
	_, err := s.etlService().LoadWarehouse(ctx)
	return err
}

func (s *Service) etlService() *etl.Service {
	return etl.New(s.client, s.logg, s.stats, s.gencfg.DateRange)
}
