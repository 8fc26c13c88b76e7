// Package etl moves data through the layered store: staging rows are
// cleansed into production, and production rows are reshaped into the
// star schema. Both stages are idempotent; each run clears its target
// layer before loading, and each stage runs in a single transaction so a
// failure rolls back only that stage.
package etl

import (
	"context"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/config"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/db"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/logger"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/metrics"
)

const factBatchSize = 500

type Service struct {
	client *db.Client
	logg   *logger.Logger
	stats  *metrics.StageMetrics
	window config.DateRangeConfig
}

// New builds the transformation service. The window bounds the calendar
// dimension; an empty window falls back to the default generation range.
// stats may be nil.
func New(client *db.Client, logg *logger.Logger, stats *metrics.StageMetrics, window config.DateRangeConfig) *Service {
	if window.StartDate == "" || window.EndDate == "" {
		window = config.DefaultGeneration().DateRange
	}
	return &Service{client: client, logg: logg, stats: stats, window: window}
}

// Run executes both stages in order.
func (s *Service) Run(ctx context.Context) error {
	if _, err := s.TransformToProduction(ctx); err != nil {
		return err
	}
	_, err := s.LoadWarehouse(ctx)
	return err
}
