package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/config"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/db"
	pkgerrors "github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/errors"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/logger"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/metrics"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/migrate"
)

var configFile string

// app carries the shared dependencies every subcommand builds on.
type app struct {
	cfg    *config.Config
	gencfg *config.GenerationConfig
	logg   *logger.Logger
	stats  *metrics.StageMetrics
}

// bootstrap loads the environment and file configuration and initializes
// the logger and metrics. Commands that never touch the database (generate,
// init) use this alone; everything else adds openDB.
func bootstrap() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logg := logger.New(logger.Options{
		ServiceName: "pipeline",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	gencfg, err := config.LoadGeneration(configFile)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		gencfg: gencfg,
		logg:   logg,
		stats:  metrics.NewStageMetrics(prometheus.NewRegistry()),
	}, nil
}

// openDB connects the relational sink and prepares the schema in dev mode.
func (a *app) openDB(ctx context.Context) (*db.Client, error) {
	client, err := db.New(ctx, a.cfg.DB, a.logg)
	if err != nil {
		return nil, err
	}
	if err := migrate.MaybeRunDev(ctx, a.cfg, a.logg, client); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// fail prints the error before returning it; coded errors whose metadata
// marks them retryable say so, so a rerun is an obvious first move.
func fail(err error) error {
	if te := pkgerrors.As(err); te != nil && pkgerrors.MetadataFor(te.Code()).Retryable {
		fmt.Fprintln(os.Stderr, "error (retryable):", err)
		return err
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	return err
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "pipeline",
		Short: "Synthetic e-commerce data generator and layered ETL pipeline",
		Long: `pipeline fabricates a referentially consistent e-commerce dataset
(customers, products, transactions, transaction items), loads it through
staging, production and warehouse layers of a relational store, audits the
data across five quality dimensions, and exports analytical results.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "generation config file (yaml); defaults built in")

	root.AddCommand(
		newGenerateCommand(),
		newIngestCommand(),
		newQualityCommand(),
		newETLCommand(),
		newAnalyticsCommand(),
		newExportCommand(),
		newRunCommand(),
		newInitCommand(),
	)
	return root
}
