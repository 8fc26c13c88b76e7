package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/internal/ingest"
)

func newIngestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Load the generated CSV files into the staging tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap()
			if err != nil {
				return fail(err)
			}
			ctx := cmd.Context()

			client, err := a.openDB(ctx)
			if err != nil {
				return fail(err)
			}
			defer client.Close()

			summary, runErr := ingest.New(client, a.logg, a.stats).Run(ctx, a.cfg.Paths.RawDataDir)
			if err := ingest.WriteSummary(summary, a.cfg.Paths.ReportDir); err != nil {
				return fail(err)
			}

			for table, result := range summary.TablesLoaded {
				fmt.Printf("%-28s %-8s %d rows\n", table, result.Status, result.RowsLoaded)
			}
			if runErr != nil {
				return fail(runErr)
			}
			fmt.Printf("staging load complete in %.2fs\n", summary.TotalExecutionTimeSeconds)
			return nil
		},
	}
}
