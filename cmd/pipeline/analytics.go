package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/internal/analytics"
	pkgbigquery "github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/bigquery"
)

func newAnalyticsCommand() *cobra.Command {
	var toBigQuery bool

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Run the analytical queries and export per-query CSVs",
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

			svc := analytics.New(client, a.logg)
			results, err := svc.RunQueries(ctx)
			if err != nil {
				return fail(err)
			}
			if err := analytics.WriteResults(results, a.cfg.Paths.AnalyticsDir); err != nil {
				return fail(err)
			}
			for _, result := range results {
				fmt.Printf("%-28s %d rows\n", result.Name, len(result.Rows))
			}
			fmt.Println("query results written to", a.cfg.Paths.AnalyticsDir)

			if !toBigQuery {
				return nil
			}
			if !a.cfg.GCP.Enabled() {
				return fail(fmt.Errorf("--bigquery requires PIPELINE_GCP_PROJECT_ID"))
			}

			bq, err := pkgbigquery.NewClient(ctx, a.cfg.GCP, a.cfg.BigQuery, a.logg)
			if err != nil {
				return fail(err)
			}
			defer bq.Close()

			writer, err := analytics.NewFactWriter(bq, analytics.WriterConfig{Table: a.cfg.BigQuery.SalesTable})
			if err != nil {
				return fail(err)
			}
			exported, err := svc.ExportFactSales(ctx, writer)
			if err != nil {
				return fail(err)
			}
			fmt.Printf("pushed %d fact rows to bigquery\n", exported)
			return nil
		},
	}

	cmd.Flags().BoolVar(&toBigQuery, "bigquery", false, "also push the sales fact to BigQuery")
	return cmd
}
