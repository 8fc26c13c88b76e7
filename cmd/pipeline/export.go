package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/internal/analytics"
)

func newExportCommand() *cobra.Command {
	var skipWorkbook bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the warehouse tables as CSV files and an XLSX workbook",
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
			counts, err := svc.ExportTables(ctx, a.cfg.Paths.ExportDir)
			if err != nil {
				return fail(err)
			}
			for table, rows := range counts {
				fmt.Printf("%-36s %d rows\n", table, rows)
			}

			if skipWorkbook {
				return nil
			}
			results, err := svc.RunQueries(ctx)
			if err != nil {
				return fail(err)
			}
			path, err := svc.ExportWorkbook(ctx, a.cfg.Paths.ExportDir, results)
			if err != nil {
				return fail(err)
			}
			fmt.Println("workbook written to", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipWorkbook, "no-workbook", false, "skip the XLSX workbook export")
	return cmd
}
