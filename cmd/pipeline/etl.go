package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/internal/etl"
)

func newETLCommand() *cobra.Command {
	var productionOnly, warehouseOnly bool

	cmd := &cobra.Command{
		Use:   "etl",
		Short: "Transform staging into production and load the warehouse",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if productionOnly && warehouseOnly {
				return fail(fmt.Errorf("--production-only and --warehouse-only are mutually exclusive"))
			}

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

			svc := etl.New(client, a.logg, a.stats, a.gencfg.DateRange)

			if !warehouseOnly {
				counts, err := svc.TransformToProduction(ctx)
				if err != nil {
					return fail(err)
				}
				for table, rows := range counts {
					fmt.Printf("%-36s %d rows\n", table, rows)
				}
			}
			if !productionOnly {
				counts, err := svc.LoadWarehouse(ctx)
				if err != nil {
					return fail(err)
				}
				for table, rows := range counts {
					fmt.Printf("%-36s %d rows\n", table, rows)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&productionOnly, "production-only", false, "stop after the production transform")
	cmd.Flags().BoolVar(&warehouseOnly, "warehouse-only", false, "only rebuild the warehouse from production")
	return cmd
}
