package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/internal/generator"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/internal/integrity"
)

func newGenerateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate the synthetic dataset and write CSV artifacts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap()
			if err != nil {
				return fail(err)
			}
			ctx := cmd.Context()

			gen, err := generator.New(a.gencfg, a.logg)
			if err != nil {
				return fail(err)
			}
			ds, err := gen.GenerateAll(ctx)
			if err != nil {
				return fail(err)
			}

			validation := integrity.New(a.logg).Validate(ctx, ds)

			if err := generator.WriteCSV(ds, a.cfg.Paths.RawDataDir); err != nil {
				return fail(err)
			}
			meta := generator.BuildMetadata(ds, a.gencfg.DateRange, validation)
			if err := generator.WriteMetadata(meta, a.cfg.Paths.ReportDir); err != nil {
				return fail(err)
			}

			fmt.Printf("generated %d records (integrity score %.1f)\n", ds.TotalRecords(), validation.QualityScore)
			fmt.Println("csv files written to", a.cfg.Paths.RawDataDir)
			return nil
		},
	}
}
