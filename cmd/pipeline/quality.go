package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/internal/quality"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/enums"
)

func newQualityCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "quality",
		Short: "Audit the staging tables across the five quality dimensions",
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

			report, err := quality.New(client, a.logg).Run(ctx)
			if err != nil {
				return fail(err)
			}
			if err := quality.WriteReport(report, a.cfg.Paths.ReportDir); err != nil {
				return fail(err)
			}

			printCheck("null values", report.ChecksPerformed.NullChecks.Status)
			printCheck("duplicates", report.ChecksPerformed.DuplicateChecks.Status)
			printCheck("validity", report.ChecksPerformed.ValidityChecks.Status)
			printCheck("consistency", report.ChecksPerformed.ConsistencyChecks.Status)
			printCheck("referential integrity", report.ChecksPerformed.ReferentialIntegrity.Status)
			fmt.Printf("overall score %.2f, grade %s\n", report.OverallQualityScore, gradeSprint(report.QualityGrade))
			return nil
		},
	}
}

func printCheck(name string, status enums.CheckStatus) {
	mark := color.GreenString("✓")
	if status != enums.CheckStatusPassed {
		mark = color.RedString("✗")
	}
	fmt.Printf("  %s %s: %s\n", mark, name, status)
}

func gradeSprint(grade enums.QualityGrade) string {
	switch grade {
	case enums.QualityGradeA, enums.QualityGradeB:
		return color.GreenString(string(grade))
	case enums.QualityGradeC, enums.QualityGradeD:
		return color.YellowString(string(grade))
	default:
		return color.RedString(string(grade))
	}
}
