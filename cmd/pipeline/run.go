package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/internal/orchestrator"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/enums"
)

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Execute the full pipeline: generate, ingest, quality, transform, warehouse",
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

			svc, err := orchestrator.New(a.cfg, a.gencfg, client, a.logg, a.stats)
			if err != nil {
				return fail(err)
			}

			report, runErr := svc.Run(ctx)
			path, err := orchestrator.WriteReport(report, a.cfg.Paths.ReportDir)
			if err != nil {
				return fail(err)
			}

			printRunSummary(report, path)
			if runErr != nil {
				return runErr
			}
			return nil
		},
	}
}

func printRunSummary(report orchestrator.Report, reportPath string) {
	fmt.Println()
	fmt.Println("pipeline run", report.RunID)
	for _, phase := range report.Phases {
		switch phase.Status {
		case enums.RunStatusSuccess:
			fmt.Printf("  %s %-18s %6.2fs\n", color.GreenString("✓"), phase.Phase, phase.DurationSeconds)
		case enums.RunStatusSkipped:
			fmt.Printf("  %s %-18s skipped\n", color.YellowString("-"), phase.Phase)
		default:
			fmt.Printf("  %s %-18s %s\n", color.RedString("✗"), phase.Phase, phase.Error)
		}
	}

	fmt.Printf("  integrity score %.1f\n", report.IntegrityScore)
	if report.QualityGrade != "" {
		fmt.Printf("  quality score %.2f grade %s\n", report.QualityScore, gradeSprint(report.QualityGrade))
	}

	if report.Status == enums.RunStatusSuccess {
		color.Green("run complete in %.2fs", report.TotalDurationSeconds)
	} else {
		color.Red("run failed after %.2fs", report.TotalDurationSeconds)
	}
	fmt.Println("execution report:", reportPath)
}
