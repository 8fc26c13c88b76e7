package orchestrator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/enums"
)

// PhaseResult is the recorded outcome of one pipeline phase.
type PhaseResult struct {
	Phase           enums.Phase     `json:"phase"`
	Status          enums.RunStatus `json:"status"`
	DurationSeconds float64         `json:"duration_seconds"`
	Error           string          `json:"error,omitempty"`
}

// Report is the execution record of one pipeline run. Integrity covers the
// in-memory validation of the generated dataset, quality the persisted
// staging audit.
type Report struct {
	RunID                string             `json:"run_id"`
	StartedAt            string             `json:"started_at"`
	FinishedAt           string             `json:"finished_at"`
	Status               enums.RunStatus    `json:"status"`
	Phases               []PhaseResult      `json:"phases"`
	IntegrityScore       float64            `json:"integrity_score"`
	QualityScore         float64            `json:"overall_quality_score"`
	QualityGrade         enums.QualityGrade `json:"quality_grade,omitempty"`
	TotalDurationSeconds float64            `json:"total_duration_seconds"`
}

// Filename returns the run-scoped report artifact name.
func (r Report) Filename() string {
	return fmt.Sprintf("pipeline_execution_report_%s.json", r.RunID)
}

// WriteReport persists the execution report as indented JSON under dir.
func WriteReport(report Report, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report dir %s: %w", dir, err)
	}
	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling execution report: %w", err)
	}
	path := filepath.Join(dir, report.Filename())
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
