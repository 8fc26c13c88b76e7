package ingest

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// WriteSummary persists the ingestion summary as a JSON artifact in dir.
func WriteSummary(summary Summary, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, SummaryFile), payload, 0o644)
}
