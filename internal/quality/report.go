package quality

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// WriteReport persists the quality report as a JSON artifact in dir.
func WriteReport(report Report, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, ReportFile), payload, 0o644)
}
