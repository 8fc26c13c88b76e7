package generator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/config"
)

// MetadataFile is the JSON artifact describing one generation run.
const MetadataFile = "generation_metadata.json"

type Metadata struct {
	GenerationTimestamp string            `json:"generation_timestamp"`
	RecordCounts        RecordCounts      `json:"record_counts"`
	DateRange           MetadataDateRange `json:"date_range"`
	ValidationResult    any               `json:"validation_result"`
}

type RecordCounts struct {
	Customers        int `json:"customers"`
	Products         int `json:"products"`
	Transactions     int `json:"transactions"`
	TransactionItems int `json:"transaction_items"`
	TotalRecords     int `json:"total_records"`
}

type MetadataDateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// BuildMetadata assembles the run metadata. The validation argument is the
// integrity report of the generated dataset and is embedded verbatim.
func BuildMetadata(ds *Dataset, window config.DateRangeConfig, validation any) Metadata {
	return Metadata{
		GenerationTimestamp: time.Now().Format(time.RFC3339),
		RecordCounts: RecordCounts{
			Customers:        len(ds.Customers),
			Products:         len(ds.Products),
			Transactions:     len(ds.Transactions),
			TransactionItems: len(ds.Items),
			TotalRecords:     ds.TotalRecords(),
		},
		DateRange: MetadataDateRange{
			StartDate: window.StartDate,
			EndDate:   window.EndDate,
		},
		ValidationResult: validation,
	}
}

// WriteMetadata persists the metadata as indented JSON under dir.
func WriteMetadata(meta Metadata, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}

	path := filepath.Join(dir, MetadataFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
