package analytics

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/db/models"
	pkgerrors "github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/errors"
)

// WorkbookFile is the XLSX artifact bundling every warehouse table.
const WorkbookFile = "warehouse_export.xlsx"

// warehouseTables lists the export targets, dimensions before the fact.
func warehouseTables() []string {
	return []string{
		models.DimCustomer{}.TableName(),
		models.DimProduct{}.TableName(),
		models.DimDate{}.TableName(),
		models.DimPaymentMethod{}.TableName(),
		models.FactSale{}.TableName(),
	}
}

// ExportTables dumps every warehouse table as <table>.csv under dir and
// returns the exported row count per table.
func (s *Service) ExportTables(ctx context.Context, dir string) (map[string]int64, error) {
	s.logg.Info(ctx, "exporting warehouse tables to csv")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir %s: %w", dir, err)
	}

	counts := map[string]int64{}
	for _, table := range warehouseTables() {
		columns, rows, err := s.store.QueryRows(ctx, fmt.Sprintf("SELECT * FROM %s", table))
		if err != nil {
			return counts, pkgerrors.Wrap(pkgerrors.CodeQuery, err, fmt.Sprintf("reading %s", table))
		}
		path := filepath.Join(dir, table+".csv")
		if err := writeResultCSV(path, Result{Name: table, Columns: columns, Rows: rows}); err != nil {
			return counts, err
		}
		counts[table] = int64(len(rows))
		s.logg.Info(s.logg.WithTable(ctx, table), fmt.Sprintf("exported %d rows", len(rows)))
	}
	return counts, nil
}

// ExportWorkbook writes one XLSX workbook under dir with a sheet per
// warehouse table plus a sheet per analytical query result.
func (s *Service) ExportWorkbook(ctx context.Context, dir string, results []Result) (string, error) {
	s.logg.Info(ctx, "exporting warehouse workbook")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir %s: %w", dir, err)
	}

	book := excelize.NewFile()
	defer book.Close()

	sheets := make([]Result, 0, len(warehouseTables())+len(results))
	for _, table := range warehouseTables() {
		columns, rows, err := s.store.QueryRows(ctx, fmt.Sprintf("SELECT * FROM %s", table))
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeQuery, err, fmt.Sprintf("reading %s", table))
		}
		sheets = append(sheets, Result{Name: table, Columns: columns, Rows: rows})
	}
	sheets = append(sheets, results...)

	for i, sheet := range sheets {
		name := sheetName(sheet.Name)
		if i == 0 {
			if err := book.SetSheetName("Sheet1", name); err != nil {
				return "", fmt.Errorf("renaming first sheet: %w", err)
			}
		} else {
			if _, err := book.NewSheet(name); err != nil {
				return "", fmt.Errorf("creating sheet %s: %w", name, err)
			}
		}
		if err := fillSheet(book, name, sheet); err != nil {
			return "", err
		}
	}

	path := filepath.Join(dir, WorkbookFile)
	if err := book.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return path, nil
}

func fillSheet(book *excelize.File, name string, sheet Result) error {
	header := make([]any, len(sheet.Columns))
	for i, col := range sheet.Columns {
		header[i] = col
	}
	if err := book.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("writing header of sheet %s: %w", name, err)
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			if b, ok := v.([]byte); ok {
				values[j] = string(b)
			} else {
				values[j] = v
			}
		}
		if err := book.SetSheetRow(name, cell, &values); err != nil {
			return fmt.Errorf("writing row %d of sheet %s: %w", i+2, name, err)
		}
	}
	return nil
}

// sheetName truncates to the 31-character excel sheet name limit.
func sheetName(name string) string {
	if len(name) > 31 {
		return name[:31]
	}
	return name
}
