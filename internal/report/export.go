package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ExportCSV writes each table to <dir>/<name>.csv.
func ExportCSV(dir string, tables []Table) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	var written []string
	for _, t := range tables {
		path := filepath.Join(dir, t.Name+".csv")
		if err := writeCSV(path, t); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeCSV(path string, t Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ExportJSON writes all tables into one JSON document at path.
// Each table becomes an array of header-keyed objects.
func ExportJSON(path string, tables []Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}

	doc := make(map[string][]map[string]string, len(tables))
	for _, t := range tables {
		rows := make([]map[string]string, 0, len(t.Rows))
		for _, row := range t.Rows {
			obj := make(map[string]string, len(t.Header))
			for i, col := range t.Header {
				if i < len(row) {
					obj[col] = row[i]
				}
			}
			rows = append(rows, obj)
		}
		doc[t.Name] = rows
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ExportXLSX writes all tables into one workbook, one sheet per table.
func ExportXLSX(path string, tables []Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}

	wb := excelize.NewFile()
	defer func() { _ = wb.Close() }()

	for i, t := range tables {
		sheet := t.Name
		if i == 0 {
			if err := wb.SetSheetName("Sheet1", sheet); err != nil {
				return err
			}
		} else {
			if _, err := wb.NewSheet(sheet); err != nil {
				return err
			}
		}

		for col, name := range t.Header {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				return err
			}
			if err := wb.SetCellValue(sheet, cell, name); err != nil {
				return err
			}
		}
		for rowIdx, row := range t.Rows {
			for col, val := range row {
				cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
				if err != nil {
					return err
				}
				if err := wb.SetCellValue(sheet, cell, val); err != nil {
					return err
				}
			}
		}
	}

	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
