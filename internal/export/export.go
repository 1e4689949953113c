// Package export serializes query results into interchange formats. JSON
// and CSV are produced in memory; XLSX workbooks are written to disk and
// referenced by path.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/xuri/excelize/v2"

	"github.com/databridge-io/databridge/pkg/adapter"
)

// Format identifies an export serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat resolves a user-supplied format name, accepting the common
// aliases for spreadsheets. An empty name defaults to JSON.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "xlsx", "excel", "spreadsheet":
		return FormatXLSX, nil
	default:
		return "", adapter.NewInvalidInputError("format", fmt.Sprintf("unsupported export format %q", name))
	}
}

// JSON renders the result envelope with its usual JSON shape. Both read and
// write results are representable.
func JSON(result *adapter.QueryResult) ([]byte, error) {
	return json.Marshal(result)
}

// WriteCSV writes a read result as RFC 4180 CSV: one header row with the
// ordered column names, then one row per record. Write results have no
// tabular shape and are rejected.
func WriteCSV(w io.Writer, result *adapter.QueryResult) error {
	if !result.IsRead() {
		return adapter.NewInvalidInputError("format", "csv export requires a row-returning statement")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(result.Columns); err != nil {
		return err
	}
	record := make([]string, len(result.Columns))
	for _, row := range result.Rows {
		for i, col := range result.Columns {
			record[i] = formatCell(row[col])
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a read result as a single-sheet workbook at path,
// creating parent directories as needed.
func WriteXLSX(path string, result *adapter.QueryResult) error {
	if !result.IsRead() {
		return adapter.NewInvalidInputError("format", "xlsx export requires a row-returning statement")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]any, len(result.Columns))
	for i, col := range result.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for n, row := range result.Rows {
		cells := make([]any, len(result.Columns))
		for i, col := range result.Columns {
			cells[i] = row[col]
		}
		start, err := excelize.CoordinatesToCellName(1, n+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, start, &cells); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func formatCell(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
