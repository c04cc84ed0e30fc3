package ingestion

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/cv-automation/internal/types"
)

// requiredColumns are the instruction-table headers, matched
// case-insensitively on the first row.
var requiredColumns = []string{"section", "field", "rule", "value"}

// ReadRuleRows reads an instruction table from an .xlsx workbook or a .csv
// file and returns its raw rows in file order. Validation of row content is
// the rule loader's job; this reader only maps columns.
func ReadRuleRows(path string) ([]types.RuleRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readExcelRows(path)
	case ".csv":
		return readCSVRows(path)
	default:
		return nil, fmt.Errorf("unsupported instructions format %q (want .xlsx or .csv)", filepath.Ext(path))
	}
}

// readExcelRows reads the first sheet of a workbook.
func readExcelRows(path string) ([]types.RuleRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open instructions workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("instructions workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	return mapRows(rows, path)
}

// readCSVRows reads a comma-separated instruction table.
func readCSVRows(path string) ([]types.RuleRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open instructions file %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV %s: %w", path, err)
	}

	return mapRows(rows, path)
}

// mapRows resolves the header row into column indexes and converts the data
// rows. Short rows are padded so the loader can record them as incomplete
// instead of the reader dropping them silently.
func mapRows(rows [][]string, path string) ([]types.RuleRow, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("instructions file %s is empty", path)
	}

	index := make(map[string]int, len(requiredColumns))
	for i, header := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("instructions file %s is missing column %q", path, col)
		}
	}

	out := make([]types.RuleRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		out = append(out, types.RuleRow{
			Section: cell(row, index["section"]),
			Field:   cell(row, index["field"]),
			Rule:    cell(row, index["rule"]),
			Value:   cell(row, index["value"]),
		})
	}
	return out, nil
}

// cell returns the trimmed value at idx, or empty when the row is short.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
