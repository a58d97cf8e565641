// =============================================================================
// EFT Viewer - XLSX Workbooks
// =============================================================================
//
// This module reads and writes XLSX workbooks:
//   - Label workbooks override field names shown in reports
//   - Report workbooks hold one decoded file, a summary sheet plus one
//     sheet per record
//
// LABEL WORKBOOK STRUCTURE (Expected Columns):
//
//   | Column A | Column B                 |
//   |----------|--------------------------|
//   | Field ID | Label                    |
//   | 2.030    | Agency Case Number       |
//   | 14.200   | Vendor Extension         |
//
// Field ids may omit the zero padding ("2.30").
//
// =============================================================================

package xlsx

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/eft-viewer/internal/fieldnames"
)

// =============================================================================
// LABEL COLUMN CONFIGURATION
// =============================================================================

// LabelColumns defines which columns of a label workbook hold which data.
// Column and row indices are 0-based.
type LabelColumns struct {
	// FieldIDColumn holds the "type.number" id.
	// Default: 0 (Column A)
	FieldIDColumn int

	// LabelColumn holds the display label.
	// Default: 1 (Column B)
	LabelColumn int

	// DataStartRow is the first row after the header.
	// Default: 1 (Row 2)
	DataStartRow int
}

// DefaultLabelColumns returns the default column configuration.
func DefaultLabelColumns() LabelColumns {
	return LabelColumns{
		FieldIDColumn: 0, // Column A
		LabelColumn:   1, // Column B
		DataStartRow:  1, // Row 2
	}
}

// =============================================================================
// LABEL READER
// =============================================================================

// LoadLabels reads the first sheet of a label workbook.
//
// RETURNS:
//   - Labels keyed by canonical field id.
//   - An error if the file cannot be read or a row holds an invalid id.
func LoadLabels(path string) (map[string]string, error) {
	return LoadLabelsWithConfig(path, DefaultLabelColumns())
}

// LoadLabelsWithConfig reads a label workbook using a custom column layout.
func LoadLabelsWithConfig(path string, columns LabelColumns) (map[string]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open label workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("label workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	labels := make(map[string]string)
	for i := columns.DataStartRow; i < len(rows); i++ {
		row := rows[i]
		if isRowEmpty(row) {
			continue
		}

		rawID := cell(row, columns.FieldIDColumn)
		label := cell(row, columns.LabelColumn)
		if rawID == "" || label == "" {
			continue
		}

		id, ok := fieldnames.NormalizeID(rawID)
		if !ok {
			return nil, fmt.Errorf("error parsing row %d: invalid field id %q", i+1, rawID)
		}
		labels[id] = label
	}

	return labels, nil
}

// cell safely returns a trimmed cell value.
func cell(row []string, index int) string {
	if index < len(row) {
		return strings.TrimSpace(row[index])
	}
	return ""
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
