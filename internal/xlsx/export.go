package xlsx

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/eft-viewer/internal/fieldnames"
	"github.com/ginjaninja78/eft-viewer/internal/types"
)

// =============================================================================
// REPORT WORKBOOK
// =============================================================================

// SummarySheet is the name of the first sheet of a report workbook.
const SummarySheet = "Summary"

// RecordSheetName returns the sheet name used for a record.
func RecordSheetName(r types.Record) string {
	return fmt.Sprintf("R%02d Type-%d", r.Index(), r.Type())
}

// WriteWorkbook writes file as a report workbook at path.
//
// SHEETS:
//   - Summary: source, counts, one row per record, then the warnings
//   - One sheet per record: field id, label, value, subfield count, bytes
func WriteWorkbook(path string, file *types.File, names *fieldnames.Dictionary) error {
	if names == nil {
		names = fieldnames.Default()
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}
	if err := writeSummary(f, file); err != nil {
		return err
	}

	for _, r := range file.Records() {
		if err := writeRecord(f, r, names); err != nil {
			return fmt.Errorf("failed to write record %d: %w", r.Index(), err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, file *types.File) error {
	source := file.SourcePath()
	if source == "" {
		source = "(no path)"
	}

	rows := [][]interface{}{
		{"Source", source},
		{"Summary", file.Summary()},
		{"Records", file.RecordCount()},
		{"Fingerprints", file.FingerprintCount()},
		{"Valid", file.IsValid()},
		{},
		{"Index", "Type", "Name", "Fields", "Supported"},
	}
	for _, r := range file.Records() {
		rows = append(rows, []interface{}{r.Index(), r.Type(), r.DisplayName(), len(r.Fields()), r.Supported()})
	}
	if warnings := file.Warnings(); len(warnings) > 0 {
		rows = append(rows, []interface{}{}, []interface{}{"Warnings"})
		for _, w := range warnings {
			rows = append(rows, []interface{}{w})
		}
	}

	if err := setRows(f, SummarySheet, rows); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return f.SetColWidth(SummarySheet, "A", "A", 14)
}

func writeRecord(f *excelize.File, r types.Record, names *fieldnames.Dictionary) error {
	sheet := RecordSheetName(r)
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{{"Field", "Name", "Value", "Subfields", "Bytes"}}
	for _, fld := range r.Fields() {
		rows = append(rows, []interface{}{
			fld.ID(),
			names.Name(fld.RecordType(), fld.Number()),
			cellValue(fld),
			len(fld.Subfields()),
			fld.Len(),
		})
	}

	if err := setRows(f, sheet, rows); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "B", 32)
}

// cellValue renders a field for a cell. Separators are shown as " | " and
// " ; " so structured values stay readable.
func cellValue(fld types.Field) string {
	if fld.IsBinary() {
		return fmt.Sprintf("<binary, %d bytes>", fld.Len())
	}

	subfields := fld.Subfields()
	parts := make([]string, len(subfields))
	for i, sf := range subfields {
		if sf.IsStructured() {
			parts[i] = strings.Join(sf.Items(), " ; ")
		} else {
			parts[i] = sf.Value()
		}
	}
	return strings.Join(parts, " | ")
}

func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cellName, &row); err != nil {
			return err
		}
	}
	return nil
}
