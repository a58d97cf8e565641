package decoder

import (
	"fmt"

	"github.com/ginjaninja78/eft-viewer/internal/boundary"
	"github.com/ginjaninja78/eft-viewer/internal/tokenizer"
	"github.com/ginjaninja78/eft-viewer/internal/types"
)

// =============================================================================
// ASCII TAGGED-FIELD RECORDS
// =============================================================================

// asciiRecord is one tagged record before it is turned into a types.Record.
type asciiRecord struct {
	fields   []types.Field
	warnings []string
	next     int
}

// recordType is the type of the first field, or fallback when there are none.
func (a asciiRecord) recordType(fallback int) int {
	if len(a.fields) == 0 {
		return fallback
	}
	return a.fields[0].RecordType()
}

// readASCII resolves the boundary of the record at pos and tokenizes it.
func (r *run) readASCII(pos, index int) asciiRecord {
	b := boundary.Resolve(r.data, pos)
	r.log.Debug("record %d: %s boundary at byte %d (scanned %d, next %d)", index, b.Source, b.End, b.ScannedEnd, b.Next)

	tok := tokenizer.Tokenize(r.data, pos, b.End)
	warnings := append(b.Warnings, tok.Warnings...)
	return asciiRecord{fields: tok.Fields, warnings: warnings, next: b.Next}
}

// decodeASCII decodes a declared non-transaction record. A record with no
// fields takes its type from the content list.
func (r *run) decodeASCII(pos, index, declaredType int) (types.Record, int) {
	a := r.readASCII(pos, index)

	recordType := a.recordType(declaredType)
	if recordType != declaredType {
		a.warnings = append(a.warnings,
			fmt.Sprintf("record type %d does not match declared content type %d", recordType, declaredType))
	}
	return classify(recordType, index, a.fields, a.warnings), a.next
}

// classify builds the record variant for recordType. Only the first record
// may be a transaction; any later Type-1 record is kept as unsupported.
func classify(recordType, index int, fields []types.Field, warnings []string) types.Record {
	if recordType == 1 && index > 1 {
		warnings = append(warnings, "additional Type-1 record kept as unsupported")
		return types.NewUnsupportedRecord(recordType, index, fields, warnings)
	}

	switch recordType {
	case 1, 2, 4, 14:
	default:
		warnings = append(warnings, fmt.Sprintf("unsupported record type %d", recordType))
	}
	return types.NewRecord(recordType, index, fields, warnings)
}
