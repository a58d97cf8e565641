// =============================================================================
// EFT Viewer - Field Tokenizer
// =============================================================================
//
// This package turns the bytes of a single logical record into Fields. It
// understands the three layers of ASCII structure:
//   - Tags       "type.number:" at the start of every field
//   - Subfields  separated by RS
//   - Items      separated by US
//
// It knows nothing about record boundaries: callers hand it a byte range
// [start, end) that has already been resolved for the enclosing record.
//
// =============================================================================

package tokenizer

import (
	"strconv"

	"github.com/ginjaninja78/eft-viewer/internal/separators"
)

// Tag is a recognized "type.number:" field tag.
type Tag struct {
	// RecordType is the digits before the period.
	RecordType int

	// FieldNumber is the digits between the period and the colon.
	FieldNumber int

	// Start is the offset of the first tag digit, after any skipped separators.
	Start int

	// ValueStart is the offset just past the colon.
	ValueStart int
}

// ParseTag matches DIGIT+ '.' DIGIT+ ':' at pos, after skipping any stray
// GS/RS/US bytes. It never reads at or beyond end.
//
// RETURNS:
//   - The tag and true on a match.
//   - false when the grammar fails; this marks the end of the field stream
//     and is not an error.
func ParseTag(data []byte, pos, end int) (Tag, bool) {
	if end > len(data) {
		end = len(data)
	}

	for pos < end && separators.IsStructural(data[pos]) {
		pos++
	}
	start := pos

	recordType, pos, ok := digits(data, pos, end)
	if !ok || pos >= end || data[pos] != separators.Period {
		return Tag{}, false
	}
	pos++

	fieldNumber, pos, ok := digits(data, pos, end)
	if !ok || pos >= end || data[pos] != separators.Colon {
		return Tag{}, false
	}
	pos++

	return Tag{RecordType: recordType, FieldNumber: fieldNumber, Start: start, ValueStart: pos}, true
}

// digits consumes a non-empty run of ASCII digits and parses it.
func digits(data []byte, pos, end int) (int, int, bool) {
	start := pos
	for pos < end && separators.IsDigit(data[pos]) {
		pos++
	}
	if pos == start {
		return 0, pos, false
	}
	n, err := strconv.Atoi(string(data[start:pos]))
	if err != nil {
		return 0, pos, false
	}
	return n, pos, true
}
