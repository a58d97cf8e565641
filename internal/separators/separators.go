// =============================================================================
// EFT Viewer - Separator Alphabet
// =============================================================================
//
// ANSI/NIST-ITL structure is delimited by four ASCII control characters plus
// the two punctuation bytes used inside field tags:
//
//   FS  0x1C  end of record
//   GS  0x1D  between fields
//   RS  0x1E  between subfields
//   US  0x1F  between information items
//   :   0x3A  tag / value
//   .   0x2E  record type / field number
//
// =============================================================================

package separators

const (
	// FS terminates a record.
	FS byte = 0x1C

	// GS separates fields within a record.
	GS byte = 0x1D

	// RS separates subfields within a field.
	RS byte = 0x1E

	// US separates information items within a subfield.
	US byte = 0x1F

	// Colon separates a field tag from its value.
	Colon byte = 0x3A

	// Period separates the record type from the field number in a tag.
	Period byte = 0x2E
)

// IsStructural reports whether b is one of GS, RS or US.
func IsStructural(b byte) bool {
	return b == GS || b == RS || b == US
}

// IsDigit reports whether b is an ASCII decimal digit.
func IsDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
