// =============================================================================
// EFT Viewer - Shared Types: Fields and Subfields
// =============================================================================
//
// This package contains the decoded data model shared by the decoder, the
// report writers and the CLI. Every value here is built once during a decode
// call and never mutated afterwards: constructors copy their inputs and the
// accessors hand out copies, so a caller cannot reach back into a File.
//
// MODEL:
//   File
//   └── Record (Transaction | Descriptive | Fingerprint | Unsupported)
//       └── Field (recordType.fieldNumber)
//           └── Subfield (RS-separated)
//               └── Item (US-separated, only when 2+ exist)
//
// =============================================================================

package types

import (
	"fmt"
	"slices"
	"strings"
)

// =============================================================================
// SUBFIELD
// =============================================================================

// Subfield is one RS-separated part of a text field.
type Subfield struct {
	index int
	value string
	items []string
}

// NewSubfield creates a Subfield. items should be nil for a flat subfield;
// a list with fewer than two entries is normalized to nil.
func NewSubfield(index int, value string, items []string) Subfield {
	if len(items) < 2 {
		items = nil
	}
	return Subfield{index: index, value: value, items: slices.Clone(items)}
}

// Index is the 0-based position of the subfield within its field.
func (s Subfield) Index() int { return s.index }

// Value is the whole subfield text, item separators included.
func (s Subfield) Value() string { return s.value }

// Items returns the US-separated items, or nil for a flat subfield.
func (s Subfield) Items() []string { return slices.Clone(s.items) }

// IsStructured reports whether the subfield carries two or more items.
func (s Subfield) IsStructured() bool { return len(s.items) > 0 }

// =============================================================================
// FIELD
// =============================================================================

// Field is a single tagged value in a record, identified by
// (RecordType, Number). The text value is always derived from the raw
// payload, never stored separately.
type Field struct {
	recordType int
	number     int
	raw        []byte
	binary     bool
	subfields  []Subfield
}

// NewField creates a Field. The payload and subfields are copied.
func NewField(recordType, number int, raw []byte, binary bool, subfields []Subfield) Field {
	return Field{
		recordType: recordType,
		number:     number,
		raw:        slices.Clone(raw),
		binary:     binary,
		subfields:  slices.Clone(subfields),
	}
}

// FieldID formats a field identifier the way tags are written, e.g. "1.002".
func FieldID(recordType, number int) string {
	return fmt.Sprintf("%d.%03d", recordType, number)
}

// RecordType is the type component of the field tag.
func (f Field) RecordType() int { return f.recordType }

// Number is the field number component of the field tag.
func (f Field) Number() int { return f.number }

// ID returns the formatted identifier, e.g. "14.999".
func (f Field) ID() string { return FieldID(f.recordType, f.number) }

// Raw returns a copy of the payload bytes.
func (f Field) Raw() []byte { return slices.Clone(f.raw) }

// Len is the payload length in bytes.
func (f Field) Len() int { return len(f.raw) }

// IsBinary reports whether the payload is opaque binary data.
func (f Field) IsBinary() bool { return f.binary }

// Text returns the ASCII decoding of the payload. Binary fields have no text
// value and return "".
func (f Field) Text() string {
	if f.binary {
		return ""
	}
	return ASCII(f.raw)
}

// Subfields returns the RS-separated subfields. Binary and empty fields have none.
func (f Field) Subfields() []Subfield { return slices.Clone(f.subfields) }

// Subfield returns the subfield at index i.
func (f Field) Subfield(i int) (Subfield, bool) {
	if i < 0 || i >= len(f.subfields) {
		return Subfield{}, false
	}
	return f.subfields[i], true
}

func (f Field) String() string {
	if f.binary {
		return fmt.Sprintf("%s: <binary, %d bytes>", f.ID(), len(f.raw))
	}
	return fmt.Sprintf("%s: %s", f.ID(), f.Text())
}

// ASCII decodes b as 7-bit ASCII; bytes above 0x7F become '?'.
func ASCII(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		if c > 0x7F {
			sb.WriteByte('?')
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
