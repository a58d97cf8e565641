package types

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// =============================================================================
// RECORD KINDS
// =============================================================================

// Kind identifies which of the closed set of record variants a Record is.
type Kind int

const (
	KindTransaction Kind = iota
	KindDescriptive
	KindFingerprint
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindTransaction:
		return "transaction"
	case KindDescriptive:
		return "descriptive"
	case KindFingerprint:
		return "fingerprint"
	default:
		return "unsupported"
	}
}

// =============================================================================
// RECORD
// =============================================================================

// Record is one decoded logical record. The set of implementations is closed:
// *TransactionRecord, *DescriptiveRecord, *FingerprintRecord and
// *UnsupportedRecord. Use a type switch or Kind to select the variant.
type Record interface {
	// Kind is the variant selected when the record was constructed.
	Kind() Kind

	// Type is the ANSI/NIST-ITL record type number.
	Type() int

	// Index is the 1-based position of the record in the file.
	Index() int

	Fields() []Field
	Field(number int) (Field, bool)

	// Value returns the text of the field with this number. It reports false
	// when the field is absent or binary.
	Value(number int) (string, bool)

	// Length is the declared record length from field X.001.
	Length() (int, bool)

	Supported() bool
	Warnings() []string
	DisplayName() string
	String() string

	sealed()
}

// NewRecord constructs the variant matching recordType:
// 1 → Transaction, 2 → Descriptive, 4 and 14 → Fingerprint, anything else
// → Unsupported.
func NewRecord(recordType, index int, fields []Field, warnings []string) Record {
	switch recordType {
	case 1:
		return NewTransactionRecord(index, fields, warnings)
	case 2:
		return NewDescriptiveRecord(index, fields, warnings)
	case 4, 14:
		return NewFingerprintRecord(recordType, index, fields, warnings)
	default:
		return NewUnsupportedRecord(recordType, index, fields, warnings)
	}
}

// IsFingerprintType reports whether recordType is decoded as a fingerprint record.
func IsFingerprintType(recordType int) bool {
	return recordType == 4 || recordType == 14
}

// base holds the state shared by every variant.
type base struct {
	recordType int
	index      int
	fields     []Field
	warnings   []string
}

func newBase(recordType, index int, fields []Field, warnings []string) base {
	return base{
		recordType: recordType,
		index:      index,
		fields:     slices.Clone(fields),
		warnings:   slices.Clone(warnings),
	}
}

func (b *base) Type() int          { return b.recordType }
func (b *base) Index() int         { return b.index }
func (b *base) Fields() []Field    { return slices.Clone(b.fields) }
func (b *base) Warnings() []string { return slices.Clone(b.warnings) }
func (b *base) sealed()            {}

func (b *base) Field(number int) (Field, bool) {
	for _, f := range b.fields {
		if f.number == number {
			return f, true
		}
	}
	return Field{}, false
}

func (b *base) Value(number int) (string, bool) {
	f, ok := b.Field(number)
	if !ok || f.binary {
		return "", false
	}
	return f.Text(), true
}

func (b *base) Length() (int, bool) {
	return b.intValue(1)
}

// text returns the field text, or "" when absent.
func (b *base) text(number int) string {
	v, _ := b.Value(number)
	return v
}

// intValue parses a numeric field. A missing or unparsable value is absent,
// never zero.
func (b *base) intValue(number int) (int, bool) {
	v, ok := b.Value(number)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return n, true
}

func describe(name string, index, fieldCount int) string {
	return fmt.Sprintf("%s (Record %d, %d fields)", name, index, fieldCount)
}
