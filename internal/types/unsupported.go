package types

import "fmt"

// UnsupportedRecord keeps the fields of a record type the viewer has no
// specialized interpretation for.
type UnsupportedRecord struct {
	base
}

func NewUnsupportedRecord(recordType, index int, fields []Field, warnings []string) *UnsupportedRecord {
	return &UnsupportedRecord{base: newBase(recordType, index, fields, warnings)}
}

func (r *UnsupportedRecord) Kind() Kind      { return KindUnsupported }
func (r *UnsupportedRecord) Supported() bool { return false }
func (r *UnsupportedRecord) DisplayName() string {
	return fmt.Sprintf("Type-%d (Unsupported)", r.recordType)
}
func (r *UnsupportedRecord) String() string {
	return describe(r.DisplayName(), r.index, len(r.fields))
}
