package types

// DescriptiveRecord is the Type-2 User-Defined Descriptive Text record.
type DescriptiveRecord struct {
	base
}

func NewDescriptiveRecord(index int, fields []Field, warnings []string) *DescriptiveRecord {
	return &DescriptiveRecord{base: newBase(2, index, fields, warnings)}
}

func (r *DescriptiveRecord) Kind() Kind          { return KindDescriptive }
func (r *DescriptiveRecord) Supported() bool     { return true }
func (r *DescriptiveRecord) DisplayName() string { return "Descriptive Text" }
func (r *DescriptiveRecord) String() string {
	return describe(r.DisplayName(), r.index, len(r.fields))
}

// IDC is 2.002, the information designation character.
func (r *DescriptiveRecord) IDC() (int, bool) { return r.intValue(2) }
