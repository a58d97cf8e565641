package types

import (
	"fmt"
	"slices"
	"strings"
)

// =============================================================================
// FILE
// =============================================================================

// File is the immutable result of one decode call. The categorized views are
// pure projections over Records; building them never reorders or drops a
// record.
type File struct {
	sourcePath string
	records    []Record
	warnings   []string
}

// NewFile assembles a File from decoded records and the warnings collected
// while decoding them.
func NewFile(sourcePath string, records []Record, warnings []string) *File {
	return &File{
		sourcePath: sourcePath,
		records:    slices.Clone(records),
		warnings:   slices.Clone(warnings),
	}
}

// SourcePath is the path or display name the bytes came from, or "".
func (f *File) SourcePath() string { return f.sourcePath }

// Records returns every record in file order.
func (f *File) Records() []Record { return slices.Clone(f.records) }

// Warnings returns the structural warnings collected during decoding.
func (f *File) Warnings() []string { return slices.Clone(f.warnings) }

// Transaction returns the first Type-1 record.
func (f *File) Transaction() (*TransactionRecord, bool) {
	for _, r := range f.records {
		if t, ok := r.(*TransactionRecord); ok {
			return t, true
		}
	}
	return nil, false
}

// DescriptiveRecords returns all Type-2 records.
func (f *File) DescriptiveRecords() []*DescriptiveRecord {
	return collect[*DescriptiveRecord](f.records)
}

// FingerprintRecords returns all Type-4 and Type-14 records.
func (f *File) FingerprintRecords() []*FingerprintRecord {
	return collect[*FingerprintRecord](f.records)
}

// UnsupportedRecords returns every record not marked supported.
func (f *File) UnsupportedRecords() []Record {
	var out []Record
	for _, r := range f.records {
		if !r.Supported() {
			out = append(out, r)
		}
	}
	return out
}

// IsValid reports whether a Transaction record was decoded. A valid file may
// still carry warnings.
func (f *File) IsValid() bool {
	_, ok := f.Transaction()
	return ok
}

func (f *File) RecordCount() int      { return len(f.records) }
func (f *File) FingerprintCount() int { return len(f.FingerprintRecords()) }

// Summary returns a one-line description such as
// "3 records | 1 fingerprint | 2 warnings".
func (f *File) Summary() string {
	parts := []string{plural(f.RecordCount(), "record")}
	if n := f.FingerprintCount(); n > 0 {
		parts = append(parts, plural(n, "fingerprint"))
	}
	if n := len(f.warnings); n > 0 {
		parts = append(parts, plural(n, "warning"))
	}
	return strings.Join(parts, " | ")
}

func (f *File) String() string {
	path := f.sourcePath
	if path == "" {
		path = "(no path)"
	}
	return fmt.Sprintf("EftFile: %s - %s", path, f.Summary())
}

func collect[T Record](records []Record) []T {
	var out []T
	for _, r := range records {
		if v, ok := r.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
