package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ginjaninja78/eft-viewer/internal/separators"
)

// ContentFieldNumber is the Type-1 field listing the file's records (1.003 CNT).
const ContentFieldNumber = 3

// ContentEntry is one (record type, IDC) pair from the content field.
type ContentEntry struct {
	RecordType int
	IDC        int
}

// TransactionRecord is the Type-1 Transaction Information record. Exactly one
// is expected per file and it always comes first.
type TransactionRecord struct {
	base
}

func NewTransactionRecord(index int, fields []Field, warnings []string) *TransactionRecord {
	return &TransactionRecord{base: newBase(1, index, fields, warnings)}
}

func (r *TransactionRecord) Kind() Kind          { return KindTransaction }
func (r *TransactionRecord) Supported() bool     { return true }
func (r *TransactionRecord) DisplayName() string { return "Transaction Info" }
func (r *TransactionRecord) String() string {
	return describe(r.DisplayName(), r.index, len(r.fields))
}

// Version is 1.002 VER.
func (r *TransactionRecord) Version() string { return r.text(2) }

// ContentDescriptor is the raw text of 1.003 CNT.
func (r *TransactionRecord) ContentDescriptor() string { return r.text(3) }

// TransactionType is 1.004 TOT.
func (r *TransactionRecord) TransactionType() string { return r.text(4) }

// Date is 1.005 DAT.
func (r *TransactionRecord) Date() string { return r.text(5) }

// Priority is 1.006 PRY.
func (r *TransactionRecord) Priority() string { return r.text(6) }

// DestinationAgency is 1.007 DAI.
func (r *TransactionRecord) DestinationAgency() string { return r.text(7) }

// OriginatingAgency is 1.008 ORI.
func (r *TransactionRecord) OriginatingAgency() string { return r.text(8) }

// TransactionControlNumber is 1.009 TCN.
func (r *TransactionRecord) TransactionControlNumber() string { return r.text(9) }

// TransactionControlReference is 1.010 TCR.
func (r *TransactionRecord) TransactionControlReference() string { return r.text(10) }

// NativeScanningResolution is 1.011 NSR.
func (r *TransactionRecord) NativeScanningResolution() string { return r.text(11) }

// NominalTransmittingResolution is 1.012 NTR.
func (r *TransactionRecord) NominalTransmittingResolution() string { return r.text(12) }

// DomainName is 1.013 DOM.
func (r *TransactionRecord) DomainName() string { return r.text(13) }

// GreenwichMeanTime is 1.014 GMT.
func (r *TransactionRecord) GreenwichMeanTime() string { return r.text(14) }

// Content returns the (type, IDC) pairs listed in 1.003, dropping entries that
// cannot be parsed. Use ParseContent to also get the reasons.
func (r *TransactionRecord) Content() []ContentEntry {
	f, ok := r.Field(ContentFieldNumber)
	if !ok {
		return nil
	}
	entries, _ := ParseContent(f)
	return entries
}

// ParseContent reads a content field. The first subfield is the record count
// and is skipped; each later subfield holds one (type, IDC) pair, taken from
// its items when structured or by splitting the flat value on US.
//
// RETURNS:
//   - The parsed pairs in declared order.
//   - One warning per subfield that could not be parsed.
func ParseContent(f Field) ([]ContentEntry, []string) {
	var entries []ContentEntry
	var warnings []string

	subfields := f.Subfields()
	for i := 1; i < len(subfields); i++ {
		sf := subfields[i]
		items := sf.Items()
		if items == nil {
			items = strings.Split(sf.Value(), string(separators.US))
		}
		if len(items) < 2 {
			warnings = append(warnings, fmt.Sprintf("content entry %d %q has no IDC", i, sf.Value()))
			continue
		}
		recordType, err := strconv.Atoi(strings.TrimSpace(items[0]))
		if err != nil || recordType <= 0 {
			warnings = append(warnings, fmt.Sprintf("content entry %d has invalid record type %q", i, items[0]))
			continue
		}
		idc, err := strconv.Atoi(strings.TrimSpace(items[1]))
		if err != nil || idc < 0 {
			warnings = append(warnings, fmt.Sprintf("content entry %d has invalid IDC %q", i, items[1]))
			continue
		}
		entries = append(entries, ContentEntry{RecordType: recordType, IDC: idc})
	}

	return entries, warnings
}
