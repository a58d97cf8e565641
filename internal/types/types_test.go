package types_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ginjaninja78/eft-viewer/internal/types"
)

// text builds a flat text field with one subfield.
func text(recordType, number int, value string) types.Field {
	var subfields []types.Subfield
	if value != "" {
		subfields = []types.Subfield{types.NewSubfield(0, value, nil)}
	}
	return types.NewField(recordType, number, []byte(value), false, subfields)
}

func TestFieldID(t *testing.T) {
	tests := []struct {
		recordType, number int
		want               string
	}{
		{1, 1, "1.001"},
		{2, 30, "2.030"},
		{14, 999, "14.999"},
		{4, 1000, "4.1000"},
	}
	for _, tt := range tests {
		if got := types.FieldID(tt.recordType, tt.number); got != tt.want {
			t.Errorf("FieldID(%d, %d) = %q, want %q", tt.recordType, tt.number, got, tt.want)
		}
	}
}

func TestFieldCopiesInput(t *testing.T) {
	raw := []byte("abc")
	f := types.NewField(2, 5, raw, false, nil)
	raw[0] = 'X'
	if f.Text() != "abc" {
		t.Errorf("Text() = %q after caller mutation, want %q", f.Text(), "abc")
	}
	got := f.Raw()
	got[1] = 'Y'
	if f.Text() != "abc" {
		t.Errorf("Text() = %q after Raw() mutation, want %q", f.Text(), "abc")
	}
}

func TestSubfieldItems(t *testing.T) {
	flat := types.NewSubfield(0, "A", []string{"A"})
	if flat.IsStructured() || flat.Items() != nil {
		t.Errorf("single item subfield is structured: %v", flat.Items())
	}
	structured := types.NewSubfield(1, "2\x1f00", []string{"2", "00"})
	if !structured.IsStructured() {
		t.Error("two item subfield is not structured")
	}
}

func TestNewRecordVariants(t *testing.T) {
	tests := []struct {
		recordType int
		wantKind   types.Kind
		wantName   string
		supported  bool
	}{
		{1, types.KindTransaction, "Transaction Info", true},
		{2, types.KindDescriptive, "Descriptive Text", true},
		{4, types.KindFingerprint, "Fingerprint (Legacy)", true},
		{14, types.KindFingerprint, "Fingerprint", true},
		{10, types.KindUnsupported, "Type-10 (Unsupported)", false},
	}
	for _, tt := range tests {
		r := types.NewRecord(tt.recordType, 3, []types.Field{text(tt.recordType, 1, "20")}, nil)
		if r.Kind() != tt.wantKind {
			t.Errorf("type %d: Kind = %v, want %v", tt.recordType, r.Kind(), tt.wantKind)
		}
		if r.DisplayName() != tt.wantName {
			t.Errorf("type %d: DisplayName = %q, want %q", tt.recordType, r.DisplayName(), tt.wantName)
		}
		if r.Supported() != tt.supported {
			t.Errorf("type %d: Supported = %v, want %v", tt.recordType, r.Supported(), tt.supported)
		}
		if want := tt.wantName + " (Record 3, 1 fields)"; r.String() != want {
			t.Errorf("type %d: String = %q, want %q", tt.recordType, r.String(), want)
		}
		if n, ok := r.Length(); !ok || n != 20 {
			t.Errorf("type %d: Length = %d, %v, want 20, true", tt.recordType, n, ok)
		}
	}
}

func TestTransactionAccessors(t *testing.T) {
	content := types.NewField(1, 3, []byte("1\x1f2\x1e2\x1f00\x1e14\x1f01"), false, []types.Subfield{
		types.NewSubfield(0, "1\x1f2", []string{"1", "2"}),
		types.NewSubfield(1, "2\x1f00", []string{"2", "00"}),
		types.NewSubfield(2, "14\x1f01", []string{"14", "01"}),
	})
	r := types.NewTransactionRecord(1, []types.Field{
		text(1, 1, "100"),
		text(1, 2, "0501"),
		content,
		text(1, 4, "CAR"),
		text(1, 5, "20240115"),
		text(1, 9, "TCN123"),
	}, nil)

	if r.Version() != "0501" {
		t.Errorf("Version = %q", r.Version())
	}
	if r.TransactionType() != "CAR" || r.Date() != "20240115" || r.TransactionControlNumber() != "TCN123" {
		t.Errorf("accessors = %q %q %q", r.TransactionType(), r.Date(), r.TransactionControlNumber())
	}
	if r.Priority() != "" {
		t.Errorf("missing Priority = %q, want empty", r.Priority())
	}

	want := []types.ContentEntry{{RecordType: 2, IDC: 0}, {RecordType: 14, IDC: 1}}
	if diff := cmp.Diff(want, r.Content()); diff != "" {
		t.Errorf("Content mismatch (-want +got):\n%s", diff)
	}
}

func TestParseContent(t *testing.T) {
	tests := []struct {
		name      string
		subfields []types.Subfield
		want      []types.ContentEntry
		wantWarns int
	}{
		{
			name: "one entry",
			subfields: []types.Subfield{
				types.NewSubfield(0, "1\x1f1", []string{"1", "1"}),
				types.NewSubfield(1, "2\x1f00", []string{"2", "00"}),
			},
			want: []types.ContentEntry{{RecordType: 2, IDC: 0}},
		},
		{
			name: "flat values are split",
			subfields: []types.Subfield{
				types.NewSubfield(0, "1", nil),
				types.NewSubfield(1, "4\x1f03", nil),
			},
			want: []types.ContentEntry{{RecordType: 4, IDC: 3}},
		},
		{
			name:      "count only",
			subfields: []types.Subfield{types.NewSubfield(0, "1\x1f0", []string{"1", "0"})},
		},
		{
			name: "bad entries",
			subfields: []types.Subfield{
				types.NewSubfield(0, "1\x1f3", []string{"1", "3"}),
				types.NewSubfield(1, "2", nil),
				types.NewSubfield(2, "X\x1f00", []string{"X", "00"}),
				types.NewSubfield(3, "2\x1fYY", []string{"2", "YY"}),
				types.NewSubfield(4, "14\x1f02", []string{"14", "02"}),
			},
			want:      []types.ContentEntry{{RecordType: 14, IDC: 2}},
			wantWarns: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := types.NewField(1, 3, nil, false, tt.subfields)
			got, warns := types.ParseContent(f)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("entries mismatch (-want +got):\n%s", diff)
			}
			if len(warns) != tt.wantWarns {
				t.Errorf("got %d warnings %q, want %d", len(warns), warns, tt.wantWarns)
			}
		})
	}
}

func TestFingerprintType14(t *testing.T) {
	image := []byte{0xFF, 0xA0, 0x1C, 0x1D}
	r := types.NewFingerprintRecord(14, 2, []types.Field{
		text(14, 1, "120"),
		text(14, 2, "01"),
		text(14, 3, "2"),
		text(14, 6, "800"),
		text(14, 7, "750"),
		text(14, 8, "1"),
		text(14, 9, "500"),
		text(14, 10, "500"),
		text(14, 11, "WSQ20"),
		text(14, 12, "8"),
		types.NewField(14, 999, image, true, nil),
	}, nil)

	checkInt := func(name string, got int, ok bool, want int) {
		t.Helper()
		if !ok || got != want {
			t.Errorf("%s = %d, %v, want %d, true", name, got, ok, want)
		}
	}
	w, ok := r.ImageWidth()
	checkInt("ImageWidth", w, ok, 800)
	h, ok := r.ImageHeight()
	checkInt("ImageHeight", h, ok, 750)
	hr, ok := r.HorizontalResolution()
	checkInt("HorizontalResolution", hr, ok, 500)
	bpp, ok := r.BitsPerPixel()
	checkInt("BitsPerPixel", bpp, ok, 8)
	idc, ok := r.IDC()
	checkInt("IDC", idc, ok, 1)

	if !r.IsType14() || !r.IsWSQCompressed() || !r.HasImageData() {
		t.Errorf("IsType14=%v IsWSQCompressed=%v HasImageData=%v", r.IsType14(), r.IsWSQCompressed(), r.HasImageData())
	}
	if r.FingerPosition() != "2" || r.ScaleUnits() != "1" {
		t.Errorf("FingerPosition=%q ScaleUnits=%q", r.FingerPosition(), r.ScaleUnits())
	}
	if diff := cmp.Diff(image, r.ImageData()); diff != "" {
		t.Errorf("ImageData mismatch (-want +got):\n%s", diff)
	}
	if _, ok := r.ScanResolution(); ok {
		t.Error("Type-14 record reports a Type-4 scan resolution")
	}
}

func TestFingerprintType4(t *testing.T) {
	r := types.NewFingerprintRecord(4, 2, []types.Field{
		text(4, 1, "36"),
		text(4, 2, "1"),
		text(4, 3, "0"),
		text(4, 4, "2"),
		text(4, 5, "1"),
		text(4, 6, "abc"),
		text(4, 8, "1"),
	}, nil)

	if _, ok := r.ImageWidth(); ok {
		t.Error("unparsable width reported as present")
	}
	if _, ok := r.ImageHeight(); ok {
		t.Error("missing height reported as present")
	}
	if res, ok := r.ScanResolution(); !ok || res != 1 {
		t.Errorf("ScanResolution = %d, %v", res, ok)
	}
	if !r.IsWSQCompressed() {
		t.Error("GCA 1 not recognized as WSQ")
	}
	if r.HasImageData() || r.ImageData() != nil {
		t.Error("record without 4.009 reports image data")
	}
	if r.ImageDataFieldNumber() != 9 {
		t.Errorf("ImageDataFieldNumber = %d, want 9", r.ImageDataFieldNumber())
	}
}

func TestFileViews(t *testing.T) {
	records := []types.Record{
		types.NewRecord(1, 1, []types.Field{text(1, 1, "10")}, nil),
		types.NewRecord(2, 2, []types.Field{text(2, 1, "10")}, nil),
		types.NewRecord(14, 3, []types.Field{text(14, 1, "10")}, nil),
		types.NewRecord(10, 4, []types.Field{text(10, 1, "10")}, nil),
		types.NewRecord(4, 5, []types.Field{text(4, 1, "10")}, nil),
	}
	f := types.NewFile("sample.eft", records, []string{"Record 4: unsupported record type 10"})

	if !f.IsValid() {
		t.Fatal("file with a Type-1 record is not valid")
	}
	if got := len(f.DescriptiveRecords()); got != 1 {
		t.Errorf("DescriptiveRecords = %d, want 1", got)
	}
	if got := f.FingerprintCount(); got != 2 {
		t.Errorf("FingerprintCount = %d, want 2", got)
	}
	if got := len(f.UnsupportedRecords()); got != 1 {
		t.Errorf("UnsupportedRecords = %d, want 1", got)
	}

	var order []int
	for _, r := range f.Records() {
		order = append(order, r.Type())
	}
	if diff := cmp.Diff([]int{1, 2, 14, 10, 4}, order); diff != "" {
		t.Errorf("record order mismatch (-want +got):\n%s", diff)
	}

	if want := "5 records | 2 fingerprints | 1 warning"; f.Summary() != want {
		t.Errorf("Summary = %q, want %q", f.Summary(), want)
	}
	if !strings.HasPrefix(f.String(), "EftFile: sample.eft - ") {
		t.Errorf("String = %q", f.String())
	}
}

func TestFileSummaryPlurals(t *testing.T) {
	one := types.NewFile("", []types.Record{types.NewRecord(1, 1, nil, nil)}, nil)
	if one.Summary() != "1 record" {
		t.Errorf("Summary = %q, want %q", one.Summary(), "1 record")
	}
	if one.String() != "EftFile: (no path) - 1 record" {
		t.Errorf("String = %q", one.String())
	}

	empty := types.NewFile("", nil, nil)
	if empty.IsValid() {
		t.Error("empty file is valid")
	}
	if _, ok := empty.Transaction(); ok {
		t.Error("empty file has a transaction")
	}
}
