package types

import (
	"fmt"
	"strings"
)

// fingerprintLayout maps fingerprint attributes to field numbers. Type-4
// records (binary, or their synthetic tagged form) and Type-14 records
// number their fields differently; 0 means the layout has no such field.
type fingerprintLayout struct {
	idc            int
	fingerPosition int
	impression     int
	width          int
	height         int
	scanResolution int
	scaleUnits     int
	hResolution    int
	vResolution    int
	compression    int
	bitsPerPixel   int
	image          int
}

var (
	type4Layout = fingerprintLayout{
		idc: 2, impression: 3, fingerPosition: 4, scanResolution: 5,
		width: 6, height: 7, compression: 8, image: 9,
	}
	type14Layout = fingerprintLayout{
		idc: 2, fingerPosition: 3, impression: 4,
		width: 6, height: 7, scaleUnits: 8, hResolution: 9, vResolution: 10,
		compression: 11, bitsPerPixel: 12, image: 999,
	}
)

// FingerprintRecord is a Type-4 (legacy grayscale) or Type-14 (variable
// resolution) fingerprint image record. All accessors derive their values
// from the field list on demand.
type FingerprintRecord struct {
	base
	layout fingerprintLayout
}

// NewFingerprintRecord creates a fingerprint record. A record type other
// than 4 or 14 is accepted with the Type-14 layout and a warning.
func NewFingerprintRecord(recordType, index int, fields []Field, warnings []string) *FingerprintRecord {
	layout := type14Layout
	switch recordType {
	case 4:
		layout = type4Layout
	case 14:
	default:
		warnings = append(warnings, fmt.Sprintf("fingerprint record created with unexpected type %d", recordType))
	}
	return &FingerprintRecord{base: newBase(recordType, index, fields, warnings), layout: layout}
}

func (r *FingerprintRecord) Kind() Kind      { return KindFingerprint }
func (r *FingerprintRecord) Supported() bool { return true }
func (r *FingerprintRecord) DisplayName() string {
	if r.recordType == 4 {
		return "Fingerprint (Legacy)"
	}
	return "Fingerprint"
}
func (r *FingerprintRecord) String() string {
	return describe(r.DisplayName(), r.index, len(r.fields))
}

// IsType14 reports whether this is a Type-14 rather than a legacy Type-4 record.
func (r *FingerprintRecord) IsType14() bool { return r.recordType == 14 }

// IDC is the image designation character (X.002).
func (r *FingerprintRecord) IDC() (int, bool) { return r.intValue(r.layout.idc) }

// FingerPosition is the FGP field (4.004 or 14.003).
func (r *FingerprintRecord) FingerPosition() string { return r.text(r.layout.fingerPosition) }

// ImpressionType is the IMP field (4.003 or 14.004).
func (r *FingerprintRecord) ImpressionType() string { return r.text(r.layout.impression) }

// ImageWidth is the horizontal line length (X.006 HLL).
func (r *FingerprintRecord) ImageWidth() (int, bool) { return r.intValue(r.layout.width) }

// ImageHeight is the vertical line length (X.007 VLL).
func (r *FingerprintRecord) ImageHeight() (int, bool) { return r.intValue(r.layout.height) }

// ScanResolution is the Type-4 ISR flag (4.005): 0 for minimum scanning
// resolution, 1 for native. Type-14 records have no such field.
func (r *FingerprintRecord) ScanResolution() (int, bool) {
	return r.optionalInt(r.layout.scanResolution)
}

// ScaleUnits is 14.008 SLC: 1 inches, 2 centimeters.
func (r *FingerprintRecord) ScaleUnits() string { return r.optionalText(r.layout.scaleUnits) }

// HorizontalResolution is 14.009 HPS.
func (r *FingerprintRecord) HorizontalResolution() (int, bool) {
	return r.optionalInt(r.layout.hResolution)
}

// VerticalResolution is 14.010 VPS.
func (r *FingerprintRecord) VerticalResolution() (int, bool) {
	return r.optionalInt(r.layout.vResolution)
}

// CompressionAlgorithm is the compression field: 14.011 CGA text such as
// "WSQ20", or the numeric 4.008 GCA code.
func (r *FingerprintRecord) CompressionAlgorithm() string { return r.text(r.layout.compression) }

// BitsPerPixel is 14.012 BPX.
func (r *FingerprintRecord) BitsPerPixel() (int, bool) { return r.optionalInt(r.layout.bitsPerPixel) }

// ImageDataFieldNumber is 9 for Type-4 and 999 for Type-14.
func (r *FingerprintRecord) ImageDataFieldNumber() int { return r.layout.image }

// ImageData returns the compressed image payload untouched, or nil.
func (r *FingerprintRecord) ImageData() []byte {
	f, ok := r.Field(r.layout.image)
	if !ok {
		return nil
	}
	return f.Raw()
}

// HasImageData reports whether a non-empty image payload is present.
func (r *FingerprintRecord) HasImageData() bool {
	f, ok := r.Field(r.layout.image)
	return ok && f.Len() > 0
}

// IsWSQCompressed reports whether the compression field names WSQ. Type-4
// records use GCA code 1 for WSQ.
func (r *FingerprintRecord) IsWSQCompressed() bool {
	algo := strings.ToUpper(strings.TrimSpace(r.CompressionAlgorithm()))
	if r.recordType == 4 {
		return algo == "1"
	}
	return strings.Contains(algo, "WSQ")
}

func (r *FingerprintRecord) optionalInt(number int) (int, bool) {
	if number == 0 {
		return 0, false
	}
	return r.intValue(number)
}

func (r *FingerprintRecord) optionalText(number int) string {
	if number == 0 {
		return ""
	}
	return r.text(number)
}
