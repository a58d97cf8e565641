package tokenizer

import (
	"bytes"

	"github.com/ginjaninja78/eft-viewer/internal/separators"
)

// imageFieldTypes lists the record types whose field 999 carries a binary
// image or signal payload.
var imageFieldTypes = map[int]bool{
	10: true, // face, SMT
	13: true, // latent friction ridge
	14: true, // variable-resolution fingerprint
	15: true, // palm print
	16: true, // user-defined test image
	17: true, // iris
	19: true, // plantar
	20: true, // source representation
}

// ImageFieldNumber is the field holding the payload in tagged image records.
const ImageFieldNumber = 999

// IsBinaryField reports whether (recordType, fieldNumber) is a known image
// payload field whose bytes must not be scanned for separators.
func IsBinaryField(recordType, fieldNumber int) bool {
	if recordType == 4 {
		return fieldNumber == 9
	}
	return fieldNumber == ImageFieldNumber && imageFieldTypes[recordType]
}

// ValueEnd returns the exclusive end of a field value starting at valueStart.
// A binary value always runs to recordEnd, since its payload may contain
// GS or FS bytes. A text value ends at the next GS or at recordEnd.
func ValueEnd(data []byte, valueStart, recordEnd int, binary bool) int {
	if binary || valueStart >= recordEnd {
		return recordEnd
	}
	if i := bytes.IndexByte(data[valueStart:recordEnd], separators.GS); i >= 0 {
		return valueStart + i
	}
	return recordEnd
}
