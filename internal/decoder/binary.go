package decoder

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/ginjaninja78/eft-viewer/internal/separators"
	"github.com/ginjaninja78/eft-viewer/internal/tokenizer"
	"github.com/ginjaninja78/eft-viewer/internal/types"
)

// =============================================================================
// BINARY FIXED-LAYOUT RECORDS
// =============================================================================
//
// Types 3 through 8 carry no tags. They start with a length header that is
// either a run of ASCII digits or a 4-byte big-endian integer, and the length
// covers the whole record including the header.
//
// TYPE-4 LAYOUT (offsets after the header):
//   +0  IDC                 1 byte
//   +1  impression type     1 byte
//   +2  finger positions    6 bytes, 255 = unused
//   +8  scan resolution     1 byte
//   +9  width               2 bytes big-endian
//   +11 height              2 bytes big-endian
//   +13 compression         1 byte
//   +14 image data          rest of the record
//
// =============================================================================

// lengthHeaderSize is the minimum header size and the size of the
// big-endian form.
const lengthHeaderSize = 4

// OpaqueFieldNumber holds the payload of binary records other than Type-4.
const OpaqueFieldNumber = 999

// unusedFingerPosition fills unused finger-position slots.
const unusedFingerPosition = 255

// IsBinaryRecordType reports whether recordType uses the binary layout.
func IsBinaryRecordType(recordType int) bool {
	return recordType >= 3 && recordType <= 8
}

// readLengthHeader returns the record length and the header size.
func readLengthHeader(data []byte, pos int) (int, int, error) {
	if len(data)-pos < lengthHeaderSize {
		return 0, 0, ErrShortHeader
	}

	header := data[pos : pos+lengthHeaderSize]
	if allDigits(header) {
		end := pos
		for end < len(data) && separators.IsDigit(data[end]) {
			end++
		}
		n, err := strconv.Atoi(string(data[pos:end]))
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidLength, data[pos:end])
		}
		return n, end - pos, nil
	}

	return int(binary.BigEndian.Uint32(header)), lengthHeaderSize, nil
}

// decodeBinary decodes one binary record at pos and returns the offset of the
// next record.
func (r *run) decodeBinary(pos, index, recordType int) (types.Record, int, error) {
	length, headerLen, err := readLengthHeader(r.data, pos)
	if err != nil {
		return nil, pos, &ParseError{Position: pos, RecordType: recordType, Msg: "reading length header", Err: err}
	}
	if length <= 0 || length < headerLen {
		return nil, pos, &ParseError{
			Position:   pos,
			RecordType: recordType,
			Msg:        fmt.Sprintf("length %d", length),
			Err:        ErrInvalidLength,
		}
	}
	if length > len(r.data)-pos {
		return nil, pos, &ParseError{
			Position:   pos,
			RecordType: recordType,
			Msg:        fmt.Sprintf("length %d with %d bytes remaining", length, len(r.data)-pos),
			Err:        ErrLengthOverrun,
		}
	}

	rec := r.data[pos : pos+length]
	fields := []types.Field{textField(recordType, 1, strconv.Itoa(length))}
	if recordType == 4 {
		fields = append(fields, type4Fields(rec[headerLen:])...)
	} else {
		fields = append(fields, types.NewField(recordType, OpaqueFieldNumber, rec[headerLen:], true, nil))
	}

	next := pos + length
	if next < len(r.data) && r.data[next] == separators.FS {
		next++
	}
	r.log.Debug("record %d: binary Type-%d, %d bytes (%d-byte header)", index, recordType, length, headerLen)

	return classify(recordType, index, fields, nil), next, nil
}

// type4Layout lists the fixed text fields of a binary Type-4 record.
var type4Layout = []struct {
	number int
	offset int
	size   int
	value  func([]byte) string
}{
	{number: 2, offset: 0, size: 1, value: byteValue},
	{number: 3, offset: 1, size: 1, value: byteValue},
	{number: 4, offset: 2, size: 6, value: fingerPositions},
	{number: 5, offset: 8, size: 1, value: byteValue},
	{number: 6, offset: 9, size: 2, value: uint16Value},
	{number: 7, offset: 11, size: 2, value: uint16Value},
	{number: 8, offset: 13, size: 1, value: byteValue},
}

// type4ImageOffset is where the image payload starts after the header.
const type4ImageOffset = 14

// type4Fields maps the fixed Type-4 layout onto the field numbers used by the
// tagged form. Fields that do not fit in body are left out.
func type4Fields(body []byte) []types.Field {
	var fields []types.Field
	for _, l := range type4Layout {
		if l.offset+l.size > len(body) {
			return fields
		}
		fields = append(fields, textField(4, l.number, l.value(body[l.offset:l.offset+l.size])))
	}

	if len(body) > type4ImageOffset {
		fields = append(fields, types.NewField(4, 9, body[type4ImageOffset:], true, nil))
	}
	return fields
}

func textField(recordType, number int, value string) types.Field {
	raw := []byte(value)
	return types.NewField(recordType, number, raw, false, tokenizer.SplitSubfields(raw))
}

func byteValue(b []byte) string {
	return strconv.Itoa(int(b[0]))
}

func uint16Value(b []byte) string {
	return strconv.Itoa(int(binary.BigEndian.Uint16(b)))
}

// fingerPositions renders the used slots as decimal subfields joined by RS.
func fingerPositions(b []byte) string {
	var used []string
	for _, p := range b {
		if p != unusedFingerPosition {
			used = append(used, strconv.Itoa(int(p)))
		}
	}
	return strings.Join(used, string(separators.RS))
}

func allDigits(b []byte) bool {
	for _, c := range b {
		if !separators.IsDigit(c) {
			return false
		}
	}
	return true
}
