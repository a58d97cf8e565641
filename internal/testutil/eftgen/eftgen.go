// =============================================================================
// EFT Viewer - Synthetic EFT Builder
// =============================================================================
//
// This module builds synthetic EFT byte streams for tests.
//
// ASCII records get a correct "<type>.001:" length unless a length is given
// explicitly, so tests can produce both well-formed and lying records.
// Binary records are written with either header form.
//
// =============================================================================

package eftgen

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/ginjaninja78/eft-viewer/internal/separators"
)

// Separator bytes, for building literals in tests.
const (
	FS = separators.FS
	GS = separators.GS
	RS = separators.RS
	US = separators.US
)

// Field is one tagged field in an ASCII record.
type Field struct {
	Number int
	Value  []byte
}

// Text is a field with a text value.
func Text(number int, value string) Field {
	return Field{Number: number, Value: []byte(value)}
}

// Bytes is a field with a raw value, such as an image payload.
func Bytes(number int, value []byte) Field {
	return Field{Number: number, Value: value}
}

// Subfields joins values with RS.
func Subfields(values ...string) string {
	return strings.Join(values, string(separators.RS))
}

// Items joins values with US.
func Items(values ...string) string {
	return strings.Join(values, string(separators.US))
}

// Entry is one (type, IDC) pair of a content field.
type Entry struct {
	RecordType int
	IDC        int
}

// Content builds a 1.003 field listing entries after the usual count subfield.
func Content(entries ...Entry) Field {
	subfields := []string{Items("1", strconv.Itoa(len(entries)))}
	for _, e := range entries {
		subfields = append(subfields, Items(strconv.Itoa(e.RecordType), fmt.Sprintf("%02d", e.IDC)))
	}
	return Text(3, Subfields(subfields...))
}

// Transaction builds a Type-1 record with version 0501, the given content
// list and any extra fields.
func Transaction(entries []Entry, extra ...Field) []byte {
	fields := []Field{Text(2, "0501"), Content(entries...)}
	return Record(1, append(fields, extra...)...)
}

// Record builds an FS-terminated ASCII record whose X.001 field holds the
// exact record length.
func Record(recordType int, fields ...Field) []byte {
	rest := body(recordType, fields)
	prefix := len(tag(recordType, 1))
	fixed := prefix + len(rest) + 1
	if len(rest) > 0 {
		fixed++
	}

	length := 0
	for digits := 1; ; digits++ {
		length = fixed + digits
		if len(strconv.Itoa(length)) == digits {
			break
		}
	}
	return RecordWithLength(recordType, strconv.Itoa(length), fields...)
}

// RecordWithLength builds an FS-terminated ASCII record with the X.001 value
// given verbatim.
func RecordWithLength(recordType int, length string, fields ...Field) []byte {
	all := append([]Field{Text(1, length)}, fields...)
	return Raw(recordType, all...)
}

// Raw builds an FS-terminated ASCII record from exactly the given fields.
func Raw(recordType int, fields ...Field) []byte {
	out := body(recordType, fields)
	return append(out, separators.FS)
}

func body(recordType int, fields []Field) []byte {
	var buf bytes.Buffer
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(separators.GS)
		}
		buf.WriteString(tag(recordType, f.Number))
		buf.Write(f.Value)
	}
	return buf.Bytes()
}

func tag(recordType, number int) string {
	return fmt.Sprintf("%d.%03d:", recordType, number)
}

// Type4 describes a binary Type-4 fingerprint record.
type Type4 struct {
	IDC            byte
	Impression     byte
	FingerPosition [6]byte
	ScanResolution byte
	Width          uint16
	Height         uint16
	Compression    byte
	Image          []byte
}

// Type4HeaderSize is the number of bytes before the image payload.
const Type4HeaderSize = 18

// Binary4 encodes t with a 4-byte big-endian length header and a trailing FS.
func Binary4(t Type4) []byte {
	length := Type4HeaderSize + len(t.Image)
	out := make([]byte, 0, length+1)
	out = binary.BigEndian.AppendUint32(out, uint32(length))
	out = append(out, t.IDC, t.Impression)
	out = append(out, t.FingerPosition[:]...)
	out = append(out, t.ScanResolution)
	out = binary.BigEndian.AppendUint16(out, t.Width)
	out = binary.BigEndian.AppendUint16(out, t.Height)
	out = append(out, t.Compression)
	out = append(out, t.Image...)
	return append(out, separators.FS)
}

// Opaque encodes a binary record of any other type: a 4-byte big-endian
// length header followed by payload. No FS is appended.
func Opaque(payload []byte) []byte {
	out := binary.BigEndian.AppendUint32(nil, uint32(4+len(payload)))
	return append(out, payload...)
}

// OpaqueDigits encodes payload behind an ASCII decimal length header of the
// given width, zero-padded.
func OpaqueDigits(width int, payload []byte) []byte {
	total := width + len(payload)
	header := fmt.Sprintf("%0*d", width, total)
	return append([]byte(header), payload...)
}

// File concatenates records.
func File(records ...[]byte) []byte {
	return bytes.Join(records, nil)
}

// PayloadWithSeparators returns n bytes that include FS and GS values.
func PayloadWithSeparators(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		switch i % 5 {
		case 1:
			out[i] = separators.FS
		case 3:
			out[i] = separators.GS
		default:
			out[i] = byte(0x80 + i%64)
		}
	}
	return out
}
