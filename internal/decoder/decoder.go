// =============================================================================
// EFT Viewer - Decoder Module
// =============================================================================
//
// This module turns a fully buffered EFT byte stream into a types.File. It
// is the record type dispatcher: the first record must be the Type-1
// transaction record, and its content field (1.003) says which records
// follow and in what order.
//
// DECODING PIPELINE:
//   1. Decode the first record as tagged ASCII
//   2. Abort gracefully unless it is a Type-1 record
//   3. Read the content list from field 1.003
//   4. For each declared (type, IDC) pair, decode one record:
//      types 3-8 as binary, everything else as tagged ASCII
//   5. Assemble the File and its warnings
//
// Structural problems become warnings. Only empty input is an error.
//
// CONCURRENCY:
//   Decode holds no state between calls. One Decoder may be shared by
//   goroutines decoding different buffers.
//
// =============================================================================

package decoder

import (
	"fmt"

	"github.com/ginjaninja78/eft-viewer/internal/types"
)

// =============================================================================
// DECODER
// =============================================================================

// Options configures a Decoder.
type Options struct {
	// SourcePath is recorded on the File for display. It is never opened.
	SourcePath string

	// Logger receives debug and warning diagnostics. Nil discards them.
	Logger Logger
}

// Decoder decodes EFT byte streams.
type Decoder struct {
	sourcePath string
	logger     Logger
}

// New creates a Decoder.
func New(opts Options) *Decoder {
	logger := opts.Logger
	if logger == nil {
		logger = nopLogger{}
	}
	return &Decoder{sourcePath: opts.SourcePath, logger: logger}
}

// Decode decodes data with a default Decoder.
func Decode(data []byte, sourcePath string) (*types.File, error) {
	return New(Options{SourcePath: sourcePath}).Decode(data)
}

// run is the workspace of a single Decode call.
type run struct {
	data     []byte
	log      Logger
	records  []types.Record
	warnings []string
}

// Decode decodes data into a File.
//
// RETURNS:
//   - The decoded File. It may hold fewer records than declared; the
//     reasons are in its warnings.
//   - A *ParseError wrapping ErrEmptyInput when data is nil or empty.
func (d *Decoder) Decode(data []byte) (*types.File, error) {
	if len(data) == 0 {
		return nil, &ParseError{Position: 0, Msg: "no bytes to decode", Err: ErrEmptyInput}
	}

	r := &run{data: data, log: d.logger}
	r.decode()

	file := types.NewFile(d.sourcePath, r.records, r.warnings)
	d.logger.Debug("decoded %s", file)
	return file, nil
}

// =============================================================================
// DISPATCH
// =============================================================================

func (r *run) decode() {
	pos, content, ok := r.decodeTransaction()
	if !ok {
		return
	}

	for i, entry := range content {
		index := i + 2
		if pos >= len(r.data) {
			r.abort("content list declares %d records after the transaction record but the file ends after %d",
				len(content), i)
			return
		}

		var (
			record types.Record
			next   int
		)
		if IsBinaryRecordType(entry.RecordType) {
			var err error
			record, next, err = r.decodeBinary(pos, index, entry.RecordType)
			if err != nil {
				r.abort("Record %d: failed to decode Type-%d record: %v", index, entry.RecordType, err)
				return
			}
		} else {
			record, next = r.decodeASCII(pos, index, entry.RecordType)
		}

		r.add(record)
		pos = next
	}

	if pos < len(r.data) {
		r.warnings = append(r.warnings,
			fmt.Sprintf("%d bytes after the last declared record were ignored", len(r.data)-pos))
	}
}

// decodeTransaction decodes the first record and its content list. It
// reports false when the file cannot be decoded any further.
func (r *run) decodeTransaction() (int, []types.ContentEntry, bool) {
	a := r.readASCII(0, 1)
	switch recordType := a.recordType(0); {
	case len(a.fields) == 0:
		r.abort("Record 1: no fields found, not an EFT file")
		return 0, nil, false
	case recordType != 1:
		r.abort("Record 1: expected Type-1 transaction record, found Type-%d", recordType)
		return 0, nil, false
	}

	var content []types.ContentEntry
	warnings := a.warnings
	if f, ok := fieldByNumber(a.fields, types.ContentFieldNumber); ok {
		var contentWarnings []string
		content, contentWarnings = types.ParseContent(f)
		warnings = append(warnings, contentWarnings...)
	} else {
		warnings = append(warnings, "content field 1.003 missing, no further records decoded")
	}

	r.add(classify(1, 1, a.fields, warnings))
	return a.next, content, true
}

// add appends record and folds its warnings into the File's list.
func (r *run) add(record types.Record) {
	r.records = append(r.records, record)
	for _, w := range record.Warnings() {
		r.warnings = append(r.warnings, fmt.Sprintf("Record %d: %s", record.Index(), w))
	}
}

func (r *run) abort(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.log.Warn("decode stopped: %s", msg)
	r.warnings = append(r.warnings, msg)
}

func fieldByNumber(fields []types.Field, number int) (types.Field, bool) {
	for _, f := range fields {
		if f.Number() == number {
			return f, true
		}
	}
	return types.Field{}, false
}
