package tokenizer

import (
	"fmt"

	"github.com/ginjaninja78/eft-viewer/internal/separators"
	"github.com/ginjaninja78/eft-viewer/internal/types"
)

// =============================================================================
// FIELD STREAM
// =============================================================================

// Result is the outcome of tokenizing one record's byte range.
type Result struct {
	// Fields are the decoded fields in file order, unique by (type, number).
	Fields []types.Field

	// Warnings are field-level problems, not yet prefixed with a record index.
	Warnings []string
}

// Tokenize decodes every tagged field in data[start:end).
//
// PARAMETERS:
//   - data:  The whole input buffer.
//   - start: Offset of the record's first byte.
//   - end:   Exclusive end of the record, excluding its FS terminator.
//
// TOKENIZING PROCESS:
//   1. Match a tag at the cursor; stop when none matches
//   2. Classify the field as binary or text
//   3. Take the value up to record end (binary) or the next GS (text)
//   4. Split text values into subfields and items
//   5. Step over the GS and repeat
func Tokenize(data []byte, start, end int) Result {
	var result Result
	if end > len(data) {
		end = len(data)
	}

	seen := make(map[string]bool)
	firstType := -1
	pos := start

	for pos < end {
		tag, ok := ParseTag(data, pos, end)
		if !ok {
			if n := significantBytes(data, pos, end); n > 0 {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("%d bytes at offset %d do not start a field tag and were ignored", n, pos))
			}
			break
		}

		binary := IsBinaryField(tag.RecordType, tag.FieldNumber)
		valueEnd := ValueEnd(data, tag.ValueStart, end, binary)
		value := data[tag.ValueStart:valueEnd]

		var subfields []types.Subfield
		if !binary && len(value) > 0 {
			subfields = SplitSubfields(value)
		}

		field := types.NewField(tag.RecordType, tag.FieldNumber, value, binary, subfields)
		switch {
		case seen[field.ID()]:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate field %s at offset %d ignored", field.ID(), tag.Start))
		default:
			if firstType < 0 {
				firstType = tag.RecordType
			} else if tag.RecordType != firstType {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("field %s does not match record type %d", field.ID(), firstType))
			}
			seen[field.ID()] = true
			result.Fields = append(result.Fields, field)
		}

		pos = valueEnd
		if pos < end && data[pos] == separators.GS {
			pos++
		}
	}

	return result
}

// significantBytes counts bytes in [pos, end) other than GS/RS/US.
func significantBytes(data []byte, pos, end int) int {
	n := 0
	for ; pos < end; pos++ {
		if !separators.IsStructural(data[pos]) {
			n++
		}
	}
	return n
}
