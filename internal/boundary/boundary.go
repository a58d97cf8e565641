// =============================================================================
// EFT Viewer - Record Boundary Resolver
// =============================================================================
//
// Every ASCII record ends with an FS byte, and most also declare their own
// length in field X.001. The two disagree whenever a binary payload happens
// to contain a byte equal to FS: a plain scan stops inside the payload.
//
// RESOLUTION POLICY:
//   The declared length may only extend a boundary, never shrink it.
//   1. No usable declared length          -> scanned FS
//   2. Declared end beyond the buffer     -> scanned FS, warn
//   3. Declared end past the scanned FS
//      and the declared end byte is FS    -> declared end
//   4. Anything else                      -> scanned FS, warn on disagreement
//
// =============================================================================

package boundary

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/ginjaninja78/eft-viewer/internal/separators"
	"github.com/ginjaninja78/eft-viewer/internal/tokenizer"
)

// Source records which candidate a boundary came from.
type Source int

const (
	SourceScanned Source = iota
	SourceDeclared
)

func (s Source) String() string {
	if s == SourceDeclared {
		return "declared"
	}
	return "scanned"
}

// Boundary is the resolved extent of one record.
type Boundary struct {
	// Start is the offset of the record's first byte.
	Start int

	// End is the offset of the terminating FS, or len(data) for an
	// unterminated record. Record content is data[Start:End].
	End int

	// Next is the offset where the following record begins.
	Next int

	// Source tells whether End came from the scan or the declared length.
	Source Source

	// ScannedEnd is the offset of the nearest FS at or after Start, or
	// len(data) when there is none.
	ScannedEnd int

	// DeclaredLength is the X.001 value, valid when HasDeclared is set.
	DeclaredLength int
	HasDeclared    bool

	// Terminated is false when no FS closes the record.
	Terminated bool

	// Warnings describe unterminated records and length disagreements.
	Warnings []string
}

// Resolve decides where the record starting at start ends.
func Resolve(data []byte, start int) Boundary {
	b := Boundary{Start: start, Source: SourceScanned}

	if i := bytes.IndexByte(data[start:], separators.FS); i >= 0 {
		b.ScannedEnd = start + i
		b.Terminated = true
	} else {
		b.ScannedEnd = len(data)
		b.Warnings = append(b.Warnings, "record not terminated with FS separator")
	}
	b.End = b.ScannedEnd

	b.DeclaredLength, b.HasDeclared = DeclaredLength(data, start)
	if b.HasDeclared {
		if b.DeclaredLength > len(data)-start {
			b.Warnings = append(b.Warnings, fmt.Sprintf(
				"declared length %d exceeds file size (%d bytes remain)", b.DeclaredLength, len(data)-start))
		} else {
			declaredEnd := start + b.DeclaredLength - 1
			switch {
			case declaredEnd > b.ScannedEnd && data[declaredEnd] == separators.FS:
				b.End = declaredEnd
				b.Source = SourceDeclared
				b.Terminated = true
			case declaredEnd != b.ScannedEnd:
				b.Warnings = append(b.Warnings, fmt.Sprintf(
					"declared length %d disagrees with scanned length %d; using scanned boundary",
					b.DeclaredLength, scannedLength(b)))
			}
		}
	}

	b.Next = b.End
	if b.Terminated {
		b.Next = b.End + 1
	}
	return b
}

// DeclaredLength reads the record's own length from a leading "<type>.001:"
// field. It reports false if the field is missing, empty, non-numeric or not
// positive.
func DeclaredLength(data []byte, start int) (int, bool) {
	tag, ok := tokenizer.ParseTag(data, start, len(data))
	if !ok || tag.FieldNumber != 1 {
		return 0, false
	}

	end := tag.ValueStart
	for end < len(data) && data[end] != separators.GS && data[end] != separators.FS {
		end++
	}

	n, err := strconv.Atoi(strings.TrimSpace(string(data[tag.ValueStart:end])))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// scannedLength is the record length implied by the scan, FS included.
func scannedLength(b Boundary) int {
	if b.Terminated {
		return b.ScannedEnd - b.Start + 1
	}
	return b.ScannedEnd - b.Start
}
