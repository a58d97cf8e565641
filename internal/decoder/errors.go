package decoder

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyInput is returned for a nil or zero-length buffer. No File is
	// produced in this case.
	ErrEmptyInput = errors.New("empty input")

	// ErrShortHeader means fewer than four bytes remain for a binary length header.
	ErrShortHeader = errors.New("binary record header truncated")

	// ErrInvalidLength means a binary length header decoded to zero or less,
	// or to fewer bytes than the header itself.
	ErrInvalidLength = errors.New("invalid binary record length")

	// ErrLengthOverrun means a binary length header points past the buffer.
	ErrLengthOverrun = errors.New("binary record length exceeds file size")
)

// ParseError reports where decoding failed.
type ParseError struct {
	// Position is the byte offset being decoded when the failure occurred.
	Position int

	// RecordType is the record type in progress, or 0 when unknown.
	RecordType int

	// FieldID is the "type.number" field in progress, or "" when unknown.
	FieldID string

	// Msg describes the failure.
	Msg string

	// Err is the underlying cause, usually one of the sentinels above.
	Err error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse error at byte %d", e.Position)
	if e.RecordType > 0 {
		msg += fmt.Sprintf(" (record type %d)", e.RecordType)
	}
	if e.FieldID != "" {
		msg += fmt.Sprintf(" (field %s)", e.FieldID)
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
