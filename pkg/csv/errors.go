package csv

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/shapestone/csvstream/internal/parser"
)

// BadLineMode specifies how the document parser handles records that break
// a configured size limit.
type BadLineMode int

const (
	// BadLineModeError returns an error on the offending record (default).
	BadLineModeError BadLineMode = iota
	// BadLineModeWarn reports a warning and drops the record.
	BadLineModeWarn
	// BadLineModeSkip silently drops the record.
	BadLineModeSkip
)

// String returns the string representation of BadLineMode.
func (m BadLineMode) String() string {
	switch m {
	case BadLineModeError:
		return "error"
	case BadLineModeWarn:
		return "warn"
	case BadLineModeSkip:
		return "skip"
	default:
		return fmt.Sprintf("BadLineMode(%d)", m)
	}
}

// ParseError represents a parsing error with position information.
type ParseError struct {
	// StartLine is the line where the failing field started (1-indexed).
	StartLine int
	// Line is the line where the error was detected (1-indexed).
	Line int
	// Column is the number of characters consumed on Line when the error
	// was detected.
	Column int
	// Err is the underlying error.
	Err error
}

// Error returns a formatted error message with position information.
func (e *ParseError) Error() string {
	if e.StartLine == e.Line {
		return fmt.Sprintf("parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse error on line %d (started line %d), column %d: %v",
		e.Line, e.StartLine, e.Column, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Common parsing errors
var (
	// ErrUnexpectedChar indicates a character other than a delimiter, line
	// ending or end of input where a field terminator was required, e.g.
	// trailing data after a closing quote.
	ErrUnexpectedChar = errors.New("unexpected character")

	// ErrUnterminatedQuote indicates end of input inside a quoted field.
	ErrUnterminatedQuote = errors.New("unexpected end of input in quoted field")

	// ErrFieldTooLarge indicates a field exceeded MaxFieldSize.
	ErrFieldTooLarge = parser.ErrFieldTooLarge

	// ErrRecordTooLarge indicates a record exceeded MaxRecordSize.
	ErrRecordTooLarge = parser.ErrRecordTooLarge
)

// ValueError reports a field whose text could not be converted to the
// requested type.
type ValueError struct {
	// Value is the field text.
	Value string
	// Type is the requested Go type.
	Type reflect.Type
	// Err is the conversion error, usually a *strconv.NumError.
	Err error
}

// Error returns a formatted error message.
func (e *ValueError) Error() string {
	return fmt.Sprintf("cannot convert %q to %v: %v", e.Value, e.Type, e.Err)
}

// Unwrap returns the underlying conversion error.
func (e *ValueError) Unwrap() error {
	return e.Err
}

// WarningHandler is a callback function for reporting non-fatal conditions,
// such as a row whose width differs from its header.
type WarningHandler func(line int, message string)
