package csv

import (
	"io"
	"strings"

	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"

	"github.com/shapestone/csvstream/internal/numfmt"
	"github.com/shapestone/csvstream/internal/tokenizer"
)

// Scanner reads CSV one field at a time.
//
// Grammar (RFC 4180):
//
//	field       = escaped / non-escaped ;
//	escaped     = QUOTE { TEXTDATA / COMMA / CR / LF / 2QUOTE } QUOTE ;
//	non-escaped = { TEXTDATA } ;
//
// A field is escaped only when its first character is the quote character;
// a quote anywhere else in an unquoted field is ordinary data. Records may
// end with CRLF, LF or a lone CR, and the final record may end at end of
// input.
//
// A Scanner is bound to one character source for its whole lifetime and is
// not safe for concurrent use.
type Scanner struct {
	src    *tokenizer.Source
	class  tokenizer.Classifier
	locale *numfmt.Locale

	line   int
	column int
	more   bool

	field strings.Builder
}

// NewScanner creates a Scanner reading from r.
// It panics with an *OptionsError if the options are invalid.
func NewScanner(r io.Reader, opts ...Option) *Scanner {
	return newScanner(tokenizer.NewSourceFromReader(r), opts)
}

// NewScannerFromString creates a Scanner reading from an in-memory string.
func NewScannerFromString(input string, opts ...Option) *Scanner {
	return newScanner(tokenizer.NewSourceFromString(input), opts)
}

// NewScannerFromStream creates a Scanner over an existing shape-core stream.
func NewScannerFromStream(stream shapetokenizer.Stream, opts ...Option) *Scanner {
	return newScanner(tokenizer.NewSource(stream), opts)
}

func newScanner(src *tokenizer.Source, opts []Option) *Scanner {
	cfg := newConfig(opts)
	return &Scanner{
		src:    src,
		class:  tokenizer.Classifier{Comma: cfg.comma, Quote: cfg.quote},
		locale: cfg.locale,
		line:   1,
		more:   true,
	}
}

// NextField reads the next field and its terminator.
//
// After the call HasMoreFields reports whether the field was ended by a
// delimiter (true) or by a line ending or end of input (false). Errors are
// *ParseError values wrapping ErrUnexpectedChar or ErrUnterminatedQuote; the
// scanner does not resynchronize after an error.
func (s *Scanner) NextField() (string, error) {
	s.field.Reset()

	r, ok := s.src.PeekChar()
	var err error
	if s.class.Classify(r, ok) == tokenizer.ClassQuote {
		err = s.readEscaped()
	} else {
		s.readUnescaped()
	}
	return s.field.String(), err
}

// HasMoreFields reports whether the last field read was followed by a
// delimiter, i.e. whether the current line has more fields.
func (s *Scanner) HasMoreFields() bool {
	return s.more
}

// SetHasMoreFields overrides the pending-fields flag. Row reads set it back
// to true once a line is consumed so that the next read starts a new line.
func (s *Scanner) SetHasMoreFields(more bool) {
	s.more = more
}

// AtEOF reports whether the character source is exhausted.
func (s *Scanner) AtEOF() bool {
	_, ok := s.src.PeekChar()
	return !ok
}

// LineNumber returns the current line, starting at 1. It advances on every
// line ending that terminates a record; line endings inside quoted fields
// are field data and do not count.
func (s *Scanner) LineNumber() int {
	return s.line
}

// ColumnNumber returns the number of characters consumed on the current
// line, terminators included.
func (s *Scanner) ColumnNumber() int {
	return s.column
}

// Offset returns the number of characters consumed from the source.
func (s *Scanner) Offset() int {
	return s.src.Offset()
}

func (s *Scanner) readUnescaped() {
	for {
		r, ok := s.next()
		switch s.class.Classify(r, ok) {
		case tokenizer.ClassDelimiter:
			s.more = true
			return
		case tokenizer.ClassCR:
			s.skipLF()
			s.nextLine()
			return
		case tokenizer.ClassLF:
			s.nextLine()
			return
		case tokenizer.ClassEOF:
			s.more = false
			return
		default:
			s.field.WriteRune(r)
		}
	}
}

func (s *Scanner) readEscaped() error {
	start := s.line
	s.next() // opening quote

	for {
		r, ok := s.next()
		switch s.class.Classify(r, ok) {
		case tokenizer.ClassEOF:
			return s.errorAt(start, ErrUnterminatedQuote)
		case tokenizer.ClassQuote:
			ahead, ok := s.next()
			if s.class.Classify(ahead, ok) == tokenizer.ClassQuote {
				s.field.WriteRune(r)
				continue
			}
			return s.readEnding(start, ahead, ok)
		default:
			s.field.WriteRune(r)
		}
	}
}

// readEnding interprets the character after a closing quote or a typed
// value as a field terminator.
func (s *Scanner) readEnding(start int, r rune, ok bool) error {
	c := s.class.Classify(r, ok)
	if !c.IsTerminator() {
		return s.errorAt(start, ErrUnexpectedChar)
	}
	switch c {
	case tokenizer.ClassDelimiter:
		s.more = true
	case tokenizer.ClassCR:
		s.skipLF()
		s.nextLine()
	case tokenizer.ClassLF:
		s.nextLine()
	default:
		s.more = false
	}
	return nil
}

// skipLF consumes the LF of a CRLF pair. A lone CR is a line ending on its
// own, so anything else is pushed back.
func (s *Scanner) skipLF() {
	r, ok := s.next()
	if ok && r != '\n' {
		s.unread()
	}
}

func (s *Scanner) nextLine() {
	s.line++
	s.column = 0
	s.more = false
}

func (s *Scanner) next() (rune, bool) {
	r, ok := s.src.NextChar()
	if ok {
		s.column++
	}
	return r, ok
}

func (s *Scanner) unread() {
	if s.src.Unread() {
		s.column--
	}
}

func (s *Scanner) errorAt(start int, err error) error {
	return &ParseError{StartLine: start, Line: s.line, Column: s.column, Err: err}
}
