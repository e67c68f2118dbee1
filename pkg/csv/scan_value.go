package csv

import (
	"reflect"
	"unicode"

	"github.com/shapestone/csvstream/internal/tokenizer"
)

// Value is the set of types a field can be read as or converted to.
type Value interface {
	~string | ~bool |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

type lexKind int

const (
	lexInt lexKind = iota
	lexUint
	lexFloat
	lexBool
)

func lexKindOf(k reflect.Kind) lexKind {
	switch k {
	case reflect.Bool:
		return lexBool
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return lexUint
	case reflect.Float32, reflect.Float64:
		return lexFloat
	default:
		return lexInt
	}
}

// ReadValue reads the next field as a T.
//
// Strings are read with NextField. Other types are lexed directly from the
// character source: a leading quote is skipped, the value's characters are
// consumed, a closing quote is required if the field was quoted, and the
// following character must be a field terminator. Both 42 and "42" read as
// the integer 42. Locale grouping and decimal separators are accepted when
// the Scanner has a locale; a separator equal to the delimiter is only
// accepted inside quotes.
//
// A malformed terminator is a *ParseError. Text that lexes but does not
// convert is a *ValueError; the field has been consumed in that case.
func ReadValue[T Value](s *Scanner) (T, error) {
	var v T
	rv := reflect.ValueOf(&v).Elem()
	if rv.Kind() == reflect.String {
		f, err := s.NextField()
		rv.SetString(f)
		return v, err
	}

	text, err := s.readRaw(lexKindOf(rv.Kind()))
	if err != nil {
		return v, err
	}
	if err := setValue(rv, text, s.locale); err != nil {
		return v, err
	}
	return v, nil
}

// ReadInt reads the next field as a signed integer into dest.
// dest is left unchanged on error.
func (s *Scanner) ReadInt(dest *int64) error {
	return readInto(s, dest)
}

// ReadUint reads the next field as an unsigned integer into dest.
func (s *Scanner) ReadUint(dest *uint64) error {
	return readInto(s, dest)
}

// ReadFloat reads the next field as a float into dest.
func (s *Scanner) ReadFloat(dest *float64) error {
	return readInto(s, dest)
}

// ReadBool reads the next field as a boolean into dest.
// Accepted spellings are those of strconv.ParseBool.
func (s *Scanner) ReadBool(dest *bool) error {
	return readInto(s, dest)
}

func readInto[T Value](s *Scanner, dest *T) error {
	v, err := ReadValue[T](s)
	if err != nil {
		return err
	}
	*dest = v
	return nil
}

func (s *Scanner) readRaw(kind lexKind) (string, error) {
	start := s.line
	s.field.Reset()

	r, ok := s.src.PeekChar()
	quoted := s.class.Classify(r, ok) == tokenizer.ClassQuote
	if quoted {
		s.next()
	}
	s.skipSpace()

	for {
		r, ok := s.src.PeekChar()
		if !ok || !s.accepts(kind, r, quoted) {
			break
		}
		s.next()
		s.field.WriteRune(r)
	}
	text := s.field.String()

	if quoted {
		r, ok := s.next()
		switch s.class.Classify(r, ok) {
		case tokenizer.ClassQuote:
		case tokenizer.ClassEOF:
			return text, s.errorAt(start, ErrUnterminatedQuote)
		default:
			return text, s.errorAt(start, ErrUnexpectedChar)
		}
	}

	r, ok = s.next()
	return text, s.readEnding(start, r, ok)
}

// accepts reports whether r can be part of a value of the given kind.
func (s *Scanner) accepts(kind lexKind, r rune, quoted bool) bool {
	if r == s.class.Quote {
		return false
	}
	if r == s.class.Comma && !quoted {
		return false
	}
	if kind == lexBool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	switch {
	case r >= '0' && r <= '9', r == '+', r == '-':
		return true
	case r == s.locale.Group() && r != 0:
		return true
	}
	if kind == lexFloat {
		return r == s.locale.Decimal() || r == '.' || r == 'e' || r == 'E'
	}
	return false
}

func (s *Scanner) skipSpace() {
	if s.class.Comma == ' ' {
		return
	}
	for {
		r, ok := s.src.PeekChar()
		if !ok || r != ' ' {
			return
		}
		s.next()
	}
}
