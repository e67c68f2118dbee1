// Package tokenizer provides the character source and character classes used
// by the CSV field scanner.
package tokenizer

import "fmt"

// Class is the lexical class of a single character as seen by the field scanner.
//
// The scanner only ever needs one character of context to decide what to do
// next, so classification is a pure function of the character and the
// configured delimiter and quote.
type Class int

const (
	// ClassText is any character with no structural meaning.
	ClassText Class = iota
	// ClassDelimiter ends the current field (default ',').
	ClassDelimiter
	// ClassQuote opens or closes an escaped field (default '"').
	ClassQuote
	// ClassCR is a carriage return, optionally followed by LF.
	ClassCR
	// ClassLF is a line feed.
	ClassLF
	// ClassEOF marks the end of the character source.
	ClassEOF
)

// String returns the name of the class.
func (c Class) String() string {
	switch c {
	case ClassText:
		return "Text"
	case ClassDelimiter:
		return "Delimiter"
	case ClassQuote:
		return "Quote"
	case ClassCR:
		return "CR"
	case ClassLF:
		return "LF"
	case ClassEOF:
		return "EOF"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// Classifier maps characters to classes for a given delimiter and quote.
type Classifier struct {
	// Comma is the field delimiter. Default: ','
	Comma rune
	// Quote is the quote character. Default: '"'
	Quote rune
}

// DefaultClassifier returns the RFC 4180 classifier.
func DefaultClassifier() Classifier {
	return Classifier{Comma: ',', Quote: '"'}
}

// Classify returns the class of r. ok is the second result of a
// PeekChar/NextChar call; when it is false the class is ClassEOF.
func (c Classifier) Classify(r rune, ok bool) Class {
	switch {
	case !ok:
		return ClassEOF
	case r == c.Comma:
		return ClassDelimiter
	case r == c.Quote:
		return ClassQuote
	case r == '\r':
		return ClassCR
	case r == '\n':
		return ClassLF
	default:
		return ClassText
	}
}

// IsTerminator reports whether the class ends a field.
func (c Class) IsTerminator() bool {
	switch c {
	case ClassDelimiter, ClassCR, ClassLF, ClassEOF:
		return true
	}
	return false
}
