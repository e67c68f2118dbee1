package csv

import (
	"unicode/utf8"

	"golang.org/x/text/language"

	"github.com/shapestone/csvstream/internal/numfmt"
	"github.com/shapestone/csvstream/internal/parser"
	"github.com/shapestone/csvstream/internal/tokenizer"
)

// ReaderOptions configures CSV parsing behavior.
type ReaderOptions struct {
	// Comma is the field delimiter.
	// It must be a valid rune and not \r, \n, or the quote character.
	// Default: ','
	Comma rune

	// Quote is the character that opens and closes escaped fields.
	// Default: '"'
	Quote rune

	// Locale controls how typed reads interpret grouping and decimal
	// separators. language.Und (the zero value) means plain strconv syntax.
	Locale language.Tag

	// MaxFieldSize is the maximum allowed size for a single field in bytes.
	// 0 means no limit. Only used by the document parser.
	MaxFieldSize int

	// MaxRecordSize is the maximum allowed size for a single record in bytes.
	// 0 means no limit. Only used by the document parser.
	MaxRecordSize int

	// OnBadLine specifies how the document parser handles records that
	// break a size limit. Default: BadLineModeError
	OnBadLine BadLineMode

	// WarningCallback is invoked for dropped records when OnBadLine is
	// BadLineModeWarn.
	WarningCallback WarningHandler
}

// DefaultReaderOptions returns the default reader configuration.
func DefaultReaderOptions() ReaderOptions {
	d := tokenizer.DefaultClassifier()
	return ReaderOptions{
		Comma:     d.Comma,
		Quote:     d.Quote,
		Locale:    language.Und,
		OnBadLine: BadLineModeError,
	}
}

// WriterOptions configures CSV writing behavior.
// Records are always terminated with CRLF.
type WriterOptions struct {
	// Comma is the field delimiter.
	// Default: ','
	Comma rune

	// Quote is the quote character used for escaping.
	// Default: '"'
	Quote rune

	// Locale controls how numbers are formatted. language.Und means no
	// grouping.
	Locale language.Tag
}

// DefaultWriterOptions returns the default writer configuration.
func DefaultWriterOptions() WriterOptions {
	d := tokenizer.DefaultClassifier()
	return WriterOptions{
		Comma:  d.Comma,
		Quote:  d.Quote,
		Locale: language.Und,
	}
}

// Option configures a Scanner or a Writer.
type Option func(*config)

type config struct {
	comma  rune
	quote  rune
	locale *numfmt.Locale
}

func newConfig(opts []Option) config {
	d := tokenizer.DefaultClassifier()
	cfg := config{comma: d.Comma, quote: d.Quote}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validateRunes(cfg.comma, cfg.quote); err != nil {
		panic(err)
	}
	return cfg
}

// WithComma sets the field delimiter.
func WithComma(comma rune) Option {
	return func(c *config) {
		c.comma = comma
	}
}

// WithQuote sets the quote character.
func WithQuote(quote rune) Option {
	return func(c *config) {
		c.quote = quote
	}
}

// WithLocale sets the locale used for numeric fields.
func WithLocale(tag language.Tag) Option {
	return func(c *config) {
		c.locale = numfmt.New(tag)
	}
}

// options converts the struct form into constructor options.
func (o ReaderOptions) options() []Option {
	return []Option{WithComma(o.Comma), WithQuote(o.Quote), WithLocale(o.Locale)}
}

func (o ReaderOptions) parserOptions() parser.Options {
	return parser.Options{
		MaxFieldSize:    o.MaxFieldSize,
		MaxRecordSize:   o.MaxRecordSize,
		OnBadLine:       parser.BadLineMode(o.OnBadLine),
		WarningCallback: o.WarningCallback,
	}
}

func (o WriterOptions) options() []Option {
	return []Option{WithComma(o.Comma), WithQuote(o.Quote), WithLocale(o.Locale)}
}

// validDelim reports whether r is usable as a delimiter or quote.
func validDelim(r rune) bool {
	return r != 0 && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}

func validateRunes(comma, quote rune) error {
	if !validDelim(comma) {
		return &OptionsError{Field: "Comma", Message: "invalid delimiter"}
	}
	if !validDelim(quote) {
		return &OptionsError{Field: "Quote", Message: "invalid quote character"}
	}
	if comma == quote {
		return &OptionsError{Field: "Quote", Message: "quote character same as delimiter"}
	}
	return nil
}

// Validate checks if the options are valid.
// Returns an error if the options are invalid.
func (o ReaderOptions) Validate() error {
	if err := validateRunes(o.Comma, o.Quote); err != nil {
		return err
	}
	if o.MaxFieldSize < 0 {
		return &OptionsError{Field: "MaxFieldSize", Message: "must not be negative"}
	}
	if o.MaxRecordSize < 0 {
		return &OptionsError{Field: "MaxRecordSize", Message: "must not be negative"}
	}
	return nil
}

// Validate checks if the writer options are valid.
func (o WriterOptions) Validate() error {
	return validateRunes(o.Comma, o.Quote)
}

// OptionsError represents an invalid option configuration.
type OptionsError struct {
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return "csv: invalid " + e.Field + ": " + e.Message
}
