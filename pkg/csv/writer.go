package csv

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/shapestone/csvstream/internal/numfmt"
)

const defaultBufferSize = 4096

// Writer writes CSV one field at a time.
//
// Fields are quoted only when their text contains the delimiter, the quote
// character, CR or LF; embedded quotes are doubled. Records always end with
// CRLF. Output is buffered: call Flush when done. The first write error is
// sticky and returned by every later call.
type Writer struct {
	dst    *bufio.Writer
	comma  rune
	quote  rune
	locale *numfmt.Locale

	first bool
	err   error
}

// NewWriter creates a Writer writing to w.
// It panics with an *OptionsError if the options are invalid.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	cfg := newConfig(opts)
	return &Writer{
		dst:    bufio.NewWriterSize(w, defaultBufferSize),
		comma:  cfg.comma,
		quote:  cfg.quote,
		locale: cfg.locale,
		first:  true,
	}
}

// WriteField writes one text field, preceded by a delimiter unless it is
// the first field of the record.
func (w *Writer) WriteField(text string) error {
	if w.err != nil {
		return w.err
	}
	if !w.first {
		if _, err := w.dst.WriteRune(w.comma); err != nil {
			return w.fail(err)
		}
	}
	w.first = false

	if !w.needsQuote(text) {
		if _, err := w.dst.WriteString(text); err != nil {
			return w.fail(err)
		}
		return nil
	}
	return w.writeQuoted(text)
}

// WriteInt writes a signed integer formatted for the writer's locale.
func (w *Writer) WriteInt(v int64) error {
	return w.WriteField(w.locale.FormatInt(v))
}

// WriteUint writes an unsigned integer formatted for the writer's locale.
func (w *Writer) WriteUint(v uint64) error {
	return w.WriteField(w.locale.FormatUint(v))
}

// WriteFloat writes a float formatted for the writer's locale.
func (w *Writer) WriteFloat(v float64) error {
	return w.WriteField(w.locale.FormatFloat(v, 64))
}

// WriteBool writes "true" or "false".
func (w *Writer) WriteBool(v bool) error {
	return w.WriteField(w.locale.FormatBool(v))
}

// WriteValue writes any value. Numbers and booleans go through the locale
// formatter, fmt.Stringer values use String, everything else uses fmt.Sprint.
// The resulting text is quoted by the same rules as WriteField.
func (w *Writer) WriteValue(v any) error {
	switch x := v.(type) {
	case string:
		return w.WriteField(x)
	case bool:
		return w.WriteBool(x)
	case int:
		return w.WriteInt(int64(x))
	case int8:
		return w.WriteInt(int64(x))
	case int16:
		return w.WriteInt(int64(x))
	case int32:
		return w.WriteInt(int64(x))
	case int64:
		return w.WriteInt(x)
	case uint:
		return w.WriteUint(uint64(x))
	case uint8:
		return w.WriteUint(uint64(x))
	case uint16:
		return w.WriteUint(uint64(x))
	case uint32:
		return w.WriteUint(uint64(x))
	case uint64:
		return w.WriteUint(x)
	case float32:
		return w.WriteField(w.locale.FormatFloat(float64(x), 32))
	case float64:
		return w.WriteFloat(x)
	case fmt.Stringer:
		return w.WriteField(x.String())
	case nil:
		return w.WriteField("")
	default:
		return w.WriteField(fmt.Sprint(x))
	}
}

// EndRecord terminates the current record with CRLF.
func (w *Writer) EndRecord() error {
	if w.err != nil {
		return w.err
	}
	w.first = true
	if _, err := w.dst.WriteString("\r\n"); err != nil {
		return w.fail(err)
	}
	return nil
}

// WriteRecord writes every field followed by EndRecord.
func (w *Writer) WriteRecord(fields ...string) error {
	for _, f := range fields {
		if err := w.WriteField(f); err != nil {
			return err
		}
	}
	return w.EndRecord()
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		return w.fail(err)
	}
	return nil
}

// Error reports the first error encountered by the writer.
func (w *Writer) Error() error {
	return w.err
}

func (w *Writer) fail(err error) error {
	w.err = err
	return err
}

func (w *Writer) needsQuote(text string) bool {
	return strings.ContainsRune(text, w.comma) ||
		strings.ContainsRune(text, w.quote) ||
		strings.ContainsAny(text, "\r\n")
}

func (w *Writer) writeQuoted(text string) error {
	if _, err := w.dst.WriteRune(w.quote); err != nil {
		return w.fail(err)
	}
	for _, r := range text {
		if r == w.quote {
			if _, err := w.dst.WriteRune(w.quote); err != nil {
				return w.fail(err)
			}
		}
		if _, err := w.dst.WriteRune(r); err != nil {
			return w.fail(err)
		}
	}
	if _, err := w.dst.WriteRune(w.quote); err != nil {
		return w.fail(err)
	}
	return nil
}
