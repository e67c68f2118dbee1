package csv

import (
	"io"
	"slices"
	"strings"
)

// Row is one CSV record: an ordered sequence of fields.
//
// A Row read from a Scanner takes the width of the line it was read from;
// ragged input is tolerated, not rejected.
type Row []string

// NewRow returns a row of n empty fields.
func NewRow(n int) Row {
	return make(Row, n)
}

// Len returns the number of fields.
func (r Row) Len() int {
	return len(r)
}

// Clear empties every field in place without changing the width.
func (r Row) Clear() {
	clear(r)
}

// Read replaces the contents of r with the next line from s.
//
// Existing fields are overwritten in place, extra fields are appended, and
// the row is truncated to the number of fields actually read. Read returns
// io.EOF, leaving r empty, when s is exhausted. On a parse error the
// contents of r are partial and should be discarded.
func (r *Row) Read(s *Scanner) error {
	r.Clear()
	if s.AtEOF() {
		*r = (*r)[:0]
		return io.EOF
	}

	n := 0
	for s.HasMoreFields() {
		field, err := s.NextField()
		if err != nil {
			return err
		}
		if n < len(*r) {
			(*r)[n] = field
		} else {
			*r = append(*r, field)
		}
		n++
	}
	s.SetHasMoreFields(true)
	*r = (*r)[:n]
	return nil
}

// Write writes every field in order and ends the record.
func (r Row) Write(w *Writer) error {
	for _, field := range r {
		if err := w.WriteField(field); err != nil {
			return err
		}
	}
	return w.EndRecord()
}

// Equal reports whether r and other have the same fields in the same order.
func (r Row) Equal(other Row) bool {
	return slices.Equal(r, other)
}

// String returns a debug representation such as row{{a},{b}}.
func (r Row) String() string {
	var sb strings.Builder
	sb.WriteString("row{")
	for i, field := range r {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('{')
		sb.WriteString(field)
		sb.WriteByte('}')
	}
	sb.WriteByte('}')
	return sb.String()
}
