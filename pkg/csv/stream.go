package csv

import (
	"errors"
	"fmt"
	"io"
	"iter"
)

// RowReader provides a streaming interface for reading CSV rows one at a time.
//
// Example usage:
//
//	file, _ := os.Open("data.csv")
//	defer file.Close()
//
//	rows := csv.NewRowReader(csv.NewScanner(file))
//	for rows.Scan() {
//	    fmt.Println(rows.Row())
//	}
//	if err := rows.Err(); err != nil {
//	    // handle error
//	}
type RowReader struct {
	scanner *Scanner
	row     Row
	reuse   bool
	err     error
}

// NewRowReader creates a RowReader over s.
func NewRowReader(s *Scanner) *RowReader {
	return &RowReader{scanner: s}
}

// SetReuseRow sets whether Scan reads into the same backing array each
// time. When true, a Row returned by Row is overwritten by the next Scan.
// Returns the RowReader for method chaining.
func (r *RowReader) SetReuseRow(reuse bool) *RowReader {
	r.reuse = reuse
	return r
}

// Scan advances to the next row. It returns false at end of input or on
// error; Err distinguishes the two.
func (r *RowReader) Scan() bool {
	if r.err != nil {
		return false
	}
	if !r.reuse {
		r.row = nil
	}
	if err := r.row.Read(r.scanner); err != nil {
		if !errors.Is(err, io.EOF) {
			r.err = err
		}
		return false
	}
	return true
}

// Row returns the current row. Only valid after Scan returned true.
func (r *RowReader) Row() Row {
	return r.row
}

// Err returns the first non-EOF error encountered.
func (r *RowReader) Err() error {
	return r.err
}

// All returns an iterator over the remaining rows. Check Err after the
// loop.
func (r *RowReader) All() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for r.Scan() {
			if !yield(r.row) {
				return
			}
		}
	}
}

// MapRowReader reads a header line and then rows with name-based access.
//
// Rows whose width differs from the header are returned as read; when a
// WarningHandler is set they are also reported to it.
type MapRowReader struct {
	scanner *Scanner
	header  *Header
	row     *MapRow
	reuse   bool
	warn    WarningHandler
	err     error
}

// NewMapRowReader reads the header line from s and returns a reader for the
// remaining rows. Empty input yields an empty header and no rows.
func NewMapRowReader(s *Scanner) (*MapRowReader, error) {
	h, err := ReadHeader(s)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	return &MapRowReader{scanner: s, header: h}, nil
}

// SetReuseRow sets whether Scan reuses the same MapRow.
func (r *MapRowReader) SetReuseRow(reuse bool) *MapRowReader {
	r.reuse = reuse
	return r
}

// SetWarningHandler installs a callback for rows whose width differs from
// the header.
func (r *MapRowReader) SetWarningHandler(h WarningHandler) *MapRowReader {
	r.warn = h
	return r
}

// Header returns the header read at construction.
func (r *MapRowReader) Header() *Header {
	return r.header
}

// Scan advances to the next row.
func (r *MapRowReader) Scan() bool {
	if r.err != nil {
		return false
	}
	if r.row == nil || !r.reuse {
		r.row = NewMapRow(r.header)
	}
	line := r.scanner.LineNumber()
	if err := r.row.Read(r.scanner); err != nil {
		if !errors.Is(err, io.EOF) {
			r.err = err
		}
		return false
	}
	if r.warn != nil && r.row.Len() != r.header.Len() {
		r.warn(line, fmt.Sprintf("row has %d fields, header has %d", r.row.Len(), r.header.Len()))
	}
	return true
}

// Row returns the current row.
func (r *MapRowReader) Row() *MapRow {
	return r.row
}

// Err returns the first non-EOF error encountered.
func (r *MapRowReader) Err() error {
	return r.err
}

// All returns an iterator over the remaining rows.
func (r *MapRowReader) All() iter.Seq[*MapRow] {
	return func(yield func(*MapRow) bool) {
		for r.Scan() {
			if !yield(r.row) {
				return
			}
		}
	}
}

// Fields returns an iterator over the remaining fields of the current line.
// Iteration stops after the last field of the line, at end of input, or
// after yielding an error.
func Fields(s *Scanner) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if s.AtEOF() {
			return
		}
		for {
			field, err := s.NextField()
			if err != nil {
				yield(field, err)
				return
			}
			if !s.HasMoreFields() {
				s.SetHasMoreFields(true)
				yield(field, nil)
				return
			}
			if !yield(field, nil) {
				return
			}
		}
	}
}

// Pairs returns an iterator over (column name, value) pairs of m, in
// column order. Fields beyond the header's width are skipped.
func Pairs(m *MapRow) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		n := min(m.Len(), m.header.Len())
		for i := 0; i < n; i++ {
			if !yield(m.header.NameOf(i), m.Row[i]) {
				return
			}
		}
	}
}

// WriteFields writes every value as a field of the current record.
// It does not end the record.
func WriteFields(w *Writer, values iter.Seq[string]) error {
	for v := range values {
		if err := w.WriteField(v); err != nil {
			return err
		}
	}
	return nil
}
