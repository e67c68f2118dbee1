package csv

import (
	"bytes"
	"fmt"
	"io"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Document is an in-memory CSV table: a header and the data rows that
// follow it.
//
//	doc, _ := csv.ParseDocument(strings.NewReader("name,age\nAlice,30"))
//	row, _ := doc.Row(0)
//	age := row.Get("age") // "30"
//
// Rows are stored as read; they may be narrower or wider than the header.
type Document struct {
	header *Header
	rows   []Row
}

// NewDocument creates an empty document with the given column names.
func NewDocument(names ...string) *Document {
	return &Document{header: NewHeader(Row(names))}
}

// ParseDocument reads a header line and then every data row from r.
// Blank lines are skipped. An empty input yields a document with an empty
// header.
func ParseDocument(r io.Reader, opts ...Option) (*Document, error) {
	s := NewScanner(r, opts...)
	if s.AtEOF() {
		return NewDocument(), nil
	}
	h, err := ReadHeader(s)
	if err != nil {
		return nil, err
	}

	doc := &Document{header: h}
	rr := NewRowReader(s)
	for rr.Scan() {
		if row := rr.Row(); !isBlankRow(row) {
			doc.rows = append(doc.rows, row)
		}
	}
	if err := rr.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Header returns the document's header.
func (d *Document) Header() *Header {
	return d.header
}

// Rows returns the data rows. The slice is shared with the document.
func (d *Document) Rows() []Row {
	return d.rows
}

// Len returns the number of data rows.
func (d *Document) Len() int {
	return len(d.rows)
}

// Row returns the data row at index i bound to the header.
func (d *Document) Row(i int) (*MapRow, bool) {
	if i < 0 || i >= len(d.rows) {
		return nil, false
	}
	return &MapRow{Row: d.rows[i], header: d.header}, true
}

// AddRow appends a data row and returns the document for chaining.
func (d *Document) AddRow(fields ...string) *Document {
	d.rows = append(d.rows, Row(fields))
	return d
}

// Encode writes the header, when it has columns, followed by every row.
func (d *Document) Encode(dst io.Writer, opts ...Option) error {
	w := NewWriter(dst, opts...)
	if d.header.Len() > 0 {
		if err := d.header.Names().Write(w); err != nil {
			return err
		}
	}
	for _, row := range d.rows {
		if err := row.Write(w); err != nil {
			return err
		}
	}
	return w.Flush()
}

// CSV renders the document to a string.
func (d *Document) CSV() (string, error) {
	var buf bytes.Buffer
	if err := d.Encode(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ToAST converts the document to a shape-core AST, header first.
func (d *Document) ToAST() *ast.ArrayDataNode {
	rows := make([]Row, 0, len(d.rows)+1)
	if d.header.Len() > 0 {
		rows = append(rows, d.header.Names())
	}
	rows = append(rows, d.rows...)
	return RowsToNode(rows)
}

// FromAST creates a document from an AST, treating the first record as
// the header.
func FromAST(node ast.SchemaNode) (*Document, error) {
	rows, err := NodeToRows(node)
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	if len(rows) == 0 {
		return NewDocument(), nil
	}
	return &Document{header: NewHeader(rows[0]), rows: rows[1:]}, nil
}

func isBlankRow(row Row) bool {
	return len(row) == 1 && row[0] == ""
}
