package csv

import (
	"cmp"
	"slices"
)

// NotFound is returned by Header.IndexOf for unknown names.
const NotFound = -1

// Header maps column names to indices and back.
//
// Names are kept in a table sorted by name, so IndexOf is a binary search
// and NameOf goes through a reverse index. When a name occurs more than
// once, IndexOf returns its first occurrence.
type Header struct {
	assocs  []assoc
	reverse []int
}

type assoc struct {
	name  string
	index int
}

// NewHeader builds a header from a row of column names.
func NewHeader(row Row) *Header {
	h := &Header{}
	h.Assign(row)
	return h
}

// ReadHeader reads one line from s and uses it as column names.
// An exhausted scanner yields an empty header and io.EOF.
func ReadHeader(s *Scanner) (*Header, error) {
	var row Row
	if err := row.Read(s); err != nil {
		return NewHeader(nil), err
	}
	return NewHeader(row), nil
}

// Assign replaces the header contents with the names in row.
func (h *Header) Assign(row Row) {
	n := len(row)
	h.assocs = make([]assoc, n)
	for i, name := range row {
		h.assocs[i] = assoc{name: name, index: i}
	}
	// Stable, so equal names stay in column order and the first wins.
	slices.SortStableFunc(h.assocs, func(a, b assoc) int {
		return cmp.Compare(a.name, b.name)
	})

	h.reverse = make([]int, n)
	for pos, a := range h.assocs {
		h.reverse[a.index] = pos
	}
}

// IndexOf returns the column index of name, or NotFound.
func (h *Header) IndexOf(name string) int {
	pos, found := slices.BinarySearchFunc(h.assocs, name, func(a assoc, name string) int {
		return cmp.Compare(a.name, name)
	})
	if !found {
		return NotFound
	}
	return h.assocs[pos].index
}

// NameOf returns the name of column i.
// It panics if i is not in [0, Len()).
func (h *Header) NameOf(i int) string {
	return h.assocs[h.reverse[i]].name
}

// Len returns the number of columns.
func (h *Header) Len() int {
	return len(h.assocs)
}

// Names returns the column names in column order.
func (h *Header) Names() Row {
	names := make(Row, len(h.reverse))
	for i := range names {
		names[i] = h.NameOf(i)
	}
	return names
}
