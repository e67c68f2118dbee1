package cmd

import (
	"fmt"

	"github.com/shapestone/csvstream/pkg/csv"
)

// selection is the ordered list of output columns.
type selection struct {
	names   csv.Row
	indices []int
}

func newSelection(h *csv.Header, columns []string) (*selection, error) {
	if len(columns) == 0 {
		names := h.Names()
		indices := make([]int, len(names))
		for i := range indices {
			indices[i] = i
		}
		return &selection{names: names, indices: indices}, nil
	}

	sel := &selection{names: make(csv.Row, 0, len(columns))}
	for _, name := range columns {
		i := h.IndexOf(name)
		if i == csv.NotFound {
			return nil, fmt.Errorf("unknown column %q", name)
		}
		sel.names = append(sel.names, name)
		sel.indices = append(sel.indices, i)
	}
	return sel, nil
}

// values picks the selected fields from row. Fields missing from a short
// row come back empty.
func (s *selection) values(row *csv.MapRow) csv.Row {
	out := make(csv.Row, len(s.indices))
	for j, i := range s.indices {
		if i < row.Len() {
			out[j] = row.Row[i]
		}
	}
	return out
}
