package csv

import (
	"bytes"
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Render converts an AST node to CSV bytes.
//
// The node should be the result of Parse or ParseReader, or be built the
// same way: an *ast.ArrayDataNode of records, each an *ast.ArrayDataNode of
// *ast.LiteralNode fields. A single record node renders as one line.
// Fields are quoted only when they need it and every record ends with CRLF.
//
//	node, _ := csv.Parse("name,age\nAlice,30\n")
//	out, _ := csv.Render(node)
//	// out: "name,age\r\nAlice,30\r\n"
func Render(node ast.SchemaNode) ([]byte, error) {
	return RenderWithOptions(node, DefaultWriterOptions())
}

// RenderWithOptions converts an AST node to CSV bytes using custom writer
// options.
func RenderWithOptions(node ast.SchemaNode, opts WriterOptions) ([]byte, error) {
	if node == nil {
		return []byte{}, nil
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := NewWriter(&buf, opts.options()...)
	if err := renderNode(w, node); err != nil {
		return nil, err
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderNode(w *Writer, node ast.SchemaNode) error {
	switch n := node.(type) {
	case *ast.ArrayDataNode:
		return renderArrayData(w, n)
	case *ast.LiteralNode:
		if err := w.WriteValue(n.Value()); err != nil {
			return err
		}
		return w.EndRecord()
	default:
		return fmt.Errorf("unsupported node type for CSV rendering: %T", node)
	}
}

// renderArrayData handles both the file level (array of records) and the
// record level (array of fields).
func renderArrayData(w *Writer, node *ast.ArrayDataNode) error {
	elements := node.Elements()
	if len(elements) == 0 {
		return nil
	}

	switch elements[0].(type) {
	case *ast.ArrayDataNode:
		for _, elem := range elements {
			record, ok := elem.(*ast.ArrayDataNode)
			if !ok {
				return fmt.Errorf("unexpected element type in file: %T", elem)
			}
			if err := renderRecord(w, record); err != nil {
				return err
			}
		}
		return nil
	case *ast.LiteralNode:
		return renderRecord(w, node)
	default:
		return fmt.Errorf("unexpected element type in array: %T", elements[0])
	}
}

func renderRecord(w *Writer, record *ast.ArrayDataNode) error {
	for _, elem := range record.Elements() {
		lit, ok := elem.(*ast.LiteralNode)
		if !ok {
			return fmt.Errorf("unexpected element type in record: %T", elem)
		}
		if err := w.WriteValue(lit.Value()); err != nil {
			return err
		}
	}
	return w.EndRecord()
}
