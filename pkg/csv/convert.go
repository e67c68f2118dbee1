package csv

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
)

// NodeToRows converts a document AST into rows.
//
// The node must be an *ast.ArrayDataNode of records, each an
// *ast.ArrayDataNode of *ast.LiteralNode fields, as produced by Parse.
// Non-string literal values are formatted with fmt.
//
//	node, _ := csv.Parse("name,age\nAlice,30\n")
//	rows, _ := csv.NodeToRows(node)
//	// rows is []csv.Row{{"name", "age"}, {"Alice", "30"}}
func NodeToRows(node ast.SchemaNode) ([]Row, error) {
	file, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("expected *ast.ArrayDataNode, got %T", node)
	}

	rows := make([]Row, 0, file.Len())
	for i, elem := range file.Elements() {
		record, ok := elem.(*ast.ArrayDataNode)
		if !ok {
			return nil, fmt.Errorf("record %d: expected *ast.ArrayDataNode, got %T", i, elem)
		}
		row, err := recordToRow(record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func recordToRow(record *ast.ArrayDataNode) (Row, error) {
	row := make(Row, 0, record.Len())
	for _, elem := range record.Elements() {
		lit, ok := elem.(*ast.LiteralNode)
		if !ok {
			return nil, fmt.Errorf("expected *ast.LiteralNode, got %T", elem)
		}
		switch v := lit.Value().(type) {
		case string:
			row = append(row, v)
		case nil:
			row = append(row, "")
		default:
			row = append(row, fmt.Sprint(v))
		}
	}
	return row, nil
}

// RowsToNode builds a document AST from rows. Nodes carry zero positions.
func RowsToNode(rows []Row) *ast.ArrayDataNode {
	records := make([]ast.SchemaNode, len(rows))
	for i, row := range rows {
		records[i] = rowToNode(row)
	}
	return ast.NewArrayDataNode(records, ast.ZeroPosition())
}

func rowToNode(row Row) *ast.ArrayDataNode {
	fields := make([]ast.SchemaNode, len(row))
	for i, f := range row {
		fields[i] = ast.NewLiteralNode(f, ast.ZeroPosition())
	}
	return ast.NewArrayDataNode(fields, ast.ZeroPosition())
}
