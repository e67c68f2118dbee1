// Package parser builds a document AST from a stream of CSV fields.
//
// Grammar:
//
//	File   = { Record } ;
//	Record = Field { Delimiter Field } ( LineEnding | EOF ) ;
//
// Field scanning itself (quoting, escaping, line endings) is done by the
// FieldSource; this package groups fields into records, applies size limits
// and produces *ast.ArrayDataNode trees of *ast.LiteralNode strings.
package parser

import (
	"errors"
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
)

// FieldSource is the field-level scanner the parser drives.
type FieldSource interface {
	// NextField reads one field and its terminator.
	NextField() (string, error)
	// HasMoreFields reports whether the current line has more fields.
	HasMoreFields() bool
	// SetHasMoreFields overrides the pending-fields flag.
	SetHasMoreFields(more bool)
	// AtEOF reports whether the input is exhausted.
	AtEOF() bool
	// LineNumber is the 1-based current line.
	LineNumber() int
	// ColumnNumber is the number of characters consumed on the current line.
	ColumnNumber() int
	// Offset is the number of characters consumed in total.
	Offset() int
}

// BadLineMode specifies how to handle records that break a size limit.
type BadLineMode int

const (
	// BadLineModeError returns an error (default).
	BadLineModeError BadLineMode = iota
	// BadLineModeWarn reports a warning and drops the record.
	BadLineModeWarn
	// BadLineModeSkip silently drops the record.
	BadLineModeSkip
)

var (
	// ErrFieldTooLarge indicates a field exceeded MaxFieldSize.
	ErrFieldTooLarge = errors.New("field exceeds maximum size")
	// ErrRecordTooLarge indicates a record exceeded MaxRecordSize.
	ErrRecordTooLarge = errors.New("record exceeds maximum size")
)

// Options configures the parser behavior.
type Options struct {
	// MaxFieldSize is the maximum allowed size for a single field in bytes. 0 means no limit.
	MaxFieldSize int
	// MaxRecordSize is the maximum allowed size for a single record in bytes. 0 means no limit.
	MaxRecordSize int
	// OnBadLine specifies how to handle oversized records. Default: BadLineModeError
	OnBadLine BadLineMode
	// WarningCallback is invoked for dropped records when OnBadLine is BadLineModeWarn
	WarningCallback func(line int, message string)
}

// DefaultOptions returns default parser options.
func DefaultOptions() Options {
	return Options{OnBadLine: BadLineModeError}
}

// Parser groups fields from a FieldSource into records.
type Parser struct {
	src  FieldSource
	opts Options
}

// NewParser creates a parser with default options.
func NewParser(src FieldSource) *Parser {
	return NewParserWithOptions(src, DefaultOptions())
}

// NewParserWithOptions creates a parser with custom options.
func NewParserWithOptions(src FieldSource, opts Options) *Parser {
	return &Parser{src: src, opts: opts}
}

// Parse reads the source to the end.
//
// Returns *ast.ArrayDataNode - an array of records, where each record is an
// ArrayDataNode of LiteralNode string fields. Blank lines are skipped.
// Scanner errors stop parsing immediately; size limit violations are
// handled according to OnBadLine.
func (p *Parser) Parse() (ast.SchemaNode, error) {
	records := make([]ast.SchemaNode, 0, 16)

	for !p.src.AtEOF() {
		line := p.src.LineNumber()

		record, err := p.parseRecord()
		if err != nil {
			return nil, err
		}
		if isBlank(record) {
			continue
		}

		if err := p.checkLimits(record, line); err != nil {
			if err := p.handleBadLine(line, err); err != nil {
				return nil, err
			}
			continue
		}

		records = append(records, record)
	}

	return ast.NewArrayDataNode(records, ast.ZeroPosition()), nil
}

// parseRecord reads fields until the source reports the end of the line.
func (p *Parser) parseRecord() (*ast.ArrayDataNode, error) {
	startPos := p.position()
	fields := make([]ast.SchemaNode, 0, 8)

	for p.src.HasMoreFields() {
		pos := p.position()
		value, err := p.src.NextField()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.NewLiteralNode(value, pos))
	}
	p.src.SetHasMoreFields(true)

	return ast.NewArrayDataNode(fields, startPos), nil
}

// checkLimits enforces MaxFieldSize and MaxRecordSize.
func (p *Parser) checkLimits(record *ast.ArrayDataNode, line int) error {
	if p.opts.MaxFieldSize <= 0 && p.opts.MaxRecordSize <= 0 {
		return nil
	}
	size := 0
	for i, elem := range record.Elements() {
		n := len(fieldValue(elem))
		if p.opts.MaxFieldSize > 0 && n > p.opts.MaxFieldSize {
			return fmt.Errorf("field %d on line %d: %w (%d > %d)",
				i, line, ErrFieldTooLarge, n, p.opts.MaxFieldSize)
		}
		size += n
	}
	if p.opts.MaxRecordSize > 0 && size > p.opts.MaxRecordSize {
		return fmt.Errorf("record on line %d: %w (%d > %d)",
			line, ErrRecordTooLarge, size, p.opts.MaxRecordSize)
	}
	return nil
}

// handleBadLine handles a limit violation based on OnBadLine mode.
// Returns nil if parsing should continue, or the error if it should stop.
func (p *Parser) handleBadLine(line int, err error) error {
	switch p.opts.OnBadLine {
	case BadLineModeSkip:
		return nil
	case BadLineModeWarn:
		if p.opts.WarningCallback != nil {
			p.opts.WarningCallback(line, err.Error())
		}
		return nil
	default:
		return err
	}
}

// position returns the current source position for AST nodes.
// Columns in AST positions are 1-based.
func (p *Parser) position() ast.Position {
	return ast.NewPosition(p.src.Offset(), p.src.LineNumber(), p.src.ColumnNumber()+1)
}

// isBlank reports whether a record is an empty line.
func isBlank(record *ast.ArrayDataNode) bool {
	elems := record.Elements()
	return len(elems) == 1 && fieldValue(elems[0]) == ""
}

func fieldValue(node ast.SchemaNode) string {
	if lit, ok := node.(*ast.LiteralNode); ok {
		if s, ok := lit.Value().(string); ok {
			return s
		}
	}
	return ""
}
