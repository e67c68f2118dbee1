// Package csv reads and writes RFC 4180 CSV one field at a time.
//
// The core of the package is the Scanner, which reads a single field per
// call and reports whether the current line has more fields, and the
// Writer, which writes fields with minimal quoting and terminates records
// with CRLF. Row, Header and MapRow build on those two to give positional
// and named access to records, and Parse builds a shape-core AST for
// callers that want a whole document in memory.
//
// # Thread Safety
//
// Scanners, Writers, rows and headers are not safe for concurrent use.
// Distinct instances share no state, so separate goroutines may each use
// their own:
//
//	go func() { csv.Parse(input1) }()
//	go func() { csv.Parse(input2) }()
//
// # Streaming
//
//	s := csv.NewScanner(file)
//	for !s.AtEOF() {
//	    field, err := s.NextField()
//	    if err != nil {
//	        // handle error
//	    }
//	    if !s.HasMoreFields() {
//	        // field was the last one on its line
//	        s.SetHasMoreFields(true)
//	    }
//	}
//
// # Document parsing
//
//	node, err := csv.Parse("name,age\nAlice,30\nBob,25")
//	if err != nil {
//	    // handle error
//	}
//	// node is a *ast.ArrayDataNode of records
package csv

import (
	"io"

	"github.com/shapestone/shape-core/pkg/ast"

	"github.com/shapestone/csvstream/internal/parser"
)

// Parse parses a complete CSV document held in a string.
//
// Returns an ast.ArrayDataNode representing the parsed CSV:
//   - *ast.ArrayDataNode for the file (array of records)
//   - Each record is an *ast.ArrayDataNode of fields
//   - Each field is an *ast.LiteralNode containing a string value
//
// Blank lines are skipped. For large inputs use ParseReader.
func Parse(input string, opts ...Option) (ast.SchemaNode, error) {
	return parser.NewParser(NewScannerFromString(input, opts...)).Parse()
}

// ParseReader parses a complete CSV document read from r.
//
// Input is pulled from r in chunks as the scanner needs it, but the
// resulting AST holds every record.
func ParseReader(r io.Reader, opts ...Option) (ast.SchemaNode, error) {
	return parser.NewParser(NewScanner(r, opts...)).Parse()
}

// ParseWithOptions parses a string with size limits and bad line handling.
func ParseWithOptions(input string, opts ReaderOptions) (ast.SchemaNode, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	s := NewScannerFromString(input, opts.options()...)
	return parser.NewParserWithOptions(s, opts.parserOptions()).Parse()
}

// ParseReaderWithOptions parses from r with size limits and bad line handling.
func ParseReaderWithOptions(r io.Reader, opts ReaderOptions) (ast.SchemaNode, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	s := NewScanner(r, opts.options()...)
	return parser.NewParserWithOptions(s, opts.parserOptions()).Parse()
}

// Format returns the format identifier for this parser.
func Format() string {
	return "CSV"
}

// Validate checks if the input string is well-formed CSV.
//
//	if err := csv.Validate(input); err != nil {
//	    fmt.Println("Invalid CSV:", err)
//	}
//
// The returned error is a *ParseError carrying the failing position.
func Validate(input string) error {
	return validate(NewScannerFromString(input))
}

// ValidateReader checks if the input read from r is well-formed CSV.
// Fields are checked as they stream past; nothing is retained.
func ValidateReader(r io.Reader) error {
	return validate(NewScanner(r))
}

func validate(s *Scanner) error {
	for !s.AtEOF() {
		if _, err := s.NextField(); err != nil {
			return err
		}
		if !s.HasMoreFields() {
			s.SetHasMoreFields(true)
		}
	}
	return nil
}
