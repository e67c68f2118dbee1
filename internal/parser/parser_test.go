package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/shapestone/shape-core/pkg/ast"
)

var errScan = errors.New("scan failed")

// fakeSource is a simple FieldSource serving prepared lines for testing.
// Every line must hold at least one field.
type fakeSource struct {
	lines  [][]string
	line   int
	field  int
	more   bool
	offset int
	failAt int
}

func newFakeSource(lines ...[]string) *fakeSource {
	return &fakeSource{lines: lines, more: true, failAt: -1}
}

func (s *fakeSource) NextField() (string, error) {
	if s.line == s.failAt {
		return "", errScan
	}
	if s.line >= len(s.lines) {
		s.more = false
		return "", nil
	}
	row := s.lines[s.line]
	v := row[s.field]
	s.offset += len(v) + 1
	s.field++
	if s.field >= len(row) {
		s.line++
		s.field = 0
		s.more = false
	} else {
		s.more = true
	}
	return v, nil
}

func (s *fakeSource) HasMoreFields() bool      { return s.more }
func (s *fakeSource) SetHasMoreFields(m bool)  { s.more = m }
func (s *fakeSource) AtEOF() bool              { return s.line >= len(s.lines) }
func (s *fakeSource) LineNumber() int          { return s.line + 1 }
func (s *fakeSource) ColumnNumber() int        { return s.field }
func (s *fakeSource) Offset() int              { return s.offset }

// records flattens a parse result for comparison.
func records(t *testing.T, node ast.SchemaNode) [][]string {
	t.Helper()
	file, ok := node.(*ast.ArrayDataNode)
	if !ok {
		t.Fatalf("Parse() returned %T, want *ast.ArrayDataNode", node)
	}
	out := make([][]string, 0, file.Len())
	for _, elem := range file.Elements() {
		record, ok := elem.(*ast.ArrayDataNode)
		if !ok {
			t.Fatalf("record is %T, want *ast.ArrayDataNode", elem)
		}
		fields := make([]string, 0, record.Len())
		for _, f := range record.Elements() {
			lit, ok := f.(*ast.LiteralNode)
			if !ok {
				t.Fatalf("field is %T, want *ast.LiteralNode", f)
			}
			fields = append(fields, lit.Value().(string))
		}
		out = append(out, fields)
	}
	return out
}

func equalRecords(a, b [][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if strings.Join(a[i], "\x00") != strings.Join(b[i], "\x00") || len(a[i]) != len(b[i]) {
			return false
		}
	}
	return true
}

func TestParse_EmptyInput(t *testing.T) {
	node, err := NewParser(newFakeSource()).Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := records(t, node); len(got) != 0 {
		t.Errorf("Parse() = %v, want no records", got)
	}
}

func TestParse_MultipleRecords(t *testing.T) {
	tests := []struct {
		name  string
		lines [][]string
		want  [][]string
	}{
		{
			name:  "single record",
			lines: [][]string{{"a", "b", "c"}},
			want:  [][]string{{"a", "b", "c"}},
		},
		{
			name:  "ragged records are kept",
			lines: [][]string{{"1", "2", "3"}, {"4", "5"}},
			want:  [][]string{{"1", "2", "3"}, {"4", "5"}},
		},
		{
			name:  "blank lines are skipped",
			lines: [][]string{{"a"}, {""}, {"b"}},
			want:  [][]string{{"a"}, {"b"}},
		},
		{
			name:  "empty fields are not blank lines",
			lines: [][]string{{"", ""}},
			want:  [][]string{{"", ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := NewParser(newFakeSource(tt.lines...)).Parse()
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := records(t, node); !equalRecords(got, tt.want) {
				t.Errorf("Parse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParse_SourceErrorStops(t *testing.T) {
	src := newFakeSource([]string{"a"}, []string{"b"})
	src.failAt = 1

	_, err := NewParser(src).Parse()
	if !errors.Is(err, errScan) {
		t.Fatalf("Parse() error = %v, want %v", err, errScan)
	}
}

func TestMaxFieldSize(t *testing.T) {
	lines := [][]string{{"short"}, {"this is too long"}, {"ok"}}

	t.Run("error", func(t *testing.T) {
		opts := DefaultOptions()
		opts.MaxFieldSize = 8
		_, err := NewParserWithOptions(newFakeSource(lines...), opts).Parse()
		if !errors.Is(err, ErrFieldTooLarge) {
			t.Fatalf("Parse() error = %v, want ErrFieldTooLarge", err)
		}
		if !strings.Contains(err.Error(), "line 2") {
			t.Errorf("error %q does not name line 2", err)
		}
	})

	t.Run("skip", func(t *testing.T) {
		opts := Options{MaxFieldSize: 8, OnBadLine: BadLineModeSkip}
		node, err := NewParserWithOptions(newFakeSource(lines...), opts).Parse()
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		want := [][]string{{"short"}, {"ok"}}
		if got := records(t, node); !equalRecords(got, want) {
			t.Errorf("Parse() = %v, want %v", got, want)
		}
	})

	t.Run("warn", func(t *testing.T) {
		var warnings []int
		opts := Options{
			MaxFieldSize: 8,
			OnBadLine:    BadLineModeWarn,
			WarningCallback: func(line int, message string) {
				warnings = append(warnings, line)
			},
		}
		node, err := NewParserWithOptions(newFakeSource(lines...), opts).Parse()
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if got := records(t, node); len(got) != 2 {
			t.Errorf("Parse() kept %d records, want 2", len(got))
		}
		if len(warnings) != 1 || warnings[0] != 2 {
			t.Errorf("warnings on lines %v, want [2]", warnings)
		}
	})
}

func TestMaxRecordSize(t *testing.T) {
	lines := [][]string{{"ab", "cd"}, {"abc", "def", "ghi"}}

	opts := DefaultOptions()
	opts.MaxRecordSize = 6
	_, err := NewParserWithOptions(newFakeSource(lines...), opts).Parse()
	if !errors.Is(err, ErrRecordTooLarge) {
		t.Fatalf("Parse() error = %v, want ErrRecordTooLarge", err)
	}

	opts.OnBadLine = BadLineModeSkip
	node, err := NewParserWithOptions(newFakeSource(lines...), opts).Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := [][]string{{"ab", "cd"}}
	if got := records(t, node); !equalRecords(got, want) {
		t.Errorf("Parse() = %v, want %v", got, want)
	}
}
