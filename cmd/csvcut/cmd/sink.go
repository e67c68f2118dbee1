package cmd

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"

	"github.com/shapestone/csvstream/pkg/csv"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// rowSink is an output format.
type rowSink interface {
	begin() error
	write(values csv.Row) error
	end() error
}

// csvSink writes CSV with the header first.
type csvSink struct {
	w   *csv.Writer
	sel *selection
}

func newCSVSink(out io.Writer, sel *selection, opts ...csv.Option) *csvSink {
	return &csvSink{w: csv.NewWriter(out, opts...), sel: sel}
}

func (s *csvSink) begin() error {
	return s.sel.names.Write(s.w)
}

func (s *csvSink) write(values csv.Row) error {
	return values.Write(s.w)
}

func (s *csvSink) end() error {
	return s.w.Flush()
}

// jsonSink writes one JSON object per line.
type jsonSink struct {
	out    *bufio.Writer
	enc    *jsoniter.Encoder
	keys   []string
	number csv.Converter
}

func newJSONSink(out io.Writer, sel *selection, typed bool, tag language.Tag) *jsonSink {
	bw := bufio.NewWriter(out)
	s := &jsonSink{out: bw, enc: json.NewEncoder(bw), keys: jsonKeys(sel.names)}
	if typed {
		s.number = csv.LocaleConverter[float64](tag)
	}
	return s
}

func (s *jsonSink) begin() error { return nil }

func (s *jsonSink) write(values csv.Row) error {
	obj := make(map[string]any, len(values))
	for i, v := range values {
		obj[s.keys[i]] = s.value(v)
	}
	return s.enc.Encode(obj)
}

// jsonKeys returns one object key per column. A repeated name gets a
// numeric suffix ("a", "a_2", "a_3") that no other column already uses.
func jsonKeys(names csv.Row) []string {
	taken := make(map[string]bool, len(names))
	for _, name := range names {
		taken[name] = true
	}
	seen := make(map[string]int, len(names))
	keys := make([]string, len(names))
	for i, name := range names {
		seen[name]++
		if seen[name] == 1 {
			keys[i] = name
			continue
		}
		n := seen[name]
		key := fmt.Sprintf("%s_%d", name, n)
		for taken[key] {
			n++
			key = fmt.Sprintf("%s_%d", name, n)
		}
		seen[name] = n
		taken[key] = true
		keys[i] = key
	}
	return keys
}

func (s *jsonSink) value(text string) any {
	if s.number == nil || text == "" {
		return text
	}
	n, err := s.number.Convert(text)
	if err != nil {
		return text
	}
	// NaN and infinities have no JSON form.
	if f := n.(float64); math.IsNaN(f) || math.IsInf(f, 0) {
		return text
	}
	return n
}

func (s *jsonSink) end() error {
	return s.out.Flush()
}

// tableSink buffers every row and pads columns to their display width.
type tableSink struct {
	out  io.Writer
	rows []csv.Row
}

func newTableSink(out io.Writer, sel *selection) *tableSink {
	return &tableSink{out: out, rows: []csv.Row{sel.names}}
}

func (s *tableSink) begin() error { return nil }

func (s *tableSink) write(values csv.Row) error {
	s.rows = append(s.rows, values)
	return nil
}

func (s *tableSink) end() error {
	widths := make([]int, len(s.rows[0]))
	for _, row := range s.rows {
		for i, v := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(v))
		}
	}

	bw := bufio.NewWriter(s.out)
	for _, row := range s.rows {
		var sb strings.Builder
		for i, v := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			if i == len(row)-1 {
				sb.WriteString(v)
			} else {
				sb.WriteString(runewidth.FillRight(v, widths[i]))
			}
		}
		sb.WriteByte('\n')
		if _, err := bw.WriteString(sb.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}
