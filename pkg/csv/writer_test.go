package csv_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/shapestone/csvstream/pkg/csv"
)

func TestWriter_Quoting(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   string
	}{
		{"plain", []string{"a", "b"}, "a,b\r\n"},
		{"delimiter", []string{"a,b", "c"}, "\"a,b\",c\r\n"},
		{"quote", []string{`say "hi"`}, "\"say \"\"hi\"\"\"\r\n"},
		{"newline", []string{"x\ny"}, "\"x\ny\"\r\n"},
		{"carriage return", []string{"x\ry"}, "\"x\ry\"\r\n"},
		{"empty fields", []string{"", "", ""}, ",,\r\n"},
		{"spaces are not quoted", []string{" a "}, " a \r\n"},
		{"empty record", nil, "\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := csv.NewWriter(&buf)
			if err := w.WriteRecord(tt.fields...); err != nil {
				t.Fatalf("WriteRecord() error = %v", err)
			}
			if err := w.Flush(); err != nil {
				t.Fatalf("Flush() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriter_CustomDialect(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf, csv.WithComma(';'), csv.WithQuote('\''))
	w.WriteRecord("a,b", "it's", "c;d")
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if want := "a,b;'it''s';'c;d'\r\n"; buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

type celsius float64

func (c celsius) String() string { return fmt.Sprintf("%.1fC", float64(c)) }

func TestWriter_TypedValues(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.WriteInt(-12)
	w.WriteUint(7)
	w.WriteFloat(3.25)
	w.WriteBool(false)
	w.WriteValue(nil)
	w.WriteValue(celsius(21.5))
	w.WriteValue(int16(5))
	w.WriteValue("x,y")
	w.EndRecord()
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if want := "-12,7,3.25,false,,21.5C,5,\"x,y\"\r\n"; buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestWriter_Locale(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf, csv.WithLocale(language.English))
	w.WriteInt(1000000)
	w.WriteInt(42)
	w.EndRecord()
	w.Flush()
	if want := "\"1,000,000\",42\r\n"; buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}

	// The quoted value reads back under the same locale.
	s := csv.NewScannerFromString(buf.String(), csv.WithLocale(language.English))
	n, err := csv.ReadValue[int64](s)
	if err != nil || n != 1000000 {
		t.Errorf("ReadValue() = %d, %v, want 1000000", n, err)
	}
}

func TestWriter_LocaleFloatRoundTrip(t *testing.T) {
	values := []float64{1e-7, 1234567.891, 1e21, -0.25}

	for _, tag := range []language.Tag{language.English, language.German} {
		t.Run(tag.String(), func(t *testing.T) {
			var buf bytes.Buffer
			w := csv.NewWriter(&buf, csv.WithLocale(tag))
			for _, v := range values {
				w.WriteFloat(v)
			}
			w.EndRecord()
			if err := w.Flush(); err != nil {
				t.Fatalf("Flush() error = %v", err)
			}

			s := csv.NewScannerFromString(buf.String(), csv.WithLocale(tag))
			for _, want := range values {
				var got float64
				if err := s.ReadFloat(&got); err != nil {
					t.Fatalf("ReadFloat() error = %v (output %q)", err, buf.String())
				}
				if got != want {
					t.Errorf("ReadFloat() = %v, want %v (output %q)", got, want, buf.String())
				}
			}
		})
	}
}

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }

func TestWriter_StickyError(t *testing.T) {
	boom := errors.New("disk full")
	w := csv.NewWriter(failWriter{boom})

	w.WriteField(strings.Repeat("x", 10000))
	if err := w.Flush(); !errors.Is(err, boom) {
		t.Fatalf("Flush() error = %v, want %v", err, boom)
	}
	if err := w.WriteField("more"); !errors.Is(err, boom) {
		t.Errorf("WriteField() after failure = %v, want %v", err, boom)
	}
	if err := w.EndRecord(); !errors.Is(err, boom) {
		t.Errorf("EndRecord() after failure = %v, want %v", err, boom)
	}
	if !errors.Is(w.Error(), boom) {
		t.Errorf("Error() = %v, want %v", w.Error(), boom)
	}
}

func TestWriter_RoundTrip(t *testing.T) {
	rows := []csv.Row{
		{"plain", "with,comma", `with "quotes"`},
		{"multi\nline", "", "crlf\r\nhere"},
		{"", "x"},
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range rows {
		if err := row.Write(w); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	got := readAll(t, buf.String())
	if !equalRows(got, rows) {
		t.Errorf("round trip = %v, want %v", got, rows)
	}
}
