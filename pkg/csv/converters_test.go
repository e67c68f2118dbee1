package csv_test

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/shapestone/csvstream/pkg/csv"
)

func TestAs(t *testing.T) {
	row := csv.Row{"42", "2.5", "true", "x"}

	if n, err := csv.As[int](row, 0); err != nil || n != 42 {
		t.Errorf("As[int] = %d, %v", n, err)
	}
	if f, err := csv.As[float32](row, 1); err != nil || f != 2.5 {
		t.Errorf("As[float32] = %v, %v", f, err)
	}
	if b, err := csv.As[bool](row, 2); err != nil || !b {
		t.Errorf("As[bool] = %v, %v", b, err)
	}
	if s, err := csv.As[string](row, 3); err != nil || s != "x" {
		t.Errorf("As[string] = %q, %v", s, err)
	}

	_, err := csv.As[uint8](row, 3)
	var ve *csv.ValueError
	if !errors.As(err, &ve) {
		t.Fatalf("As[uint8](\"x\") error = %v, want *ValueError", err)
	}
	if ve.Type.String() != "uint8" {
		t.Errorf("ValueError.Type = %v, want uint8", ve.Type)
	}
}

func TestAsByName(t *testing.T) {
	m := csv.NewMapRow(csv.NewHeader(csv.Row{"id", "ok"}))
	m.Set("id", "7")
	m.Set("ok", "false")

	if id, err := csv.AsByName[int64](m, "id"); err != nil || id != 7 {
		t.Errorf("AsByName[int64] = %d, %v", id, err)
	}
	if ok, err := csv.AsByName[bool](m, "ok"); err != nil || ok {
		t.Errorf("AsByName[bool] = %v, %v", ok, err)
	}
}

func TestBuiltinConverters(t *testing.T) {
	tests := []struct {
		name    string
		conv    csv.Converter
		input   string
		want    any
		wantErr bool
	}{
		{"int", csv.IntConverter{}, "-5", int64(-5), false},
		{"int empty", csv.IntConverter{}, "", int64(0), false},
		{"int bad", csv.IntConverter{}, "five", nil, true},
		{"float", csv.FloatConverter{}, "1e3", float64(1000), false},
		{"float empty", csv.FloatConverter{}, "", float64(0), false},
		{"bool yes", csv.BoolConverter{}, "Yes", true, false},
		{"bool off", csv.BoolConverter{}, "off", false, false},
		{"bool empty", csv.BoolConverter{}, "", false, false},
		{"bool bad", csv.BoolConverter{}, "perhaps", nil, true},
		{"date", csv.TimeConverter{}, "2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), false},
		{"date bad", csv.TimeConverter{}, "03/01/2024", nil, true},
		{"german float", csv.LocaleConverter[float64](language.German), "1.234,5", 1234.5, false},
		{"english int", csv.LocaleConverter[int](language.English), "1,000", 1000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.conv.Convert(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Convert(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if tm, ok := tt.want.(time.Time); ok {
				if !got.(time.Time).Equal(tm) {
					t.Errorf("Convert(%q) = %v, want %v", tt.input, got, tm)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Convert(%q) = %v (%T), want %v (%T)", tt.input, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestTimeConverter_LayoutAndLocation(t *testing.T) {
	loc := time.FixedZone("X", 3600)
	conv := csv.TimeConverter{Layout: time.DateTime, Location: loc}
	got, err := conv.Convert("2024-03-01 10:30:00")
	if err != nil {
		t.Fatal(err)
	}
	if want := time.Date(2024, 3, 1, 10, 30, 0, 0, loc); !got.(time.Time).Equal(want) {
		t.Errorf("Convert() = %v, want %v", got, want)
	}
}

func TestConverterRegistry(t *testing.T) {
	r := csv.NewConverterRegistry()
	for _, name := range []string{"int", "float", "bool", "date", "time", "datetime"} {
		if _, ok := r.Get(name); !ok {
			t.Errorf("built-in converter %q missing", name)
		}
	}

	r.Register("upper", csv.ConverterFunc(func(s string) (any, error) {
		return s + "!", nil
	}))
	conv, ok := r.Get("upper")
	if !ok {
		t.Fatal("registered converter missing")
	}

	row := csv.Row{"hi"}
	if got, err := row.Convert(0, conv); err != nil || got != "hi!" {
		t.Errorf("Row.Convert() = %v, %v", got, err)
	}

	m := csv.NewMapRow(csv.NewHeader(csv.Row{"n"}))
	m.Set("n", "12")
	intConv, _ := r.Get("int")
	if got, err := m.ConvertByName("n", intConv); err != nil || got != int64(12) {
		t.Errorf("ConvertByName() = %v, %v", got, err)
	}
}
