package csv_test

import (
	"testing"

	"github.com/shapestone/csvstream/pkg/csv"
)

func TestMapRow(t *testing.T) {
	h := csv.NewHeader(csv.Row{"name", "age", "city"})
	m := csv.NewMapRow(h)
	if m.Len() != 3 || m.Header() != h {
		t.Fatalf("NewMapRow() = %v, want width 3 bound to h", m.Row)
	}

	m.Set("age", "30")
	m.Set("name", "Alice")
	if got := m.Get("age"); got != "30" {
		t.Errorf("Get(\"age\") = %q, want \"30\"", got)
	}
	if !m.Row.Equal(csv.Row{"Alice", "30", ""}) {
		t.Errorf("row = %v", m.Row)
	}
	if !m.HasKey("city") || m.HasKey("zip") {
		t.Error("HasKey() mismatch")
	}
}

func TestMapRow_ShortRow(t *testing.T) {
	h := csv.NewHeader(csv.Row{"a", "b", "c"})
	m := csv.NewMapRow(h)
	if err := m.Read(csv.NewScannerFromString("1,2\n")); err != nil {
		t.Fatal(err)
	}

	if i, ok := m.Find("b"); !ok || i != 1 {
		t.Errorf("Find(\"b\") = %d, %v, want 1, true", i, ok)
	}
	if i, ok := m.Find("c"); ok || i != m.Len() {
		t.Errorf("Find(\"c\") = %d, %v, want %d, false", i, ok, m.Len())
	}
	if i, ok := m.Find("zip"); ok || i != m.Len() {
		t.Errorf("Find(\"zip\") = %d, %v, want %d, false", i, ok, m.Len())
	}
	if v, ok := m.Lookup("a"); !ok || v != "1" {
		t.Errorf("Lookup(\"a\") = %q, %v", v, ok)
	}
	if _, ok := m.Lookup("c"); ok {
		t.Error("Lookup(\"c\") found a field beyond the row")
	}
}

func TestMapRow_GetUnknownPanics(t *testing.T) {
	m := csv.NewMapRow(csv.NewHeader(csv.Row{"a"}))
	defer func() {
		if recover() == nil {
			t.Error("Get(unknown) did not panic")
		}
	}()
	m.Get("missing")
}
