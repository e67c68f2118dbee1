package csv

// MapRow is a Row with name-based access through a Header.
//
// The header is shared and never modified; it must stay valid for as long
// as the MapRow is used. Names are resolved on every call.
type MapRow struct {
	Row
	header *Header
}

// NewMapRow returns a row sized to the header's width.
func NewMapRow(h *Header) *MapRow {
	return &MapRow{Row: NewRow(h.Len()), header: h}
}

// Header returns the header used for name lookups.
func (m *MapRow) Header() *Header {
	return m.header
}

// Get returns the field named name.
// It panics if name is unknown or the row is narrower than its column.
func (m *MapRow) Get(name string) string {
	return m.Row[m.header.IndexOf(name)]
}

// Set replaces the field named name.
// It panics under the same conditions as Get.
func (m *MapRow) Set(name, value string) {
	m.Row[m.header.IndexOf(name)] = value
}

// Find returns the index of the field named name. ok is false if the
// header has no such column or this row is too short to hold it.
func (m *MapRow) Find(name string) (i int, ok bool) {
	i = m.header.IndexOf(name)
	if i == NotFound || i >= len(m.Row) {
		return m.Len(), false
	}
	return i, true
}

// Lookup returns the field named name, if present.
func (m *MapRow) Lookup(name string) (string, bool) {
	i, ok := m.Find(name)
	if !ok {
		return "", false
	}
	return m.Row[i], true
}

// HasKey reports whether the header has a column named name.
func (m *MapRow) HasKey(name string) bool {
	return m.header.IndexOf(name) != NotFound
}
