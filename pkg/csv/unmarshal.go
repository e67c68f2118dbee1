package csv

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
)

// Unmarshal parses CSV data and stores the result in the value pointed to
// by v. See Decode.
func Unmarshal(data []byte, v any, opts ...Option) error {
	return Decode(bytes.NewReader(data), v, opts...)
}

// Decode reads CSV from r into the value pointed to by v.
//
// Two targets are supported:
//
//	var records [][]string // every line, header included
//	var people []Person    // header names matched to struct fields
//
// For struct slices the first line is the header. Columns are matched to
// fields by csv tag or field name, as in Marshal; columns without a field
// are ignored and fields without a column keep their zero value. Pointer
// fields stay nil for empty values. Numeric fields are parsed with the
// scanner's locale.
func Decode(r io.Reader, v any, opts ...Option) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("csv: Unmarshal expects non-nil pointer, got %T", v)
	}
	s := NewScanner(r, opts...)

	switch target := v.(type) {
	case *[][]string:
		rows := NewRowReader(s)
		for row := range rows.All() {
			*target = append(*target, []string(row))
		}
		return rows.Err()
	case *[]Row:
		rows := NewRowReader(s)
		for row := range rows.All() {
			*target = append(*target, row)
		}
		return rows.Err()
	}

	slice := rv.Elem()
	if slice.Kind() != reflect.Slice {
		return fmt.Errorf("csv: Unmarshal expects pointer to slice, got %T", v)
	}
	elemType := slice.Type().Elem()
	isPtr := elemType.Kind() == reflect.Pointer
	if isPtr {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		return fmt.Errorf("csv: Unmarshal expects slice of structs, got %s", slice.Type())
	}

	rows, err := NewMapRowReader(s)
	if err != nil {
		return err
	}
	fields := structFields(elemType)

	for {
		line := s.LineNumber()
		if !rows.Scan() {
			break
		}
		row := rows.Row()
		elem := reflect.New(elemType).Elem()
		for _, f := range fields {
			text, ok := row.Lookup(f.name)
			if !ok {
				continue
			}
			if err := setField(elem.Field(f.index), text, s); err != nil {
				return fmt.Errorf("csv: line %d column %q: %w", line, f.name, err)
			}
		}
		if isPtr {
			elem = elem.Addr()
		}
		slice.Set(reflect.Append(slice, elem))
	}
	return rows.Err()
}

func setField(fv reflect.Value, text string, s *Scanner) error {
	if fv.Kind() == reflect.Pointer {
		if text == "" {
			return nil
		}
		p := reflect.New(fv.Type().Elem())
		if err := setValue(p.Elem(), text, s.locale); err != nil {
			return err
		}
		fv.Set(p)
		return nil
	}
	if text == "" && fv.Kind() != reflect.String {
		return nil
	}
	return setValue(fv, text, s.locale)
}
