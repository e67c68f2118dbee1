package csv

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"
)

// fieldCache holds structFields results keyed by reflect.Type.
var fieldCache sync.Map // map[reflect.Type][]structField

// structField is an exported struct field bound to a column name.
type structField struct {
	name      string
	index     int
	omitEmpty bool
}

// structFields lists the fields of t in declaration order, honoring the
// csv tag:
//
//	Field int `csv:"myName"`           // column "myName"
//	Field int `csv:"myName,omitempty"` // zero values written as ""
//	Field int `csv:"-"`                // ignored
//	Field int                          // column "Field"
func structFields(t reflect.Type) []structField {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]structField)
	}
	fields := computeStructFields(t)
	fieldCache.Store(t, fields)
	return fields
}

func computeStructFields(t reflect.Type) []structField {
	fields := make([]structField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Anonymous {
			continue
		}
		tag := f.Tag.Get("csv")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		fields = append(fields, structField{
			name:      name,
			index:     i,
			omitEmpty: opts == "omitempty",
		})
	}
	return fields
}

// Marshal returns the CSV encoding of v, which must be a slice of structs
// or of pointers to structs.
//
// The header row lists the columns in field declaration order. Nil
// elements produce no record; nil pointer fields are written as empty
// fields. Numbers and booleans go through the Writer, so WithLocale applies.
func Marshal(v any, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, v, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes the CSV encoding of v to dst. See Marshal.
func Encode(dst io.Writer, v any, opts ...Option) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return errors.New("csv: Marshal(nil)")
	}
	if rv.Kind() != reflect.Slice {
		return fmt.Errorf("csv: Marshal expects slice, got %s", rv.Type())
	}
	elemType := rv.Type().Elem()
	if elemType.Kind() == reflect.Pointer {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		return fmt.Errorf("csv: Marshal expects slice of structs, got slice of %s", elemType)
	}

	fields := structFields(elemType)
	w := NewWriter(dst, opts...)
	for _, f := range fields {
		if err := w.WriteField(f.name); err != nil {
			return err
		}
	}
	if err := w.EndRecord(); err != nil {
		return err
	}

	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i)
		if elem.Kind() == reflect.Pointer {
			if elem.IsNil() {
				continue
			}
			elem = elem.Elem()
		}
		for _, f := range fields {
			fv := elem.Field(f.index)
			if f.omitEmpty && fv.IsZero() {
				fv = reflect.Value{}
			}
			if err := writeReflect(w, fv); err != nil {
				return fmt.Errorf("csv: field %s: %w", f.name, err)
			}
		}
		if err := w.EndRecord(); err != nil {
			return err
		}
	}
	return w.Flush()
}

func writeReflect(w *Writer, rv reflect.Value) error {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return w.WriteField("")
	}
	if s, ok := rv.Interface().(fmt.Stringer); ok {
		return w.WriteField(s.String())
	}
	switch rv.Kind() {
	case reflect.String:
		return w.WriteField(rv.String())
	case reflect.Bool:
		return w.WriteBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return w.WriteInt(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return w.WriteUint(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return w.WriteFloat(rv.Float())
	default:
		return fmt.Errorf("unsupported type %s", rv.Type())
	}
}
