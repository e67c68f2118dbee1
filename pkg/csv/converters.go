package csv

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/shapestone/csvstream/internal/numfmt"
)

// As converts field i of r to a T using plain strconv syntax.
// It panics if i is out of range, like an index expression.
func As[T Value](r Row, i int) (T, error) {
	return convert[T](r[i], nil)
}

// AsByName converts the field named name to a T.
// It panics if name is not a header column; check HasKey first when unsure.
func AsByName[T Value](m *MapRow, name string) (T, error) {
	return convert[T](m.Get(name), nil)
}

// LocaleConverter returns a Converter that parses T using the grouping and
// decimal separators of tag, so "1.234,5" reads as 1234.5 under German.
func LocaleConverter[T Value](tag language.Tag) Converter {
	loc := numfmt.New(tag)
	return ConverterFunc(func(value string) (any, error) {
		return convert[T](value, loc)
	})
}

func convert[T Value](text string, loc *numfmt.Locale) (T, error) {
	var v T
	if err := setValue(reflect.ValueOf(&v).Elem(), text, loc); err != nil {
		return v, err
	}
	return v, nil
}

// setValue parses text into rv according to rv's kind.
func setValue(rv reflect.Value, text string, loc *numfmt.Locale) error {
	var err error
	switch rv.Kind() {
	case reflect.String:
		rv.SetString(text)
	case reflect.Bool:
		var b bool
		if b, err = loc.ParseBool(text); err == nil {
			rv.SetBool(b)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var n int64
		if n, err = loc.ParseInt(text, rv.Type().Bits()); err == nil {
			rv.SetInt(n)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var n uint64
		if n, err = loc.ParseUint(text, rv.Type().Bits()); err == nil {
			rv.SetUint(n)
		}
	case reflect.Float32, reflect.Float64:
		var f float64
		if f, err = loc.ParseFloat(text, rv.Type().Bits()); err == nil {
			rv.SetFloat(f)
		}
	default:
		err = fmt.Errorf("unsupported kind %v", rv.Kind())
	}
	if err != nil {
		return &ValueError{Value: text, Type: rv.Type(), Err: err}
	}
	return nil
}

// Converter transforms a field's text into a typed Go value.
type Converter interface {
	Convert(value string) (any, error)
}

// ConverterFunc is a function adapter for the Converter interface.
type ConverterFunc func(string) (any, error)

// Convert implements Converter.
func (f ConverterFunc) Convert(value string) (any, error) {
	return f(value)
}

// IntConverter converts fields to int64. Empty fields convert to 0.
type IntConverter struct{}

// Convert implements Converter.
func (IntConverter) Convert(value string) (any, error) {
	if value == "" {
		return int64(0), nil
	}
	return convert[int64](value, nil)
}

// FloatConverter converts fields to float64. Empty fields convert to 0.
type FloatConverter struct{}

// Convert implements Converter.
func (FloatConverter) Convert(value string) (any, error) {
	if value == "" {
		return float64(0), nil
	}
	return convert[float64](value, nil)
}

// BoolConverter converts fields to bool.
// Besides strconv.ParseBool spellings it accepts yes/no, y/n and on/off,
// case-insensitively. Empty fields convert to false.
type BoolConverter struct{}

// Convert implements Converter.
func (BoolConverter) Convert(value string) (any, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "false", "0", "no", "n", "off", "f":
		return false, nil
	case "true", "1", "yes", "y", "on", "t":
		return true, nil
	}
	return false, &ValueError{Value: value, Type: reflect.TypeOf(false), Err: fmt.Errorf("not a boolean")}
}

// TimeConverter converts fields to time.Time using Layout.
// Empty fields convert to the zero time.
type TimeConverter struct {
	// Layout is the time.Parse layout (default: "2006-01-02").
	Layout string
	// Location is the timezone for parsing (default: UTC).
	Location *time.Location
}

// Convert implements Converter.
func (c TimeConverter) Convert(value string) (any, error) {
	if value == "" {
		return time.Time{}, nil
	}
	layout := c.Layout
	if layout == "" {
		layout = time.DateOnly
	}
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(layout, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, &ValueError{Value: value, Type: reflect.TypeOf(t), Err: err}
	}
	return t, nil
}

// ConverterRegistry manages named converters.
type ConverterRegistry struct {
	converters map[string]Converter
}

// NewConverterRegistry creates a registry holding the built-in converters
// "int", "float", "bool", "date", "time" and "datetime".
func NewConverterRegistry() *ConverterRegistry {
	r := &ConverterRegistry{converters: make(map[string]Converter)}
	r.Register("int", IntConverter{})
	r.Register("float", FloatConverter{})
	r.Register("bool", BoolConverter{})
	r.Register("date", TimeConverter{Layout: time.DateOnly})
	r.Register("time", TimeConverter{Layout: time.TimeOnly})
	r.Register("datetime", TimeConverter{Layout: time.DateTime})
	return r
}

// Register adds or replaces a converter.
func (r *ConverterRegistry) Register(name string, conv Converter) {
	r.converters[name] = conv
}

// Get retrieves a converter by name.
func (r *ConverterRegistry) Get(name string) (Converter, bool) {
	conv, ok := r.converters[name]
	return conv, ok
}

// Convert applies conv to field i of r.
func (r Row) Convert(i int, conv Converter) (any, error) {
	return conv.Convert(r[i])
}

// ConvertByName applies conv to the field named name.
func (m *MapRow) ConvertByName(name string, conv Converter) (any, error) {
	return conv.Convert(m.Get(name))
}
