package fixture

import (
	"reflect"
	"sort"
	"strings"

	"github.com/goliatone/go-autofixture/pkg/spec"
)

// FieldClass is the generation strategy chosen for a template field.
type FieldClass string

const (
	ClassBoolean           FieldClass = "boolean"
	ClassString            FieldClass = "string"
	ClassNumber            FieldClass = "number"
	ClassObject            FieldClass = "actualObject"
	ClassArrayOfPrimitives FieldClass = "arrayOfPrimitives"
	ClassArrayOfObjects    FieldClass = "arrayOfObjects"
	ClassUnsupported       FieldClass = "unsupported"
)

// classification describes one template field. Type is the declared type
// name used in compatibility messages; for unsupported values it is the Go
// kind name or "nil".
type classification struct {
	Class    FieldClass
	Type     string
	Integral bool
	// Bits and Unsigned describe the Go integer type of an integral field or
	// array element.
	Bits     int
	Unsigned bool
	GoKind   reflect.Kind
	Value    reflect.Value
	// Sample is the first element of an array field, already dereferenced.
	Sample reflect.Value
	// Zeroed marks an object (or the sample of an array of objects) that
	// stands in for a nil pointer.
	Zeroed bool
}

// defaultSpec is the spec used when a scalar or array element has no entry.
func (c classification) defaultSpec() string {
	if c.Integral {
		return string(spec.KindInteger)
	}
	return c.Type
}

// field is a named template member in iteration order.
type field struct {
	Name  string
	Value reflect.Value
}

// classify picks the strategy for value. A nil pointer is classified by the
// zero value of its element type; only a nil interface has no shape.
func classify(name string, value reflect.Value) (classification, error) {
	value, zeroed := deref(value)
	if !value.IsValid() {
		return classification{Class: ClassUnsupported, Type: "nil"}, nil
	}

	switch kind := value.Kind(); kind {
	case reflect.Bool:
		return classification{Class: ClassBoolean, Type: spec.TypeBoolean, Value: value}, nil
	case reflect.String:
		return classification{Class: ClassString, Type: spec.TypeString, Value: value}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return classification{Class: ClassNumber, Type: spec.TypeNumber, Integral: true,
			Bits: value.Type().Bits(), GoKind: kind, Value: value}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return classification{Class: ClassNumber, Type: spec.TypeNumber, Integral: true,
			Bits: value.Type().Bits(), Unsigned: true, GoKind: kind, Value: value}, nil
	case reflect.Float32, reflect.Float64:
		return classification{Class: ClassNumber, Type: spec.TypeNumber, GoKind: kind, Value: value}, nil
	case reflect.Slice, reflect.Array:
		return classifyArray(name, value)
	}

	if isObject(value) {
		return classification{Class: ClassObject, Type: spec.TypeObject, Value: value, Zeroed: zeroed}, nil
	}
	return classification{Class: ClassUnsupported, Type: value.Kind().String(), Value: value}, nil
}

func classifyArray(name string, value reflect.Value) (classification, error) {
	if value.Len() == 0 {
		return classification{}, emptyArrayError(name)
	}

	sample, zeroed := deref(value.Index(0))
	if sample.IsValid() && (sample.Kind() == reflect.Slice || sample.Kind() == reflect.Array) {
		return classification{}, nestedArrayError(name)
	}
	if sample.IsValid() && isObject(sample) {
		return classification{Class: ClassArrayOfObjects, Type: spec.TypeObject, Value: value, Sample: sample, Zeroed: zeroed}, nil
	}

	element, err := classify(name, sample)
	if err != nil {
		return classification{}, err
	}
	return classification{
		Class:    ClassArrayOfPrimitives,
		Type:     element.Type,
		Integral: element.Integral,
		Bits:     element.Bits,
		Unsigned: element.Unsigned,
		GoKind:   element.GoKind,
		Value:    value,
		Sample:   sample,
	}, nil
}

// indirect follows pointers and interfaces. A nil pointer yields the zero
// value of its element type, a nil interface the zero Value.
func indirect(value reflect.Value) reflect.Value {
	value, _ = deref(value)
	return value
}

// deref is indirect that also reports whether a nil pointer was replaced by
// a zero value on the way.
func deref(value reflect.Value) (reflect.Value, bool) {
	zeroed := false
	for value.IsValid() {
		switch value.Kind() {
		case reflect.Pointer:
			if value.IsNil() {
				value = reflect.Zero(value.Type().Elem())
				zeroed = true
				continue
			}
			value = value.Elem()
		case reflect.Interface:
			if value.IsNil() {
				return reflect.Value{}, zeroed
			}
			value = value.Elem()
		default:
			return value, zeroed
		}
	}
	return value, zeroed
}

// hasShape reports whether value can be classified without a sample: false
// for nil interfaces and empty arrays.
func hasShape(value reflect.Value) bool {
	value = indirect(value)
	if !value.IsValid() {
		return false
	}
	switch value.Kind() {
	case reflect.Slice, reflect.Array:
		return value.Len() > 0
	default:
		return true
	}
}

func isObject(value reflect.Value) bool {
	switch value.Kind() {
	case reflect.Struct:
		return true
	case reflect.Map:
		return value.Type().Key().Kind() == reflect.String
	default:
		return false
	}
}

// fieldsOf lists the members of an object value: exported struct fields in
// declaration order, or map entries in sorted key order.
func fieldsOf(value reflect.Value) []field {
	switch value.Kind() {
	case reflect.Struct:
		typ := value.Type()
		fields := make([]field, 0, typ.NumField())
		for i := 0; i < typ.NumField(); i++ {
			sf := typ.Field(i)
			if !sf.IsExported() {
				continue
			}
			name, ok := fieldName(sf)
			if !ok {
				continue
			}
			fields = append(fields, field{Name: name, Value: value.Field(i)})
		}
		return fields
	case reflect.Map:
		keys := value.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		fields := make([]field, 0, len(keys))
		for _, key := range keys {
			fields = append(fields, field{Name: key.String(), Value: value.MapIndex(key)})
		}
		return fields
	default:
		return nil
	}
}

// fieldName follows encoding/json: the tag name wins, `json:"-"` hides the
// field, an empty tag name falls back to the Go name.
func fieldName(sf reflect.StructField) (string, bool) {
	tag, ok := sf.Tag.Lookup("json")
	if !ok {
		return sf.Name, true
	}
	if tag == "-" {
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return sf.Name, true
	}
	return name, true
}
