package openapi

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/goliatone/go-autofixture/pkg/random"
	"github.com/goliatone/go-autofixture/pkg/spec"
)

// ExtensionKey is the schema extension holding an explicit fixture spec.
const ExtensionKey = "x-autofixture"

var (
	// ErrUnsupportedSchema reports a schema with no template mapping.
	ErrUnsupportedSchema = errors.New("openapi: unsupported schema")
	// ErrRecursiveSchema reports a required property that refers back to an
	// ancestor, which no finite fixture can satisfy.
	ErrRecursiveSchema = errors.New("openapi: recursive schema")
)

// TemplateFromSchema derives a template and the matching spec.Map from an
// object schema. Optional recursive properties are left out of the template.
func TemplateFromSchema(s Schema) (map[string]any, spec.Map, error) {
	if typ := schemaType(s); typ != "object" {
		return nil, nil, fmt.Errorf("%w: root schema must be an object, got %q", ErrUnsupportedSchema, typ)
	}
	return objectTemplate("", s)
}

func objectTemplate(path string, s Schema) (map[string]any, spec.Map, error) {
	template := make(map[string]any, len(s.Properties))
	specs := spec.Map{}

	for _, name := range s.PropertyNames() {
		prop := s.Properties[name]
		propPath := joinPath(path, name)

		if prop.Recursive {
			if s.IsRequired(name) && prop.Fixture != spec.Skip {
				return nil, nil, fmt.Errorf("%w: required property %q refers to %s", ErrRecursiveSchema, propPath, prop.Ref)
			}
			continue
		}

		value, entry, err := propertyTemplate(propPath, prop)
		if err != nil {
			return nil, nil, err
		}
		template[name] = value
		if entry != nil {
			specs[name] = entry
		}
	}

	if len(specs) == 0 {
		specs = nil
	}
	return template, specs, nil
}

// propertyTemplate returns the template value and the spec entry (nil when
// the default generation applies) for one property.
func propertyTemplate(path string, s Schema) (any, any, error) {
	var (
		value any
		entry any
		err   error
	)

	switch typ := schemaType(s); typ {
	case "object":
		var nested spec.Map
		value, nested, err = objectTemplate(path, s)
		if nested != nil {
			entry = nested
		}
	case "array":
		if s.Items == nil {
			return nil, nil, fmt.Errorf("%w: array %q has no items", ErrUnsupportedSchema, path)
		}
		if s.Items.Recursive {
			return nil, nil, fmt.Errorf("%w: items of %q refer to %s", ErrRecursiveSchema, path, s.Items.Ref)
		}
		var item any
		item, entry, err = propertyTemplate(path+"[]", *s.Items)
		value = []any{item}
	case "string":
		value = ""
		if s.Fixture == "" {
			entry = stringEntry(s)
		}
	case "integer":
		value = 0
		if s.Fixture == "" {
			entry, err = integerEntry(path, s)
		}
	case "number":
		value = 0.0
		if s.Fixture == "" {
			entry, err = numberEntry(path, s)
		}
	case "boolean":
		value = false
	default:
		return nil, nil, fmt.Errorf("%w: property %q has type %q", ErrUnsupportedSchema, path, typ)
	}
	if err != nil {
		return nil, nil, err
	}

	if s.Fixture != "" {
		entry = s.Fixture
	}
	return value, entry, nil
}

// stringEntry picks the default length clamped into [minLength, maxLength].
func stringEntry(s Schema) any {
	if s.MinLength == nil && s.MaxLength == nil {
		return nil
	}
	n := random.DefaultStringLength
	if s.MaxLength != nil && n > *s.MaxLength {
		n = *s.MaxLength
	}
	if s.MinLength != nil && n < *s.MinLength {
		n = *s.MinLength
	}
	return spec.StringOfLength(n).String()
}

// integerEntry turns inclusive bounds into the strict bounds of the spec
// grammar.
func integerEntry(path string, s Schema) (any, error) {
	c := spec.Constraint{Kind: spec.KindInteger}
	if s.Minimum != nil {
		lower := math.Ceil(*s.Minimum) - 1
		c.Lower = &lower
	}
	if s.Maximum != nil {
		upper := math.Floor(*s.Maximum) + 1
		c.Upper = &upper
	}
	return constraintEntry(path, c)
}

func numberEntry(path string, s Schema) (any, error) {
	c := spec.Constraint{Kind: spec.KindNumber}
	if s.Minimum != nil {
		lower := *s.Minimum
		c.Lower = &lower
	}
	if s.Maximum != nil {
		upper := *s.Maximum
		c.Upper = &upper
	}
	return constraintEntry(path, c)
}

// constraintEntry prefers the spec text and falls back to the Constraint when
// a bound is negative, which the grammar cannot spell.
func constraintEntry(path string, c spec.Constraint) (any, error) {
	if c.Lower == nil && c.Upper == nil {
		return nil, nil
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("openapi: property %q: %w", path, err)
	}
	for _, bound := range []*float64{c.Lower, c.Upper} {
		if bound != nil && *bound < 0 {
			return c, nil
		}
	}
	return c.String(), nil
}

// schemaType resolves the effective type: the first non-null entry of a type
// list, and "object" for untyped schemas with properties.
func schemaType(s Schema) string {
	for _, typ := range strings.Split(s.Type, ",") {
		typ = strings.TrimSpace(typ)
		if typ != "" && typ != "null" {
			return typ
		}
	}
	if len(s.Properties) > 0 {
		return "object"
	}
	return s.Type
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
