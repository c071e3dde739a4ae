package openapi

import (
	"errors"
	"fmt"
	"sort"
)

// Document wraps a raw OpenAPI payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument validates the inputs and copies raw.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("openapi: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("openapi: raw document is empty")
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Schema is the subset of an OpenAPI schema that drives fixture templates.
// Bounds are inclusive, as in OpenAPI 3.0 without exclusive flags.
type Schema struct {
	Ref        string
	Type       string
	Format     string
	Required   []string
	Properties map[string]Schema
	Items      *Schema
	Enum       []any
	Default    any
	Minimum    *float64
	Maximum    *float64
	MinLength  *int
	MaxLength  *int
	// Fixture holds the `x-autofixture` extension value.
	Fixture string
	// Recursive marks a $ref that points back to one of its ancestors. Its
	// properties are not expanded.
	Recursive bool
}

// PropertyNames returns the property names in sorted order.
func (s Schema) PropertyNames() []string {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRequired reports whether name is listed in Required.
func (s Schema) IsRequired(name string) bool {
	for _, required := range s.Required {
		if required == name {
			return true
		}
	}
	return false
}

// DebugString summarises the schema for logs.
func (s Schema) DebugString() string {
	summary := fmt.Sprintf("type=%s", s.Type)
	if s.Ref != "" {
		summary += fmt.Sprintf(",ref=%s", s.Ref)
	}
	if len(s.Properties) > 0 {
		summary += fmt.Sprintf(",properties=%d", len(s.Properties))
	}
	if s.Items != nil {
		summary += ",items=true"
	}
	if s.Recursive {
		summary += ",recursive=true"
	}
	return summary
}

// Merge folds an allOf member into s. The member only fills fields s leaves
// unset; properties are unioned and required names appended.
func (s *Schema) Merge(part Schema) {
	if s.Type == "" {
		s.Type = part.Type
	}
	if s.Fixture == "" {
		s.Fixture = part.Fixture
	}
	s.Required = append(s.Required, part.Required...)
	if len(part.Properties) > 0 {
		if s.Properties == nil {
			s.Properties = make(map[string]Schema, len(part.Properties))
		}
		for name, property := range part.Properties {
			if _, exists := s.Properties[name]; !exists {
				s.Properties[name] = property
			}
		}
	}
	if s.Items == nil {
		s.Items = part.Items
	}
	if s.Minimum == nil {
		s.Minimum = part.Minimum
	}
	if s.Maximum == nil {
		s.Maximum = part.Maximum
	}
	if s.MinLength == nil {
		s.MinLength = part.MinLength
	}
	if s.MaxLength == nil {
		s.MaxLength = part.MaxLength
	}
}
