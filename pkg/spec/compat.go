package spec

import "strings"

// Declared type names reported for template fields.
const (
	TypeBoolean = "boolean"
	TypeString  = "string"
	TypeNumber  = "number"
	TypeObject  = "object"
)

// CheckCompatible reports whether raw may drive a field whose template value
// has the declared type. Boolean fields accept only the literal `boolean`,
// string fields any spec mentioning `string`, number fields any spec
// mentioning `number` or `integer`. Every other declared type is rejected.
func CheckCompatible(declared, raw string) error {
	var ok bool
	switch declared {
	case TypeBoolean:
		ok = raw == Boolean
	case TypeString:
		ok = strings.Contains(raw, string(KindString))
	case TypeNumber:
		ok = strings.Contains(raw, string(KindNumber)) || strings.Contains(raw, string(KindInteger))
	}
	if ok {
		return nil
	}
	return IncompatibleError(raw, declared)
}

// CheckConstraintCompatible applies the CheckCompatible rule to a constraint
// built in code.
func CheckConstraintCompatible(declared string, c Constraint) error {
	var ok bool
	switch declared {
	case TypeBoolean:
		ok = c.Kind == KindBoolean
	case TypeString:
		ok = c.Kind == KindString
	case TypeNumber:
		ok = c.Numeric()
	}
	if ok {
		return nil
	}
	raw := c.Raw
	if raw == "" {
		raw = c.String()
	}
	return IncompatibleError(raw, declared)
}
