package spec

import (
	"math"
	"strconv"
)

// Kind is the value family a constraint generates.
type Kind string

const (
	KindBoolean Kind = "boolean"
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindInteger Kind = "integer"
	// KindSkip is a directive rather than a value family: the field is left
	// out of the generated object.
	KindSkip Kind = "skip"
)

// Literal directives accepted verbatim.
const (
	Skip    = string(KindSkip)
	Boolean = string(KindBoolean)
)

// Constraint is the validated form of a spec string. Length applies to
// strings; Lower and Upper to numbers and integers. Nil pointers mean the
// constraint is absent, so a bound of zero is a real bound.
type Constraint struct {
	Kind   Kind
	Length *int
	Lower  *float64
	Upper  *float64
	// Raw is the spec text the constraint was parsed from, if any.
	Raw string
}

// Numeric reports whether the constraint generates numbers.
func (c Constraint) Numeric() bool {
	return c.Kind == KindNumber || c.Kind == KindInteger
}

// String renders the canonical spec text for the constraint.
func (c Constraint) String() string {
	switch c.Kind {
	case KindString:
		if c.Length != nil {
			return "string[" + strconv.Itoa(*c.Length) + "]"
		}
		return "string"
	case KindNumber, KindInteger:
		kind := string(c.Kind)
		switch {
		case c.Lower != nil && c.Upper != nil:
			return formatNumber(*c.Lower) + " < " + kind + " < " + formatNumber(*c.Upper)
		case c.Lower != nil:
			return kind + " > " + formatNumber(*c.Lower)
		case c.Upper != nil:
			return kind + " < " + formatNumber(*c.Upper)
		default:
			return kind
		}
	default:
		return string(c.Kind)
	}
}

// Validate applies the semantic rules of Parse to a constraint built in code.
func (c Constraint) Validate() error {
	raw := c.Raw
	if raw == "" {
		raw = c.String()
	}

	switch c.Kind {
	case KindBoolean, KindSkip:
		return nil
	case KindString:
		if c.Length != nil && *c.Length < 0 {
			return invalidString(raw)
		}
		return nil
	case KindNumber, KindInteger:
	default:
		return invalidType(raw)
	}

	if c.Kind == KindInteger {
		for _, bound := range []*float64{c.Lower, c.Upper} {
			if bound != nil && *bound != math.Trunc(*bound) {
				return realInInteger(raw, formatNumber(*bound))
			}
		}
	}
	return checkRange(raw, c)
}

func checkRange(raw string, c Constraint) error {
	if c.Lower == nil || c.Upper == nil {
		return nil
	}
	if *c.Lower >= *c.Upper {
		return invertedRange(raw, *c.Lower, *c.Upper)
	}
	if c.Kind == KindInteger && *c.Upper-*c.Lower < 2 {
		return emptyIntegerRange(raw, *c.Lower, *c.Upper)
	}
	return nil
}

// StringOfLength returns a string constraint with an exact length.
func StringOfLength(n int) Constraint {
	return Constraint{Kind: KindString, Length: &n}
}

// Between returns a two-sided numeric constraint.
func Between(kind Kind, lower, upper float64) Constraint {
	return Constraint{Kind: kind, Lower: &lower, Upper: &upper}
}

// Above returns a lower-bounded numeric constraint.
func Above(kind Kind, lower float64) Constraint {
	return Constraint{Kind: kind, Lower: &lower}
}

// Below returns an upper-bounded numeric constraint.
func Below(kind Kind, upper float64) Constraint {
	return Constraint{Kind: kind, Upper: &upper}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
