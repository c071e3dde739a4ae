package fixture

import (
	"math"

	"github.com/goliatone/go-autofixture/pkg/random"
	"github.com/goliatone/go-autofixture/pkg/spec"
)

// resolve turns a spec entry into a validated constraint.
func resolve(entry any) (spec.Constraint, error) {
	switch v := entry.(type) {
	case string:
		return spec.Parse(v)
	case spec.Constraint:
		if err := v.Validate(); err != nil {
			return spec.Constraint{}, err
		}
		return v, nil
	default:
		return spec.Parse(spec.Describe(entry))
	}
}

// checkEntry applies the field/spec compatibility rule to an explicit entry.
func checkEntry(declared string, entry any) error {
	if c, ok := entry.(spec.Constraint); ok {
		return spec.CheckConstraintCompatible(declared, c)
	}
	return spec.CheckCompatible(declared, spec.Describe(entry))
}

// span is the closed interval of values generate draws for c, before any
// fitting to a Go type.
func span(c spec.Constraint) (float64, float64) {
	if c.Kind == spec.KindInteger {
		switch {
		case c.Lower != nil && c.Upper != nil:
			return *c.Lower + 1, *c.Upper - 1
		case c.Lower != nil:
			return *c.Lower + 1, *c.Lower + 1000
		case c.Upper != nil:
			return *c.Upper - 1000, *c.Upper - 1
		default:
			return 0, 999
		}
	}
	switch {
	case c.Lower != nil && c.Upper != nil:
		return *c.Lower, *c.Upper
	case c.Lower != nil:
		return *c.Lower, *c.Lower + 1000
	case c.Upper != nil:
		return *c.Upper - 1000, *c.Upper
	default:
		return 0, 1000
	}
}

// typeRange is the range of the Go integer type behind class. Signed 64-bit
// types report ok == false since every generated value already fits.
func typeRange(class classification) (lo, hi float64, ok bool) {
	switch {
	case class.Unsigned && class.Bits > 0 && class.Bits < 64:
		return 0, math.Exp2(float64(class.Bits)) - 1, true
	case class.Unsigned:
		return 0, math.Inf(1), true
	case class.Bits > 0 && class.Bits < 64:
		half := math.Exp2(float64(class.Bits - 1))
		return -half, half - 1, true
	default:
		return 0, 0, false
	}
}

// fitInteger narrows a numeric constraint on an integral field to the values
// its Go type holds, so decoding never wraps. Narrowed constraints are always
// two-sided.
func fitInteger(class classification, raw string, c spec.Constraint) (spec.Constraint, error) {
	if !class.Integral || !c.Numeric() {
		return c, nil
	}
	tlo, thi, ok := typeRange(class)
	if !ok {
		return c, nil
	}
	lo, hi := span(c)
	lo, hi = math.Max(lo, tlo), math.Min(hi, thi)

	if c.Kind == spec.KindInteger {
		if lo > hi {
			return spec.Constraint{}, spec.OutOfRangeError(raw, class.GoKind.String(), tlo, thi)
		}
		lower, upper := lo-1, hi+1
		return spec.Constraint{Kind: spec.KindInteger, Lower: &lower, Upper: &upper, Raw: c.Raw}, nil
	}
	if lo >= hi {
		return spec.Constraint{}, spec.OutOfRangeError(raw, class.GoKind.String(), tlo, thi)
	}
	return spec.Constraint{Kind: spec.KindNumber, Lower: &lo, Upper: &hi, Raw: c.Raw}, nil
}

// generate draws one value satisfying c. Integer bounds are strict, so the
// generator range is shifted inside them.
func generate(gen *random.Generator, c spec.Constraint) any {
	switch c.Kind {
	case spec.KindBoolean:
		return gen.Boolean()
	case spec.KindString:
		length := random.DefaultStringLength
		if c.Length != nil {
			length = *c.Length
		}
		return gen.String(length)
	case spec.KindInteger:
		switch {
		case c.Lower != nil && c.Upper != nil:
			return gen.IntegerBetween(*c.Lower+1, *c.Upper)
		case c.Lower != nil:
			return gen.IntegerAbove(*c.Lower + 1)
		case c.Upper != nil:
			return gen.IntegerBelow(*c.Upper - 1)
		default:
			return gen.Integer()
		}
	case spec.KindNumber:
		switch {
		case c.Lower != nil && c.Upper != nil:
			return gen.NumberBetween(*c.Lower, *c.Upper)
		case c.Lower != nil:
			return gen.NumberAbove(*c.Lower)
		case c.Upper != nil:
			return gen.NumberBelow(*c.Upper)
		default:
			return gen.Number()
		}
	default:
		return nil
	}
}
