package spec

import (
	"strconv"
	"strings"
)

// Parse validates a spec string and returns its structured form. Errors are
// *Error values; their messages quote raw exactly as given.
func Parse(raw string) (Constraint, error) {
	switch raw {
	case Skip:
		return Constraint{Kind: KindSkip, Raw: raw}, nil
	case Boolean:
		return Constraint{Kind: KindBoolean, Raw: raw}, nil
	}

	switch {
	case strings.Contains(raw, string(KindString)):
		return parseString(raw)
	case strings.Contains(raw, string(KindNumber)), strings.Contains(raw, string(KindInteger)):
		return parseNumeric(raw)
	default:
		return Constraint{}, invalidType(raw)
	}
}

// MustParse panics when raw is not a valid spec. Intended for tests and
// package-level tables.
func MustParse(raw string) Constraint {
	c, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return c
}

// parseString accepts `string` and `string[N]`.
func parseString(raw string) (Constraint, error) {
	stream := &tokenStream{tokens: tokenize(raw)}

	if _, ok := stream.word(string(KindString)); !ok {
		return Constraint{}, invalidString(raw)
	}
	if stream.done() {
		return Constraint{Kind: KindString, Raw: raw}, nil
	}

	if !stream.match(tokenOpenBracket) {
		return Constraint{}, invalidString(raw)
	}
	length, ok := stream.consume(tokenNumeral)
	if !ok || strings.Contains(length.raw, ".") {
		return Constraint{}, invalidString(raw)
	}
	if !stream.match(tokenCloseBracket) || !stream.done() {
		return Constraint{}, invalidString(raw)
	}

	n, err := strconv.Atoi(length.raw)
	if err != nil {
		return Constraint{}, invalidString(raw)
	}
	return Constraint{Kind: KindString, Length: &n, Raw: raw}, nil
}

// parseNumeric tries the bare, one-sided and two-sided forms in that order.
func parseNumeric(raw string) (Constraint, error) {
	tokens := tokenize(raw)

	if c, ok := parseBare(raw, tokens); ok {
		return c, nil
	}
	if c, ok, err := parseOneSided(raw, tokens); ok || err != nil {
		return c, err
	}
	if c, ok, err := parseTwoSided(raw, tokens); ok || err != nil {
		return c, err
	}
	return Constraint{}, invalidNumber(raw)
}

func parseBare(raw string, tokens []token) (Constraint, bool) {
	stream := &tokenStream{tokens: tokens}
	kind, ok := stream.word(string(KindNumber), string(KindInteger))
	if !ok || !stream.done() {
		return Constraint{}, false
	}
	return Constraint{Kind: Kind(kind), Raw: raw}, true
}

// parseOneSided matches `<kind> < value` (upper bound) and `<kind> > value`
// (lower bound).
func parseOneSided(raw string, tokens []token) (Constraint, bool, error) {
	stream := &tokenStream{tokens: tokens}
	kind, ok := stream.word(string(KindNumber), string(KindInteger))
	if !ok {
		return Constraint{}, false, nil
	}

	upper := stream.match(tokenLess)
	if !upper && !stream.match(tokenGreater) {
		return Constraint{}, false, nil
	}
	numeral, ok := stream.numeral()
	if !ok || !stream.done() {
		return Constraint{}, false, nil
	}

	if Kind(kind) == KindInteger && strings.Contains(numeral, ".") {
		return Constraint{}, false, realInInteger(raw, numeral)
	}
	limit, err := strconv.ParseFloat(numeral, 64)
	if err != nil {
		return Constraint{}, false, invalidNumber(raw)
	}

	c := Constraint{Kind: Kind(kind), Raw: raw}
	if upper {
		c.Upper = &limit
	} else {
		c.Lower = &limit
	}
	return c, true, nil
}

// parseTwoSided matches `value < <kind> < value`.
func parseTwoSided(raw string, tokens []token) (Constraint, bool, error) {
	stream := &tokenStream{tokens: tokens}
	lowerRaw, ok := stream.numeral()
	if !ok || !stream.match(tokenLess) {
		return Constraint{}, false, nil
	}
	kind, ok := stream.word(string(KindNumber), string(KindInteger))
	if !ok || !stream.match(tokenLess) {
		return Constraint{}, false, nil
	}
	upperRaw, ok := stream.numeral()
	if !ok || !stream.done() {
		return Constraint{}, false, nil
	}

	if Kind(kind) == KindInteger {
		for _, numeral := range []string{lowerRaw, upperRaw} {
			if strings.Contains(numeral, ".") {
				return Constraint{}, false, realInInteger(raw, numeral)
			}
		}
	}

	lower, err := strconv.ParseFloat(lowerRaw, 64)
	if err != nil {
		return Constraint{}, false, invalidNumber(raw)
	}
	upper, err := strconv.ParseFloat(upperRaw, 64)
	if err != nil {
		return Constraint{}, false, invalidNumber(raw)
	}

	c := Constraint{Kind: Kind(kind), Lower: &lower, Upper: &upper, Raw: raw}
	if err := checkRange(raw, c); err != nil {
		return Constraint{}, false, err
	}
	return c, true, nil
}
