// Package spec parses the constraint mini-language used to steer fixture
// generation. A constraint string names a kind and, optionally, bounds:
//
//	boolean
//	string            string[5]          string [ 5 ]
//	number            integer
//	number > 3.2      integer < 8
//	1.5 < number < 2  4 < integer < 8
//	skip
//
// Comparators are strict; `<=`, `>=`, signs and exponents are rejected.
// Whitespace is accepted around every token. Parse returns a Constraint or an
// *Error whose message quotes the original spec text, so callers can surface
// it unchanged. Map carries per-field specs and mirrors the template's shape.
package spec
