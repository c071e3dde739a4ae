// Package autofixture generates test fixtures from template values.
//
// A template is an ordinary Go value, a struct or a map, whose fields define
// the shape of the fixture. Create walks it and returns a Record carrying
// fresh random values of the same types:
//
//	record, err := autofixture.Create(Pet{Tags: []string{""}}, autofixture.Specs{
//		"name": "string[5]",
//		"age":  "0 < integer < 20",
//		"id":   "skip",
//	})
//
// Specs use a small constraint language (see package spec). Arrays in the
// template need one sample element and always produce three elements.
// CreateAs decodes the result back into the template's type. The OpenAPI
// helpers derive templates and specs from component schemas.
package autofixture
