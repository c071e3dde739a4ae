// Package fixture exposes the template materializer. A Builder walks a
// template value (struct, string-keyed map, or pointers to those) and returns
// a Record with the same fields populated by random values. A spec.Map
// constrains individual fields; nested maps follow nested objects and arrays
// of objects, and the `skip` directive leaves a field out.
//
// Records keep field order when marshalled to JSON or YAML. CreateAs decodes a
// Record back into the template's Go type with mapstructure, reading `json`
// tags. Fields removed with `skip` keep their zero value in struct targets.
package fixture
