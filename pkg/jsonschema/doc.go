// Package jsonschema derives fixture templates from JSON Schema documents.
// Local $ref pointers ("#/$defs/Pet", "#/definitions/Pet") are resolved;
// schemas are converted to the openapi.Schema model and share its template
// mapping, including the x-autofixture extension.
package jsonschema
