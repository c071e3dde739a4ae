// Package openapi exposes the loader and parser contracts used to turn
// OpenAPI component schemas into fixture templates. Implementations live under
// internal/openapi so kin-openapi types never reach callers.
//
// TemplateFromSchema maps a Schema onto a template value plus a spec.Map:
// objects become nested maps, arrays become one-element slices, scalar bounds
// (minimum, maximum, minLength, maxLength) become constraints, and the
// `x-autofixture` extension supplies an explicit spec such as `skip`.
package openapi
