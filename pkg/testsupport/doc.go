// Package testsupport holds helpers shared by the package tests: OpenAPI and
// definition fixtures, golden files (refreshed with UPDATE_GOLDENS=1) and
// go-cmp comparisons.
package testsupport
