package autofixture

import (
	"github.com/goliatone/go-autofixture/pkg/fixture"
	"github.com/goliatone/go-autofixture/pkg/random"
	"github.com/goliatone/go-autofixture/pkg/spec"
)

// Record aliases fixture.Record for callers that only import the root
// package.
type Record = fixture.Record

// Specs aliases spec.Map.
type Specs = spec.Map

var defaultBuilder = fixture.NewBuilder()

// New returns a Builder configured with the supplied options.
func New(options ...fixture.Option) fixture.Builder {
	return fixture.NewBuilder(options...)
}

// Create generates one record shaped like template using the package default
// random source.
func Create(template any, specs spec.Map) (*Record, error) {
	return defaultBuilder.Create(template, specs)
}

// CreateMany generates count records. Zero means fixture.ElementCount and a
// negative count yields no records.
func CreateMany(template any, count int, specs spec.Map) ([]*Record, error) {
	return defaultBuilder.CreateMany(template, count, specs)
}

// CreateAs generates one value of the template's type.
func CreateAs[T any](template T, specs spec.Map) (T, error) {
	return fixture.CreateAs(defaultBuilder, template, specs)
}

// CreateManyAs generates count values of the template's type.
func CreateManyAs[T any](template T, count int, specs spec.Map) ([]T, error) {
	return fixture.CreateManyAs(defaultBuilder, template, count, specs)
}

// CreateBoolean returns true or false with equal probability.
func CreateBoolean() bool {
	return random.Boolean()
}

// CreateString returns length alphanumeric characters. A length of zero uses
// random.DefaultStringLength.
func CreateString(length int) string {
	if length == 0 {
		length = random.DefaultStringLength
	}
	return random.String(length)
}

// CreateNumber returns a number in [0, 1000).
func CreateNumber() float64 {
	return random.Number()
}

// CreateNumberBelow returns a number in (upper-1000, upper].
func CreateNumberBelow(upper float64) float64 {
	return random.NumberBelow(upper)
}

// CreateNumberAbove returns a number in [lower, lower+1000).
func CreateNumberAbove(lower float64) float64 {
	return random.NumberAbove(lower)
}

// CreateNumberBetween returns a number in [lower, upper).
func CreateNumberBetween(lower, upper float64) float64 {
	return random.NumberBetween(lower, upper)
}

// CreateInteger returns an integer in [0, 1000).
func CreateInteger() int64 {
	return int64(random.Integer())
}

// CreateIntegerBelow returns an integer in [upper-1000, upper].
func CreateIntegerBelow(upper int64) int64 {
	return int64(random.IntegerBelow(float64(upper)))
}

// CreateIntegerAbove returns an integer in [lower, lower+1000).
func CreateIntegerAbove(lower int64) int64 {
	return int64(random.IntegerAbove(float64(lower)))
}

// CreateIntegerBetween returns an integer in [lower, upper).
func CreateIntegerBetween(lower, upper int64) int64 {
	return int64(random.IntegerBetween(float64(lower), float64(upper)))
}
