package random

import (
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// DefaultStringLength is used by String when callers do not ask for a
	// specific length.
	DefaultStringLength = 10

	// spread is the width of the interval used by the one-sided and
	// unbounded number generators.
	spread = 1000.0

	alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Option configures a Generator before construction.
type Option func(*config)

type config struct {
	rng *rand.Rand
}

// WithSeed makes the generator deterministic for the given seed.
func WithSeed(seed int64) Option {
	return func(cfg *config) {
		cfg.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand injects a caller-owned random source. The generator serialises
// access to it, so the source must not be used elsewhere concurrently.
func WithRand(rng *rand.Rand) Option {
	return func(cfg *config) {
		if rng != nil {
			cfg.rng = rng
		}
	}
}

// WithCryptoSeed seeds the generator from crypto/rand, falling back to the
// clock when the system entropy source is unavailable.
func WithCryptoSeed() Option {
	return func(cfg *config) {
		seed, err := NewSeed()
		if err != nil {
			seed = time.Now().UnixNano()
		}
		cfg.rng = rand.New(rand.NewSource(seed))
	}
}

// Generator produces random primitive values. The zero value is not usable;
// construct one with New.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New constructs a Generator. Without options the source is seeded from
// crypto/rand.
func New(options ...Option) *Generator {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.rng == nil {
		WithCryptoSeed()(&cfg)
	}
	return &Generator{rng: cfg.rng}
}

// Float64 returns a uniformly distributed value in [0, 1).
func (g *Generator) Float64() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Float64()
}

// Boolean returns true or false with roughly equal probability.
func (g *Generator) Boolean() bool {
	return g.Float64() > 0.5
}

// String returns a string of exactly length characters drawn uniformly from
// [a-zA-Z0-9]. Negative lengths yield the empty string.
func (g *Generator) String(length int) string {
	if length <= 0 {
		return ""
	}
	buf := make([]byte, length)

	g.mu.Lock()
	for i := range buf {
		buf[i] = alphabet[g.rng.Intn(len(alphabet))]
	}
	g.mu.Unlock()

	return string(buf)
}

// Number returns a real value in [0, 1000).
func (g *Generator) Number() float64 {
	return spread * g.Float64()
}

// NumberBelow returns a value no greater than upperBound, drawn from
// (upperBound-1000, upperBound].
func (g *Generator) NumberBelow(upperBound float64) float64 {
	return upperBound - spread*g.Float64()
}

// NumberAbove returns a value no smaller than lowerBound, drawn from
// [lowerBound, lowerBound+1000).
func (g *Generator) NumberAbove(lowerBound float64) float64 {
	return lowerBound + spread*g.Float64()
}

// NumberBetween returns a value in [lowerBound, upperBound). The caller must
// ensure lowerBound < upperBound.
func (g *Generator) NumberBetween(lowerBound, upperBound float64) float64 {
	return lowerBound + (upperBound-lowerBound)*g.Float64()
}

// Integer returns the floor of Number.
func (g *Generator) Integer() float64 {
	return math.Floor(g.Number())
}

// IntegerBelow returns the floor of NumberBelow.
func (g *Generator) IntegerBelow(upperBound float64) float64 {
	return math.Floor(g.NumberBelow(upperBound))
}

// IntegerAbove returns the floor of NumberAbove.
func (g *Generator) IntegerAbove(lowerBound float64) float64 {
	return math.Floor(g.NumberAbove(lowerBound))
}

// IntegerBetween returns the floor of NumberBetween, an integer in
// [lowerBound, upperBound) for integral bounds.
func (g *Generator) IntegerBetween(lowerBound, upperBound float64) float64 {
	return math.Floor(g.NumberBetween(lowerBound, upperBound))
}

var defaultGenerator atomic.Pointer[Generator]

func init() {
	defaultGenerator.Store(New())
}

// Default returns the process-wide generator used by the package functions.
func Default() *Generator {
	return defaultGenerator.Load()
}

// SetDefault replaces the process-wide generator and returns the previous
// one so tests can restore it. A nil generator is ignored.
func SetDefault(g *Generator) *Generator {
	if g == nil {
		return Default()
	}
	return defaultGenerator.Swap(g)
}

// Boolean draws from the default generator.
func Boolean() bool { return Default().Boolean() }

// String draws from the default generator.
func String(length int) string { return Default().String(length) }

// Number draws from the default generator.
func Number() float64 { return Default().Number() }

// NumberBelow draws from the default generator.
func NumberBelow(upperBound float64) float64 { return Default().NumberBelow(upperBound) }

// NumberAbove draws from the default generator.
func NumberAbove(lowerBound float64) float64 { return Default().NumberAbove(lowerBound) }

// NumberBetween draws from the default generator.
func NumberBetween(lowerBound, upperBound float64) float64 {
	return Default().NumberBetween(lowerBound, upperBound)
}

// Integer draws from the default generator.
func Integer() float64 { return Default().Integer() }

// IntegerBelow draws from the default generator.
func IntegerBelow(upperBound float64) float64 { return Default().IntegerBelow(upperBound) }

// IntegerAbove draws from the default generator.
func IntegerAbove(lowerBound float64) float64 { return Default().IntegerAbove(lowerBound) }

// IntegerBetween draws from the default generator.
func IntegerBetween(lowerBound, upperBound float64) float64 {
	return Default().IntegerBetween(lowerBound, upperBound)
}
