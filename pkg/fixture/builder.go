package fixture

import (
	"log/slog"

	"github.com/goliatone/go-autofixture/internal/fixture"
	"github.com/goliatone/go-autofixture/pkg/random"
	"github.com/goliatone/go-autofixture/pkg/spec"
)

// Builder generates records from templates.
type Builder interface {
	Create(template any, specs spec.Map) (*Record, error)
	CreateMany(template any, count int, specs spec.Map) ([]*Record, error)
}

// Option configures the builder behaviour.
type Option func(*builderOptions)

type builderOptions struct {
	generator *random.Generator
	logger    *slog.Logger
}

// WithGenerator draws every value from gen instead of the package default.
func WithGenerator(gen *random.Generator) Option {
	return func(opts *builderOptions) {
		opts.generator = gen
	}
}

// WithSeed makes the builder reproducible: builders created with the same
// seed produce the same records for the same calls.
func WithSeed(seed int64) Option {
	return func(opts *builderOptions) {
		opts.generator = random.New(random.WithSeed(seed))
	}
}

// WithLogger receives debug events such as skipped fields and array
// expansion.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *builderOptions) {
		opts.logger = logger
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...Option) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	return fixture.New(fixture.Options{
		Generator: cfg.generator,
		Logger:    cfg.logger,
	})
}
