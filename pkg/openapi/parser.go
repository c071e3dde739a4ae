package openapi

import "context"

// Parser extracts component schemas from a document, keyed by component name.
type Parser interface {
	Schemas(ctx context.Context, doc Document) (map[string]Schema, error)
}

// ParserOptions toggles document handling.
type ParserOptions struct {
	// Validate runs the kin-openapi document validator before extraction.
	Validate bool

	// AllowExternalRefs lets $ref point outside the document.
	AllowExternalRefs bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithValidation toggles document validation.
func WithValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.Validate = enabled
	}
}

// WithExternalRefs toggles resolution of references to other documents.
func WithExternalRefs(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowExternalRefs = enabled
	}
}

// NewParserOptions applies ParserOption functions over the defaults.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
