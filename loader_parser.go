package autofixture

import (
	"context"
	"fmt"

	internalloader "github.com/goliatone/go-autofixture/internal/openapi/loader"
	internalparser "github.com/goliatone/go-autofixture/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-autofixture/pkg/openapi"
	"github.com/goliatone/go-autofixture/pkg/spec"
)

// NewLoader constructs an OpenAPI loader while keeping the concrete type
// hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	return internalloader.New(pkgopenapi.NewLoaderOptions(options...))
}

// NewParser constructs an OpenAPI parser backed by kin-openapi.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	return internalparser.New(pkgopenapi.NewParserOptions(options...))
}

// TemplateFromOpenAPI loads src and derives the template and specs of the
// named component schema.
func TemplateFromOpenAPI(ctx context.Context, loader pkgopenapi.Loader, parser pkgopenapi.Parser, src pkgopenapi.Source, schemaName string) (map[string]any, spec.Map, error) {
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return nil, nil, err
	}
	schemas, err := parser.Schemas(ctx, doc)
	if err != nil {
		return nil, nil, err
	}
	schema, ok := schemas[schemaName]
	if !ok {
		return nil, nil, fmt.Errorf("autofixture: schema %q not found in %s", schemaName, doc.Location())
	}
	return pkgopenapi.TemplateFromSchema(schema)
}
