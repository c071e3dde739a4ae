package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-autofixture/pkg/openapi"
)

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) *Parser {
	return &Parser{options: options}
}

// Schemas converts the document's component schemas, keyed by name.
func (p *Parser) Schemas(ctx context.Context, doc pkgopenapi.Document) (map[string]pkgopenapi.Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.options.AllowExternalRefs,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}

	if p.options.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, errors.New("openapi parser: document has no component schemas")
	}

	schemas := make(map[string]pkgopenapi.Schema, len(spec.Components.Schemas))
	for name, ref := range spec.Components.Schemas {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		schemas[name] = convertSchema(ref, nil)
	}
	return schemas, nil
}

// convertSchema copies the fixture-relevant parts of ref. ancestors holds the
// schemas currently being expanded; meeting one again marks the reference as
// recursive instead of descending forever.
func convertSchema(ref *openapi3.SchemaRef, ancestors []*openapi3.Schema) pkgopenapi.Schema {
	if ref == nil {
		return pkgopenapi.Schema{}
	}
	if ref.Value == nil {
		return pkgopenapi.Schema{Ref: ref.Ref}
	}
	src := ref.Value
	for _, ancestor := range ancestors {
		if ancestor == src {
			return pkgopenapi.Schema{Ref: ref.Ref, Type: schemaType(src.Type), Recursive: true}
		}
	}
	ancestors = append(ancestors, src)

	schema := pkgopenapi.Schema{
		Ref:     ref.Ref,
		Type:    schemaType(src.Type),
		Format:  src.Format,
		Default: src.Default,
		Fixture: fixtureExtension(src.Extensions),
	}
	mergeSchema(&schema, src, ancestors)
	for _, member := range src.AllOf {
		if member == nil || member.Value == nil {
			continue
		}
		schema.Merge(convertSchema(member, ancestors))
	}
	return schema
}

func mergeSchema(schema *pkgopenapi.Schema, src *openapi3.Schema, ancestors []*openapi3.Schema) {
	if len(src.Required) > 0 {
		schema.Required = append(schema.Required, src.Required...)
	}
	if len(src.Enum) > 0 {
		schema.Enum = append([]any(nil), src.Enum...)
	}
	if len(src.Properties) > 0 {
		schema.Properties = make(map[string]pkgopenapi.Schema, len(src.Properties))
		for name, property := range src.Properties {
			schema.Properties[name] = convertSchema(property, ancestors)
		}
	}
	if src.Items != nil {
		items := convertSchema(src.Items, ancestors)
		schema.Items = &items
	}
	if src.Min != nil {
		value := *src.Min
		schema.Minimum = &value
	}
	if src.Max != nil {
		value := *src.Max
		schema.Maximum = &value
	}
	if src.MinLength != 0 {
		value := int(src.MinLength)
		schema.MinLength = &value
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		schema.MaxLength = &value
	}
}

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	return strings.Join(types.Slice(), ",")
}

func fixtureExtension(extensions map[string]any) string {
	value, ok := extensions[pkgopenapi.ExtensionKey]
	if !ok {
		return ""
	}
	text, ok := value.(string)
	if !ok {
		return ""
	}
	return text
}
