package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-autofixture/pkg/fixture"
)

// JSONRenderer writes the records as an indented JSON array.
type JSONRenderer struct{}

// NewJSONRenderer returns the json renderer.
func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

func (*JSONRenderer) Name() string        { return "json" }
func (*JSONRenderer) ContentType() string { return "application/json" }

func (*JSONRenderer) Render(ctx context.Context, records []*fixture.Record, options RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if records == nil {
		records = []*fixture.Record{}
	}
	payload, err := json.MarshalIndent(records, "", options.IndentOrDefault())
	if err != nil {
		return nil, fmt.Errorf("render: json: %w", err)
	}
	return append(payload, '\n'), nil
}

// YAMLRenderer writes the records as a YAML sequence.
type YAMLRenderer struct{}

// NewYAMLRenderer returns the yaml renderer.
func NewYAMLRenderer() *YAMLRenderer { return &YAMLRenderer{} }

func (*YAMLRenderer) Name() string        { return "yaml" }
func (*YAMLRenderer) ContentType() string { return "application/yaml" }

func (*YAMLRenderer) Render(ctx context.Context, records []*fixture.Record, options RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if records == nil {
		records = []*fixture.Record{}
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(len(options.IndentOrDefault()))
	if err := encoder.Encode(records); err != nil {
		return nil, fmt.Errorf("render: yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("render: yaml: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	_ Renderer = (*JSONRenderer)(nil)
	_ Renderer = (*YAMLRenderer)(nil)
)
