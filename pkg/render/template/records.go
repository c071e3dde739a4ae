package template

import (
	"context"
	"errors"
	"fmt"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-autofixture/pkg/fixture"
	"github.com/goliatone/go-autofixture/pkg/render"
)

// ErrTemplateRequired reports a render call with neither a template name nor
// template text.
var ErrTemplateRequired = errors.New("render template: template is required")

// TextRenderer executes a template over the records. The template sees
// "records" (a list of plain maps), "count" and any RenderOptions.Data.
type TextRenderer struct {
	engine TemplateRenderer
}

// NewTextRenderer returns the "template" renderer.
func NewTextRenderer(engine TemplateRenderer) (*TextRenderer, error) {
	if engine == nil {
		return nil, errors.New("render template: engine is required")
	}
	return &TextRenderer{engine: engine}, nil
}

func (*TextRenderer) Name() string        { return "template" }
func (*TextRenderer) ContentType() string { return "text/plain; charset=utf-8" }

func (r *TextRenderer) Render(ctx context.Context, records []*fixture.Record, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data := templateData(records, options.Data)

	var (
		out string
		err error
	)
	switch {
	case options.TemplateName != "":
		out, err = r.engine.RenderTemplate(options.TemplateName, data)
	case options.Template != "":
		out, err = r.engine.RenderString(options.Template, data)
	default:
		return nil, ErrTemplateRequired
	}
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}
	return []byte(out), nil
}

// HTMLRenderer executes a template and sanitises the result with the
// bluemonday UGC policy.
type HTMLRenderer struct {
	text   *TextRenderer
	policy *bluemonday.Policy
}

// NewHTMLRenderer returns the "html" renderer.
func NewHTMLRenderer(engine TemplateRenderer) (*HTMLRenderer, error) {
	text, err := NewTextRenderer(engine)
	if err != nil {
		return nil, err
	}
	return &HTMLRenderer{text: text, policy: bluemonday.UGCPolicy()}, nil
}

func (*HTMLRenderer) Name() string        { return "html" }
func (*HTMLRenderer) ContentType() string { return "text/html; charset=utf-8" }

func (r *HTMLRenderer) Render(ctx context.Context, records []*fixture.Record, options render.RenderOptions) ([]byte, error) {
	out, err := r.text.Render(ctx, records, options)
	if err != nil {
		return nil, err
	}
	return r.policy.SanitizeBytes(out), nil
}

// Register adds the template and html renderers to registry.
func Register(registry *render.Registry, engine TemplateRenderer) error {
	text, err := NewTextRenderer(engine)
	if err != nil {
		return err
	}
	html, err := NewHTMLRenderer(engine)
	if err != nil {
		return err
	}
	if err := registry.Register(text); err != nil {
		return err
	}
	return registry.Register(html)
}

func templateData(records []*fixture.Record, extra map[string]any) map[string]any {
	data := make(map[string]any, len(extra)+2)
	for key, value := range extra {
		data[key] = value
	}
	items := make([]any, len(records))
	for i, record := range records {
		items[i] = record.Map()
	}
	data["records"] = items
	data["count"] = len(records)
	return data
}

var (
	_ render.Renderer = (*TextRenderer)(nil)
	_ render.Renderer = (*HTMLRenderer)(nil)
)
