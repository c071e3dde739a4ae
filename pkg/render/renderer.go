package render

import (
	"context"

	"github.com/goliatone/go-autofixture/pkg/fixture"
)

// Renderer converts generated records into a byte representation (JSON,
// YAML, text, HTML).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, records []*fixture.Record, options RenderOptions) ([]byte, error)
}
