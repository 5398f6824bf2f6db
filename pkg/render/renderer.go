package render

import (
	"context"

	"github.com/goliatone/go-formflow/pkg/model"
)

// Renderer converts a Form into a byte representation: paginated HTML for
// the classic renderer, a canvas document for the builder, collected answers
// for the conversational runner. Every renderer computes its field set
// through the visibility pipeline so all surfaces agree on what is shown.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.Form, options RenderOptions) ([]byte, error)
}
