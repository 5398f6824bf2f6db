package render

import (
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/visibility"
)

// RenderOptions carries per-request data renderers use to customise output
// without touching the form definition.
type RenderOptions struct {
	// Values pre-populates controls and drives conditional-logic evaluation.
	// The renderer owns this map; the engine only reads it.
	Values model.FormData
	// Contact is the known-visitor record used by progressive profiling.
	// nil renders the full form for an anonymous visitor.
	Contact model.Contact
	// MaxProgressiveFields caps how many progressive fields show at once.
	MaxProgressiveFields int
	// PreserveFormOrder keeps a priority-capped field set in original form
	// order instead of priority order.
	PreserveFormOrder bool
	// Evaluator plugs in a free-form rule engine for builder advanced-mode
	// expressions (see pkg/visibility/exprrule).
	Evaluator visibility.Evaluator
	// Errors surfaces server-side validation feedback keyed by field id.
	Errors map[string][]string
	// Hidden adds tracking inputs (tenant, campaign, CSRF) emitted alongside
	// the visible fields.
	Hidden map[string]string
	// Theme, when set, gives renderers resolved theme tokens and partials.
	Theme *ThemeConfig
}

// VisibilityOptions translates the render options into pipeline options so
// renderers never assemble them by hand and drift apart.
func (o RenderOptions) VisibilityOptions() visibility.Options {
	return visibility.Options{
		MaxProgressiveFields: o.MaxProgressiveFields,
		PreserveFormOrder:    o.PreserveFormOrder,
		Evaluator:            o.Evaluator,
	}
}
