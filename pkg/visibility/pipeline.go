package visibility

import (
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/profiling"
)

// Options tunes the visible-field pipeline. The zero value runs progressive
// profiling without a cap and structured conditional logic only.
type Options struct {
	// MaxProgressiveFields caps how many progressive fields show at once.
	// Zero or negative means no cap.
	MaxProgressiveFields int
	// PreserveFormOrder re-sorts a priority-capped result back into the
	// original form order. Without it a capped result stays in ascending
	// priority order, matching what the hosted form runtime ships today.
	PreserveFormOrder bool
	// Evaluator, when set, additionally gates fields that carry a free-form
	// rule under ExprMetadataKey. An evaluator error hides the field: a rule
	// that cannot be evaluated fails closed like any other broken rule.
	Evaluator Evaluator
}

// VisibleField pairs a visible field with its index in the original field
// sequence, so callers that need stable form order after a priority cap can
// re-sort without searching.
type VisibleField struct {
	Field model.Field
	Index int
}

// VisibleFields returns the ordered subset of fields a renderer should paint.
// The two stages compose in a fixed, significant order: progressive
// profiling first, conditional logic over the survivors. A field hidden by
// profiling is never evaluated for conditional visibility. The result is
// deterministic for identical inputs and is always a fresh slice.
func VisibleFields(fields []model.Field, data model.FormData, contact model.Contact, opts Options) []model.Field {
	set := VisibleFieldSet(fields, data, contact, opts)
	out := make([]model.Field, 0, len(set))
	for _, entry := range set {
		out = append(out, entry.Field)
	}
	return out
}

// VisibleFieldSet is VisibleFields with original-order indices attached.
func VisibleFieldSet(fields []model.Field, data model.FormData, contact model.Contact, opts Options) []VisibleField {
	index := make(map[string]int, len(fields))
	for i, field := range fields {
		index[field.ID] = i
	}

	surviving := profiling.Apply(fields, contact, opts.MaxProgressiveFields)
	if opts.PreserveFormOrder {
		surviving = profiling.Reorder(fields, surviving)
	}

	out := make([]VisibleField, 0, len(surviving))
	for _, field := range surviving {
		if !ShouldShowField(field, data) {
			continue
		}
		if !passesExprRule(field, data, contact, opts.Evaluator) {
			continue
		}
		out = append(out, VisibleField{Field: field, Index: index[field.ID]})
	}
	return out
}

// VisibleSteps filters a paginated form's steps by their ShowIf rules and
// runs the field pipeline inside each surviving step. Steps left with no
// visible fields are dropped so renderers never paint an empty page.
func VisibleSteps(steps []model.Step, data model.FormData, contact model.Contact, opts Options) []model.Step {
	out := make([]model.Step, 0, len(steps))
	for _, step := range steps {
		if !ShouldShowStep(step, data) {
			continue
		}
		step.Fields = VisibleFields(step.Fields, data, contact, opts)
		if len(step.Fields) == 0 {
			continue
		}
		out = append(out, step)
	}
	return out
}

func passesExprRule(field model.Field, data model.FormData, contact model.Contact, evaluator Evaluator) bool {
	if evaluator == nil {
		return true
	}
	rule := field.Metadata[ExprMetadataKey]
	if rule == "" {
		return true
	}
	ok, err := evaluator.Eval(field, rule, Context{Data: data, Contact: contact})
	if err != nil {
		return false
	}
	return ok
}
