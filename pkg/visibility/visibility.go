// Package visibility decides which fields and steps of a form should
// currently render. It combines two independent mechanisms in a fixed order:
// progressive profiling (pkg/profiling) runs first, then per-field
// conditional logic is evaluated against the raw form data. Every consumer —
// the classic paginated renderer, the builder canvas, and the conversational
// runner — goes through this package so they always agree on the next
// visible field.
package visibility

import (
	"github.com/goliatone/go-formflow/pkg/condition"
	"github.com/goliatone/go-formflow/pkg/model"
)

// Context carries the inputs available to a custom rule evaluator. Data is
// the renderer-owned form state; Contact is the known-visitor record (nil
// for anonymous visitors).
type Context struct {
	Data    model.FormData
	Contact model.Contact
}

// Evaluator extends the structured rule engine with free-form rules, such as
// the builder's advanced-mode expressions stored in field metadata. It only
// runs for fields that carry such a rule; structured ConditionalLogic always
// uses the built-in resolver.
type Evaluator interface {
	Eval(field model.Field, rule string, ctx Context) (bool, error)
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(field model.Field, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(field model.Field, rule string, ctx Context) (bool, error) {
	return fn(field, rule, ctx)
}

// ExprMetadataKey is the field metadata key the builder writes free-form
// visibility expressions under.
const ExprMetadataKey = "visibilityExpr"

// ShouldShowField reports whether a field should render given the current
// form data. Fields without active conditional logic are always visible —
// the deliberate default-visible policy. Each rule is evaluated against the
// raw form data only; a rule may reference a currently hidden field, in
// which case it sees that field's stale or empty value rather than a
// computed visibility.
func ShouldShowField(field model.Field, data model.FormData) bool {
	logic := field.Conditional
	if !logic.Active() {
		return true
	}

	switch logic.LogicType {
	case model.LogicOr:
		for _, rule := range logic.Rules {
			if evalRule(rule, data) {
				return true
			}
		}
		return false
	default:
		// AND is the default combinator when the definition omits one.
		for _, rule := range logic.Rules {
			if !evalRule(rule, data) {
				return false
			}
		}
		return true
	}
}

// ShouldShowStep reports whether a whole form page should render. Steps gate
// on a single rule rather than a rule set.
func ShouldShowStep(step model.Step, data model.FormData) bool {
	if step.ShowIf == nil {
		return true
	}
	return evalRule(*step.ShowIf, data)
}

func evalRule(rule model.Rule, data model.FormData) bool {
	var value any
	if data != nil {
		value = data[rule.FieldID]
	}
	return condition.Evaluate(value, rule.Operator, rule.Value)
}
