// Package validation checks submissions against the currently visible field
// set. A field hidden by progressive profiling or conditional logic can never
// block a submit, even when marked required — validating invisible inputs
// would strand the visitor with errors they cannot see.
package validation

import (
	"strings"

	"github.com/goliatone/go-formflow/pkg/condition"
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/visibility"
)

// Result reports the outcome of a required-field pass. Errors is keyed by
// field id; Valid is true exactly when Errors is empty.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

// ValidateVisibleFields computes the visible set via the pipeline and checks
// every visible required field for a present value. All violations are
// collected in one pass; the function never errors.
func ValidateVisibleFields(fields []model.Field, data model.FormData, contact model.Contact, opts visibility.Options) Result {
	errors := make(map[string]string)
	for _, field := range visibility.VisibleFields(fields, data, contact, opts) {
		if !field.Required {
			continue
		}
		if hasValue(data, field.ID) {
			continue
		}
		errors[field.ID] = requiredMessage(field)
	}

	if len(errors) == 0 {
		return Result{Valid: true}
	}
	return Result{Valid: false, Errors: errors}
}

// ValidateForm runs ValidateVisibleFields over a whole form, flattening steps
// in form order. Fields on steps hidden by their ShowIf rule are skipped the
// same way conditionally hidden fields are.
func ValidateForm(form model.Form, data model.FormData, contact model.Contact, opts visibility.Options) Result {
	fields := make([]model.Field, 0, len(form.Fields))
	fields = append(fields, form.Fields...)
	for _, step := range form.Steps {
		if !visibility.ShouldShowStep(step, data) {
			continue
		}
		fields = append(fields, step.Fields...)
	}
	return ValidateVisibleFields(fields, data, contact, opts)
}

func hasValue(data model.FormData, fieldID string) bool {
	if data == nil {
		return false
	}
	value, ok := data[fieldID]
	if !ok {
		return false
	}
	if s, isString := value.(string); isString {
		return strings.TrimSpace(s) != ""
	}
	return condition.Truthy(value)
}

func requiredMessage(field model.Field) string {
	label := strings.TrimSpace(field.Label)
	if label == "" {
		label = field.ID
	}
	return label + " is required"
}
