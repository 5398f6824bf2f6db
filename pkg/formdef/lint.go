package formdef

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formflow/pkg/model"
)

// Severity classifies a lint finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single lint finding, anchored to a field or step when one is
// involved.
type Issue struct {
	Severity Severity
	FieldID  string
	StepID   string
	Message  string
}

func (i Issue) String() string {
	scope := i.FieldID
	if scope == "" {
		scope = i.StepID
	}
	if scope == "" {
		return fmt.Sprintf("%s: %s", i.Severity, i.Message)
	}
	return fmt.Sprintf("%s: %s: %s", i.Severity, scope, i.Message)
}

// Lint checks a definition for wiring mistakes the decode step cannot see:
// duplicate ids, rules pointing at fields that do not exist, steps gated on
// unknown fields, and operators the evaluator would refuse. Errors make the
// definition unfit to publish; warnings are survivable but suspicious.
func Lint(form model.Form) []Issue {
	var issues []Issue

	fields := form.AllFields()
	known := make(map[string]bool, len(fields))
	for _, field := range fields {
		id := strings.TrimSpace(field.ID)
		if id == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Message:  fmt.Sprintf("field %q has no id", field.Label),
			})
			continue
		}
		if known[id] {
			issues = append(issues, Issue{
				Severity: SeverityError,
				FieldID:  id,
				Message:  "duplicate field id",
			})
		}
		known[id] = true
	}

	for _, field := range fields {
		issues = append(issues, lintConditional(field, known)...)
		issues = append(issues, lintProgressive(field)...)
	}

	stepIDs := make(map[string]bool, len(form.Steps))
	for _, step := range form.Steps {
		if stepIDs[step.ID] {
			issues = append(issues, Issue{
				Severity: SeverityError,
				StepID:   step.ID,
				Message:  "duplicate step id",
			})
		}
		stepIDs[step.ID] = true

		if step.ShowIf != nil {
			issues = append(issues, lintRule(*step.ShowIf, known, "", step.ID)...)
		}
	}

	return issues
}

func lintConditional(field model.Field, known map[string]bool) []Issue {
	logic := field.Conditional
	if logic == nil {
		return nil
	}

	var issues []Issue
	if logic.Enabled && len(logic.Rules) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			FieldID:  field.ID,
			Message:  "conditional logic enabled with no rules; field is always visible",
		})
	}
	for _, rule := range logic.Rules {
		issues = append(issues, lintRule(rule, known, field.ID, "")...)
		if rule.FieldID == field.ID {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				FieldID:  field.ID,
				Message:  "rule references its own field",
			})
		}
	}
	return issues
}

func lintProgressive(field model.Field) []Issue {
	profile := field.Progressive
	if profile == nil || !profile.Enabled {
		return nil
	}
	if profile.Priority < 0 {
		return []Issue{{
			Severity: SeverityWarning,
			FieldID:  field.ID,
			Message:  fmt.Sprintf("negative priority %d sorts last, same as unset", profile.Priority),
		}}
	}
	return nil
}

func lintRule(rule model.Rule, known map[string]bool, fieldID, stepID string) []Issue {
	var issues []Issue
	if !known[rule.FieldID] {
		issues = append(issues, Issue{
			Severity: SeverityError,
			FieldID:  fieldID,
			StepID:   stepID,
			Message:  fmt.Sprintf("rule references unknown field %q", rule.FieldID),
		})
	}
	if !knownOperator(rule.Operator) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			FieldID:  fieldID,
			StepID:   stepID,
			Message:  fmt.Sprintf("unknown operator %q always evaluates false", rule.Operator),
		})
	}
	return issues
}

func knownOperator(op model.Operator) bool {
	switch op {
	case model.OperatorEquals, model.OperatorNotEquals,
		model.OperatorContains, model.OperatorNotContains,
		model.OperatorIsEmpty, model.OperatorIsNotEmpty,
		model.OperatorGreaterThan, model.OperatorLessThan:
		return true
	default:
		return false
	}
}
