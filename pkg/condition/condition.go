// Package condition evaluates a single conditional-logic comparison: one
// field value, one operator, one literal. It is the leaf primitive under
// pkg/visibility and is deliberately total — malformed input degrades to a
// boolean outcome instead of an error so a bad rule can never take a form
// down.
//
// Policy, stated once so tests can target it directly:
//   - an unknown operator evaluates to false (fail-closed for that rule)
//   - numeric operators on non-numeric input evaluate to false
//   - string operators compare case-insensitively
package condition

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formflow/pkg/model"
)

// Evaluate applies op to the current field value and the rule literal.
// It never panics and has no side effects.
func Evaluate(value any, op model.Operator, compare string) bool {
	fieldStr := strings.ToLower(coerceString(value))
	compareStr := strings.ToLower(strings.TrimSpace(compare))

	switch op {
	case model.OperatorEquals:
		return fieldStr == compareStr
	case model.OperatorNotEquals:
		return fieldStr != compareStr
	case model.OperatorContains:
		return strings.Contains(fieldStr, compareStr)
	case model.OperatorNotContains:
		return !strings.Contains(fieldStr, compareStr)
	case model.OperatorIsEmpty:
		return !truthy(value) || fieldStr == ""
	case model.OperatorIsNotEmpty:
		return truthy(value) && fieldStr != ""
	case model.OperatorGreaterThan:
		left, right, ok := coercePair(value, compare)
		return ok && left > right
	case model.OperatorLessThan:
		left, right, ok := coercePair(value, compare)
		return ok && left < right
	default:
		return false
	}
}

func coercePair(value any, compare string) (float64, float64, bool) {
	left, ok := coerceNumber(value)
	if !ok {
		return 0, 0, false
	}
	right, err := strconv.ParseFloat(strings.TrimSpace(compare), 64)
	if err != nil {
		return 0, 0, false
	}
	return left, right, true
}

// truthy mirrors the loose notion of "has a value" used across the engine:
// empty strings, zero numbers, empty collections and nil are all false.
func truthy(value any) bool {
	if value == nil {
		return false
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return strings.TrimSpace(v) != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case float32:
		return v != 0
	case []any:
		return len(v) > 0
	case []string:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

func coerceNumber(value any) (float64, bool) {
	if value == nil {
		return 0, false
	}
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func coerceString(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case []string:
		return strings.Join(v, ",")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, coerceString(item))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(value)
	}
}

// Truthy exposes the engine-wide truthiness test so sibling packages (the
// progressive-profiling hide-if-known check, required-field validation) apply
// the same coercion this evaluator does.
func Truthy(value any) bool {
	return truthy(value)
}

// StringForm exposes the canonical string form of a field value. nil reads
// as the empty string.
func StringForm(value any) string {
	return coerceString(value)
}
