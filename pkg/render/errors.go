package render

import (
	"strings"

	"github.com/goliatone/go-formflow/pkg/model"
)

// ErrorMapping splits a backend error payload into field-level and
// form-level messages keyed by the field ids used throughout the pipeline.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MapErrorPayload normalises a server error payload into field ids renderers
// can consume. Keys are matched against field ids first, then against
// lower-cased labels, mirroring the contact lookup fallback used by
// progressive profiling. Unmatched keys become form-level errors so messages
// are never lost.
func MapErrorPayload(form model.Form, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	if len(payload) == 0 {
		return mapping
	}

	byID := make(map[string]string)
	byLabel := make(map[string]string)
	for _, field := range form.AllFields() {
		byID[field.ID] = field.ID
		if label := strings.ToLower(strings.TrimSpace(field.Label)); label != "" {
			byLabel[label] = field.ID
		}
	}

	for rawKey, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}

		key := strings.TrimSpace(rawKey)
		if isFormLevelKey(key) {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		if id, ok := byID[key]; ok {
			mapping.Fields[id] = append(mapping.Fields[id], normalized...)
			continue
		}
		if id, ok := byLabel[strings.ToLower(key)]; ok {
			mapping.Fields[id] = append(mapping.Fields[id], normalized...)
			continue
		}
		mapping.Form = append(mapping.Form, normalized...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// MergeFormErrors concatenates and normalises form-level error slices,
// trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
