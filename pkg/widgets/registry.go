// Package widgets resolves which builder widget should edit each field. The
// canvas uses the resolved name to pick its editing surface; explicit hints
// set by the form author always win over the built-in matchers.
package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formflow/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetToggle     = "toggle"
	WidgetSelect     = "select"
	WidgetTextarea   = "textarea"
	WidgetDatePicker = "date-picker"
	WidgetPhoneInput = "phone-input"
)

// MetadataKey is the field metadata entry carrying an explicit widget hint.
const MetadataKey = "widget"

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit hints or registered
// matchers. Higher priority wins; ties fall back to registration order. An
// empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. An explicit metadata hint is
// honoured before matcher evaluation.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if field.Metadata != nil {
		if explicit := strings.TrimSpace(field.Metadata[MetadataKey]); explicit != "" {
			return explicit, true
		}
	}
	if r == nil {
		return "", false
	}

	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate applies registry resolution to every field in the form, writing
// the chosen widget into field metadata. Existing hints are preserved.
func (r *Registry) Decorate(form *model.Form) {
	if r == nil || form == nil {
		return
	}
	for i := range form.Fields {
		r.decorateField(&form.Fields[i])
	}
	for i := range form.Steps {
		for j := range form.Steps[i].Fields {
			r.decorateField(&form.Steps[i].Fields[j])
		}
	}
}

func (r *Registry) decorateField(field *model.Field) {
	widget, ok := r.Resolve(*field)
	if !ok || widget == "" {
		return
	}
	if field.Metadata == nil {
		field.Metadata = make(map[string]string)
	}
	if field.Metadata[MetadataKey] == "" {
		field.Metadata[MetadataKey] = widget
	}
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetToggle, 90, func(field model.Field) bool {
		return field.Type == model.FieldTypeCheckbox
	})

	r.Register(WidgetSelect, 70, func(field model.Field) bool {
		if field.Type != model.FieldTypeSelect && field.Type != model.FieldTypeRadio {
			return false
		}
		return len(field.Options) > 0
	})

	r.Register(WidgetTextarea, 60, func(field model.Field) bool {
		return field.Type == model.FieldTypeTextarea
	})

	r.Register(WidgetDatePicker, 50, func(field model.Field) bool {
		return field.Type == model.FieldTypeDate
	})

	r.Register(WidgetPhoneInput, 40, func(field model.Field) bool {
		return field.Type == model.FieldTypePhone
	})
}
