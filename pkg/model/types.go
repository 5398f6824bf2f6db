package model

// FieldType enumerates the form-friendly input kinds supported by the
// renderers. The set mirrors what the hosted form builder exposes.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypePhone    FieldType = "phone"
	FieldTypeNumber   FieldType = "number"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeDate     FieldType = "date"
	FieldTypeHidden   FieldType = "hidden"
)

// Operator enumerates the comparison operators a conditional-logic rule may
// reference. Operators outside this set evaluate to false (fail-closed); see
// pkg/condition for the exact semantics of each.
type Operator string

const (
	OperatorEquals      Operator = "equals"
	OperatorNotEquals   Operator = "notEquals"
	OperatorContains    Operator = "contains"
	OperatorNotContains Operator = "notContains"
	OperatorIsEmpty     Operator = "isEmpty"
	OperatorIsNotEmpty  Operator = "isNotEmpty"
	OperatorGreaterThan Operator = "greaterThan"
	OperatorLessThan    Operator = "lessThan"
)

// LogicType selects how a rule set combines its individual rule outcomes.
type LogicType string

const (
	LogicAnd LogicType = "AND"
	LogicOr  LogicType = "OR"
)

// Rule compares another field's current value against a literal. Rules are
// flat; there are no nested rule groups.
type Rule struct {
	FieldID  string   `json:"fieldId" yaml:"fieldId"`
	Operator Operator `json:"operator" yaml:"operator"`
	Value    string   `json:"value,omitempty" yaml:"value,omitempty"`
}

// ConditionalLogic attaches show/hide behaviour to a field. A disabled block
// or an empty rule list means the field is always visible; that is the
// documented default-visible policy, not an error state.
type ConditionalLogic struct {
	Enabled   bool      `json:"enabled" yaml:"enabled"`
	Rules     []Rule    `json:"rules,omitempty" yaml:"rules,omitempty"`
	LogicType LogicType `json:"logicType,omitempty" yaml:"logicType,omitempty"`
}

// Active reports whether the block carries rules that should be evaluated.
func (c *ConditionalLogic) Active() bool {
	return c != nil && c.Enabled && len(c.Rules) > 0
}

// PriorityLast is the effective priority of a progressive field that does not
// declare one: it sorts after every explicitly ranked field.
const PriorityLast = 999

// ProgressiveProfile opts a field into progressive profiling. HideIfKnown
// drops the field when the contact record already answers it; Priority ranks
// the field when a cap limits how many progressive fields show at once
// (lower value = more important).
type ProgressiveProfile struct {
	Enabled     bool `json:"enabled" yaml:"enabled"`
	HideIfKnown bool `json:"hideIfKnown,omitempty" yaml:"hideIfKnown,omitempty"`
	Priority    int  `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// Rank returns the sort rank used by the priority cap. A zero or negative
// priority is treated as unset.
func (p *ProgressiveProfile) Rank() int {
	if p == nil || p.Priority <= 0 {
		return PriorityLast
	}
	return p.Priority
}

// Option is one choice of a select/radio/checkbox field.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Field models an individual input inside a form. Struct fields are annotated
// so renderers and the builder canvas can serialise them directly.
type Field struct {
	ID          string              `json:"id" yaml:"id"`
	Label       string              `json:"label" yaml:"label"`
	Type        FieldType           `json:"type" yaml:"type"`
	Required    bool                `json:"required,omitempty" yaml:"required,omitempty"`
	Placeholder string              `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	Default     any                 `json:"default,omitempty" yaml:"default,omitempty"`
	Options     []Option            `json:"options,omitempty" yaml:"options,omitempty"`
	Conditional *ConditionalLogic   `json:"conditionalLogic,omitempty" yaml:"conditionalLogic,omitempty"`
	Progressive *ProgressiveProfile `json:"progressive,omitempty" yaml:"progressive,omitempty"`
	Metadata    map[string]string   `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Step groups fields into one page of a multi-step form. ShowIf, when set,
// gates the whole page on a single rule.
type Step struct {
	ID     string  `json:"id" yaml:"id"`
	Title  string  `json:"title,omitempty" yaml:"title,omitempty"`
	Fields []Field `json:"fields" yaml:"fields"`
	ShowIf *Rule   `json:"showIf,omitempty" yaml:"showIf,omitempty"`
}

// Form is the top-level definition renderers consume. Single-page forms use
// Fields; paginated forms use Steps. A form fetched from the backend carries
// both its tenant scope and submission endpoint.
type Form struct {
	ID       string            `json:"id" yaml:"id"`
	TenantID string            `json:"tenantId,omitempty" yaml:"tenantId,omitempty"`
	Name     string            `json:"name,omitempty" yaml:"name,omitempty"`
	Endpoint string            `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Method   string            `json:"method,omitempty" yaml:"method,omitempty"`
	Fields   []Field           `json:"fields,omitempty" yaml:"fields,omitempty"`
	Steps    []Step            `json:"steps,omitempty" yaml:"steps,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// AllFields flattens a paginated form into a single field sequence in form
// order. Single-page forms return Fields as-is.
func (f Form) AllFields() []Field {
	if len(f.Steps) == 0 {
		return f.Fields
	}
	out := make([]Field, 0, len(f.Fields))
	out = append(out, f.Fields...)
	for _, step := range f.Steps {
		out = append(out, step.Fields...)
	}
	return out
}

// FormData maps field ids to the end user's current input. It is owned and
// mutated by the active renderer; the engine only ever reads it.
type FormData = map[string]any

// Contact is the known-visitor record returned by the backend contact lookup.
// Keys are arbitrary; nil means the visitor is anonymous.
type Contact = map[string]any
