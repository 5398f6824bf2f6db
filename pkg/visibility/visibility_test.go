package visibility

import (
	"testing"

	"github.com/goliatone/go-formflow/pkg/model"
)

func conditionalField(id string, logic *model.ConditionalLogic) model.Field {
	return model.Field{ID: id, Label: id, Type: model.FieldTypeText, Conditional: logic}
}

func TestShouldShowFieldDefaultVisible(t *testing.T) {
	t.Parallel()

	data := model.FormData{"other": "whatever"}

	if !ShouldShowField(conditionalField("plain", nil), data) {
		t.Fatalf("field without logic must be visible")
	}
	if !ShouldShowField(conditionalField("disabled", &model.ConditionalLogic{
		Enabled:   false,
		Rules:     []model.Rule{{FieldID: "other", Operator: model.OperatorEquals, Value: "nope"}},
		LogicType: model.LogicAnd,
	}), data) {
		t.Fatalf("disabled logic must be visible regardless of rules")
	}
	if !ShouldShowField(conditionalField("empty", &model.ConditionalLogic{
		Enabled:   true,
		LogicType: model.LogicAnd,
	}), data) {
		t.Fatalf("enabled logic with no rules must be visible")
	}
}

func TestShouldShowFieldAnd(t *testing.T) {
	t.Parallel()

	field := conditionalField("company", &model.ConditionalLogic{
		Enabled: true,
		Rules: []model.Rule{
			{FieldID: "hasCompany", Operator: model.OperatorEquals, Value: "yes"},
			{FieldID: "employees", Operator: model.OperatorGreaterThan, Value: "10"},
		},
		LogicType: model.LogicAnd,
	})

	if !ShouldShowField(field, model.FormData{"hasCompany": "yes", "employees": "50"}) {
		t.Fatalf("all rules true should show the field")
	}
	if ShouldShowField(field, model.FormData{"hasCompany": "no", "employees": "50"}) {
		t.Fatalf("flipping one AND rule must hide the field")
	}
	if ShouldShowField(field, model.FormData{"hasCompany": "yes", "employees": "3"}) {
		t.Fatalf("flipping the other AND rule must hide the field")
	}
}

func TestShouldShowFieldOr(t *testing.T) {
	t.Parallel()

	field := conditionalField("discount", &model.ConditionalLogic{
		Enabled: true,
		Rules: []model.Rule{
			{FieldID: "plan", Operator: model.OperatorEquals, Value: "pro"},
			{FieldID: "coupon", Operator: model.OperatorIsNotEmpty},
		},
		LogicType: model.LogicOr,
	})

	if !ShouldShowField(field, model.FormData{"plan": "pro"}) {
		t.Fatalf("one true OR rule should show the field")
	}
	if !ShouldShowField(field, model.FormData{"plan": "free", "coupon": "SAVE10"}) {
		t.Fatalf("other true OR rule should show the field")
	}
	if ShouldShowField(field, model.FormData{"plan": "free"}) {
		t.Fatalf("all OR rules false must hide the field")
	}
}

func TestShouldShowFieldDefaultsToAnd(t *testing.T) {
	t.Parallel()

	field := conditionalField("vat", &model.ConditionalLogic{
		Enabled: true,
		Rules: []model.Rule{
			{FieldID: "country", Operator: model.OperatorEquals, Value: "de"},
			{FieldID: "business", Operator: model.OperatorEquals, Value: "yes"},
		},
	})

	if ShouldShowField(field, model.FormData{"country": "de", "business": "no"}) {
		t.Fatalf("missing logicType must combine with AND")
	}
}

func TestShouldShowFieldReferencesHiddenFieldRawValue(t *testing.T) {
	t.Parallel()

	// Rules read raw form data, not computed visibility: a rule referencing
	// a hidden field sees whatever value that field last held.
	field := conditionalField("followup", &model.ConditionalLogic{
		Enabled:   true,
		Rules:     []model.Rule{{FieldID: "hiddenTopic", Operator: model.OperatorIsEmpty}},
		LogicType: model.LogicAnd,
	})

	if !ShouldShowField(field, model.FormData{}) {
		t.Fatalf("missing referenced value reads as empty")
	}
	if ShouldShowField(field, model.FormData{"hiddenTopic": "stale answer"}) {
		t.Fatalf("stale value of a hidden field still drives the rule")
	}
}

func TestShouldShowStep(t *testing.T) {
	t.Parallel()

	step := model.Step{
		ID:     "company-details",
		Fields: []model.Field{{ID: "company", Type: model.FieldTypeText}},
		ShowIf: &model.Rule{FieldID: "hasCompany", Operator: model.OperatorEquals, Value: "yes"},
	}

	if !ShouldShowStep(step, model.FormData{"hasCompany": "yes"}) {
		t.Fatalf("matching showIf should show the step")
	}
	if ShouldShowStep(step, model.FormData{"hasCompany": "no"}) {
		t.Fatalf("non-matching showIf must hide the step")
	}
	if !ShouldShowStep(model.Step{ID: "always"}, nil) {
		t.Fatalf("step without showIf is always visible")
	}
}
