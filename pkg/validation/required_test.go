package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/visibility"
)

func TestValidateCollectsAllViolations(t *testing.T) {
	t.Parallel()

	fields := []model.Field{
		{ID: "name", Label: "Full Name", Type: model.FieldTypeText, Required: true},
		{ID: "email", Label: "Email", Type: model.FieldTypeEmail, Required: true},
		{ID: "nickname", Label: "Nickname", Type: model.FieldTypeText},
	}

	result := ValidateVisibleFields(fields, model.FormData{}, nil, visibility.Options{})
	if result.Valid {
		t.Fatalf("expected invalid result")
	}
	want := map[string]string{
		"name":  "Full Name is required",
		"email": "Email is required",
	}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors (-want +got):\n%s", diff)
	}
}

func TestValidateWhitespaceOnlyIsMissing(t *testing.T) {
	t.Parallel()

	fields := []model.Field{
		{ID: "name", Label: "Name", Type: model.FieldTypeText, Required: true},
	}

	result := ValidateVisibleFields(fields, model.FormData{"name": "   "}, nil, visibility.Options{})
	if result.Valid {
		t.Fatalf("whitespace-only value must count as missing")
	}

	result = ValidateVisibleFields(fields, model.FormData{"name": "Ada"}, nil, visibility.Options{})
	if !result.Valid {
		t.Fatalf("present value must pass, got %v", result.Errors)
	}
}

func TestValidateHiddenRequiredFieldNeverBlocks(t *testing.T) {
	t.Parallel()

	fields := []model.Field{
		{ID: "hasPhone", Label: "Do you have a phone?", Type: model.FieldTypeRadio},
		{ID: "phone", Label: "Phone", Type: model.FieldTypePhone, Required: true,
			Conditional: &model.ConditionalLogic{
				Enabled:   true,
				Rules:     []model.Rule{{FieldID: "hasPhone", Operator: model.OperatorEquals, Value: "yes"}},
				LogicType: model.LogicAnd,
			}},
	}

	result := ValidateVisibleFields(fields, model.FormData{"hasPhone": "no"}, nil, visibility.Options{})
	if !result.Valid {
		t.Fatalf("hidden required field must not block submission: %v", result.Errors)
	}

	result = ValidateVisibleFields(fields, model.FormData{"hasPhone": "yes"}, nil, visibility.Options{})
	if result.Valid {
		t.Fatalf("visible required field must block submission")
	}
}

func TestValidateProfiledOutFieldNeverBlocks(t *testing.T) {
	t.Parallel()

	fields := []model.Field{
		{ID: "email", Label: "Email", Type: model.FieldTypeEmail, Required: true,
			Progressive: &model.ProgressiveProfile{Enabled: true, HideIfKnown: true}},
	}

	result := ValidateVisibleFields(fields, model.FormData{}, model.Contact{"email": "a@b.com"}, visibility.Options{})
	if !result.Valid {
		t.Fatalf("field hidden by profiling must not block submission: %v", result.Errors)
	}
}

func TestValidateFalsyNonStringValues(t *testing.T) {
	t.Parallel()

	fields := []model.Field{
		{ID: "consent", Label: "Consent", Type: model.FieldTypeCheckbox, Required: true},
	}

	result := ValidateVisibleFields(fields, model.FormData{"consent": false}, nil, visibility.Options{})
	if result.Valid {
		t.Fatalf("false checkbox must count as missing")
	}

	result = ValidateVisibleFields(fields, model.FormData{"consent": true}, nil, visibility.Options{})
	if !result.Valid {
		t.Fatalf("checked checkbox must pass, got %v", result.Errors)
	}
}

func TestValidateFormSkipsHiddenSteps(t *testing.T) {
	t.Parallel()

	form := model.Form{
		ID: "signup",
		Steps: []model.Step{
			{ID: "basics", Fields: []model.Field{
				{ID: "name", Label: "Name", Type: model.FieldTypeText, Required: true},
			}},
			{
				ID: "company",
				Fields: []model.Field{
					{ID: "companyName", Label: "Company Name", Type: model.FieldTypeText, Required: true},
				},
				ShowIf: &model.Rule{FieldID: "hasCompany", Operator: model.OperatorEquals, Value: "yes"},
			},
		},
	}

	result := ValidateForm(form, model.FormData{"name": "Ada", "hasCompany": "no"}, nil, visibility.Options{})
	if !result.Valid {
		t.Fatalf("hidden step fields must not block submission: %v", result.Errors)
	}

	result = ValidateForm(form, model.FormData{"name": "Ada", "hasCompany": "yes"}, nil, visibility.Options{})
	if result.Valid {
		t.Fatalf("visible step with missing required field must fail")
	}
	if _, ok := result.Errors["companyName"]; !ok {
		t.Fatalf("expected companyName error, got %v", result.Errors)
	}
}
