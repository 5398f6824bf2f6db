package formflow

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/visibility"
)

func facadeForm() model.Form {
	return model.Form{
		ID:       "lead",
		Endpoint: "/submit",
		Fields: []model.Field{
			{ID: "email", Label: "Email", Type: model.FieldTypeEmail, Required: true,
				Progressive: &model.ProgressiveProfile{Enabled: true, HideIfKnown: true}},
			{ID: "hasCompany", Label: "Company?", Type: model.FieldTypeRadio,
				Options: []model.Option{{Label: "Yes", Value: "yes"}, {Label: "No", Value: "no"}}},
			{ID: "company", Label: "Company", Type: model.FieldTypeText, Required: true,
				Conditional: &model.ConditionalLogic{
					Enabled:   true,
					Rules:     []model.Rule{{FieldID: "hasCompany", Operator: model.OperatorEquals, Value: "yes"}},
					LogicType: model.LogicAnd,
				}},
		},
	}
}

func TestVisibleFieldsFacade(t *testing.T) {
	t.Parallel()

	fields := VisibleFields(facadeForm(), FormData{"hasCompany": "yes"}, Contact{"email": "a@b.com"}, Options{})

	var ids []string
	for _, field := range fields {
		ids = append(ids, field.ID)
	}
	want := []string{"hasCompany", "company"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("visible ids mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateFacadeSkipsHiddenRequired(t *testing.T) {
	t.Parallel()

	result := Validate(facadeForm(), FormData{"email": "a@b.com", "hasCompany": "no"}, nil, visibility.Options{})
	if !result.Valid {
		t.Fatalf("hidden required company must not block: %v", result.Errors)
	}

	result = Validate(facadeForm(), FormData{"email": "a@b.com", "hasCompany": "yes"}, nil, visibility.Options{})
	if result.Valid {
		t.Fatal("visible required company should block")
	}
	if msg := result.Errors["company"]; msg != "Company is required" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestNewRegistryBuiltins(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	want := []string{"builder", "classic", "conversational"}
	if diff := cmp.Diff(want, registry.List()); diff != "" {
		t.Fatalf("registry contents mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderFacade(t *testing.T) {
	t.Parallel()

	out, err := Render(context.Background(), facadeForm(), "classic", render.RenderOptions{
		Values: FormData{"hasCompany": "yes"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `data-field-id="company"`) {
		t.Fatalf("expected company in markup:\n%s", out)
	}

	if _, err := Render(context.Background(), facadeForm(), "nope", render.RenderOptions{}); err == nil {
		t.Fatal("unknown renderer should error")
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	t.Parallel()

	data, err := fs.ReadFile(EmbeddedTemplates(), "templates/form.tmpl")
	if err != nil {
		t.Fatalf("read embedded template: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("embedded template is empty")
	}
}
