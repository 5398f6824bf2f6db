package classic

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
)

func testForm() model.Form {
	return model.Form{
		ID:       "lead-capture",
		TenantID: "t-42",
		Name:     "Lead Capture",
		Endpoint: "/api/forms/lead-capture/submissions",
		Method:   "post",
		Fields: []model.Field{
			{ID: "email", Label: "Email", Type: model.FieldTypeEmail, Required: true,
				Progressive: &model.ProgressiveProfile{Enabled: true, HideIfKnown: true}},
			{ID: "hasCompany", Label: "Do you have a company?", Type: model.FieldTypeRadio,
				Options: []model.Option{{Label: "Yes", Value: "yes"}, {Label: "No", Value: "no"}}},
			{ID: "company", Label: "Company", Type: model.FieldTypeText,
				Conditional: &model.ConditionalLogic{
					Enabled:   true,
					Rules:     []model.Rule{{FieldID: "hasCompany", Operator: model.OperatorEquals, Value: "yes"}},
					LogicType: model.LogicAnd,
				}},
		},
	}
}

func mustRender(t *testing.T, form model.Form, options render.RenderOptions) string {
	t.Helper()

	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), form, options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRenderOnlyVisibleFields(t *testing.T) {
	t.Parallel()

	html := mustRender(t, testForm(), render.RenderOptions{
		Values:  model.FormData{"hasCompany": "no"},
		Contact: model.Contact{"email": "a@b.com"},
	})

	if strings.Contains(html, `data-field-id="email"`) {
		t.Fatalf("known email must be profiled out:\n%s", html)
	}
	if strings.Contains(html, `data-field-id="company"`) {
		t.Fatalf("company must stay hidden while hasCompany=no:\n%s", html)
	}
	if !strings.Contains(html, `data-field-id="hasCompany"`) {
		t.Fatalf("hasCompany should render:\n%s", html)
	}
}

func TestRenderConditionalFieldAppears(t *testing.T) {
	t.Parallel()

	html := mustRender(t, testForm(), render.RenderOptions{
		Values: model.FormData{"hasCompany": "yes"},
	})

	if !strings.Contains(html, `data-field-id="company"`) {
		t.Fatalf("company should render when hasCompany=yes:\n%s", html)
	}
	if !strings.Contains(html, `type="email"`) {
		t.Fatalf("email input type expected for anonymous visitor:\n%s", html)
	}
}

func TestRenderFormChrome(t *testing.T) {
	t.Parallel()

	html := mustRender(t, testForm(), render.RenderOptions{
		Hidden: render.MergeHiddenFields(nil,
			render.TenantField("tenant_id", "t-42"),
			render.CSRFToken("_csrf", "tok"),
		),
	})

	if !strings.Contains(html, `action="/api/forms/lead-capture/submissions"`) {
		t.Fatalf("endpoint missing:\n%s", html)
	}
	if !strings.Contains(html, `method="POST"`) {
		t.Fatalf("method should be upper-cased:\n%s", html)
	}
	if !strings.Contains(html, `data-tenant-id="t-42"`) {
		t.Fatalf("tenant attribute missing:\n%s", html)
	}
	if !strings.Contains(html, `<input type="hidden" name="_csrf" value="tok">`) {
		t.Fatalf("csrf hidden input missing:\n%s", html)
	}
	if !strings.Contains(html, `<input type="hidden" name="tenant_id" value="t-42">`) {
		t.Fatalf("tenant hidden input missing:\n%s", html)
	}
}

func TestRenderMultiStep(t *testing.T) {
	t.Parallel()

	form := model.Form{
		ID:       "signup",
		Endpoint: "/submit",
		Steps: []model.Step{
			{ID: "basics", Title: "Basics", Fields: []model.Field{
				{ID: "name", Label: "Name", Type: model.FieldTypeText},
			}},
			{ID: "details", Title: "Details", Fields: []model.Field{
				{ID: "bio", Label: "Bio", Type: model.FieldTypeTextarea},
			}},
			{
				ID:     "company",
				Title:  "Company",
				Fields: []model.Field{{ID: "companyName", Label: "Company Name", Type: model.FieldTypeText}},
				ShowIf: &model.Rule{FieldID: "hasCompany", Operator: model.OperatorEquals, Value: "yes"},
			},
		},
	}

	html := mustRender(t, form, render.RenderOptions{Values: model.FormData{"hasCompany": "no"}})

	if !strings.Contains(html, `data-step-id="basics"`) || !strings.Contains(html, `data-step-id="details"`) {
		t.Fatalf("expected both unconditional steps:\n%s", html)
	}
	if strings.Contains(html, `data-step-id="company"`) {
		t.Fatalf("gated step must not render:\n%s", html)
	}
	if !strings.Contains(html, `data-nav="next"`) {
		t.Fatalf("multi-step nav missing:\n%s", html)
	}
	if !strings.Contains(html, `data-step-index="1" hidden`) {
		t.Fatalf("later steps should start hidden:\n%s", html)
	}
}

func TestRenderSanitizesDescriptions(t *testing.T) {
	t.Parallel()

	form := model.Form{
		ID:       "f",
		Endpoint: "/s",
		Fields: []model.Field{
			{ID: "email", Label: "Email", Type: model.FieldTypeEmail,
				Description: `We <strong>never</strong> share this.<script>alert(1)</script>`},
		},
	}

	html := mustRender(t, form, render.RenderOptions{})

	if !strings.Contains(html, "<strong>never</strong>") {
		t.Fatalf("inline formatting should survive sanitization:\n%s", html)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("script tags must be stripped:\n%s", html)
	}
}

func TestRenderFieldErrors(t *testing.T) {
	t.Parallel()

	html := mustRender(t, testForm(), render.RenderOptions{
		Errors: map[string][]string{"email": {"Email is required"}},
	})

	if !strings.Contains(html, "has-errors") {
		t.Fatalf("error class missing:\n%s", html)
	}
	if !strings.Contains(html, "<li>Email is required</li>") {
		t.Fatalf("error message missing:\n%s", html)
	}
}
