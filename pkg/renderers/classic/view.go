package classic

import (
	"strings"

	"github.com/goliatone/go-formflow/pkg/condition"
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/visibility"
)

// buildView assembles the template context. Everything is plain maps and
// slices so the pongo2 context conversion stays trivial.
func buildView(form model.Form, options render.RenderOptions, classes ChromeClasses) map[string]any {
	opts := options.VisibilityOptions()

	var pages []map[string]any
	if len(form.Steps) > 0 {
		steps := visibility.VisibleSteps(form.Steps, options.Values, options.Contact, opts)
		pages = make([]map[string]any, 0, len(steps))
		for i, step := range steps {
			pages = append(pages, map[string]any{
				"id":     step.ID,
				"title":  step.Title,
				"index":  i,
				"fields": fieldViews(step.Fields, options),
			})
		}
	} else {
		fields := visibility.VisibleFields(form.Fields, options.Values, options.Contact, opts)
		pages = []map[string]any{{
			"id":     form.ID,
			"title":  form.Name,
			"index":  0,
			"fields": fieldViews(fields, options),
		}}
	}

	hidden := make([]map[string]any, 0)
	for _, field := range render.SortedHiddenFields(options.Hidden) {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}

	method := strings.ToUpper(strings.TrimSpace(form.Method))
	if method == "" {
		method = "POST"
	}

	view := map[string]any{
		"form": map[string]any{
			"id":       form.ID,
			"name":     form.Name,
			"endpoint": form.Endpoint,
			"method":   method,
			"tenantId": form.TenantID,
		},
		"pages":     pages,
		"hidden":    hidden,
		"multiStep": len(pages) > 1,
		"classes": map[string]any{
			"form":   classes.Form,
			"step":   classes.Step,
			"field":  classes.Field,
			"label":  classes.Label,
			"errors": classes.Errors,
			"nav":    classes.Nav,
		},
	}

	if options.Theme != nil {
		cssVars := make(map[string]any, len(options.Theme.CSSVars))
		for name, value := range options.Theme.CSSVars {
			cssVars[name] = value
		}
		view["theme"] = map[string]any{
			"name":    options.Theme.Theme,
			"variant": options.Theme.Variant,
			"cssVars": cssVars,
		}
	}

	return view
}

func fieldViews(fields []model.Field, options render.RenderOptions) []map[string]any {
	views := make([]map[string]any, 0, len(fields))
	for _, field := range fields {
		views = append(views, fieldView(field, options))
	}
	return views
}

func fieldView(field model.Field, options render.RenderOptions) map[string]any {
	var value any
	if options.Values != nil {
		value = options.Values[field.ID]
	}
	valueStr := condition.StringForm(value)

	opts := make([]map[string]any, 0, len(field.Options))
	for _, opt := range field.Options {
		opts = append(opts, map[string]any{
			"label":    opt.Label,
			"value":    opt.Value,
			"selected": optionSelected(opt.Value, value),
		})
	}

	var errors []string
	if options.Errors != nil {
		errors = options.Errors[field.ID]
	}

	return map[string]any{
		"id":          field.ID,
		"label":       field.Label,
		"kind":        string(field.Type),
		"inputType":   inputType(field.Type),
		"required":    field.Required,
		"placeholder": field.Placeholder,
		"description": sanitizeMarkup(field.Description),
		"value":       valueStr,
		"checked":     field.Type == model.FieldTypeCheckbox && condition.Truthy(value),
		"options":     opts,
		"errors":      errors,
		"hasErrors":   len(errors) > 0,
	}
}

func optionSelected(optionValue string, current any) bool {
	switch v := current.(type) {
	case nil:
		return false
	case []string:
		for _, item := range v {
			if item == optionValue {
				return true
			}
		}
		return false
	case []any:
		for _, item := range v {
			if condition.StringForm(item) == optionValue {
				return true
			}
		}
		return false
	default:
		return condition.StringForm(v) == optionValue
	}
}

func inputType(t model.FieldType) string {
	switch t {
	case model.FieldTypeEmail:
		return "email"
	case model.FieldTypePhone:
		return "tel"
	case model.FieldTypeNumber:
		return "number"
	case model.FieldTypeDate:
		return "date"
	case model.FieldTypeHidden:
		return "hidden"
	default:
		return "text"
	}
}
