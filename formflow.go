// Package formflow evaluates which form fields a visitor should see and
// renders the result. The decision core (conditional logic, progressive
// profiling, required-field validation) is pure and shared by every
// renderer, so the hosted page, the builder preview, and the conversational
// flow always agree on the visible field set.
package formflow

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/renderers/builder"
	"github.com/goliatone/go-formflow/pkg/renderers/classic"
	"github.com/goliatone/go-formflow/pkg/renderers/conversational"
	"github.com/goliatone/go-formflow/pkg/validation"
	"github.com/goliatone/go-formflow/pkg/visibility"
)

// Convenience aliases so callers can stay on the root package for common
// flows.
type (
	Form          = model.Form
	Field         = model.Field
	Step          = model.Step
	Rule          = model.Rule
	FormData      = model.FormData
	Contact       = model.Contact
	Options       = visibility.Options
	RenderOptions = render.RenderOptions
	Result        = validation.Result
)

// VisibleFields returns the fields a visitor should currently see, in
// display order, across both flat and multi-step forms.
func VisibleFields(form model.Form, data model.FormData, contact model.Contact, opts visibility.Options) []model.Field {
	if len(form.Steps) > 0 {
		var fields []model.Field
		for _, step := range visibility.VisibleSteps(form.Steps, data, contact, opts) {
			fields = append(fields, step.Fields...)
		}
		return fields
	}
	return visibility.VisibleFields(form.Fields, data, contact, opts)
}

// Validate checks required fields against the currently visible field set.
// Hidden fields never block submission.
func Validate(form model.Form, data model.FormData, contact model.Contact, opts visibility.Options) validation.Result {
	return validation.ValidateForm(form, data, contact, opts)
}

// NewRegistry returns a renderer registry with the built-in surfaces
// registered: classic (paginated HTML), builder (canvas JSON), and
// conversational (one question at a time).
func NewRegistry() (*render.Registry, error) {
	registry := render.NewRegistry()

	classicRenderer, err := classic.New()
	if err != nil {
		return nil, fmt.Errorf("formflow: build classic renderer: %w", err)
	}
	registry.MustRegister(classicRenderer)
	registry.MustRegister(builder.New())
	registry.MustRegister(conversational.New())

	return registry, nil
}

// Render evaluates visibility and renders the form with the named built-in
// renderer.
func Render(ctx context.Context, form model.Form, rendererName string, options render.RenderOptions) ([]byte, error) {
	registry, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	renderer, err := registry.Get(rendererName)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, form, options)
}

// EmbeddedTemplates exposes the built-in classic templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return classic.TemplatesFS()
}
