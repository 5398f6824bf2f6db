// Package builder renders a form as the canvas document consumed by the
// drag-and-drop form builder. Every field becomes a node with a stable
// instance id and a grid placement; visibility is computed with the same
// pipeline the HTML and conversational renderers use, so the preview pane
// agrees field-for-field with what a visitor would see.
package builder

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/visibility"
)

// Document is the canvas payload: form chrome plus one node per field.
type Document struct {
	FormID   string `json:"formId"`
	TenantID string `json:"tenantId,omitempty"`
	Name     string `json:"name,omitempty"`
	Grid     Grid   `json:"grid"`
	Nodes    []Node `json:"nodes"`
}

// Grid describes the canvas layout the nodes are placed on.
type Grid struct {
	Columns int `json:"columns"`
}

// Node is a single placed field instance on the canvas.
type Node struct {
	ID       string `json:"id"`
	FieldID  string `json:"fieldId"`
	Kind     string `json:"kind"`
	Label    string `json:"label,omitempty"`
	StepID   string `json:"stepId,omitempty"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Span     int    `json:"span"`
	Widget   string `json:"widget,omitempty"`
	Required bool   `json:"required,omitempty"`
	Visible  bool   `json:"visible"`
}

// Option configures the renderer.
type Option func(*config)

type config struct {
	columns int
	newID   func() string
}

// WithColumns sets the canvas grid width. Values below one are ignored.
func WithColumns(columns int) Option {
	return func(cfg *config) {
		if columns > 0 {
			cfg.columns = columns
		}
	}
}

// WithIDGenerator replaces the node id source. Useful for deterministic
// output in tests and snapshot tooling.
func WithIDGenerator(generate func() string) Option {
	return func(cfg *config) {
		if generate != nil {
			cfg.newID = generate
		}
	}
}

// Renderer implements render.Renderer for the builder canvas surface.
type Renderer struct {
	columns int
	newID   func() string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the builder renderer applying any provided options.
func New(options ...Option) *Renderer {
	cfg := config{columns: 2, newID: uuid.NewString}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return &Renderer{columns: cfg.columns, newID: cfg.newID}
}

func (r *Renderer) Name() string {
	return "builder"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render emits the canvas document. Nodes for invisible fields stay in the
// document so the builder can show them dimmed; only Visible changes.
func (r *Renderer) Render(ctx context.Context, form model.Form, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := r.Document(form, options)
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("builder renderer: encode document: %w", err)
	}
	return payload, nil
}

// Document builds the canvas structure without serializing it.
func (r *Renderer) Document(form model.Form, options render.RenderOptions) Document {
	opts := options.VisibilityOptions()

	visible := make(map[string]bool)
	if len(form.Steps) > 0 {
		for _, step := range visibility.VisibleSteps(form.Steps, options.Values, options.Contact, opts) {
			for _, field := range step.Fields {
				visible[field.ID] = true
			}
		}
	} else {
		for _, field := range visibility.VisibleFields(form.Fields, options.Values, options.Contact, opts) {
			visible[field.ID] = true
		}
	}

	doc := Document{
		FormID:   form.ID,
		TenantID: form.TenantID,
		Name:     form.Name,
		Grid:     Grid{Columns: r.columns},
		Nodes:    []Node{},
	}

	cell := 0
	place := func(field model.Field, stepID string) {
		span := 1
		if field.Type == model.FieldTypeTextarea {
			span = r.columns
		}
		if cell%r.columns+span > r.columns {
			cell += r.columns - cell%r.columns
		}

		doc.Nodes = append(doc.Nodes, Node{
			ID:       r.newID(),
			FieldID:  field.ID,
			Kind:     string(field.Type),
			Label:    field.Label,
			StepID:   stepID,
			Row:      cell / r.columns,
			Col:      cell % r.columns,
			Span:     span,
			Widget:   field.Metadata["widget"],
			Required: field.Required,
			Visible:  visible[field.ID],
		})
		cell += span
	}

	if len(form.Steps) > 0 {
		for _, step := range form.Steps {
			for _, field := range step.Fields {
				place(field, step.ID)
			}
		}
	} else {
		for _, field := range form.Fields {
			place(field, "")
		}
	}

	return doc
}
