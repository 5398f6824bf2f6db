// Package conversational runs a form as a one-question-at-a-time session,
// the surface chatbot-style embeds use. The visible field set is recomputed
// after every answer with the same pipeline the HTML renderer uses, so a
// reply can reveal follow-up questions or retire ones the visitor no longer
// needs to see.
package conversational

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formflow/pkg/condition"
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/validation"
)

// Option configures the renderer.
type Option func(*Renderer)

// WithDriver replaces the prompt implementation. Tests use a scripted
// driver; hosts embedding the flow elsewhere can bring their own.
func WithDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// Renderer implements render.Renderer for interactive sessions.
type Renderer struct {
	driver PromptDriver
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the conversational renderer, defaulting to the survey
// terminal driver.
func New(options ...Option) *Renderer {
	r := &Renderer{driver: newSurveyDriver()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

func (r *Renderer) Name() string {
	return "conversational"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render drives the session to completion and returns the collected
// answers as JSON. Prefilled values in options.Values are treated as
// already-answered questions.
func (r *Renderer) Render(ctx context.Context, form model.Form, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("conversational: prompt driver is nil")
	}

	opts := options.VisibilityOptions()
	flow := NewFlow(form, options.Values, options.Contact, opts)

	for {
		field, ok := flow.Current()
		if !ok {
			break
		}
		value, err := r.ask(ctx, field)
		if err != nil {
			return nil, err
		}
		flow.Answer(field.ID, value)
	}

	answers := flow.Values()
	if result := validation.ValidateForm(form, answers, options.Contact, opts); !result.Valid {
		for _, msg := range result.Errors {
			_ = r.driver.Info(ctx, msg)
		}
		return nil, fmt.Errorf("conversational: session incomplete: %d required answers missing", len(result.Errors))
	}

	payload, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("conversational: encode answers: %w", err)
	}
	return payload, nil
}

// ask prompts for a single field and re-prompts until a required answer is
// acceptable.
func (r *Renderer) ask(ctx context.Context, field model.Field) (any, error) {
	label := field.Label
	if label == "" {
		label = field.ID
	}

	for {
		value, err := r.prompt(ctx, field, label)
		if err != nil {
			return nil, err
		}
		if field.Required && !hasAnswer(field, value) {
			if err := r.driver.Info(ctx, fmt.Sprintf("%s is required", label)); err != nil {
				return nil, err
			}
			continue
		}
		return value, nil
	}
}

func (r *Renderer) prompt(ctx context.Context, field model.Field, label string) (any, error) {
	switch field.Type {
	case model.FieldTypeCheckbox:
		return r.driver.Confirm(ctx, ConfirmConfig{
			Message: label,
			Default: condition.Truthy(field.Default),
			Help:    field.Description,
		})

	case model.FieldTypeSelect, model.FieldTypeRadio:
		options := make([]string, len(field.Options))
		defaultIdx := -1
		for i, opt := range field.Options {
			if opt.Label != "" {
				options[i] = opt.Label
			} else {
				options[i] = opt.Value
			}
			if field.Default != nil && opt.Value == condition.StringForm(field.Default) {
				defaultIdx = i
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      options,
			DefaultIndex: defaultIdx,
			Help:         field.Description,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(field.Options) {
			return "", nil
		}
		return field.Options[idx].Value, nil

	case model.FieldTypeTextarea:
		return r.driver.TextArea(ctx, TextAreaConfig{
			Message: label,
			Default: condition.StringForm(field.Default),
			Help:    field.Description,
		})

	case model.FieldTypeNumber:
		for {
			raw, err := r.driver.Input(ctx, InputConfig{
				Message:     label,
				Default:     condition.StringForm(field.Default),
				Help:        field.Description,
				Placeholder: field.Placeholder,
			})
			if err != nil {
				return nil, err
			}
			trimmed := strings.TrimSpace(raw)
			if trimmed == "" {
				return "", nil
			}
			parsed, err := strconv.ParseFloat(trimmed, 64)
			if err != nil {
				if err := r.driver.Info(ctx, fmt.Sprintf("%s must be a number", label)); err != nil {
					return nil, err
				}
				continue
			}
			return parsed, nil
		}

	default:
		return r.driver.Input(ctx, InputConfig{
			Message:     label,
			Default:     condition.StringForm(field.Default),
			Help:        field.Description,
			Placeholder: field.Placeholder,
		})
	}
}

func hasAnswer(field model.Field, value any) bool {
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	if field.Type == model.FieldTypeCheckbox {
		// an explicit "no" answers the question
		_, isBool := value.(bool)
		return isBool
	}
	return condition.Truthy(value)
}
