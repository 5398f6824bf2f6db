// Package openapi imports CRM object schemas into form field definitions.
// Marketers point the builder at an OpenAPI document describing an object
// (contact, deal, ticket) and get a starting field set instead of building
// the form from scratch.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formflow/pkg/model"
)

// textareaThreshold is the string length above which a property becomes a
// multi-line input.
const textareaThreshold = 255

// Option configures the importer.
type Option func(*Importer)

// WithExternalRefs allows the loader to chase refs outside the document.
func WithExternalRefs(allowed bool) Option {
	return func(i *Importer) {
		i.externalRefs = allowed
	}
}

// Importer turns OpenAPI component schemas into field definitions.
type Importer struct {
	externalRefs bool
}

// New constructs an Importer applying any provided options.
func New(options ...Option) *Importer {
	importer := &Importer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(importer)
	}
	return importer
}

// ImportComponent extracts the named component schema from an OpenAPI
// document and maps its scalar properties to form fields. Object and array
// properties are skipped; forms collect flat values.
func (i *Importer) ImportComponent(ctx context.Context, data []byte, component string) ([]model.Field, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: i.externalRefs,
	}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, errors.New("openapi: document has no component schemas")
	}

	ref, ok := spec.Components.Schemas[component]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("openapi: component schema %q not found", component)
	}

	return fieldsFromSchema(ref.Value), nil
}

// ImportForm wraps ImportComponent into a ready-to-edit form definition.
func (i *Importer) ImportForm(ctx context.Context, data []byte, component string) (model.Form, error) {
	fields, err := i.ImportComponent(ctx, data, component)
	if err != nil {
		return model.Form{}, err
	}
	return model.Form{
		ID:     strings.ToLower(component),
		Name:   component,
		Fields: fields,
	}, nil
}

func fieldsFromSchema(schema *openapi3.Schema) []model.Field {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]model.Field, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		property := ref.Value
		if property.ReadOnly {
			continue
		}
		kind, ok := fieldType(property)
		if !ok {
			continue
		}

		field := model.Field{
			ID:          name,
			Label:       labelFor(name, property),
			Type:        kind,
			Required:    required[name],
			Description: property.Description,
			Default:     property.Default,
		}
		for _, value := range property.Enum {
			literal := fmt.Sprint(value)
			field.Options = append(field.Options, model.Option{Label: literal, Value: literal})
		}
		fields = append(fields, field)
	}
	return fields
}

func fieldType(property *openapi3.Schema) (model.FieldType, bool) {
	switch firstType(property.Type) {
	case "boolean":
		return model.FieldTypeCheckbox, true
	case "integer", "number":
		return model.FieldTypeNumber, true
	case "string":
		if len(property.Enum) > 0 {
			return model.FieldTypeSelect, true
		}
		switch property.Format {
		case "email":
			return model.FieldTypeEmail, true
		case "date", "date-time":
			return model.FieldTypeDate, true
		case "phone", "tel":
			return model.FieldTypePhone, true
		}
		if property.MaxLength != nil && *property.MaxLength > textareaThreshold {
			return model.FieldTypeTextarea, true
		}
		return model.FieldTypeText, true
	default:
		// objects and arrays have no flat-form equivalent
		return "", false
	}
}

func firstType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	if slice := types.Slice(); len(slice) > 0 {
		return slice[0]
	}
	return ""
}

// labelFor prefers the schema title and otherwise derives a label from the
// property name: snake_case and camelCase both become spaced words.
func labelFor(name string, property *openapi3.Schema) string {
	if property.Title != "" {
		return property.Title
	}

	var words []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case r >= 'A' && r <= 'Z':
			flush()
			current.WriteRune(r + ('a' - 'A'))
		default:
			current.WriteRune(r)
		}
	}
	flush()

	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
