// Package formdef loads form definitions from JSON or YAML documents, fills
// in missing identifiers, and lints the wiring between fields, rules, and
// steps before a definition goes live.
package formdef

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formflow/pkg/model"
)

// Load reads a definition file, dispatching on extension (.json, .yaml,
// .yml) and falling back to content sniffing for anything else.
func Load(path string) (model.Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Form{}, fmt.Errorf("formdef: read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}

// Parse decodes a definition from either JSON or YAML.
func Parse(data []byte) (model.Form, error) {
	if looksLikeJSON(data) {
		return ParseJSON(data)
	}
	return ParseYAML(data)
}

// ParseJSON decodes a JSON definition.
func ParseJSON(data []byte) (model.Form, error) {
	var form model.Form
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&form); err != nil {
		return model.Form{}, fmt.Errorf("formdef: decode json: %w", err)
	}
	return form, nil
}

// ParseYAML decodes a YAML definition.
func ParseYAML(data []byte) (model.Form, error) {
	var form model.Form
	if err := yaml.Unmarshal(data, &form); err != nil {
		return model.Form{}, fmt.Errorf("formdef: decode yaml: %w", err)
	}
	return form, nil
}

// Normalize fills in identifiers the authoring surface left blank: the form
// itself, every step, and every field get a fresh uuid when their id is
// empty. Existing ids are never touched.
func Normalize(form *model.Form) {
	if form == nil {
		return
	}
	if strings.TrimSpace(form.ID) == "" {
		form.ID = uuid.NewString()
	}
	for i := range form.Fields {
		normalizeField(&form.Fields[i])
	}
	for i := range form.Steps {
		step := &form.Steps[i]
		if strings.TrimSpace(step.ID) == "" {
			step.ID = uuid.NewString()
		}
		for j := range step.Fields {
			normalizeField(&step.Fields[j])
		}
	}
}

func normalizeField(field *model.Field) {
	if strings.TrimSpace(field.ID) == "" {
		field.ID = uuid.NewString()
	}
}

func looksLikeJSON(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}
