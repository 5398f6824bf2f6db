// Package classic renders a form as paginated HTML: one <fieldset> per
// visible step, only visible fields inside, previous/next controls wired by
// the host page. The field set comes from the shared visibility pipeline so
// the markup always matches what the builder preview and the conversational
// runner would show.
package classic

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
	rendertemplate "github.com/goliatone/go-formflow/pkg/render/template"
	"github.com/goliatone/go-formflow/pkg/render/template/gotemplate"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	classes          ChromeClasses
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithChromeClasses overrides the semantic CSS classes on the form chrome.
func WithChromeClasses(classes ChromeClasses) Option {
	return func(cfg *config) {
		cfg.classes = cfg.classes.merge(classes)
	}
}

// Renderer implements render.Renderer for the paginated HTML surface.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	classes   ChromeClasses
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the classic renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), classes: defaultChromeClasses()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("classic renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, classes: cfg.classes}, nil
}

func (r *Renderer) Name() string {
	return "classic"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the paginated markup for the currently visible field set.
func (r *Renderer) Render(ctx context.Context, form model.Form, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("classic renderer: template renderer is nil")
	}

	view := buildView(form, options, r.classes)
	result, err := r.templates.RenderTemplate("templates/form.tmpl", view)
	if err != nil {
		return nil, fmt.Errorf("classic renderer: render template: %w", err)
	}
	return []byte(result), nil
}
