package render

import (
	"testing"

	theme "github.com/goliatone/go-theme"
)

func TestThemeConfigFromSelection(t *testing.T) {
	t.Parallel()

	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens:  map[string]string{"brand": "#123456"},
		Templates: map[string]string{
			"forms.input": "themes/acme/input.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files:  map[string]string{"stylesheet": "theme.css"},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{"brand": "#654321"},
				Templates: map[string]string{
					"forms.checkbox": "themes/acme/dark/checkbox.tmpl",
				},
			},
		},
	}

	cfg := ThemeConfigFromSelection(&theme.Selection{
		Theme:    "acme",
		Variant:  "dark",
		Manifest: manifest,
	}, map[string]string{
		"forms.input":  "fallback/input.tmpl",
		"forms.select": "fallback/select.tmpl",
	})

	if cfg == nil {
		t.Fatalf("expected config")
	}
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("selection not carried: %+v", cfg)
	}
	if cfg.Tokens["brand"] != "#654321" {
		t.Fatalf("variant token should win, got %q", cfg.Tokens["brand"])
	}
	if cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("css var not derived, got %v", cfg.CSSVars)
	}
	if cfg.Partials["forms.input"] != "themes/acme/input.tmpl" {
		t.Fatalf("manifest partial should override fallback")
	}
	if cfg.Partials["forms.select"] != "fallback/select.tmpl" {
		t.Fatalf("fallback partial should survive")
	}
	if cfg.Partials["forms.checkbox"] != "themes/acme/dark/checkbox.tmpl" {
		t.Fatalf("variant partial should be merged")
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/themes/acme/theme.css" {
		t.Fatalf("asset url = %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("missing asset should yield empty url, got %q", got)
	}
}

func TestThemeConfigFromSelectionNil(t *testing.T) {
	t.Parallel()

	if ThemeConfigFromSelection(nil, nil) != nil {
		t.Fatalf("nil selection should yield nil config")
	}
	if ThemeConfigFromSelection(&theme.Selection{Theme: "x"}, nil) != nil {
		t.Fatalf("selection without manifest should yield nil config")
	}
}
