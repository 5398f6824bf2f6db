package render

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeConfig is the renderer-facing view of a resolved go-theme selection:
// merged tokens, template partial overrides, CSS custom properties derived
// from tokens, and an asset URL resolver.
type ThemeConfig struct {
	Theme    string
	Variant  string
	Partials map[string]string
	Tokens   map[string]string
	CSSVars  map[string]string
	AssetURL func(key string) string
}

// ThemeConfigFromSelection flattens a go-theme selection into a ThemeConfig,
// applying variant overrides on top of the manifest and falling back to the
// supplied partials for slots the theme does not cover.
func ThemeConfigFromSelection(selection *theme.Selection, fallbacks map[string]string) *ThemeConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest

	cfg := &ThemeConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: make(map[string]string, len(fallbacks)+len(manifest.Templates)),
		Tokens:   make(map[string]string, len(manifest.Tokens)),
	}

	for slot, partial := range fallbacks {
		cfg.Partials[slot] = partial
	}
	for slot, partial := range manifest.Templates {
		cfg.Partials[slot] = partial
	}
	for name, value := range manifest.Tokens {
		cfg.Tokens[name] = value
	}

	assets := manifest.Assets
	if variant, ok := manifest.Variants[selection.Variant]; ok {
		for slot, partial := range variant.Templates {
			cfg.Partials[slot] = partial
		}
		for name, value := range variant.Tokens {
			cfg.Tokens[name] = value
		}
		if len(variant.Assets.Files) > 0 {
			merged := theme.Assets{Prefix: assets.Prefix, Files: make(map[string]string, len(assets.Files)+len(variant.Assets.Files))}
			for key, file := range assets.Files {
				merged.Files[key] = file
			}
			for key, file := range variant.Assets.Files {
				merged.Files[key] = file
			}
			if variant.Assets.Prefix != "" {
				merged.Prefix = variant.Assets.Prefix
			}
			assets = merged
		}
	}

	cfg.CSSVars = make(map[string]string, len(cfg.Tokens))
	for name, value := range cfg.Tokens {
		cfg.CSSVars[cssVarName(name)] = value
	}

	files := assets.Files
	prefix := strings.TrimRight(assets.Prefix, "/")
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if prefix == "" {
			return file
		}
		return prefix + "/" + strings.TrimLeft(file, "/")
	}

	return cfg
}

func cssVarName(token string) string {
	if strings.HasPrefix(token, "--") {
		return token
	}
	return "--" + token
}
