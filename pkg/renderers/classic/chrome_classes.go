package classic

// ChromeClasses names the semantic CSS classes applied to the form chrome so
// tenant stylesheets can target stable hooks.
type ChromeClasses struct {
	Form   string
	Step   string
	Field  string
	Label  string
	Errors string
	Nav    string
}

func defaultChromeClasses() ChromeClasses {
	return ChromeClasses{
		Form:   "formflow-form",
		Step:   "formflow-step",
		Field:  "formflow-field",
		Label:  "formflow-label",
		Errors: "formflow-errors",
		Nav:    "formflow-nav",
	}
}

func (c ChromeClasses) merge(overrides ChromeClasses) ChromeClasses {
	if overrides.Form != "" {
		c.Form = overrides.Form
	}
	if overrides.Step != "" {
		c.Step = overrides.Step
	}
	if overrides.Field != "" {
		c.Field = overrides.Field
	}
	if overrides.Label != "" {
		c.Label = overrides.Label
	}
	if overrides.Errors != "" {
		c.Errors = overrides.Errors
	}
	if overrides.Nav != "" {
		c.Nav = overrides.Nav
	}
	return c
}
