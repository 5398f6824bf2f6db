// Package exprrule backs the visibility.Evaluator seam with expr-lang
// expressions. The hosted builder's advanced mode stores free-form rules like
// `plan == "pro" && contact.mrr > 500` in field metadata; this evaluator
// compiles them once and re-runs the cached program on every keystroke-driven
// pipeline pass.
package exprrule

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/visibility"
)

// Evaluator compiles and caches expr-lang programs keyed by rule source.
// Safe for concurrent use.
type Evaluator struct {
	mu       sync.RWMutex
	programs map[string]*vm.Program
}

var _ visibility.Evaluator = (*Evaluator)(nil)

// New returns an empty evaluator.
func New() *Evaluator {
	return &Evaluator{programs: make(map[string]*vm.Program)}
}

// Eval compiles rule on first sight and evaluates it against the form data.
// Form values are exposed as top-level variables; the contact record is
// available under `contact`. Unknown variables read as nil so expressions can
// reference fields the visitor has not answered yet.
func (e *Evaluator) Eval(field model.Field, rule string, ctx visibility.Context) (bool, error) {
	program, err := e.program(rule)
	if err != nil {
		return false, err
	}

	out, err := expr.Run(program, environment(ctx))
	if err != nil {
		return false, fmt.Errorf("exprrule: eval %q for field %s: %w", rule, field.ID, err)
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("exprrule: rule %q for field %s returned %T, want bool", rule, field.ID, out)
	}
	return ok, nil
}

func (e *Evaluator) program(rule string) (*vm.Program, error) {
	e.mu.RLock()
	program, ok := e.programs[rule]
	e.mu.RUnlock()
	if ok {
		return program, nil
	}

	compiled, err := expr.Compile(rule,
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("exprrule: compile %q: %w", rule, err)
	}

	e.mu.Lock()
	e.programs[rule] = compiled
	e.mu.Unlock()
	return compiled, nil
}

func environment(ctx visibility.Context) map[string]any {
	env := make(map[string]any, len(ctx.Data)+1)
	for key, value := range ctx.Data {
		env[key] = value
	}
	if ctx.Contact != nil {
		env["contact"] = map[string]any(ctx.Contact)
	} else {
		env["contact"] = map[string]any{}
	}
	return env
}
