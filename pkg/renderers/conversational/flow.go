package conversational

import (
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/visibility"
)

// Flow is the session state machine behind the conversational surface. It
// asks one question at a time and recomputes the visible field set after
// every answer, so a reply can reveal or retire questions mid-session.
//
// Answers are kept even when a later reply hides the field they belong to;
// rule evaluation always reads the raw answer map.
type Flow struct {
	form    model.Form
	contact model.Contact
	opts    visibility.Options
	answers model.FormData
	history []string
}

// NewFlow starts a session. Seed values (prefills, resumed sessions) count
// as answered questions.
func NewFlow(form model.Form, seed model.FormData, contact model.Contact, opts visibility.Options) *Flow {
	answers := make(model.FormData, len(seed))
	history := make([]string, 0, len(seed))
	for _, field := range form.AllFields() {
		if value, ok := seed[field.ID]; ok {
			answers[field.ID] = value
			history = append(history, field.ID)
		}
	}
	return &Flow{
		form:    form,
		contact: contact,
		opts:    opts,
		answers: answers,
		history: history,
	}
}

// visible returns the current visible field set in form order.
func (f *Flow) visible() []model.Field {
	if len(f.form.Steps) > 0 {
		var fields []model.Field
		for _, step := range visibility.VisibleSteps(f.form.Steps, f.answers, f.contact, f.opts) {
			fields = append(fields, step.Fields...)
		}
		return fields
	}
	return visibility.VisibleFields(f.form.Fields, f.answers, f.contact, f.opts)
}

// Current returns the next unanswered visible field, or false when the
// session is complete.
func (f *Flow) Current() (model.Field, bool) {
	for _, field := range f.visible() {
		if _, answered := f.answers[field.ID]; !answered {
			return field, true
		}
	}
	return model.Field{}, false
}

// Answer records a reply for the current question and advances.
func (f *Flow) Answer(fieldID string, value any) {
	if _, seen := f.answers[fieldID]; !seen {
		f.history = append(f.history, fieldID)
	}
	f.answers[fieldID] = value
}

// Back forgets the most recent answer so the previous question is asked
// again. Returns false at the start of the session.
func (f *Flow) Back() bool {
	if len(f.history) == 0 {
		return false
	}
	last := f.history[len(f.history)-1]
	f.history = f.history[:len(f.history)-1]
	delete(f.answers, last)
	return true
}

// Done reports whether every visible question has an answer.
func (f *Flow) Done() bool {
	_, more := f.Current()
	return !more
}

// Progress reports answered visible questions against the current total.
// Both numbers can move as answers change the visible set.
func (f *Flow) Progress() (answered, total int) {
	fields := f.visible()
	for _, field := range fields {
		if _, ok := f.answers[field.ID]; ok {
			answered++
		}
	}
	return answered, len(fields)
}

// Values returns a copy of the collected answers.
func (f *Flow) Values() model.FormData {
	out := make(model.FormData, len(f.answers))
	for k, v := range f.answers {
		out[k] = v
	}
	return out
}
