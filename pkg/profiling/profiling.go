// Package profiling implements progressive profiling: hiding fields whose
// answer is already on the contact record and capping how many progressive
// fields appear at once, ranked by priority.
package profiling

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formflow/pkg/condition"
	"github.com/goliatone/go-formflow/pkg/model"
)

// Apply filters fields through the two progressive-profiling stages:
//
//  1. hide-if-known — fields flagged HideIfKnown are dropped when the contact
//     record already holds a truthy value for them. A nil contact keeps every
//     field: nothing can be "known" about an anonymous visitor.
//  2. priority cap — when maxFields is positive and smaller than the
//     surviving count, the survivors are stable-sorted by ascending priority
//     and the first maxFields win. Equal priorities keep their original form
//     order. Note the cap reorders output by priority; callers that need the
//     original form order back can use Reorder.
//
// Forms with no progressive fields pass through untouched. Input slices are
// never mutated; every stage returns a fresh slice.
func Apply(fields []model.Field, contact model.Contact, maxFields int) []model.Field {
	if !anyProgressive(fields) {
		return fields
	}

	visible := make([]model.Field, 0, len(fields))
	for _, field := range fields {
		if hiddenAsKnown(field, contact) {
			continue
		}
		visible = append(visible, field)
	}

	if maxFields <= 0 || maxFields >= len(visible) {
		return visible
	}

	capped := make([]model.Field, len(visible))
	copy(capped, visible)
	sort.SliceStable(capped, func(i, j int) bool {
		return capped[i].Progressive.Rank() < capped[j].Progressive.Rank()
	})
	return capped[:maxFields]
}

// KnownValue resolves the contact value answering a field, trying the field
// id first and the lower-cased label as a fallback (contact records keyed by
// display name are common in imported CRM data). The boolean reports whether
// a truthy value was found.
func KnownValue(field model.Field, contact model.Contact) (any, bool) {
	if contact == nil {
		return nil, false
	}
	if v, ok := contact[field.ID]; ok && condition.Truthy(v) {
		return v, true
	}
	if v, ok := contact[strings.ToLower(field.Label)]; ok && condition.Truthy(v) {
		return v, true
	}
	return nil, false
}

// Reorder re-sorts a capped result back into the original form order. It is
// the explicit counterpart to the priority reordering Apply performs.
func Reorder(original, selected []model.Field) []model.Field {
	if len(selected) < 2 {
		return selected
	}
	index := make(map[string]int, len(original))
	for i, field := range original {
		index[field.ID] = i
	}
	out := make([]model.Field, len(selected))
	copy(out, selected)
	sort.SliceStable(out, func(i, j int) bool {
		return index[out[i].ID] < index[out[j].ID]
	})
	return out
}

func anyProgressive(fields []model.Field) bool {
	for _, field := range fields {
		if field.Progressive != nil && field.Progressive.Enabled {
			return true
		}
	}
	return false
}

func hiddenAsKnown(field model.Field, contact model.Contact) bool {
	p := field.Progressive
	if p == nil || !p.Enabled || !p.HideIfKnown {
		return false
	}
	_, known := KnownValue(field, contact)
	return known
}
