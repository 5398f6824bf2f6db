package profiling

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/model"
)

func progressiveField(id string, priority int) model.Field {
	return model.Field{
		ID:    id,
		Label: id,
		Type:  model.FieldTypeText,
		Progressive: &model.ProgressiveProfile{
			Enabled:  true,
			Priority: priority,
		},
	}
}

func fieldIDs(fields []model.Field) []string {
	ids := make([]string, 0, len(fields))
	for _, f := range fields {
		ids = append(ids, f.ID)
	}
	return ids
}

func TestApplyIdentityWithoutProgressiveFields(t *testing.T) {
	t.Parallel()

	fields := []model.Field{
		{ID: "name", Type: model.FieldTypeText},
		{ID: "email", Type: model.FieldTypeEmail},
	}

	got := Apply(fields, model.Contact{"email": "a@b.com"}, 1)
	if diff := cmp.Diff(fieldIDs(fields), fieldIDs(got)); diff != "" {
		t.Fatalf("non-progressive forms must pass through (-want +got):\n%s", diff)
	}
}

func TestApplyNilContactKeepsEverything(t *testing.T) {
	t.Parallel()

	fields := []model.Field{
		{ID: "email", Label: "Email", Type: model.FieldTypeEmail,
			Progressive: &model.ProgressiveProfile{Enabled: true, HideIfKnown: true}},
		{ID: "company", Label: "Company", Type: model.FieldTypeText},
	}

	got := Apply(fields, nil, 0)
	if diff := cmp.Diff(fieldIDs(fields), fieldIDs(got)); diff != "" {
		t.Fatalf("nil contact must keep all fields (-want +got):\n%s", diff)
	}
}

func TestApplyHidesKnownFields(t *testing.T) {
	t.Parallel()

	fields := []model.Field{
		{ID: "email", Label: "Email", Type: model.FieldTypeEmail,
			Progressive: &model.ProgressiveProfile{Enabled: true, HideIfKnown: true}},
		{ID: "company", Label: "Company", Type: model.FieldTypeText,
			Progressive: &model.ProgressiveProfile{Enabled: true, HideIfKnown: true}},
	}

	got := Apply(fields, model.Contact{"email": "a@b.com"}, 0)
	if diff := cmp.Diff([]string{"company"}, fieldIDs(got)); diff != "" {
		t.Fatalf("known email should be dropped (-want +got):\n%s", diff)
	}
}

func TestApplyLabelFallbackLookup(t *testing.T) {
	t.Parallel()

	fields := []model.Field{
		{ID: "field_17", Label: "Company", Type: model.FieldTypeText,
			Progressive: &model.ProgressiveProfile{Enabled: true, HideIfKnown: true}},
	}

	got := Apply(fields, model.Contact{"company": "Acme"}, 0)
	if len(got) != 0 {
		t.Fatalf("lower-cased label lookup should mark the field known, got %v", fieldIDs(got))
	}
}

func TestApplyFalsyContactValueStaysVisible(t *testing.T) {
	t.Parallel()

	fields := []model.Field{
		{ID: "email", Label: "Email", Type: model.FieldTypeEmail,
			Progressive: &model.ProgressiveProfile{Enabled: true, HideIfKnown: true}},
	}

	got := Apply(fields, model.Contact{"email": ""}, 0)
	if diff := cmp.Diff([]string{"email"}, fieldIDs(got)); diff != "" {
		t.Fatalf("empty contact value is not known (-want +got):\n%s", diff)
	}
}

func TestApplyPriorityCap(t *testing.T) {
	t.Parallel()

	fields := []model.Field{
		progressiveField("a", 3),
		progressiveField("b", 1),
		progressiveField("c", 4),
		progressiveField("d", 1),
		progressiveField("e", 2),
	}

	got := Apply(fields, nil, 3)
	// Two fields share priority 1; the stable sort keeps their form order.
	if diff := cmp.Diff([]string{"b", "d", "e"}, fieldIDs(got)); diff != "" {
		t.Fatalf("priority cap output (-want +got):\n%s", diff)
	}
}

func TestApplyMissingPrioritySortsLast(t *testing.T) {
	t.Parallel()

	fields := []model.Field{
		{ID: "unranked", Type: model.FieldTypeText,
			Progressive: &model.ProgressiveProfile{Enabled: true}},
		progressiveField("ranked", 5),
	}

	got := Apply(fields, nil, 1)
	if diff := cmp.Diff([]string{"ranked"}, fieldIDs(got)); diff != "" {
		t.Fatalf("unranked fields must lose to ranked ones (-want +got):\n%s", diff)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	fields := []model.Field{
		progressiveField("a", 3),
		progressiveField("b", 1),
	}
	want := fieldIDs(fields)

	Apply(fields, nil, 1)
	if diff := cmp.Diff(want, fieldIDs(fields)); diff != "" {
		t.Fatalf("input slice was reordered (-want +got):\n%s", diff)
	}
}

func TestReorderRestoresFormOrder(t *testing.T) {
	t.Parallel()

	original := []model.Field{
		progressiveField("a", 3),
		progressiveField("b", 1),
		progressiveField("c", 2),
	}

	capped := Apply(original, nil, 2) // b, c by priority
	restored := Reorder(original, capped)
	if diff := cmp.Diff([]string{"b", "c"}, fieldIDs(restored)); diff != "" {
		t.Fatalf("reorder (-want +got):\n%s", diff)
	}

	capped = Apply(original, nil, 3)
	restored = Reorder(original, capped)
	if diff := cmp.Diff([]string{"a", "b", "c"}, fieldIDs(restored)); diff != "" {
		t.Fatalf("uncapped reorder (-want +got):\n%s", diff)
	}
}
