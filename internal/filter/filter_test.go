package filter

import (
	"testing"

	"vapi-dashboard-tui/internal/models"
)

func sampleCalls() []models.Call {
	return []models.Call{
		{
			ID:         "a",
			Summary:    "Customer asked about pricing tiers.",
			Evaluation: models.EvaluationSuccessful,
			ClientData: map[string]string{"Phone": "+15551234567"},
		},
		{
			ID:         "b",
			Summary:    "No summary generated.",
			Evaluation: models.EvaluationNoAnswer,
			ClientData: map[string]string{"Phone": "Unknown"},
			Transcription: []models.TranscriptEntry{
				{Speaker: "Agent", Text: "Hello, is anyone there?"},
			},
		},
		{
			ID:         "c",
			Summary:    "Pricing question escalated to support.",
			Evaluation: models.EvaluationFailed,
			ClientData: map[string]string{"Phone": "+15559876543"},
		},
	}
}

func ids(calls []models.Call) []string {
	out := make([]string, 0, len(calls))
	for _, c := range calls {
		out = append(out, c.ID)
	}
	return out
}

func equalIDs(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterIsZero(t *testing.T) {
	if !(Filter{}).IsZero() {
		t.Error("empty filter should be zero")
	}
	if (Filter{Term: "x"}).IsZero() {
		t.Error("filter with term is not zero")
	}
	if (Filter{Phone: "  "}).IsZero() != true {
		t.Error("whitespace-only phone is zero")
	}
	if (Filter{Evaluation: models.EvaluationFailed}).IsZero() {
		t.Error("filter with evaluation is not zero")
	}
}

func TestFilterApply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"zero filter matches all", Filter{}, []string{"a", "b", "c"}},
		{"term over summaries", Filter{Term: "pricing"}, []string{"a", "c"}},
		{"term is case-insensitive", Filter{Term: "PRICING"}, []string{"a", "c"}},
		{"term over transcript", Filter{Term: "anyone there"}, []string{"b"}},
		{"phone substring", Filter{Phone: "555123"}, []string{"a"}},
		{"phone trims whitespace", Filter{Phone: " 555123 "}, []string{"a"}},
		{"evaluation exact", Filter{Evaluation: models.EvaluationFailed}, []string{"c"}},
		{"predicates intersect", Filter{Term: "pricing", Evaluation: models.EvaluationSuccessful}, []string{"a"}},
		{"no matches", Filter{Term: "refund"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(tt.filter.Apply(sampleCalls()))
			if !equalIDs(got, tt.want) {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	calls := sampleCalls()
	got := (Filter{Term: "pricing"}).Apply(calls)

	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("order not preserved: %v", ids(got))
	}
}

func TestFilterMatchNoPhone(t *testing.T) {
	call := models.Call{ID: "x", Summary: "hello"}

	if (Filter{Phone: "555"}).Match(call) {
		t.Error("call without client data should not match a phone filter")
	}
	if !(Filter{}).Match(call) {
		t.Error("zero filter should match")
	}
}
