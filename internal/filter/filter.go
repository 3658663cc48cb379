// Package filter applies free-text and structured filters over the
// in-memory call list. The combinator is stateless: predicates are
// ANDed and the input order is preserved.
package filter

import (
	"strings"

	"vapi-dashboard-tui/internal/models"
)

// Filter describes the active predicates. Empty fields match
// everything.
type Filter struct {
	Term       string // free text over summary and transcript
	Phone      string // substring of clientData["Phone"]
	Evaluation models.EvaluationStatus
}

// IsZero reports whether no predicate is active.
func (f Filter) IsZero() bool {
	return f.Term == "" && strings.TrimSpace(f.Phone) == "" && f.Evaluation == ""
}

// Match reports whether a single call passes every active predicate.
func (f Filter) Match(call models.Call) bool {
	return f.matchTerm(call) && f.matchPhone(call) && f.matchEvaluation(call)
}

// Apply returns the calls that pass every active predicate, in the
// original order.
func (f Filter) Apply(calls []models.Call) []models.Call {
	matched := make([]models.Call, 0, len(calls))
	for _, call := range calls {
		if f.Match(call) {
			matched = append(matched, call)
		}
	}
	return matched
}

func (f Filter) matchTerm(call models.Call) bool {
	term := strings.ToLower(f.Term)
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(call.Summary), term) {
		return true
	}
	for _, entry := range call.Transcription {
		if strings.Contains(strings.ToLower(entry.Text), term) {
			return true
		}
	}
	return false
}

func (f Filter) matchPhone(call models.Call) bool {
	phone := strings.ToLower(strings.TrimSpace(f.Phone))
	if phone == "" {
		return true
	}
	return strings.Contains(strings.ToLower(call.Phone()), phone)
}

func (f Filter) matchEvaluation(call models.Call) bool {
	return f.Evaluation == "" || call.Evaluation == f.Evaluation
}
