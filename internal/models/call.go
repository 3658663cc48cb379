// Package models defines data structures and domain types.
package models

import "maps"

// EvaluationStatus is the tri-state outcome classification for a call,
// derived heuristically from call metadata at the normalizer boundary.
type EvaluationStatus string

const (
	// EvaluationSuccessful marks a call that completed normally.
	EvaluationSuccessful EvaluationStatus = "Successful"
	// EvaluationNoAnswer marks a call with no conclusive outcome.
	EvaluationNoAnswer EvaluationStatus = "No answer"
	// EvaluationFailed marks a call that ended in an error.
	EvaluationFailed EvaluationStatus = "Failed"
)

// String returns the display label for the status.
func (e EvaluationStatus) String() string {
	return string(e)
}

// AllEvaluationStatuses returns every status in display order.
// Used by the calls tab to cycle the evaluation filter.
func AllEvaluationStatuses() []EvaluationStatus {
	return []EvaluationStatus{
		EvaluationSuccessful,
		EvaluationNoAnswer,
		EvaluationFailed,
	}
}

// TranscriptEntry is one turn of a call transcript.
type TranscriptEntry struct {
	Speaker   string // "Agent" or "User"
	Text      string
	Timestamp string // M:SS offset from call start
}

// CallCharges is the cost breakdown for a call.
type CallCharges struct {
	Call float64 // transport / call-connection component
	LLM  float64
}

// RAGUsage describes retrieval usage during a call. The Vapi API does
// not expose a retrieval count, so Count is always zero today.
type RAGUsage struct {
	Count int
	Model string
}

// Call is the summary record for one conversation. Every field above
// Transcription is populated from the list endpoint alone; the
// remaining fields are filled in by a detail fetch, which only ever
// adds information (summary and cost may be refined by detail data).
type Call struct {
	ID         string
	Date       string // formatted display timestamp, "N/A" when unknown
	Agent      string
	Duration   string // M:SS derived from start/end timestamps
	Messages   int    // turn count
	Evaluation EvaluationStatus
	Summary    string
	Cost       float64
	// Transcription stays empty until a detail fetch; this is the
	// lazy-loading contract of the list endpoint, not an omission.
	Transcription []TranscriptEntry
	ClientData    map[string]string

	// Detail-only fields.
	Status            string
	TerminationReason string
	TranscriptSummary string
	Charges           *CallCharges
	RAGUsage          *RAGUsage
}

// Clone returns a value copy of the call, including its transcript and
// client data, so detail views never alias the list's cached copy.
func (c *Call) Clone() Call {
	clone := *c

	if c.Transcription != nil {
		clone.Transcription = make([]TranscriptEntry, len(c.Transcription))
		copy(clone.Transcription, c.Transcription)
	}

	if c.ClientData != nil {
		clone.ClientData = make(map[string]string, len(c.ClientData))
		maps.Copy(clone.ClientData, c.ClientData)
	}

	if c.Charges != nil {
		charges := *c.Charges
		clone.Charges = &charges
	}

	if c.RAGUsage != nil {
		rag := *c.RAGUsage
		clone.RAGUsage = &rag
	}

	return clone
}

// Phone returns the customer number from client data, or an empty
// string when the call has none.
func (c *Call) Phone() string {
	if c.ClientData == nil {
		return ""
	}
	return c.ClientData["Phone"]
}
