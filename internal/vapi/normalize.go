package vapi

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"vapi-dashboard-tui/internal/models"
)

// Defaults applied when the API omits optional fields.
const (
	defaultAssistantName = "Unnamed Assistant"
	defaultTemperature   = 0.7
	defaultSummary       = "No summary generated."
	notAvailable         = "N/A"

	// displayDateLayout matches the short locale date+time format the
	// dashboard shows, e.g. "Jan 2, 2024, 3:04 PM". The metrics
	// aggregator parses this layout back when bucketing by weekday.
	displayDateLayout = "Jan 2, 2006, 3:04 PM"
)

// DisplayDateLayout is the layout used for Call.Date values.
func DisplayDateLayout() string { return displayDateLayout }

// flexibleString decodes a JSON value that may arrive as a string,
// boolean or number. The API's successEvaluation field uses all three
// shapes depending on the assistant's analysis plan.
type flexibleString string

func (f *flexibleString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexibleString(s)
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = flexibleString(fmt.Sprintf("%t", b))
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexibleString(fmt.Sprintf("%g", n))
		return nil
	}
	// Unknown shape degrades to empty, never to an error.
	*f = ""
	return nil
}

type messagePayload struct {
	Role             string  `json:"role"`
	Content          string  `json:"content"`
	Message          string  `json:"message,omitempty"`
	SecondsFromStart float64 `json:"secondsFromStart,omitempty"`
}

type modelPayload struct {
	Provider    string           `json:"provider"`
	Model       string           `json:"model"`
	Temperature *float64         `json:"temperature"`
	Messages    []messagePayload `json:"messages"`
}

type voicePayload struct {
	VoiceID string `json:"voiceId"`
}

type assistantPayload struct {
	Name         string        `json:"name"`
	FirstMessage string        `json:"firstMessage"`
	Model        *modelPayload `json:"model"`
	Voice        *voicePayload `json:"voice"`
}

type analysisPayload struct {
	Summary           string         `json:"summary"`
	SuccessEvaluation flexibleString `json:"successEvaluation"`
}

type callPayload struct {
	ID          string           `json:"id"`
	Type        string           `json:"type"`
	StartedAt   *time.Time       `json:"startedAt"`
	EndedAt     *time.Time       `json:"endedAt"`
	EndedReason string           `json:"endedReason"`
	Cost        *float64         `json:"cost"`
	Messages    []messagePayload `json:"messages"`
	Analysis    *analysisPayload `json:"analysis"`
	Assistant   *struct {
		Name string `json:"name"`
	} `json:"assistant"`
	Customer *struct {
		Number string `json:"number"`
	} `json:"customer"`
}

type costBreakdownPayload struct {
	Transport float64 `json:"transport"`
	LLM       float64 `json:"llm"`
}

type callDetailPayload struct {
	Status      string           `json:"status"`
	EndedReason string           `json:"endedReason"`
	Cost        *float64         `json:"cost"`
	Messages    []messagePayload `json:"messages"`
	Analysis    *analysisPayload `json:"analysis"`
	Model       *modelPayload    `json:"model"`
	Artifact    *struct {
		Messages []messagePayload `json:"messages"`
	} `json:"artifact"`
	CostBreakdown *costBreakdownPayload `json:"costBreakdown"`
}

// updatePayload is the inverse of the assistant mapping: instructions
// become a single system message, temperature nests under model, and
// the voice id nests under voice.
type updatePayload struct {
	Name         string             `json:"name"`
	FirstMessage string             `json:"firstMessage"`
	Model        updateModelPayload `json:"model"`
	Voice        voicePayload       `json:"voice"`
}

type updateModelPayload struct {
	Model       string           `json:"model"`
	Temperature float64          `json:"temperature"`
	Messages    []messagePayload `json:"messages"`
}

// mapAssistant normalizes a raw assistant payload into AgentInfo,
// filling the documented default for every absent field.
func mapAssistant(raw assistantPayload) models.AgentInfo {
	info := models.AgentInfo{
		Name:          raw.Name,
		VoiceID:       notAvailable,
		Model:         notAvailable,
		Temperature:   defaultTemperature,
		FirstSentence: raw.FirstMessage,
	}
	if info.Name == "" {
		info.Name = defaultAssistantName
	}

	provider := "Unknown"
	if raw.Model != nil {
		// Instructions live in the first system or assistant message
		// of the model's configured message list.
		for _, msg := range raw.Model.Messages {
			if msg.Role == "system" || msg.Role == "assistant" {
				info.Instructions = msg.Content
				break
			}
		}
		if raw.Model.Model != "" {
			info.Model = raw.Model.Model
		}
		if raw.Model.Temperature != nil {
			// Zero is a valid temperature and must be preserved;
			// only a missing value takes the default.
			info.Temperature = *raw.Model.Temperature
		}
		if raw.Model.Provider != "" {
			provider = raw.Model.Provider
		}
	}

	if raw.Voice != nil && raw.Voice.VoiceID != "" {
		info.VoiceID = raw.Voice.VoiceID
	}

	info.Roleplay = fmt.Sprintf("Vapi Assistant: %s. Provider: %s", raw.Name, provider)
	return info
}

// buildUpdatePayload converts an AgentInfo back into the PATCH body
// shape the API expects.
func buildUpdatePayload(info models.AgentInfo) updatePayload {
	return updatePayload{
		Name:         info.Name,
		FirstMessage: info.FirstSentence,
		Model: updateModelPayload{
			Model:       info.Model,
			Temperature: info.Temperature,
			Messages: []messagePayload{
				{Role: "system", Content: info.Instructions},
			},
		},
		Voice: voicePayload{VoiceID: info.VoiceID},
	}
}

// mapCall normalizes one list-endpoint item into a Call summary.
func mapCall(raw callPayload, assistantID string) models.Call {
	call := models.Call{
		ID:            raw.ID,
		Date:          notAvailable,
		Duration:      "0:00",
		Evaluation:    classifyEvaluation(raw.Analysis, raw.EndedReason),
		Summary:       defaultSummary,
		Messages:      len(raw.Messages),
		Transcription: []models.TranscriptEntry{},
		ClientData: map[string]string{
			"Phone":  "Unknown",
			"Source": "Direct",
		},
	}

	if raw.StartedAt != nil {
		call.Date = raw.StartedAt.Format(displayDateLayout)
		if raw.EndedAt != nil {
			secs := int(raw.EndedAt.Sub(*raw.StartedAt).Seconds())
			if secs < 0 {
				secs = 0
			}
			call.Duration = formatClock(secs)
		}
	}

	call.Agent = shortID(assistantID)
	if raw.Assistant != nil && raw.Assistant.Name != "" {
		call.Agent = raw.Assistant.Name
	}

	if raw.Analysis != nil && raw.Analysis.Summary != "" {
		call.Summary = raw.Analysis.Summary
	}
	if raw.Cost != nil {
		call.Cost = *raw.Cost
	}
	if raw.Customer != nil && raw.Customer.Number != "" {
		call.ClientData["Phone"] = raw.Customer.Number
	}
	if raw.Type != "" {
		call.ClientData["Source"] = raw.Type
	}

	return call
}

// classifyEvaluation derives the tri-state outcome. The rules are
// order-sensitive: a truthy success evaluation wins over everything,
// then the end reason decides between Successful and Failed, and
// anything else is NoAnswer.
func classifyEvaluation(analysis *analysisPayload, endedReason string) models.EvaluationStatus {
	successEval := ""
	if analysis != nil {
		successEval = strings.ToLower(string(analysis.SuccessEvaluation))
	}
	reason := strings.ToLower(endedReason)

	switch {
	case strings.Contains(successEval, "true"),
		strings.Contains(successEval, "success"),
		successEval == "1":
		return models.EvaluationSuccessful
	case strings.Contains(reason, "customer-ended-call"),
		strings.Contains(reason, "assistant-ended-call"):
		return models.EvaluationSuccessful
	case strings.Contains(reason, "error"),
		strings.Contains(reason, "failed"):
		return models.EvaluationFailed
	default:
		return models.EvaluationNoAnswer
	}
}

// mergeCallDetail combines a summary Call with a detail payload. The
// detail only ever adds fields; summary and cost are overwritten only
// when the detail actually provides them.
func mergeCallDetail(call models.Call, raw callDetailPayload) models.Call {
	merged := call.Clone()

	source := raw.Messages
	if raw.Artifact != nil && len(raw.Artifact.Messages) > 0 {
		source = raw.Artifact.Messages
	}

	transcript := make([]models.TranscriptEntry, 0, len(source))
	for _, msg := range source {
		speaker := "User"
		if msg.Role == "assistant" {
			speaker = "Agent"
		}
		transcript = append(transcript, models.TranscriptEntry{
			Speaker:   speaker,
			Text:      msg.Message,
			Timestamp: formatClock(int(msg.SecondsFromStart)),
		})
	}
	merged.Transcription = transcript

	if raw.Analysis != nil && raw.Analysis.Summary != "" {
		merged.Summary = raw.Analysis.Summary
		merged.TranscriptSummary = raw.Analysis.Summary
	}
	if raw.Cost != nil {
		merged.Cost = *raw.Cost
	}

	merged.Status = raw.Status
	merged.TerminationReason = raw.EndedReason

	charges := models.CallCharges{}
	if raw.CostBreakdown != nil {
		charges.Call = raw.CostBreakdown.Transport
		charges.LLM = raw.CostBreakdown.LLM
	}
	merged.Charges = &charges

	rag := models.RAGUsage{Model: notAvailable}
	if raw.Model != nil && raw.Model.Model != "" {
		rag.Model = raw.Model.Model
	}
	merged.RAGUsage = &rag

	return merged
}

// formatClock renders whole seconds as M:SS with zero-padded seconds.
func formatClock(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}

// shortID returns the first 8 characters of an assistant identifier,
// used as the display name when the API omits one.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
