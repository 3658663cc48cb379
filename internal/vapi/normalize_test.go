package vapi

import (
	"encoding/json"
	"testing"
	"time"

	"vapi-dashboard-tui/internal/models"
)

func timePtr(t time.Time) *time.Time { return &t }

func floatPtr(f float64) *float64 { return &f }

func TestFormatClock(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    string
	}{
		{"zero", 0, "0:00"},
		{"seconds only", 5, "0:05"},
		{"minutes and seconds", 150, "2:30"},
		{"exact minute", 60, "1:00"},
		{"long call", 3725, "62:05"},
		{"negative clamps to zero", -3, "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatClock(tt.seconds); got != tt.want {
				t.Errorf("formatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestClassifyEvaluation(t *testing.T) {
	tests := []struct {
		name        string
		successEval string
		noAnalysis  bool
		endedReason string
		want        models.EvaluationStatus
	}{
		{name: "success eval true", successEval: "true", want: models.EvaluationSuccessful},
		{name: "success eval contains success", successEval: "Success: goal met", want: models.EvaluationSuccessful},
		{name: "success eval numeric one", successEval: "1", want: models.EvaluationSuccessful},
		{name: "customer hangup", endedReason: "customer-ended-call", want: models.EvaluationSuccessful},
		{name: "assistant hangup", endedReason: "assistant-ended-call", want: models.EvaluationSuccessful},
		{name: "pipeline error", endedReason: "pipeline-error-openai-llm-failed", want: models.EvaluationFailed},
		{name: "failed reason", endedReason: "call-failed", want: models.EvaluationFailed},
		{name: "silence timeout", endedReason: "silence-timed-out", want: models.EvaluationNoAnswer},
		{name: "no signals", want: models.EvaluationNoAnswer},
		{name: "no analysis at all", noAnalysis: true, endedReason: "customer-ended-call", want: models.EvaluationSuccessful},
		{name: "success eval beats error reason", successEval: "true", endedReason: "pipeline-error", want: models.EvaluationSuccessful},
		{name: "hangup reason beats false eval", successEval: "false", endedReason: "customer-ended-call", want: models.EvaluationSuccessful},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var analysis *analysisPayload
			if !tt.noAnalysis {
				analysis = &analysisPayload{SuccessEvaluation: flexibleString(tt.successEval)}
			}
			if got := classifyEvaluation(analysis, tt.endedReason); got != tt.want {
				t.Errorf("classifyEvaluation(%q, %q) = %q, want %q",
					tt.successEval, tt.endedReason, got, tt.want)
			}
		})
	}
}

func TestFlexibleStringShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"string", `"true"`, "true"},
		{"bool", `true`, "true"},
		{"number", `1`, "1"},
		{"float number", `0.5`, "0.5"},
		{"object degrades to empty", `{"a":1}`, ""},
		{"array degrades to empty", `[1,2]`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f flexibleString
			if err := json.Unmarshal([]byte(tt.raw), &f); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.raw, err)
			}
			if string(f) != tt.want {
				t.Errorf("got %q, want %q", f, tt.want)
			}
		})
	}
}

func TestMapCall(t *testing.T) {
	started := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

	raw := callPayload{
		ID:          "call-1",
		Type:        "webCall",
		StartedAt:   timePtr(started),
		EndedAt:     timePtr(started.Add(150 * time.Second)),
		EndedReason: "customer-ended-call",
		Cost:        floatPtr(1.25),
		Messages:    []messagePayload{{Role: "assistant"}, {Role: "user"}},
		Analysis:    &analysisPayload{Summary: "Asked about pricing."},
		Customer: &struct {
			Number string `json:"number"`
		}{Number: "+15551234567"},
	}

	call := mapCall(raw, "asst-12345678-rest")

	if call.ID != "call-1" {
		t.Errorf("ID = %q", call.ID)
	}
	if call.Date != "Mar 1, 2024, 10:00 AM" {
		t.Errorf("Date = %q", call.Date)
	}
	if call.Duration != "2:30" {
		t.Errorf("Duration = %q, want 2:30", call.Duration)
	}
	if call.Messages != 2 {
		t.Errorf("Messages = %d, want 2", call.Messages)
	}
	if call.Evaluation != models.EvaluationSuccessful {
		t.Errorf("Evaluation = %q", call.Evaluation)
	}
	if call.Summary != "Asked about pricing." {
		t.Errorf("Summary = %q", call.Summary)
	}
	if call.Cost != 1.25 {
		t.Errorf("Cost = %v", call.Cost)
	}
	if got := call.ClientData["Phone"]; got != "+15551234567" {
		t.Errorf("Phone = %q", got)
	}
	if got := call.ClientData["Source"]; got != "webCall" {
		t.Errorf("Source = %q", got)
	}
	if call.Agent != "asst-123" {
		t.Errorf("Agent = %q, want first 8 chars of assistant id", call.Agent)
	}
	if len(call.Transcription) != 0 {
		t.Errorf("Transcription should be empty at list time, got %d entries", len(call.Transcription))
	}
}

func TestMapCallDefaults(t *testing.T) {
	call := mapCall(callPayload{ID: "bare"}, "short")

	if call.Date != "N/A" {
		t.Errorf("Date = %q, want N/A", call.Date)
	}
	if call.Duration != "0:00" {
		t.Errorf("Duration = %q, want 0:00", call.Duration)
	}
	if call.Summary != "No summary generated." {
		t.Errorf("Summary = %q", call.Summary)
	}
	if call.Cost != 0 {
		t.Errorf("Cost = %v, want 0", call.Cost)
	}
	if got := call.ClientData["Phone"]; got != "Unknown" {
		t.Errorf("Phone = %q, want Unknown", got)
	}
	if got := call.ClientData["Source"]; got != "Direct" {
		t.Errorf("Source = %q, want Direct", got)
	}
	if call.Agent != "short" {
		t.Errorf("Agent = %q, short ids are kept whole", call.Agent)
	}
	if call.Evaluation != models.EvaluationNoAnswer {
		t.Errorf("Evaluation = %q, want No answer", call.Evaluation)
	}
}

func TestMapCallNegativeDuration(t *testing.T) {
	started := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

	raw := callPayload{
		ID:        "clock-skew",
		StartedAt: timePtr(started),
		EndedAt:   timePtr(started.Add(-10 * time.Second)),
	}

	if got := mapCall(raw, "a").Duration; got != "0:00" {
		t.Errorf("Duration = %q, want 0:00 for end before start", got)
	}
}

func TestMapCallAssistantNameWins(t *testing.T) {
	raw := callPayload{
		ID: "named",
		Assistant: &struct {
			Name string `json:"name"`
		}{Name: "Support Bot"},
	}

	if got := mapCall(raw, "asst-12345678").Agent; got != "Support Bot" {
		t.Errorf("Agent = %q, want Support Bot", got)
	}
}

func TestMapAssistant(t *testing.T) {
	temp := 0.3
	raw := assistantPayload{
		Name:         "Receptionist",
		FirstMessage: "Hi, how can I help?",
		Model: &modelPayload{
			Provider:    "openai",
			Model:       "gpt-4o",
			Temperature: &temp,
			Messages: []messagePayload{
				{Role: "system", Content: "You are a receptionist."},
			},
		},
		Voice: &voicePayload{VoiceID: "voice-7"},
	}

	info := mapAssistant(raw)

	if info.Name != "Receptionist" {
		t.Errorf("Name = %q", info.Name)
	}
	if info.Instructions != "You are a receptionist." {
		t.Errorf("Instructions = %q", info.Instructions)
	}
	if info.Model != "gpt-4o" {
		t.Errorf("Model = %q", info.Model)
	}
	if info.Temperature != 0.3 {
		t.Errorf("Temperature = %v", info.Temperature)
	}
	if info.VoiceID != "voice-7" {
		t.Errorf("VoiceID = %q", info.VoiceID)
	}
	if info.FirstSentence != "Hi, how can I help?" {
		t.Errorf("FirstSentence = %q", info.FirstSentence)
	}
	if info.Roleplay != "Vapi Assistant: Receptionist. Provider: openai" {
		t.Errorf("Roleplay = %q", info.Roleplay)
	}
}

func TestMapAssistantDefaults(t *testing.T) {
	info := mapAssistant(assistantPayload{})

	if info.Name != "Unnamed Assistant" {
		t.Errorf("Name = %q", info.Name)
	}
	if info.Model != "N/A" {
		t.Errorf("Model = %q", info.Model)
	}
	if info.VoiceID != "N/A" {
		t.Errorf("VoiceID = %q", info.VoiceID)
	}
	if info.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want default 0.7", info.Temperature)
	}
	if info.Roleplay != "Vapi Assistant: . Provider: Unknown" {
		t.Errorf("Roleplay = %q", info.Roleplay)
	}
}

func TestMapAssistantZeroTemperaturePreserved(t *testing.T) {
	zero := 0.0
	info := mapAssistant(assistantPayload{
		Model: &modelPayload{Temperature: &zero},
	})

	if info.Temperature != 0 {
		t.Errorf("Temperature = %v, explicit zero must not fall back to default", info.Temperature)
	}
}

func TestBuildUpdatePayload(t *testing.T) {
	info := models.AgentInfo{
		Name:          "Receptionist",
		Instructions:  "Be brief.",
		VoiceID:       "voice-7",
		Model:         "gpt-4o",
		Temperature:   0.4,
		FirstSentence: "Hello!",
	}

	payload := buildUpdatePayload(info)

	if payload.Name != "Receptionist" || payload.FirstMessage != "Hello!" {
		t.Errorf("top-level fields = %q / %q", payload.Name, payload.FirstMessage)
	}
	if payload.Model.Model != "gpt-4o" || payload.Model.Temperature != 0.4 {
		t.Errorf("model fields = %q / %v", payload.Model.Model, payload.Model.Temperature)
	}
	if payload.Voice.VoiceID != "voice-7" {
		t.Errorf("voice = %q", payload.Voice.VoiceID)
	}
	if len(payload.Model.Messages) != 1 {
		t.Fatalf("messages = %d, want 1 system message", len(payload.Model.Messages))
	}
	if msg := payload.Model.Messages[0]; msg.Role != "system" || msg.Content != "Be brief." {
		t.Errorf("system message = %+v", msg)
	}
}

func TestMergeCallDetail(t *testing.T) {
	base := mapCall(callPayload{ID: "c1"}, "a")
	base.Summary = "From list."
	base.Cost = 1.0

	raw := callDetailPayload{
		Status:      "ended",
		EndedReason: "customer-ended-call",
		Cost:        floatPtr(2.5),
		Messages: []messagePayload{
			{Role: "bot", Message: "ignored"},
		},
		Analysis: &analysisPayload{Summary: "From detail."},
		Model:    &modelPayload{Model: "gpt-4o"},
		Artifact: &struct {
			Messages []messagePayload `json:"messages"`
		}{
			Messages: []messagePayload{
				{Role: "assistant", Message: "Hello!", SecondsFromStart: 0},
				{Role: "user", Message: "Hi.", SecondsFromStart: 5.9},
			},
		},
		CostBreakdown: &costBreakdownPayload{Transport: 0.5, LLM: 1.5},
	}

	merged := mergeCallDetail(base, raw)

	if len(merged.Transcription) != 2 {
		t.Fatalf("Transcription = %d entries, want 2 from artifact", len(merged.Transcription))
	}
	if e := merged.Transcription[0]; e.Speaker != "Agent" || e.Text != "Hello!" || e.Timestamp != "0:00" {
		t.Errorf("entry 0 = %+v", e)
	}
	if e := merged.Transcription[1]; e.Speaker != "User" || e.Timestamp != "0:05" {
		t.Errorf("entry 1 = %+v", e)
	}
	if merged.Summary != "From detail." || merged.TranscriptSummary != "From detail." {
		t.Errorf("Summary = %q / %q", merged.Summary, merged.TranscriptSummary)
	}
	if merged.Cost != 2.5 {
		t.Errorf("Cost = %v, want detail cost", merged.Cost)
	}
	if merged.Status != "ended" || merged.TerminationReason != "customer-ended-call" {
		t.Errorf("Status/Reason = %q / %q", merged.Status, merged.TerminationReason)
	}
	if merged.Charges == nil || merged.Charges.Call != 0.5 || merged.Charges.LLM != 1.5 {
		t.Errorf("Charges = %+v", merged.Charges)
	}
	if merged.RAGUsage == nil || merged.RAGUsage.Count != 0 || merged.RAGUsage.Model != "gpt-4o" {
		t.Errorf("RAGUsage = %+v", merged.RAGUsage)
	}

	// The caller's copy must stay untouched.
	if len(base.Transcription) != 0 || base.Summary != "From list." || base.Cost != 1.0 {
		t.Errorf("base call mutated: %+v", base)
	}
}

func TestMergeCallDetailKeepsSummaryAndCost(t *testing.T) {
	base := mapCall(callPayload{ID: "c2"}, "a")
	base.Summary = "From list."
	base.Cost = 1.0

	merged := mergeCallDetail(base, callDetailPayload{
		Messages: []messagePayload{{Role: "user", Message: "Hi."}},
	})

	if merged.Summary != "From list." {
		t.Errorf("Summary = %q, detail without analysis must not overwrite", merged.Summary)
	}
	if merged.Cost != 1.0 {
		t.Errorf("Cost = %v, detail without cost must not overwrite", merged.Cost)
	}
	if merged.Charges == nil || merged.Charges.Call != 0 || merged.Charges.LLM != 0 {
		t.Errorf("Charges = %+v, want zeroed breakdown", merged.Charges)
	}
	if merged.RAGUsage == nil || merged.RAGUsage.Model != "N/A" {
		t.Errorf("RAGUsage = %+v", merged.RAGUsage)
	}
	if len(merged.Transcription) != 1 {
		t.Errorf("Transcription = %d entries, want fallback to messages", len(merged.Transcription))
	}
}
