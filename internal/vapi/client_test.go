package vapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"vapi-dashboard-tui/internal/models"
)

func testCreds() models.Credentials {
	return models.Credentials{AssistantID: "asst-1", APIToken: "secret-token"}
}

func TestClientSendsAuthHeaders(t *testing.T) {
	var gotAuth, gotContentType string
	var gotQuery map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`[]`)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer server.Close()

	client := New(server.URL)
	calls, err := client.ListCalls(context.Background(), testCreds(), 25)
	if err != nil {
		t.Fatalf("ListCalls: %v", err)
	}

	if gotAuth != "Bearer secret-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if got := gotQuery["assistantId"]; len(got) != 1 || got[0] != "asst-1" {
		t.Errorf("assistantId query = %v", got)
	}
	if got := gotQuery["limit"]; len(got) != 1 || got[0] != "25" {
		t.Errorf("limit query = %v", got)
	}
	if len(calls) != 0 {
		t.Errorf("calls = %d, want 0", len(calls))
	}
}

func TestListCallsNonArrayBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"object body", `{"message": "unexpected shape"}`},
		{"string body", `"nothing here"`},
		{"null body", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte(tt.body)); err != nil {
					t.Errorf("write response: %v", err)
				}
			}))
			defer server.Close()

			client := New(server.URL)
			calls, err := client.ListCalls(context.Background(), testCreds(), 10)
			if err != nil {
				t.Fatalf("ListCalls: %v", err)
			}
			if len(calls) != 0 {
				t.Errorf("calls = %d, want empty list", len(calls))
			}
		})
	}
}

func TestClientEmptyTokenFailsFast(t *testing.T) {
	requested := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = true
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.ListCalls(context.Background(), models.Credentials{AssistantID: "a"}, 10)
	if err == nil {
		t.Fatal("expected error for empty token")
	}
	if requested {
		t.Error("request should not be sent without a token")
	}
}

func TestClientAPIErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantMsg  string
		wantCode int
	}{
		{
			name:     "message extracted from JSON body",
			status:   http.StatusBadRequest,
			body:     `{"message": "Invalid assistant id"}`,
			wantMsg:  "Invalid assistant id",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "array message degrades to generic",
			status:   http.StatusUnauthorized,
			body:     `{"message": ["token invalid"]}`,
			wantMsg:  "Vapi API error: 401",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "non-JSON body falls back to generic",
			status:   http.StatusInternalServerError,
			body:     "upstream blew up",
			wantMsg:  "Vapi API error: 500",
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if _, err := w.Write([]byte(tt.body)); err != nil {
					t.Errorf("write response: %v", err)
				}
			}))
			defer server.Close()

			client := New(server.URL)
			_, err := client.ListCalls(context.Background(), testCreds(), 10)
			if err == nil {
				t.Fatal("expected error")
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error type = %T, want *APIError", err)
			}
			if apiErr.Status != tt.wantCode {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.wantCode)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestGetAssistant(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/assistant/asst-1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		body := `{
			"name": "Receptionist",
			"firstMessage": "Hello!",
			"model": {
				"provider": "openai",
				"model": "gpt-4o",
				"temperature": 0.4,
				"messages": [{"role": "system", "content": "Be helpful."}]
			},
			"voice": {"voiceId": "voice-7"}
		}`
		if _, err := w.Write([]byte(body)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer server.Close()

	client := New(server.URL)
	info, err := client.GetAssistant(context.Background(), testCreds())
	if err != nil {
		t.Fatalf("GetAssistant: %v", err)
	}

	if info.Name != "Receptionist" || info.Model != "gpt-4o" || info.VoiceID != "voice-7" {
		t.Errorf("info = %+v", info)
	}
	if info.Instructions != "Be helpful." {
		t.Errorf("Instructions = %q", info.Instructions)
	}
	if info.Temperature != 0.4 {
		t.Errorf("Temperature = %v", info.Temperature)
	}
}

func TestUpdateAssistant(t *testing.T) {
	var gotMethod string
	var gotBody updatePayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if _, err := w.Write([]byte(`{}`)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer server.Close()

	info := models.AgentInfo{
		Name:          "Receptionist",
		Instructions:  "Be brief.",
		VoiceID:       "voice-7",
		Model:         "gpt-4o",
		Temperature:   0.4,
		FirstSentence: "Hello!",
	}

	client := New(server.URL)
	saved, err := client.UpdateAssistant(context.Background(), testCreds(), info)
	if err != nil {
		t.Fatalf("UpdateAssistant: %v", err)
	}

	if gotMethod != http.MethodPatch {
		t.Errorf("method = %q, want PATCH", gotMethod)
	}
	if gotBody.Name != "Receptionist" || gotBody.FirstMessage != "Hello!" {
		t.Errorf("body = %+v", gotBody)
	}
	if len(gotBody.Model.Messages) != 1 || gotBody.Model.Messages[0].Role != "system" {
		t.Errorf("instructions not wrapped as system message: %+v", gotBody.Model.Messages)
	}

	// Optimistic update returns the submitted configuration.
	if saved != info {
		t.Errorf("saved = %+v, want submitted info", saved)
	}
}

func TestGetCallDetailMergesIntoCopy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/call/call-9" {
			t.Errorf("path = %q", r.URL.Path)
		}
		body := `{
			"status": "ended",
			"endedReason": "customer-ended-call",
			"artifact": {"messages": [
				{"role": "assistant", "message": "Hi there", "secondsFromStart": 0},
				{"role": "user", "message": "Hello", "secondsFromStart": 3}
			]},
			"analysis": {"summary": "Short greeting call."},
			"costBreakdown": {"transport": 0.2, "llm": 0.3}
		}`
		if _, err := w.Write([]byte(body)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer server.Close()

	base := models.Call{
		ID:      "call-9",
		Summary: "From list.",
		ClientData: map[string]string{
			"Phone": "+15550000000", "Source": "Direct",
		},
	}

	client := New(server.URL)
	detail, err := client.GetCallDetail(context.Background(), testCreds(), base)
	if err != nil {
		t.Fatalf("GetCallDetail: %v", err)
	}

	if len(detail.Transcription) != 2 {
		t.Fatalf("Transcription = %d entries", len(detail.Transcription))
	}
	if detail.Summary != "Short greeting call." {
		t.Errorf("Summary = %q", detail.Summary)
	}
	if len(base.Transcription) != 0 {
		t.Error("input call was mutated")
	}
}
