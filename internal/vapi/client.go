// Package vapi talks to the Vapi REST API and maps its loosely-typed
// payloads into the application's data model. Mapping is tolerant:
// missing or malformed optional fields degrade to documented defaults,
// and only the HTTP layer ever returns an error.
package vapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"vapi-dashboard-tui/internal/logger"
	"vapi-dashboard-tui/internal/models"
)

// DefaultBaseURL is the public Vapi API endpoint.
const DefaultBaseURL = "https://api.vapi.ai"

// APIError is returned for any non-2xx response. The message is taken
// from the response body's "message" field when the body parses as
// JSON, otherwise a generic description of the status.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Client issues authenticated requests against the Vapi API. The zero
// timeout on the underlying transport is deliberate: requests are not
// retried and not deadlined beyond what the caller's context imposes.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given base URL. An empty baseURL falls
// back to DefaultBaseURL.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// do issues one authenticated request and decodes the JSON response
// into out. Out may be nil when the caller ignores the body.
func (c *Client) do(ctx context.Context, token, method, path string, payload, out any) error {
	if token == "" {
		return fmt.Errorf("api token is empty")
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", "error", err)
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiErrorFromBody(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// apiErrorFromBody extracts the error message from a failure body.
// A body that does not parse as JSON never fails the error path; the
// generic message is used instead.
func apiErrorFromBody(status int, body []byte) *APIError {
	var parsed struct {
		Message flexibleString `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return &APIError{Status: status, Message: string(parsed.Message)}
	}
	return &APIError{Status: status, Message: fmt.Sprintf("Vapi API error: %d", status)}
}

// GetAssistant fetches and normalizes the assistant configuration.
func (c *Client) GetAssistant(ctx context.Context, creds models.Credentials) (models.AgentInfo, error) {
	var raw assistantPayload
	err := c.do(ctx, creds.APIToken, http.MethodGet, "/assistant/"+creds.AssistantID, nil, &raw)
	if err != nil {
		return models.AgentInfo{}, err
	}
	return mapAssistant(raw), nil
}

// UpdateAssistant pushes the edited configuration via PATCH. The
// update is optimistic: on success the submitted info is returned as
// the new source of truth without a re-fetch, trusting the API
// accepted the payload verbatim.
func (c *Client) UpdateAssistant(ctx context.Context, creds models.Credentials, info models.AgentInfo) (models.AgentInfo, error) {
	payload := buildUpdatePayload(info)
	err := c.do(ctx, creds.APIToken, http.MethodPatch, "/assistant/"+creds.AssistantID, payload, nil)
	if err != nil {
		return models.AgentInfo{}, err
	}
	return info, nil
}

// ListCalls fetches up to limit call summaries for the assistant.
// A non-array response yields an empty list, not an error.
func (c *Client) ListCalls(ctx context.Context, creds models.Credentials, limit int) ([]models.Call, error) {
	query := url.Values{}
	query.Set("assistantId", creds.AssistantID)
	query.Set("limit", fmt.Sprintf("%d", limit))

	var body json.RawMessage
	err := c.do(ctx, creds.APIToken, http.MethodGet, "/call?"+query.Encode(), nil, &body)
	if err != nil {
		return nil, err
	}

	var raw []callPayload
	if err := json.Unmarshal(body, &raw); err != nil {
		return []models.Call{}, nil
	}

	calls := make([]models.Call, 0, len(raw))
	for i := range raw {
		calls = append(calls, mapCall(raw[i], creds.AssistantID))
	}
	return calls, nil
}

// GetCallDetail fetches the full record for one call and merges it
// with the previously fetched summary. The caller's copy is never
// mutated; the merged record is a fresh value.
func (c *Client) GetCallDetail(ctx context.Context, creds models.Credentials, call models.Call) (models.Call, error) {
	var raw callDetailPayload
	err := c.do(ctx, creds.APIToken, http.MethodGet, "/call/"+call.ID, nil, &raw)
	if err != nil {
		return models.Call{}, err
	}
	return mergeCallDetail(call, raw), nil
}
