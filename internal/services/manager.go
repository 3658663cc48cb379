// Package services orchestrates the Vapi client and session state for
// the TUI.
package services

import (
	"context"
	"fmt"

	"github.com/gen2brain/beeep"

	"vapi-dashboard-tui/internal/config"
	"vapi-dashboard-tui/internal/logger"
	"vapi-dashboard-tui/internal/models"
	"vapi-dashboard-tui/internal/services/session"
	"vapi-dashboard-tui/internal/vapi"
)

// CallReview bundles the two fetches the detail view needs. Both must
// succeed before the panel renders.
type CallReview struct {
	Call  models.Call
	Agent models.AgentInfo
}

// Manager wires the session store and the API client together and is
// the single entry point the UI uses for data access.
type Manager struct {
	client  *vapi.Client
	session *session.Store
	cfg     *config.Config

	// previousFailed tracks the Failed call IDs seen on the last
	// fetch so a refresh can raise a desktop notification for new
	// ones. Commands run sequentially in the Bubble Tea loop, so no
	// lock is needed.
	previousFailed map[string]bool
}

// NewManager creates a manager from the loaded configuration.
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		client:  vapi.New(cfg.BaseURL),
		session: session.NewStore(),
		cfg:     cfg,
	}
}

// Session returns the session store.
func (m *Manager) Session() *session.Store {
	return m.session
}

// Config returns the loaded configuration.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// credentials fetches the session credentials or fails when logged out.
func (m *Manager) credentials() (models.Credentials, error) {
	creds, ok := m.session.Credentials()
	if !ok {
		return models.Credentials{}, fmt.Errorf("not logged in")
	}
	return creds, nil
}

// LoadCalls fetches the call history up to the configured limit.
func (m *Manager) LoadCalls(ctx context.Context) ([]models.Call, error) {
	creds, err := m.credentials()
	if err != nil {
		return nil, err
	}

	calls, err := m.client.ListCalls(ctx, creds, m.cfg.CallFetchLimit)
	if err != nil {
		return nil, err
	}

	m.notifyNewFailures(calls)
	return calls, nil
}

// notifyNewFailures raises one desktop notification when a refresh
// discovers Failed calls that were not in the previous fetch.
func (m *Manager) notifyNewFailures(calls []models.Call) {
	failed := make(map[string]bool)
	newFailures := 0
	for _, call := range calls {
		if call.Evaluation != models.EvaluationFailed {
			continue
		}
		failed[call.ID] = true
		if m.previousFailed != nil && !m.previousFailed[call.ID] {
			newFailures++
		}
	}

	first := m.previousFailed == nil
	m.previousFailed = failed

	if first || newFailures == 0 {
		return
	}

	title := "Vapi Dashboard"
	body := fmt.Sprintf("%d new failed call(s) since the last refresh", newFailures)
	if err := beeep.Notify(title, body, ""); err != nil {
		logger.Warn("desktop notification failed", "error", err)
	}
}

// LoadAgent fetches the assistant configuration.
func (m *Manager) LoadAgent(ctx context.Context) (models.AgentInfo, error) {
	creds, err := m.credentials()
	if err != nil {
		return models.AgentInfo{}, err
	}
	return m.client.GetAssistant(ctx, creds)
}

// SaveAgent pushes an edited configuration. The returned AgentInfo is
// the submitted copy (optimistic update, no re-fetch).
func (m *Manager) SaveAgent(ctx context.Context, info models.AgentInfo) (models.AgentInfo, error) {
	creds, err := m.credentials()
	if err != nil {
		return models.AgentInfo{}, err
	}
	return m.client.UpdateAssistant(ctx, creds, info)
}

// LoadCallReview fetches the call detail and the assistant info
// concurrently. Both fetches run to completion; the first failure to
// arrive decides the returned error and the other result is discarded.
func (m *Manager) LoadCallReview(ctx context.Context, call models.Call) (CallReview, error) {
	creds, err := m.credentials()
	if err != nil {
		return CallReview{}, err
	}

	var review CallReview
	done := make(chan error, 2)

	go func() {
		detail, err := m.client.GetCallDetail(ctx, creds, call)
		if err == nil {
			review.Call = detail
		}
		done <- err
	}()
	go func() {
		agent, err := m.client.GetAssistant(ctx, creds)
		if err == nil {
			review.Agent = agent
		}
		done <- err
	}()

	var firstErr error
	for range 2 {
		if err := <-done; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return CallReview{}, firstErr
	}
	return review, nil
}

// Logout wipes the session and all fetch-comparison state.
func (m *Manager) Logout() {
	m.session.Logout()
	m.previousFailed = nil
}
