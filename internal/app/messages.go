package app

import (
	"time"

	"vapi-dashboard-tui/internal/models"
	"vapi-dashboard-tui/internal/services"
)

// TickMsg is sent periodically to expire notifications.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// SessionStartedMsg signals that credentials were accepted and a
// session is now active.
type SessionStartedMsg struct {
	Credentials models.Credentials
}

// LoggedOutMsg signals that the session was closed.
type LoggedOutMsg struct{}

// CallsLoadedMsg carries the result of a call list fetch.
type CallsLoadedMsg struct {
	Calls []models.Call
	Err   error
}

// AgentLoadedMsg carries the result of an agent configuration fetch.
type AgentLoadedMsg struct {
	Agent *models.AgentInfo
	Err   error
}

// AgentSavedMsg carries the result of an agent configuration update.
type AgentSavedMsg struct {
	Agent *models.AgentInfo
	Err   error
}

// CallReviewLoadedMsg carries the result of a call detail fetch. Seq
// identifies the request so stale responses can be discarded.
type CallReviewLoadedMsg struct {
	Seq    int
	Review services.CallReview
	Err    error
}

// ExportResultMsg carries the result of a call report export.
type ExportResultMsg struct {
	Path string
	Err  error
}

// RefreshMsg requests a refresh of data.
type RefreshMsg struct {
	Resource string // "all", "calls", "agent"
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}
