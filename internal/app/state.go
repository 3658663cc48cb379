// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"vapi-dashboard-tui/internal/models"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"

	maxNotifications = 10
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// LoadingState tracks loading states for different resources.
type LoadingState struct {
	Initial bool
	Calls   bool
	Agent   bool
}

// State is the shared application state read by every tab.
type State struct {
	mu sync.RWMutex

	calls []models.Call
	agent *models.AgentInfo

	// Last fetch error per resource, empty when the fetch succeeded.
	callsErr string
	agentErr string

	Loading LoadingState

	lastUpdated time.Time

	notifications []Notification
}

// NewState creates an empty application state.
func NewState() *State {
	return &State{
		calls:         make([]models.Call, 0),
		notifications: make([]Notification, 0),
		Loading: LoadingState{
			Initial: true,
		},
	}
}

// SetLoading sets the loading state for a specific resource.
func (s *State) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch resource {
	case "initial":
		s.Loading.Initial = loading
	case "calls":
		s.Loading.Calls = loading
	case "agent":
		s.Loading.Agent = loading
	}
}

// AnyLoading returns true if any resource is currently loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.Loading.Initial || s.Loading.Calls || s.Loading.Agent
}

// IsInitialLoading returns true if initial data is still loading.
func (s *State) IsInitialLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Initial
}

// SetCalls replaces the call list after a successful fetch.
func (s *State) SetCalls(calls []models.Call) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = calls
	s.callsErr = ""
	s.lastUpdated = time.Now()
}

// GetCalls returns a copy of the call list.
func (s *State) GetCalls() []models.Call {
	s.mu.RLock()
	defer s.mu.RUnlock()

	calls := make([]models.Call, len(s.calls))
	copy(calls, s.calls)
	return calls
}

// GetCallCount returns the number of loaded calls.
func (s *State) GetCallCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.calls)
}

// SetCallsError records a failed call fetch.
func (s *State) SetCallsError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callsErr = msg
}

// CallsError returns the last call fetch error, or "" when the fetch succeeded.
func (s *State) CallsError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.callsErr
}

// SetAgent replaces the agent configuration.
func (s *State) SetAgent(agent *models.AgentInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agent = agent
	s.agentErr = ""
}

// GetAgent returns the current agent configuration, nil before the first load.
func (s *State) GetAgent() *models.AgentInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.agent
}

// SetAgentError records a failed agent fetch or save.
func (s *State) SetAgentError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agentErr = msg
}

// AgentError returns the last agent error, or "" when the operation succeeded.
func (s *State) AgentError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.agentErr
}

// Reset clears all loaded data, used on logout.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = make([]models.Call, 0)
	s.agent = nil
	s.callsErr = ""
	s.agentErr = ""
	s.lastUpdated = time.Time{}
	s.notifications = make([]Notification, 0)
	s.Loading = LoadingState{Initial: true}
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// GetLastUpdated returns the last time call data was refreshed.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

// TimeSinceUpdate returns the duration since the last refresh.
func (s *State) TimeSinceUpdate() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastUpdated.IsZero() {
		return 0
	}
	return time.Since(s.lastUpdated)
}
