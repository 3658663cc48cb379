package app

import (
	"testing"
	"time"

	"vapi-dashboard-tui/internal/models"
)

func TestStateInitialLoading(t *testing.T) {
	state := NewState()

	if !state.IsInitialLoading() {
		t.Error("new state should report initial loading")
	}
	if !state.AnyLoading() {
		t.Error("AnyLoading should be true initially")
	}

	state.SetLoading("initial", false)

	if state.IsInitialLoading() || state.AnyLoading() {
		t.Error("loading flags should clear")
	}
}

func TestStateCalls(t *testing.T) {
	state := NewState()

	state.SetCallsError("boom")
	if state.CallsError() != "boom" {
		t.Errorf("CallsError = %q", state.CallsError())
	}

	calls := []models.Call{{ID: "a"}, {ID: "b"}}
	state.SetCalls(calls)

	if state.GetCallCount() != 2 {
		t.Errorf("GetCallCount = %d", state.GetCallCount())
	}
	if state.CallsError() != "" {
		t.Error("a successful load should clear the error")
	}
	if state.GetLastUpdated().IsZero() {
		t.Error("SetCalls should stamp LastUpdated")
	}

	// Readers get a copy, not the backing slice.
	got := state.GetCalls()
	got[0].ID = "mutated"
	if state.GetCalls()[0].ID != "a" {
		t.Error("GetCalls returned aliased slice")
	}
}

func TestStateAgent(t *testing.T) {
	state := NewState()

	if state.GetAgent() != nil {
		t.Error("agent should be nil before load")
	}

	state.SetAgentError("nope")
	state.SetAgent(&models.AgentInfo{Name: "Receptionist"})

	if state.AgentError() != "" {
		t.Error("SetAgent should clear the error")
	}
	if got := state.GetAgent(); got == nil || got.Name != "Receptionist" {
		t.Errorf("GetAgent = %+v", got)
	}
}

func TestStateReset(t *testing.T) {
	state := NewState()
	state.SetCalls([]models.Call{{ID: "a"}})
	state.SetAgent(&models.AgentInfo{Name: "X"})
	state.AddNotification(NotificationInfo, "hi", time.Minute)
	state.SetLoading("initial", false)

	state.Reset()

	if state.GetCallCount() != 0 {
		t.Error("calls should be cleared")
	}
	if state.GetAgent() != nil {
		t.Error("agent should be cleared")
	}
	if len(state.GetNotifications()) != 0 {
		t.Error("notifications should be cleared")
	}
	if !state.IsInitialLoading() {
		t.Error("reset returns to the initial loading state")
	}
}

func TestNotificationLifecycle(t *testing.T) {
	state := NewState()

	id := state.AddNotification(NotificationSuccess, "saved", time.Minute)
	if id == "" {
		t.Fatal("AddNotification returned empty id")
	}

	notifications := state.GetNotifications()
	if len(notifications) != 1 || notifications[0].Message != "saved" {
		t.Fatalf("notifications = %+v", notifications)
	}

	state.RemoveNotification(id)
	if len(state.GetNotifications()) != 0 {
		t.Error("notification not removed")
	}
}

func TestNotificationExpiry(t *testing.T) {
	state := NewState()

	state.AddNotification(NotificationInfo, "short-lived", time.Nanosecond)
	time.Sleep(5 * time.Millisecond)

	if got := state.GetNotifications(); len(got) != 0 {
		t.Errorf("expired notification still visible: %+v", got)
	}
}

func TestNotificationCap(t *testing.T) {
	state := NewState()

	for i := 0; i < maxNotifications+5; i++ {
		state.AddNotification(NotificationInfo, "n", time.Minute)
	}

	if got := len(state.GetNotifications()); got != maxNotifications {
		t.Errorf("notifications = %d, want capped at %d", got, maxNotifications)
	}
}

func TestLoadingNotification(t *testing.T) {
	state := NewState()

	state.SetLoadingNotification("Loading...")
	state.SetLoadingNotification("Still loading...")

	notifications := state.GetNotifications()
	if len(notifications) != 1 {
		t.Fatalf("notifications = %d, loading entry must be unique", len(notifications))
	}
	if notifications[0].Message != "Still loading..." {
		t.Errorf("message = %q", notifications[0].Message)
	}
	if notifications[0].Type != NotificationLoading {
		t.Errorf("type = %v", notifications[0].Type)
	}

	state.ClearLoadingNotification()
	if len(state.GetNotifications()) != 0 {
		t.Error("loading notification not cleared")
	}
}

func TestNotificationTypeString(t *testing.T) {
	tests := []struct {
		typ  NotificationType
		want string
	}{
		{NotificationSuccess, "success"},
		{NotificationError, "error"},
		{NotificationWarning, "warning"},
		{NotificationInfo, "info"},
		{NotificationType(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
