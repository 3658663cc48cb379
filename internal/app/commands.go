package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"vapi-dashboard-tui/internal/export"
	"vapi-dashboard-tui/internal/models"
	"vapi-dashboard-tui/internal/services"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second

	// requestTimeout bounds every Vapi API round trip issued from the UI.
	requestTimeout = 30 * time.Second
)

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// loadInitialData returns a command that loads calls and the agent config.
func loadInitialData(mgr *services.Manager) tea.Cmd {
	return tea.Batch(
		loadCallsCmd(mgr),
		loadAgentCmd(mgr),
	)
}

// loadCallsCmd returns a command that fetches the call list.
func loadCallsCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		calls, err := mgr.LoadCalls(ctx)
		return CallsLoadedMsg{Calls: calls, Err: err}
	}
}

// loadAgentCmd returns a command that fetches the agent configuration.
func loadAgentCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		agent, err := mgr.LoadAgent(ctx)
		if err != nil {
			return AgentLoadedMsg{Err: err}
		}
		return AgentLoadedMsg{Agent: &agent}
	}
}

// saveAgentCmd returns a command that pushes an edited agent configuration.
func saveAgentCmd(mgr *services.Manager, info models.AgentInfo) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		saved, err := mgr.SaveAgent(ctx, info)
		if err != nil {
			return AgentSavedMsg{Err: err}
		}
		return AgentSavedMsg{Agent: &saved}
	}
}

// loadCallReviewCmd returns a command that fetches the call detail and
// agent snapshot for a single call.
func loadCallReviewCmd(mgr *services.Manager, call models.Call, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		review, err := mgr.LoadCallReview(ctx, call)
		return CallReviewLoadedMsg{Seq: seq, Review: review, Err: err}
	}
}

// exportCallsCmd returns a command that writes an xlsx call report.
func exportCallsCmd(dir string, calls []models.Call) tea.Cmd {
	return func() tea.Msg {
		path, err := export.WriteCallReport(dir, calls)
		return ExportResultMsg{Path: path, Err: err}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationSuccess,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationError,
			Message:  message,
			Duration: LongNotificationDuration,
		}
	}
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationInfo,
			Message:  message,
			Duration: QuickNotificationDuration,
		}
	}
}

// Commands provides a public interface to the command functions for tabs.
type Commands struct {
	manager *services.Manager
}

// NewCommands creates a new Commands instance.
func NewCommands(mgr *services.Manager) *Commands {
	return &Commands{manager: mgr}
}

// Tick returns a tick command with the specified interval.
func (c *Commands) Tick(interval time.Duration) tea.Cmd {
	return tickCmd(interval)
}

// LoadCalls returns a command that fetches the call list.
func (c *Commands) LoadCalls() tea.Cmd {
	return loadCallsCmd(c.manager)
}

// LoadAgent returns a command that fetches the agent configuration.
func (c *Commands) LoadAgent() tea.Cmd {
	return loadAgentCmd(c.manager)
}

// SaveAgent returns a command that pushes an edited agent configuration.
func (c *Commands) SaveAgent(info models.AgentInfo) tea.Cmd {
	return saveAgentCmd(c.manager, info)
}

// LoadCallReview returns a command that fetches the detail for one call.
func (c *Commands) LoadCallReview(call models.Call, seq int) tea.Cmd {
	return loadCallReviewCmd(c.manager, call, seq)
}

// ExportCalls returns a command that writes an xlsx report of the given calls.
func (c *Commands) ExportCalls(calls []models.Call) tea.Cmd {
	return exportCallsCmd(c.manager.Config().ExportDir, calls)
}

// NotifySuccess returns a command that adds a success notification.
func (c *Commands) NotifySuccess(message string) tea.Cmd {
	return notifySuccessCmd(message)
}

// NotifyError returns a command that adds an error notification.
func (c *Commands) NotifyError(message string) tea.Cmd {
	return notifyErrorCmd(message)
}

// NotifyInfo returns a command that adds an info notification.
func (c *Commands) NotifyInfo(message string) tea.Cmd {
	return notifyInfoCmd(message)
}

// ClearNotification returns a command that removes a notification after a delay.
func (c *Commands) ClearNotification(id string, delay time.Duration) tea.Cmd {
	return clearNotificationCmd(id, delay)
}
