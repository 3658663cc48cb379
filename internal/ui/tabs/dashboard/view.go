package dashboard

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"vapi-dashboard-tui/internal/metrics"
	"vapi-dashboard-tui/internal/models"
	"vapi-dashboard-tui/internal/ui/components"
	"vapi-dashboard-tui/internal/ui/styles"
)

const latestCallCount = 5

// View renders the dashboard tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	if errMsg := m.state.CallsError(); errMsg != "" && m.state.GetCallCount() == 0 {
		return m.renderError(errMsg)
	}

	calls := m.state.GetCalls()
	summary := metrics.Summarize(calls)

	var sections []string
	sections = append(sections, m.renderTitle(summary))
	sections = append(sections, m.renderKPIs(summary))
	sections = append(sections, m.renderCharts(calls, summary))
	sections = append(sections, m.renderLatestCalls(calls))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderError(errMsg string) string {
	cardWidth := max(m.width-6, 40)

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render("Unable to load calls"),
		styles.ErrorTextStyle.Render(errMsg),
		"",
		styles.HelpStyle.Render("Press 'r' to retry"),
	)

	return styles.DocStyle.Render(styles.CardStyle.Width(cardWidth).Render(content))
}

func (m *Model) renderTitle(summary metrics.Summary) string {
	title := styles.TitleStyle.Render("Voice Assistant Dashboard")

	subtitle := styles.HelpStyle.Render(fmt.Sprintf("%d calls loaded", summary.CallCount))
	if updated := m.state.GetLastUpdated(); !updated.IsZero() {
		subtitle = styles.HelpStyle.Render(fmt.Sprintf(
			"%d calls loaded · updated %s", summary.CallCount, updated.Format("15:04:05"),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderKPIs(summary metrics.Summary) string {
	width := max(m.width-6, 56)

	return components.KPIRow(width,
		[2]string{"Total Calls", fmt.Sprintf("%d", summary.CallCount)},
		[2]string{"Avg Duration", summary.AvgDuration},
		[2]string{"Total Cost", summary.TotalCost},
		[2]string{"Total Minutes", fmt.Sprintf("%d", summary.TotalMinutes)},
	)
}

func (m *Model) renderCharts(calls []models.Call, summary metrics.Summary) string {
	cardWidth := max(m.width-6, 40)
	halfWidth := max(cardWidth/2-2, 30)

	outcomes := m.renderOutcomes(summary, halfWidth)
	volume := m.renderVolume(calls, halfWidth)

	if cardWidth < 80 {
		return lipgloss.JoinVertical(lipgloss.Left, outcomes, volume)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, outcomes, volume)
}

func (m *Model) renderOutcomes(summary metrics.Summary, width int) string {
	statuses := models.AllEvaluationStatuses()

	values := make([]float64, 0, len(statuses))
	labels := make([]string, 0, len(statuses))
	for _, status := range statuses {
		values = append(values, float64(summary.SuccessCounts[status]))
		labels = append(labels, string(status))
	}

	chart := components.RenderBarChart(values, labels, width-6)

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render("Call Outcomes"),
		chart,
	)

	return styles.CardStyle.Width(width).Render(content)
}

func (m *Model) renderVolume(calls []models.Call, width int) string {
	buckets := metrics.DailyVolume(calls, time.Now())
	chart := components.RenderVolumeChart(buckets, width-10, 6)

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render("Calls This Week"),
		chart,
	)

	return styles.CardStyle.Width(width).Render(content)
}

func (m *Model) renderLatestCalls(calls []models.Call) string {
	cardWidth := max(m.width-6, 40)

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Latest Calls"))

	if len(calls) == 0 {
		rows = append(rows, styles.HelpStyle.Render("No calls recorded yet."))
		return styles.CardStyle.Width(cardWidth).Render(
			lipgloss.JoinVertical(lipgloss.Left, rows...),
		)
	}

	limit := min(latestCallCount, len(calls))
	for _, call := range calls[:limit] {
		row := fmt.Sprintf("%-24s %-16s %6s  %s",
			truncate(call.Date, 24),
			truncate(call.Phone(), 16),
			call.Duration,
			components.EvaluationBadge(call.Evaluation),
		)
		rows = append(rows, styles.ListItemStyle.Render(row))
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
