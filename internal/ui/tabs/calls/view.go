package calls

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vapi-dashboard-tui/internal/models"
	"vapi-dashboard-tui/internal/ui/components"
	"vapi-dashboard-tui/internal/ui/styles"
)

// View renders the calls tab.
func (m *Model) View() string {
	if m.mode == modeDetail {
		return m.renderDetail()
	}

	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(
			components.NewSpinner("Loading calls..."), m.width, m.height,
		)
	}

	m.refreshRows()

	var sections []string
	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderFilterBar())

	if errMsg := m.state.CallsError(); errMsg != "" && m.state.GetCallCount() == 0 {
		sections = append(sections, styles.CardStyle.Render(
			styles.ErrorTextStyle.Render("Unable to load calls: "+errMsg),
		))
	} else if len(m.filtered) == 0 {
		sections = append(sections, m.renderEmptyState())
	} else {
		cardWidth := max(m.width-6, 60)
		sections = append(sections, styles.CardStyle.Width(cardWidth).Render(m.table.View()))
	}

	sections = append(sections, m.renderFooter())

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Call History")
	subtitle := styles.HelpStyle.Render(fmt.Sprintf(
		"%d of %d calls", len(m.filtered), m.state.GetCallCount(),
	))
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderFilterBar() string {
	searchStyle := styles.BlurredBorderStyle
	if m.mode == modeSearch {
		searchStyle = styles.FocusedBorderStyle
	}
	phoneStyle := styles.BlurredBorderStyle
	if m.mode == modePhone {
		phoneStyle = styles.FocusedBorderStyle
	}

	outcome := "All outcomes"
	if m.evalIndex > 0 {
		status := models.AllEvaluationStatuses()[m.evalIndex-1]
		outcome = string(status)
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		searchStyle.Render(m.searchInput.View()),
		" ",
		phoneStyle.Render(m.phoneInput.View()),
		" ",
		styles.BlurredBorderStyle.Render(styles.InfoTextStyle.Render(outcome)),
	)
}

func (m *Model) renderEmptyState() string {
	cardWidth := max(m.width-6, 40)

	msg := "No calls recorded yet."
	if !m.currentFilter().IsZero() {
		msg = "No calls match the active filters."
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		"",
		styles.HelpStyle.Render(msg),
		"",
	)
	return styles.CardStyle.Width(cardWidth).Render(content)
}

func (m *Model) renderFooter() string {
	shortcuts := []string{
		styles.HelpKeyStyle.Render("/") + " search",
		styles.HelpKeyStyle.Render("p") + " phone",
		styles.HelpKeyStyle.Render("o") + " outcome",
		styles.HelpKeyStyle.Render("x") + " clear",
		styles.HelpKeyStyle.Render("Enter") + " open",
		styles.HelpKeyStyle.Render("e") + " export",
	}

	footer := ""
	for i, s := range shortcuts {
		if i > 0 {
			footer += styles.HelpSeparatorStyle.Render(" | ")
		}
		footer += s
	}

	return lipgloss.NewStyle().
		MarginTop(1).
		Foreground(styles.TextMuted).
		Render(footer)
}

func (m *Model) renderDetail() string {
	cardWidth := max(m.width-8, 50)

	var sections []string
	sections = append(sections, styles.TitleStyle.Render("Call Review"))
	sections = append(sections, m.renderPaneTabs())

	switch {
	case m.detailLoading:
		sections = append(sections, styles.CardStyle.Width(cardWidth).Render(
			m.spinner.View()+" "+styles.HelpStyle.Render("Loading call detail..."),
		))

	case m.detailErr != "":
		sections = append(sections, styles.CardStyle.Width(cardWidth).Render(
			styles.ErrorTextStyle.Render("Unable to load call: "+m.detailErr),
		))

	case m.detailCall != nil:
		if m.pane == paneTranscript {
			sections = append(sections, styles.CardStyle.Width(cardWidth).Render(m.transcriptView.View()))
		} else {
			sections = append(sections, m.renderOverview(cardWidth))
		}
	}

	sections = append(sections, styles.HelpStyle.Render("t: toggle pane | esc: back to list"))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderPaneTabs() string {
	overview := styles.ButtonInactiveStyle.Render(" Overview ")
	transcript := styles.ButtonInactiveStyle.Render(" Transcription ")
	if m.pane == paneOverview {
		overview = styles.ButtonActiveStyle.Render(" Overview ")
	} else {
		transcript = styles.ButtonActiveStyle.Render(" Transcription ")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, overview, transcript)
}

func (m *Model) renderOverview(width int) string {
	call := m.detailCall

	agentName := call.Agent
	if m.detailAgent != nil && m.detailAgent.Name != "" {
		agentName = m.detailAgent.Name
	}

	var rows []string
	rows = append(rows, detailRow("Date", call.Date))
	rows = append(rows, detailRow("Agent", agentName))
	rows = append(rows, detailRow("Phone", call.Phone()))
	if source, ok := call.ClientData["Source"]; ok {
		rows = append(rows, detailRow("Source", source))
	}
	rows = append(rows, detailRow("Duration", call.Duration))
	rows = append(rows, detailRow("Messages", fmt.Sprintf("%d", call.Messages)))
	rows = append(rows, detailRow("Outcome", components.EvaluationBadge(call.Evaluation)))

	if call.Status != "" {
		rows = append(rows, detailRow("Status", call.Status))
	}
	if call.TerminationReason != "" {
		rows = append(rows, detailRow("Ended", call.TerminationReason))
	}

	rows = append(rows, detailRow("Cost", fmt.Sprintf("$%.2f", call.Cost)))
	if call.Charges != nil {
		rows = append(rows, detailRow("  Transport", fmt.Sprintf("$%.2f", call.Charges.Call)))
		rows = append(rows, detailRow("  LLM", fmt.Sprintf("$%.2f", call.Charges.LLM)))
	}
	if call.RAGUsage != nil {
		rows = append(rows, detailRow("Retrievals", fmt.Sprintf("%d (%s)", call.RAGUsage.Count, call.RAGUsage.Model)))
	}

	rows = append(rows, "")
	rows = append(rows, styles.CardTitleStyle.Render("Summary"))
	rows = append(rows, wrapText(call.Summary, width-8))

	return styles.CardStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderTranscript builds the scrollable transcript content.
func (m *Model) renderTranscript(call models.Call) string {
	if len(call.Transcription) == 0 {
		return styles.HelpStyle.Render("No transcript available for this call.")
	}

	width := max(m.transcriptView.Width-2, 20)

	var lines []string
	for _, entry := range call.Transcription {
		speaker := styles.InfoTextStyle.Render(entry.Speaker)
		if entry.Speaker == "Agent" {
			speaker = styles.SuccessTextStyle.Render(entry.Speaker)
		}

		lines = append(lines, fmt.Sprintf("%s %s", styles.HelpStyle.Render(entry.Timestamp), speaker))
		lines = append(lines, wrapText(entry.Text, width))
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

func detailRow(label, value string) string {
	return fmt.Sprintf("%s %s",
		styles.HelpDescStyle.Width(12).Render(label+":"),
		value,
	)
}

// wrapText soft-wraps text at word boundaries for card display.
func wrapText(text string, width int) string {
	if width < 10 {
		width = 10
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	lines = append(lines, line)

	return strings.Join(lines, "\n")
}
