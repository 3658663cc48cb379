package components

import (
	"github.com/charmbracelet/lipgloss"

	"vapi-dashboard-tui/internal/ui/styles"
)

// KPICard renders a bordered card with a large value and a caption.
func KPICard(title, value string, width int) string {
	if width < 14 {
		width = 14
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.KPIValueStyle.Render(value),
		styles.KPILabelStyle.Render(title),
	)

	return styles.CardStyle.Width(width).Render(content)
}

// KPIRow lays out several KPI cards side by side, dividing the width evenly.
func KPIRow(width int, cards ...[2]string) string {
	if len(cards) == 0 {
		return ""
	}

	cardWidth := width/len(cards) - 4
	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		rendered = append(rendered, KPICard(c[0], c[1], cardWidth))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
