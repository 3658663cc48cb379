package agent

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"vapi-dashboard-tui/internal/ui/components"
	"vapi-dashboard-tui/internal/ui/styles"
)

var fieldLabels = [fieldCount]string{
	"Name",
	"First Sentence",
	"Voice ID",
	"Model",
	"Temperature",
	"Instructions",
}

// View renders the agent tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	var sections []string
	sections = append(sections, m.renderTitle())

	if m.editing {
		sections = append(sections, m.renderForm())
	} else {
		sections = append(sections, m.renderConfig())
	}

	sections = append(sections, m.renderFooter())

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Agent Configuration")

	subtitle := styles.HelpStyle.Render("Prompt, voice, and model settings")
	if m.editing {
		subtitle = styles.WarningTextStyle.Render("Editing: unsaved changes are local")
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderConfig() string {
	cardWidth := max(m.width-6, 50)

	agent := m.state.GetAgent()
	if agent == nil {
		msg := "Agent configuration has not loaded yet."
		if errMsg := m.state.AgentError(); errMsg != "" {
			msg = "Unable to load agent: " + errMsg
		}
		return styles.CardStyle.Width(cardWidth).Render(
			styles.ErrorTextStyle.Render(msg),
		)
	}

	var rows []string
	rows = append(rows, configRow("Name", agent.Name))
	rows = append(rows, configRow("First Sentence", agent.FirstSentence))
	rows = append(rows, configRow("Voice ID", agent.VoiceID))
	rows = append(rows, configRow("Model", agent.Model))
	rows = append(rows, configRow("Temperature", fmt.Sprintf("%.2f", agent.Temperature)))
	rows = append(rows, configRow("Roleplay", agent.Roleplay))
	rows = append(rows, "")
	rows = append(rows, styles.CardTitleStyle.Render("Instructions"))
	rows = append(rows, agent.Instructions)

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderForm() string {
	cardWidth := max(m.width-10, 50)

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Edit Agent"))
	rows = append(rows, "")

	for i := range m.inputs {
		field := formField(i)

		label := "  " + fieldLabels[i] + ":"
		inputStyle := styles.BlurredBorderStyle
		if m.focused == field {
			label = styles.FocusedStyle.Render("> " + fieldLabels[i] + ":")
			inputStyle = styles.FocusedBorderStyle
		} else {
			label = styles.BlurredStyle.Render(label)
		}

		rows = append(rows, label)
		rows = append(rows, inputStyle.Width(cardWidth-8).Render(m.inputs[i].View()))
	}

	if m.formErr != "" {
		rows = append(rows, "")
		rows = append(rows, styles.ErrorTextStyle.Render(m.formErr))
	}

	if m.saving {
		rows = append(rows, "")
		rows = append(rows, m.spinner.View()+" "+styles.HelpStyle.Render("Saving..."))
	}

	return styles.ModalContentStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderFooter() string {
	var shortcuts []string
	if m.editing {
		shortcuts = []string{
			styles.HelpKeyStyle.Render("Tab") + " next field",
			styles.HelpKeyStyle.Render("Ctrl+S") + " save",
			styles.HelpKeyStyle.Render("Esc") + " discard",
		}
	} else {
		shortcuts = []string{
			styles.HelpKeyStyle.Render("e") + " edit",
			styles.HelpKeyStyle.Render("r") + " refresh",
		}
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

func configRow(label, value string) string {
	return fmt.Sprintf("%s %s",
		styles.HelpDescStyle.Width(16).Render(label+":"),
		value,
	)
}
