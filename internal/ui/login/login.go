// Package login provides the credential form shown before a session starts.
package login

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vapi-dashboard-tui/internal/models"
	"vapi-dashboard-tui/internal/ui/styles"
)

// SubmitMsg is emitted when the user submits valid credentials.
type SubmitMsg struct {
	Credentials models.Credentials
}

// formField identifies the focused element of the login form.
type formField int

const (
	fieldAssistantID formField = iota
	fieldAPIToken
	fieldSubmit

	fieldCount = 3
)

// Model is the login form state.
type Model struct {
	assistantInput textinput.Model
	tokenInput     textinput.Model
	focused        formField
	errMsg         string
	width          int
	height         int
}

// New creates the login form with optional prefilled credentials.
func New(prefill models.Credentials) Model {
	assistantInput := textinput.New()
	assistantInput.Placeholder = "Assistant ID"
	assistantInput.CharLimit = 100
	assistantInput.Width = 40
	assistantInput.SetValue(prefill.AssistantID)
	assistantInput.Focus()

	tokenInput := textinput.New()
	tokenInput.Placeholder = "API token"
	tokenInput.CharLimit = 200
	tokenInput.Width = 40
	tokenInput.EchoMode = textinput.EchoPassword
	tokenInput.SetValue(prefill.APIToken)

	return Model{
		assistantInput: assistantInput,
		tokenInput:     tokenInput,
		focused:        fieldAssistantID,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize records the available window size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles key input for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.focused = (m.focused + 1) % fieldCount
			m.updateFocus()
			return m, textinput.Blink

		case "shift+tab", "up":
			m.focused = (m.focused - 1 + fieldCount) % fieldCount
			m.updateFocus()
			return m, textinput.Blink

		case "enter":
			if m.focused == fieldSubmit {
				return m.submit()
			}
			m.focused++
			m.updateFocus()
			return m, textinput.Blink
		}
	}

	var cmd tea.Cmd
	switch m.focused {
	case fieldAssistantID:
		m.assistantInput, cmd = m.assistantInput.Update(msg)
	case fieldAPIToken:
		m.tokenInput, cmd = m.tokenInput.Update(msg)
	}
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	creds := models.Credentials{
		AssistantID: strings.TrimSpace(m.assistantInput.Value()),
		APIToken:    strings.TrimSpace(m.tokenInput.Value()),
	}

	if !creds.Valid() {
		m.errMsg = "Both assistant ID and API token are required."
		return m, nil
	}

	m.errMsg = ""
	return m, func() tea.Msg {
		return SubmitMsg{Credentials: creds}
	}
}

func (m *Model) updateFocus() {
	m.assistantInput.Blur()
	m.tokenInput.Blur()

	switch m.focused {
	case fieldAssistantID:
		m.assistantInput.Focus()
	case fieldAPIToken:
		m.tokenInput.Focus()
	}
}

// SetError shows a failure message under the form, used when the first
// authenticated request is rejected.
func (m *Model) SetError(msg string) {
	m.errMsg = msg
}

// View renders the centered login card.
func (m Model) View() string {
	cardWidth := 56

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Vapi Dashboard"))
	rows = append(rows, styles.HelpStyle.Render("Sign in with your Vapi credentials"))
	rows = append(rows, "")

	rows = append(rows, m.fieldLabel("Assistant ID:", fieldAssistantID))
	rows = append(rows, m.fieldBorder(fieldAssistantID).Width(cardWidth-8).Render(m.assistantInput.View()))
	rows = append(rows, "")

	rows = append(rows, m.fieldLabel("API Token:", fieldAPIToken))
	rows = append(rows, m.fieldBorder(fieldAPIToken).Width(cardWidth-8).Render(m.tokenInput.View()))
	rows = append(rows, "")

	submitStyle := styles.ButtonInactiveStyle
	if m.focused == fieldSubmit {
		submitStyle = styles.ButtonActiveStyle
	}
	rows = append(rows, submitStyle.Render(" Sign In "))

	if m.errMsg != "" {
		rows = append(rows, "")
		rows = append(rows, styles.ErrorTextStyle.Render(m.errMsg))
	}

	rows = append(rows, "")
	rows = append(rows, styles.HelpStyle.Render("Tab: next field | Enter: submit | Ctrl+C: quit"))

	card := styles.ModalContentStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)

	if m.width > 0 && m.height > 0 {
		return styles.CenterBoth(card, m.width, m.height)
	}
	return card
}

func (m Model) fieldLabel(label string, field formField) string {
	if m.focused == field {
		return styles.FocusedStyle.Render("> " + label)
	}
	return styles.BlurredStyle.Render("  " + label)
}

func (m Model) fieldBorder(field formField) lipgloss.Style {
	if m.focused == field {
		return styles.FocusedBorderStyle
	}
	return styles.BlurredBorderStyle
}
