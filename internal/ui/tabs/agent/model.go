// Package agent provides the assistant configuration tab with an edit
// mode for prompt and voice settings.
package agent

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"vapi-dashboard-tui/internal/app"
	"vapi-dashboard-tui/internal/models"
	"vapi-dashboard-tui/internal/ui/components"
)

// formField identifies the focused input while editing.
type formField int

const (
	fieldName formField = iota
	fieldFirstSentence
	fieldVoiceID
	fieldModel
	fieldTemperature
	fieldInstructions

	fieldCount = 6
)

// keyMap defines the key bindings specific to the agent tab.
type keyMap struct {
	Edit    key.Binding
	Save    key.Binding
	Refresh key.Binding
	Escape  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "discard changes"),
		),
	}
}

// Model represents the agent tab state.
type Model struct {
	state    *app.State
	commands *app.Commands
	width    int
	height   int
	keys     keyMap
	spinner  components.LoadingSpinner

	editing bool
	saving  bool
	focused formField
	inputs  [fieldCount]textinput.Model

	// snapshot holds the configuration as loaded, for discard on esc
	// and change detection on save.
	snapshot models.AgentInfo

	formErr string
}

// New creates a new agent model.
func New(state *app.State, cmds *app.Commands) *Model {
	m := &Model{
		state:    state,
		commands: cmds,
		keys:     defaultKeyMap(),
		spinner:  components.NewSpinner("Loading agent..."),
	}

	placeholders := [fieldCount]string{
		"Assistant name",
		"First sentence spoken on pickup",
		"Voice ID",
		"Model name",
		"Temperature (0.0 - 1.0)",
		"System instructions",
	}
	for i := range m.inputs {
		input := textinput.New()
		input.Placeholder = placeholders[i]
		input.CharLimit = 2000
		input.Width = 60
		m.inputs[i] = input
	}

	return m
}

// Init initializes the agent tab.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// CapturingInput reports whether edit mode owns the keyboard.
func (m *Model) CapturingInput() bool {
	return m.editing
}

// startEditing snapshots the loaded config into the form.
func (m *Model) startEditing(agent *models.AgentInfo) tea.Cmd {
	m.snapshot = agent.Clone()
	m.editing = true
	m.formErr = ""
	m.focused = fieldName

	m.inputs[fieldName].SetValue(agent.Name)
	m.inputs[fieldFirstSentence].SetValue(agent.FirstSentence)
	m.inputs[fieldVoiceID].SetValue(agent.VoiceID)
	m.inputs[fieldModel].SetValue(agent.Model)
	m.inputs[fieldTemperature].SetValue(strconv.FormatFloat(agent.Temperature, 'f', -1, 64))
	m.inputs[fieldInstructions].SetValue(agent.Instructions)

	m.updateFocus()
	return textinput.Blink
}

func (m *Model) stopEditing() {
	m.editing = false
	m.formErr = ""
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m *Model) updateFocus() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.inputs[m.focused].Focus()
}

// collect assembles an AgentInfo from the form, validating temperature.
func (m *Model) collect() (models.AgentInfo, error) {
	info := m.snapshot.Clone()
	info.Name = strings.TrimSpace(m.inputs[fieldName].Value())
	info.FirstSentence = strings.TrimSpace(m.inputs[fieldFirstSentence].Value())
	info.VoiceID = strings.TrimSpace(m.inputs[fieldVoiceID].Value())
	info.Model = strings.TrimSpace(m.inputs[fieldModel].Value())
	info.Instructions = m.inputs[fieldInstructions].Value()

	rawTemp := strings.TrimSpace(m.inputs[fieldTemperature].Value())
	temp, err := strconv.ParseFloat(rawTemp, 64)
	if err != nil {
		return info, fmt.Errorf("temperature must be a number between 0 and 1")
	}
	if temp < 0 {
		temp = 0
	}
	if temp > 1 {
		temp = 1
	}
	info.Temperature = temp

	return info, nil
}

// Update handles messages for the agent tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case app.AgentSavedMsg:
		m.saving = false
		if msg.Err == nil {
			m.stopEditing()
		}
		return m, nil

	case app.LoggedOutMsg:
		m.stopEditing()
		m.saving = false
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateForm(msg)
		}
		return m.updateView(msg)
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m *Model) updateView(msg tea.KeyMsg) (app.Tab, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Edit):
		agent := m.state.GetAgent()
		if agent == nil {
			return m, m.commands.NotifyInfo("Agent configuration not loaded yet")
		}
		return m, m.startEditing(agent)

	case key.Matches(msg, m.keys.Refresh):
		return m, tea.Batch(
			func() tea.Msg { return app.StartLoadingMsg{Resource: "agent"} },
			m.commands.LoadAgent(),
		)
	}
	return m, nil
}

func (m *Model) updateForm(msg tea.KeyMsg) (app.Tab, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.stopEditing()
		return m, nil

	case "tab", "down":
		m.focused = (m.focused + 1) % fieldCount
		m.updateFocus()
		return m, textinput.Blink

	case "shift+tab", "up":
		m.focused = (m.focused - 1 + fieldCount) % fieldCount
		m.updateFocus()
		return m, textinput.Blink

	case "ctrl+s":
		return m.save()
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m *Model) save() (app.Tab, tea.Cmd) {
	info, err := m.collect()
	if err != nil {
		m.formErr = err.Error()
		return m, nil
	}

	if info == m.snapshot {
		m.formErr = ""
		m.stopEditing()
		return m, m.commands.NotifyInfo("No changes to save")
	}

	m.formErr = ""
	m.saving = true
	return m, m.commands.SaveAgent(info)
}

// SetSize sets the available size for the agent tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	inputWidth := max(min(width-20, 80), 30)
	for i := range m.inputs {
		m.inputs[i].Width = inputWidth
	}
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	if m.editing {
		return []key.Binding{
			key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
			m.keys.Save,
			m.keys.Escape,
		}
	}
	return []key.Binding{m.keys.Edit, m.keys.Refresh}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Edit, m.keys.Refresh},
		{m.keys.Save, m.keys.Escape},
	}
}
