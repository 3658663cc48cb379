// Package calls provides the call history tab with filtering, per-call
// detail review, and report export.
package calls

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vapi-dashboard-tui/internal/app"
	"vapi-dashboard-tui/internal/filter"
	"vapi-dashboard-tui/internal/models"
	"vapi-dashboard-tui/internal/ui/components"
	"vapi-dashboard-tui/internal/ui/styles"
)

// mode identifies what currently owns keyboard input in this tab.
type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modePhone
	modeDetail
)

// detailPane identifies the visible pane of the call detail view.
type detailPane int

const (
	paneOverview detailPane = iota
	paneTranscript
)

// keyMap defines the key bindings specific to the calls tab.
type keyMap struct {
	Search     key.Binding
	Phone      key.Binding
	Outcome    key.Binding
	Clear      key.Binding
	Open       key.Binding
	Export     key.Binding
	TogglePane key.Binding
	Escape     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search transcripts"),
		),
		Phone: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "filter by phone"),
		),
		Outcome: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "cycle outcome"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear filters"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open call"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export report"),
		),
		TogglePane: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle pane"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// Model represents the calls tab state.
type Model struct {
	state    *app.State
	commands *app.Commands
	width    int
	height   int
	keys     keyMap
	mode     mode

	table       table.Model
	searchInput textinput.Model
	phoneInput  textinput.Model
	evalIndex   int // 0 means no outcome filter
	filtered    []models.Call

	spinner components.LoadingSpinner

	// Detail state. detailSeq tags each detail request so responses
	// that arrive after the view moved on are dropped.
	detailSeq      int
	detailLoading  bool
	detailErr      string
	detailCall     *models.Call
	detailAgent    *models.AgentInfo
	pane           detailPane
	transcriptView viewport.Model
}

// New creates a new calls model.
func New(state *app.State, cmds *app.Commands) *Model {
	searchInput := textinput.New()
	searchInput.Placeholder = "Search summaries and transcripts..."
	searchInput.CharLimit = 200
	searchInput.Width = 40

	phoneInput := textinput.New()
	phoneInput.Placeholder = "Phone number..."
	phoneInput.CharLimit = 30
	phoneInput.Width = 24

	t := table.New(
		table.WithColumns(tableColumns(0)),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Subtle).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Primary)
	s.Selected = s.Selected.
		Foreground(styles.TextPrimary).
		Background(styles.BgAccent).
		Bold(true)
	t.SetStyles(s)

	return &Model{
		state:          state,
		commands:       cmds,
		keys:           defaultKeyMap(),
		table:          t,
		searchInput:    searchInput,
		phoneInput:     phoneInput,
		spinner:        components.NewSpinner("Loading call..."),
		transcriptView: viewport.New(0, 0),
	}
}

func tableColumns(width int) []table.Column {
	dateWidth := 22
	phoneWidth := 16
	agentWidth := max(min(width-dateWidth-phoneWidth-32, 24), 12)

	return []table.Column{
		{Title: "Date", Width: dateWidth},
		{Title: "Phone", Width: phoneWidth},
		{Title: "Agent", Width: agentWidth},
		{Title: "Dur", Width: 6},
		{Title: "Msgs", Width: 4},
		{Title: "Cost", Width: 7},
		{Title: "Outcome", Width: 13},
	}
}

// Init initializes the calls tab.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// CapturingInput reports whether a text input is focused, which
// suspends global keybindings.
func (m *Model) CapturingInput() bool {
	return m.mode == modeSearch || m.mode == modePhone
}

// currentFilter assembles the filter from the UI inputs.
func (m *Model) currentFilter() filter.Filter {
	f := filter.Filter{
		Term:  m.searchInput.Value(),
		Phone: m.phoneInput.Value(),
	}
	if m.evalIndex > 0 {
		f.Evaluation = models.AllEvaluationStatuses()[m.evalIndex-1]
	}
	return f
}

// refreshRows recomputes the filtered call list and table rows.
func (m *Model) refreshRows() {
	m.filtered = m.currentFilter().Apply(m.state.GetCalls())

	rows := make([]table.Row, 0, len(m.filtered))
	for _, call := range m.filtered {
		rows = append(rows, table.Row{
			call.Date,
			call.Phone(),
			call.Agent,
			call.Duration,
			fmt.Sprintf("%d", call.Messages),
			fmt.Sprintf("$%.2f", call.Cost),
			components.EvaluationSymbol(call.Evaluation) + " " + string(call.Evaluation),
		})
	}
	m.table.SetRows(rows)
}

// Update handles messages for the calls tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch m.mode {
	case modeSearch:
		return m.updateInput(msg, &m.searchInput)
	case modePhone:
		return m.updateInput(msg, &m.phoneInput)
	case modeDetail:
		return m.updateDetail(msg)
	}
	return m.updateBrowse(msg)
}

// updateInput routes keys to a focused filter input.
func (m *Model) updateInput(msg tea.Msg, input *textinput.Model) (app.Tab, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "enter":
			input.Blur()
			m.mode = modeBrowse
			return m, nil
		}
	}

	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	return m, cmd
}

func (m *Model) updateBrowse(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Search):
			m.mode = modeSearch
			m.searchInput.Focus()
			return m, textinput.Blink

		case key.Matches(msg, m.keys.Phone):
			m.mode = modePhone
			m.phoneInput.Focus()
			return m, textinput.Blink

		case key.Matches(msg, m.keys.Outcome):
			m.evalIndex = (m.evalIndex + 1) % (len(models.AllEvaluationStatuses()) + 1)
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			m.searchInput.SetValue("")
			m.phoneInput.SetValue("")
			m.evalIndex = 0
			return m, nil

		case key.Matches(msg, m.keys.Open):
			return m.openDetail()

		case key.Matches(msg, m.keys.Export):
			m.refreshRows()
			if len(m.filtered) == 0 {
				return m, m.commands.NotifyInfo("Nothing to export")
			}
			return m, m.commands.ExportCalls(m.filtered)

		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

// openDetail starts a detail fetch for the selected call.
func (m *Model) openDetail() (app.Tab, tea.Cmd) {
	m.refreshRows()

	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.filtered) {
		return m, nil
	}

	call := m.filtered[cursor]

	m.detailSeq++
	m.detailLoading = true
	m.detailErr = ""
	m.detailCall = nil
	m.detailAgent = nil
	m.pane = paneOverview
	m.mode = modeDetail

	return m, tea.Batch(
		m.spinner.Tick(),
		m.commands.LoadCallReview(call, m.detailSeq),
	)
}

// closeDetail returns to the call table. Bumping the sequence makes any
// in-flight detail response stale.
func (m *Model) closeDetail() {
	m.detailSeq++
	m.detailLoading = false
	m.detailCall = nil
	m.detailAgent = nil
	m.detailErr = ""
	m.mode = modeBrowse
}

func (m *Model) updateDetail(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Escape):
			m.closeDetail()
			return m, nil

		case key.Matches(msg, m.keys.TogglePane):
			if m.pane == paneOverview {
				m.pane = paneTranscript
			} else {
				m.pane = paneOverview
			}
			return m, nil

		default:
			if m.pane == paneTranscript {
				var cmd tea.Cmd
				m.transcriptView, cmd = m.transcriptView.Update(msg)
				return m, cmd
			}
			return m, nil
		}

	case app.CallReviewLoadedMsg:
		if msg.Seq != m.detailSeq {
			return m, nil
		}

		m.detailLoading = false
		if msg.Err != nil {
			m.detailErr = msg.Err.Error()
			return m, nil
		}

		call := msg.Review.Call
		agent := msg.Review.Agent
		m.detailCall = &call
		m.detailAgent = &agent
		m.transcriptView.SetContent(m.renderTranscript(call))
		m.transcriptView.GotoTop()
		return m, nil

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

// SetSize sets the available size for the calls tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetColumns(tableColumns(width))
	m.table.SetHeight(max(height-10, 4))
	m.transcriptView.Width = max(width-12, 20)
	m.transcriptView.Height = max(height-12, 4)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	if m.mode == modeDetail {
		return []key.Binding{m.keys.TogglePane, m.keys.Escape}
	}
	return []key.Binding{
		m.keys.Search,
		m.keys.Phone,
		m.keys.Outcome,
		m.keys.Open,
		m.keys.Export,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Search, m.keys.Phone, m.keys.Outcome, m.keys.Clear},
		{m.keys.Open, m.keys.Export, m.keys.TogglePane, m.keys.Escape},
	}
}
