package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stardrift-dev/stardrift/internal/storage"
)

// maxRuns caps how much history the viewer loads at once.
const maxRuns = 100

// ScoreboardKeyMap defines the key bindings for the run history view.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Toggle, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "best/recent"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the interactive run history viewer behind the scores
// command.
type ScoreboardModel struct {
	store      *storage.Store
	table      table.Model
	keys       ScoreboardKeyMap
	help       help.Model
	showRecent bool
	loadErr    error
	quitting   bool
}

// NewScoreboardModel builds the viewer over the given store.
func NewScoreboardModel(store *storage.Store) ScoreboardModel {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "OUTCOME", Width: 8},
		{Title: "SCORE", Width: 7},
		{Title: "LV", Width: 3},
		{Title: "ZONES", Width: 5},
		{Title: "TIME", Width: 6},
		{Title: "COMBO", Width: 5},
		{Title: "DATE", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("11"))
	t.SetStyles(styles)

	m := ScoreboardModel{
		store: store,
		table: t,
		keys:  DefaultScoreboardKeyMap(),
		help:  help.New(),
	}
	m.reload()
	return m
}

func (m *ScoreboardModel) reload() {
	var (
		runs []storage.RunRecord
		err  error
	)
	if m.showRecent {
		runs, err = m.store.RecentRuns(maxRuns)
	} else {
		runs, err = m.store.TopRuns(maxRuns)
	}
	if err != nil {
		m.loadErr = err
		return
	}
	m.loadErr = nil

	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			r.Outcome,
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Level),
			strconv.Itoa(r.ZonesCleared),
			fmt.Sprintf("%02d:%02d", r.PlayTime/60, r.PlayTime%60),
			strconv.Itoa(r.MaxCombo),
			r.CreatedAt.Format("2006-01-02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(keyMsg, m.keys.Toggle):
			m.showRecent = !m.showRecent
			m.reload()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	title := "BEST RUNS"
	if m.showRecent {
		title = "RECENT RUNS"
	}
	header := lipgloss.NewStyle().Bold(true).Render(title)

	body := m.table.View()
	if m.loadErr != nil {
		body = "could not load run history: " + m.loadErr.Error()
	} else if len(m.table.Rows()) == 0 {
		body = "no finished runs yet - fly a campaign first"
	}

	return header + "\n" + body + "\n" + m.help.View(m.keys)
}

// RunScoreboard starts the interactive run history viewer.
func RunScoreboard(store *storage.Store) error {
	p := tea.NewProgram(NewScoreboardModel(store))
	_, err := p.Run()
	return err
}
