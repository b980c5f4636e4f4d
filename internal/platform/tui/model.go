package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stardrift-dev/stardrift/internal/config"
	"github.com/stardrift-dev/stardrift/internal/core"
	"github.com/stardrift-dev/stardrift/internal/game"
	"github.com/stardrift-dev/stardrift/internal/storage"
)

// Model is the Bubble Tea model driving the campaign.
type Model struct {
	world  *game.World
	screen *core.Screen
	store  *storage.Store

	keys  KeyMap
	help  help.Model
	input *inputState

	fps       int
	width     int
	height    int
	quitting  bool
	runSaved  bool
	prevState game.State
}

// NewModel builds the model. store may be nil; the campaign then runs
// without checkpoints or run history.
func NewModel(store *storage.Store, cfg config.Config) Model {
	var saver game.Saver
	if store != nil {
		saver = store
	}

	w := game.NewWorld(saver)
	tuning := config.TuningForPreset(cfg.Game.Difficulty)
	w.Enemies.SetTuning(tuning.EnemyHPEighths, tuning.FireRateEighths)
	w.MercyFrames = tuning.MercyFrames
	w.StartZone = cfg.Game.StartZone

	return Model{
		world:     w,
		screen:    core.NewScreen(game.ScreenCols, game.ScreenRows),
		store:     store,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		input:     newInputState(),
		fps:       cfg.Display.FPS,
		prevState: w.State,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.fps)
}

// Update handles messages and advances the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	m.input.stamp(m.keys.actionsFor(msg))
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.world.Step(m.input.frame())

	// Sound events are modeled but the terminal has no mixer; drain so the
	// queue never grows across frames.
	m.world.Sounds.Drain()

	if m.world.State != m.prevState {
		m.onStateChange(m.world.State)
		m.prevState = m.world.State
	}

	return m, tickCmd(m.fps)
}

// onStateChange records finished runs and scrubs stale input across big
// transitions.
func (m *Model) onStateChange(next game.State) {
	switch next {
	case game.StateGameOver:
		m.recordRun(storage.OutcomeDefeat)
	case game.StateVictory:
		m.recordRun(storage.OutcomeVictory)
	case game.StateFlight:
		// Entering a zone starts a fresh attempt at the history books.
		m.runSaved = false
		m.input.clear()
	case game.StateTitle:
		m.input.clear()
	}
}

func (m *Model) recordRun(outcome string) {
	if m.store == nil || m.runSaved {
		return
	}
	m.runSaved = true
	//nolint:errcheck // Best-effort history; the campaign continues regardless.
	m.store.RecordRun(storage.RunRecord{
		Outcome:      outcome,
		Score:        m.world.Collision.Tracker.Score,
		Level:        m.world.Stats.Level,
		ZonesCleared: m.world.ZonesCleared,
		PlayTime:     m.world.PlayTime,
		MaxCombo:     m.world.Collision.Tracker.MaxCombo,
	})
}

// View renders the current frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.world.Render(m.screen)
	return composeView(m.screen, m.help.View(m.keys), m.width, m.height)
}

// Run starts the Bubble Tea program for a local terminal session.
func Run(store *storage.Store, cfg config.Config) error {
	p := tea.NewProgram(
		NewModel(store, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
