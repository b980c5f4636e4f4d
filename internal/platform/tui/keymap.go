package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stardrift-dev/stardrift/internal/core"
)

// KeyMap defines the key bindings for flight and menus. The same bindings
// feed the help bar, so changing a key here updates both.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Fire       key.Binding
	Focus      key.Binding
	WeaponNext key.Binding
	WeaponPrev key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
	Pause      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the one-line help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fire, k.WeaponNext, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Fire, k.Focus, k.WeaponNext, k.WeaponPrev},
		{k.Confirm, k.Cancel, k.Pause, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" ", "z"),
			key.WithHelp("space/z", "fire"),
		),
		Focus: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "focus"),
		),
		WeaponNext: key.NewBinding(
			key.WithKeys("e", "tab"),
			key.WithHelp("e", "next weapon"),
		),
		WeaponPrev: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "prev weapon"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", "z"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back/items"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// actionsFor maps a key message to its action mask. A single key may carry
// more than one action (z fires in flight and confirms in menus); the
// simulation only reads the actions its current state cares about.
func (k KeyMap) actionsFor(msg tea.KeyMsg) core.Action {
	var a core.Action
	if key.Matches(msg, k.Up) {
		a |= core.ActionUp
	}
	if key.Matches(msg, k.Down) {
		a |= core.ActionDown
	}
	if key.Matches(msg, k.Left) {
		a |= core.ActionLeft
	}
	if key.Matches(msg, k.Right) {
		a |= core.ActionRight
	}
	if key.Matches(msg, k.Fire) {
		a |= core.ActionFire
	}
	if key.Matches(msg, k.Focus) {
		a |= core.ActionFocus
	}
	if key.Matches(msg, k.WeaponNext) {
		a |= core.ActionWeaponNext
	}
	if key.Matches(msg, k.WeaponPrev) {
		a |= core.ActionWeaponPrev
	}
	if key.Matches(msg, k.Confirm) {
		a |= core.ActionConfirm
	}
	if key.Matches(msg, k.Cancel) {
		a |= core.ActionCancel
	}
	if key.Matches(msg, k.Pause) {
		a |= core.ActionPause
	}
	return a
}
