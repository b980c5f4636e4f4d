package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stardrift-dev/stardrift/internal/core"
)

// The screen buffer is plain runes; color is assigned here by glyph class
// so the simulation stays presentation-free.
var (
	styleDefault = lipgloss.NewStyle()
	styleStar    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleBar     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleCursor  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleFrame   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
	styleHelp = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func styleFor(r rune) *lipgloss.Style {
	switch r {
	case '.', '\'':
		return &styleStar
	case '#':
		return &styleBar
	case '>':
		return &styleCursor
	default:
		return &styleDefault
	}
}

// RenderScreen converts a Screen buffer to a styled string. Adjacent cells
// sharing a style render as one run to keep ANSI escapes down.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		x := 0
		for x < s.Width() {
			style := styleFor(s.Get(x, y))
			var run strings.Builder
			for x < s.Width() && styleFor(s.Get(x, y)) == style {
				run.WriteRune(s.Get(x, y))
				x++
			}
			if style == &styleDefault {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(style.Render(run.String()))
			}
		}
	}
	return sb.String()
}

// composeView frames the playfield and attaches the help bar, centered in
// the terminal when its size is known.
func composeView(s *core.Screen, helpBar string, width, height int) string {
	view := styleFrame.Render(RenderScreen(s)) + "\n" + styleHelp.Render(helpBar)
	if width <= 0 || height <= 0 {
		return view
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, view)
}
