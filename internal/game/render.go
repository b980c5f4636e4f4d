package game

import (
	"fmt"

	"github.com/stardrift-dev/stardrift/internal/core"
	"github.com/stardrift-dev/stardrift/internal/game/battle"
	"github.com/stardrift-dev/stardrift/internal/game/enemy"
	"github.com/stardrift-dev/stardrift/internal/game/rpg"
	"github.com/stardrift-dev/stardrift/internal/game/story"
)

// Screen geometry in cells. The playfield is 256x224 virtual pixels at 8
// pixels per cell.
const (
	ScreenCols = 32
	ScreenRows = 28
)

// cursorBounce approximates a sine for the menu cursor's horizontal bob.
var cursorBounce = [8]int{0, 1, 2, 2, 2, 1, 0, -1}

// Render composes the current frame onto dst. The buffer should be
// ScreenCols by ScreenRows; anything larger leaves a margin.
func (w *World) Render(dst *core.Screen) {
	dst.Clear()

	b := w.Brightness()
	if b < 2 {
		return
	}

	switch w.State {
	case StateTitle:
		w.renderTitle(dst)
	case StateSplash:
		w.renderSplash(dst)
	case StateFlight:
		w.renderFlight(dst)
	case StateDialog:
		w.renderDialog(dst)
	case StateBattle:
		w.renderBattle(dst)
	case StateGameOver:
		w.renderGameOver(dst)
	case StateVictory:
		w.renderVictory(dst)
	}
}

/*=== Shared helpers ===*/

func (w *World) drawStars(dst *core.Screen, scrollY int) {
	shift := scrollY >> 3
	for y := 0; y < ScreenRows; y++ {
		row := y + shift
		for x := 0; x < ScreenCols; x++ {
			h := (x*7 + row*13) & 0x3F
			if h == 9 {
				dst.Set(x, y, '.')
			} else if h == 33 {
				dst.Set(x, y, '\'')
			}
		}
	}
}

func drawBar(dst *core.Screen, x, y, width, val, max int) {
	if max < 1 {
		max = 1
	}
	if val < 0 {
		val = 0
	}
	fill := val * width / max
	if val > 0 && fill == 0 {
		fill = 1
	}
	dst.Set(x, y, '[')
	for i := 0; i < width; i++ {
		ch := '-'
		if i < fill {
			ch = '#'
		}
		dst.Set(x+1+i, y, ch)
	}
	dst.Set(x+1+width, y, ']')
}

func fmtTime(seconds int) string {
	if seconds > 5999 {
		seconds = 5999
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func (w *World) drawCursor(dst *core.Screen, col, row int) {
	off := 0
	if cursorBounce[(w.Frame>>3)&7] > 1 {
		off = 1
	}
	if w.Frame&0x1F < 0x18 {
		dst.Set(col+off, row, '>')
	}
}

/*=== Title ===*/

func (w *World) renderTitle(dst *core.Screen) {
	w.drawStars(dst, w.titleScroll>>2)

	dst.DrawHLine(2, 3, 28, '=')
	dst.DrawTextCentered(5, "S T A R D R I F T")
	dst.DrawTextCentered(7, "FLIGHT OF THE MERIDIAN")
	dst.DrawHLine(2, 9, 28, '=')

	if w.titlePhase == 0 {
		if w.Frame&0x1F < 0x10 {
			dst.DrawTextCentered(18, "PRESS START")
		}
		return
	}

	dst.DrawText(9, 14, "NEW GAME")
	if w.hasSave {
		dst.DrawText(9, 16, fmt.Sprintf("CONTINUE  L%02d Z%d", w.savedLevel, w.savedZone+1))
	}
	w.drawCursor(dst, 7, 14+w.titleCursor*2)
}

/*=== Zone splash ===*/

func (w *World) renderSplash(dst *core.Screen) {
	dst.DrawTextCentered(10, fmt.Sprintf("ZONE %d", w.Zone+1))
	name := enemy.ZoneName(w.Zone)
	dst.DrawTextCentered(12, name[:w.SplashReveal()])
}

/*=== Flight ===*/

func (w *World) renderFlight(dst *core.Screen) {
	// Impacts jolt the star field for a few frames.
	shake := 0
	if w.Collision.Tracker.ScreenShake > 0 {
		shake = 1 - (w.Frame&1)<<1
	}
	w.drawStars(dst, w.Scroll.ParallaxY()+(shake<<3))
	w.drawStars(dst, w.Scroll.BackgroundY()+128-(shake<<3))

	w.Table.Compose(dst, w.Brightness())

	w.renderHUD(dst)
}

func (w *World) renderHUD(dst *core.Screen) {
	dst.DrawText(0, 0, fmt.Sprintf("SC %05d", w.Collision.Tracker.Score))
	dst.DrawText(12, 0, w.Bullets.Weapon.Current.String())
	dst.DrawText(26, 0, fmt.Sprintf("ZONE%d", w.Zone+1))

	dst.DrawText(0, 1, fmt.Sprintf("HP%3d", w.Stats.HP))
	drawBar(dst, 5, 1, 8, w.Stats.HP, w.Stats.MaxHP)
	dst.DrawText(16, 1, fmt.Sprintf("SP%d", w.Stats.SP))
	dst.DrawText(20, 1, fmt.Sprintf("LV%d", w.Stats.Level))

	switch {
	case w.Collision.ComboVisible():
		tail := ""
		if w.comboFlash {
			tail = "!"
		}
		dst.DrawText(24, 1, fmt.Sprintf("x%d:%d%s", w.Collision.ComboMultiplier(), w.Collision.ComboCount(), tail))
	case w.Collision.BonusActive():
		dst.DrawText(24, 1, "BONUS!")
	}

	if w.Paused {
		dst.DrawTextCentered(13, "PAUSED")
	}
}

/*=== Dialog ===*/

func (w *World) renderDialog(dst *core.Screen) {
	// Dimmed field stays behind the text box.
	w.drawStars(dst, w.Scroll.ParallaxY())

	dst.DrawHLine(0, 19, 30, '-')
	dst.DrawHLine(0, 24, 30, '-')
	dst.DrawText(2, 20, w.Dialog.SpeakerLabel())
	dst.DrawText(2, 21, w.Dialog.Line1())
	dst.DrawText(2, 22, w.Dialog.Line2())
	if w.Dialog.PromptVisible() {
		dst.Set(28, 23, '>')
	}
}

/*=== Battle ===*/

func (w *World) renderBattle(dst *core.Screen) {
	e := w.Battle

	// Opponent panel. The final boss phase flickers the nameplate.
	if !e.BossDesperate() || w.Frame&2 == 0 {
		dst.DrawText(2, 2, e.EnemyName())
	}
	drawBar(dst, 2, 3, 12, e.Enemy.HP, e.Enemy.MaxHP)
	dst.DrawText(17, 3, fmt.Sprintf("%d/%d", e.Enemy.HP, e.Enemy.MaxHP))
	if e.IsBoss {
		dst.DrawText(2, 4, fmt.Sprintf("SP%d", e.Enemy.SP))
	}

	dst.DrawText(2, 7, fmt.Sprintf("TURN %d", e.Turn))
	dst.DrawTextCentered(9, e.Message)

	// Pilot panel.
	dst.DrawText(2, 12, fmt.Sprintf("%s LV%d", battle.PilotName, w.Stats.Level))
	drawBar(dst, 2, 13, 12, e.Player.HP, e.Player.MaxHP)
	dst.DrawText(17, 13, fmt.Sprintf("%d/%d", e.Player.HP, e.Player.MaxHP))
	sp := ""
	for i := 0; i < e.Player.MaxSP; i++ {
		if i < e.Player.SP {
			sp += "*"
		} else {
			sp += "."
		}
	}
	dst.DrawText(2, 14, "SP "+sp)
	if e.Player.Defending {
		dst.DrawText(10, 14, "GUARD")
	}

	switch e.State {
	case battle.StateItemSelect:
		w.renderItemMenu(dst)
	case battle.StatePlayerTurn:
		w.renderBattleMenu(dst)
	case battle.StateVictory:
		dst.DrawTextCentered(18, fmt.Sprintf("+%d XP", e.XPGained))
		if e.DropItem != rpg.ItemNone {
			dst.DrawTextCentered(19, "GOT "+e.DropItem.Name())
		}
	case battle.StateLevelUp:
		dst.DrawTextCentered(18, e.Message)
	}
}

var menuLabels = [4]string{"ATTACK", "SPECIAL", "DEFEND", "FLEE"}

func (w *World) renderBattleMenu(dst *core.Screen) {
	for i, label := range menuLabels {
		if i == 3 && w.Battle.IsBoss {
			label = "ITEM"
		}
		dst.DrawText(4, 17+i, label)
	}
	w.drawCursor(dst, 2, 17+w.Battle.MenuCursor)
}

func (w *World) renderItemMenu(dst *core.Screen) {
	if len(w.Battle.ItemChoices) == 0 {
		dst.DrawText(4, 17, "NO ITEMS")
		return
	}
	for i, c := range w.Battle.ItemChoices {
		dst.DrawText(4, 17+i, fmt.Sprintf("%-9s x%d", c.Item.Name(), c.Qty))
	}
	w.drawCursor(dst, 2, 17+w.Battle.ItemCursor)
}

/*=== Game over ===*/

func (w *World) renderGameOver(dst *core.Screen) {
	w.drawStars(dst, w.Frame>>3)

	if w.Frame&0x3F >= 0x08 {
		dst.DrawTextCentered(8, "GAME OVER")
	}
	dst.DrawText(6, 10, fmt.Sprintf("LV:%d", w.Stats.Level))
	dst.DrawText(14, 10, fmt.Sprintf("KILLS:%04d", w.Stats.TotalKills))

	dst.DrawText(10, 14, "RETRY ZONE")
	dst.DrawText(10, 16, "TITLE")
	w.drawCursor(dst, 8, 14+w.goCursor*2)
}

/*=== Victory ===*/

func (w *World) renderVictory(dst *core.Screen) {
	dst.DrawTextCentered(5, "VICTORY!")
	// The twist scene recolors the win: same ship saved, heavier line.
	if w.Story.Flags&story.FlagTwistSeen != 0 {
		dst.DrawTextCentered(7, "THE MERIDIAN CARRIES ON.")
	} else {
		dst.DrawTextCentered(7, "THE MERIDIAN IS SAFE!")
	}
	dst.DrawTextCentered(10, "= MISSION STATS =")

	dst.DrawText(6, 12, fmt.Sprintf("LEVEL: %7d", w.Stats.Level))
	dst.DrawText(6, 13, fmt.Sprintf("KILLS: %7d", w.victoryKills))
	dst.DrawText(6, 14, fmt.Sprintf("TIME:  %7s", fmtTime(w.PlayTime)))
	dst.DrawText(6, 15, fmt.Sprintf("SCORE: %7d", w.victoryScore))
	dst.DrawText(6, 16, fmt.Sprintf("COMBO: %7d", w.Collision.Tracker.MaxCombo))

	for i := 0; i < enemy.ZoneCount; i++ {
		dst.DrawText(5+i*8, 18, fmt.Sprintf("Z%d:%c", i+1, RankLetter(w.ZoneRanks[i])))
	}

	if w.Frame&0x1F < 0x10 {
		dst.DrawTextCentered(20, "PRESS START")
	}
}
