package story

import (
	"github.com/stardrift-dev/stardrift/internal/core"
	"github.com/stardrift-dev/stardrift/internal/game/sfx"
)

// LineMax caps a text row at the dialog box's interior width. Longer script
// strings are truncated rather than overflowing the box.
const LineMax = 26

// typeSpeed is frames per revealed character.
const typeSpeed = 2

type dialogState uint8

const (
	dlgInactive dialogState = iota
	dlgTyping
	dlgWait
)

// Dialog plays one script page by page with a typewriter reveal. Confirm
// fast-fills the current page while typing and advances pages once the text
// is fully shown. The caller owns the surrounding mode switch (halting the
// flight, resuming scroll after close); Dialog only runs the text.
type Dialog struct {
	state dialogState

	script *Script
	page   int

	charPos   int // characters revealed, counted across both rows
	typeTimer int
	total     int
	line1Len  int
	line2Len  int

	promptBlink int

	sounds *sfx.Queue
}

// NewDialog returns an idle dialog engine.
func NewDialog(sounds *sfx.Queue) *Dialog {
	return &Dialog{sounds: sounds}
}

// Active reports whether a script is currently playing.
func (d *Dialog) Active() bool {
	return d.state != dlgInactive
}

// Open begins playing a script from its first page. Nil or empty scripts
// are ignored.
func (d *Dialog) Open(script *Script) {
	if script == nil || len(script.Lines) == 0 {
		return
	}
	d.script = script
	d.page = 0
	d.startPage()
}

func (d *Dialog) startPage() {
	line := d.script.Lines[d.page]
	d.line1Len = clampLen(line.Text1)
	d.line2Len = clampLen(line.Text2)
	d.total = d.line1Len + d.line2Len
	d.charPos = 0
	d.typeTimer = 0
	d.promptBlink = 0
	d.state = dlgTyping
}

func clampLen(s string) int {
	if len(s) > LineMax {
		return LineMax
	}
	return len(s)
}

// charAt returns the page character at pos, reading across both rows.
func (d *Dialog) charAt(pos int) byte {
	line := d.script.Lines[d.page]
	if pos < d.line1Len {
		return line.Text1[pos]
	}
	return line.Text2[pos-d.line1Len]
}

// Update advances the typewriter or the page-wait prompt one frame.
// Returns true while the dialog is showing, false once the last page has
// been dismissed.
func (d *Dialog) Update(in core.InputFrame) bool {
	switch d.state {
	case dlgTyping:
		if in.WasPressed(core.ActionConfirm) {
			d.charPos = d.total
			d.state = dlgWait
			return true
		}

		d.typeTimer++
		if d.typeTimer >= typeSpeed {
			d.typeTimer = 0
			d.charPos++
			d.sounds.Push(sfx.DialogBlip)

			// Spaces reveal for free so the cadence only pauses on
			// visible characters.
			for d.charPos < d.total && d.charAt(d.charPos) == ' ' {
				d.charPos++
			}
			if d.charPos >= d.total {
				d.state = dlgWait
			}
		}
		return true

	case dlgWait:
		d.promptBlink++
		if in.WasPressed(core.ActionConfirm) {
			d.sounds.Push(sfx.MenuSelect)
			d.page++
			if d.page >= len(d.script.Lines) {
				d.state = dlgInactive
				d.script = nil
				return false
			}
			d.startPage()
		}
		return true
	}
	return false
}

// SpeakerLabel returns the bracketed speaker name for the current page,
// empty when no one is speaking or no script is active.
func (d *Dialog) SpeakerLabel() string {
	if d.state == dlgInactive {
		return ""
	}
	name := d.script.Lines[d.page].Speaker.Name()
	if name == "" {
		return ""
	}
	return "[" + name + "]"
}

// Line1 returns the revealed prefix of the page's top row.
func (d *Dialog) Line1() string {
	if d.state == dlgInactive {
		return ""
	}
	n := d.charPos
	if n > d.line1Len {
		n = d.line1Len
	}
	return d.script.Lines[d.page].Text1[:n]
}

// Line2 returns the revealed prefix of the page's bottom row.
func (d *Dialog) Line2() string {
	if d.state == dlgInactive {
		return ""
	}
	n := d.charPos - d.line1Len
	if n < 0 {
		n = 0
	}
	if n > d.line2Len {
		n = d.line2Len
	}
	return d.script.Lines[d.page].Text2[:n]
}

// PromptVisible reports whether the advance arrow should draw this frame.
// It blinks on a 32-frame cycle once the page is fully revealed.
func (d *Dialog) PromptVisible() bool {
	return d.state == dlgWait && d.promptBlink&0x1F < 0x10
}
