// Package story holds the mission dialog: the scripts themselves, the
// distance triggers that cue them as a zone scrolls past, and the flags that
// make sure each scene plays exactly once per campaign.
package story

import (
	"github.com/stardrift-dev/stardrift/internal/game/enemy"
	"github.com/stardrift-dev/stardrift/internal/game/scroll"
)

// Speaker identifies who a dialog page is attributed to.
type Speaker uint8

const (
	SpeakerNone Speaker = iota
	SpeakerKai
	SpeakerCommander
	SpeakerEngineer
	SpeakerEnemy
	SpeakerSystem
)

var speakerNames = [...]string{
	SpeakerNone:      "",
	SpeakerKai:       "KAI",
	SpeakerCommander: "COMMANDER",
	SpeakerEngineer:  "ENGINEER",
	SpeakerEnemy:     "ENEMY",
	SpeakerSystem:    "SYSTEM",
}

// Name returns the display name shown above the text box, empty for
// SpeakerNone or an out-of-range value.
func (s Speaker) Name() string {
	if int(s) >= len(speakerNames) {
		return ""
	}
	return speakerNames[s]
}

// Line is one dialog page: a speaker and up to two rows of text. Text2 may
// be empty for short, punchy responses.
type Line struct {
	Speaker Speaker
	Text1   string
	Text2   string
}

// Script is an ordered sequence of pages played as one scene.
type Script struct {
	Lines []Line
}

// Flags packs campaign story progress into one savable word. The upper byte
// tracks which scenes have played; the lower byte holds narrative progress
// that other systems read (the twist changes the ending text).
type Flags uint16

const (
	FlagTwistSeen  Flags = 0x0001
	FlagZone1Clear Flags = 0x0002
	FlagZone2Clear Flags = 0x0004

	FlagIntroSeen Flags = 0x0100
	FlagZone1Mid  Flags = 0x0200
	FlagZone1End  Flags = 0x0400
	FlagZone2Mid  Flags = 0x0800
	FlagZone2End  Flags = 0x1000
	FlagZone3Mid  Flags = 0x2000
)

// Director owns the story flags and raises a pending script when a scroll
// trigger crosses a scene's distance. The flight state polls TakePending
// each frame and opens the dialog overlay when a scene is waiting.
type Director struct {
	Flags   Flags
	pending *Script
}

// Pending reports whether a scene is waiting to be opened.
func (d *Director) Pending() bool {
	return d.pending != nil
}

// TakePending returns the queued script and clears it, or nil.
func (d *Director) TakePending() *Script {
	s := d.pending
	d.pending = nil
	return s
}

// RegisterTriggers appends the zone's story cues to the scroll trigger
// table. Call after the zone's wave script is registered so waves keep
// their slots; the flag guard makes a retried zone skip scenes already
// played.
func (d *Director) RegisterTriggers(zone int, sc *scroll.Scroller) {
	cue := func(dist int, seen Flags, script *Script, extra Flags) {
		_ = sc.AddTrigger(dist, func() {
			if d.Flags&seen != 0 {
				return
			}
			d.Flags |= seen | extra
			d.pending = script
		})
	}

	switch zone {
	case enemy.ZoneDebris:
		cue(150, FlagIntroSeen, &ScriptIntro, 0)
		cue(1550, FlagZone1Mid, &ScriptDebrisMid, 0)
		cue(3300, FlagZone1End, &ScriptFirstContact, 0)
	case enemy.ZoneAsteroid:
		cue(1400, FlagZone2Mid, &ScriptStructure, 0)
		cue(3000, FlagZone2End, &ScriptDecodedSignal, 0)
	case enemy.ZoneFlagship:
		cue(2050, FlagZone3Mid, &ScriptTwist, FlagTwistSeen)
	}
}

// ScriptIntro plays moments into the first zone: mission briefing.
var ScriptIntro = Script{Lines: []Line{
	{SpeakerCommander, "KAI, MERIDIAN ACTUAL.", "DO YOU COPY?"},
	{SpeakerKai, "LOUD AND CLEAR.", ""},
	{SpeakerCommander, "DEBRIS FIELD AHEAD.", "CLEAR US A CORRIDOR."},
}}

// ScriptDebrisMid: the wreckage is not as dead as it looks.
var ScriptDebrisMid = Script{Lines: []Line{
	{SpeakerEngineer, "KAI, I'M READING POWER", "SIGNATURES IN THE DEBRIS."},
	{SpeakerKai, "THIS WRECKAGE IS OLD.", "DECADES OLD."},
	{SpeakerEngineer, "THAT'S THE PROBLEM.", "SOMETHING WOKE IT UP."},
	{SpeakerCommander, "STAY SHARP. MERIDIAN IS", "COUNTING ON YOU."},
}}

// ScriptFirstContact: the enemy speaks for the first time.
var ScriptFirstContact = Script{Lines: []Line{
	{SpeakerSystem, "INCOMING TRANSMISSION", "UNKNOWN ORIGIN"},
	{SpeakerEnemy, "YOU TRESPASS IN OUR", "SPACE, THIEF-SHIP."},
	{SpeakerKai, "THIEF-SHIP? COMMAND,", "ARE YOU HEARING THIS?"},
	{SpeakerCommander, "IGNORE IT. PUNCH", "THROUGH THE BLOCKADE."},
}}

// ScriptStructure: the asteroid belt hides something built.
var ScriptStructure = Script{Lines: []Line{
	{SpeakerEngineer, "THAT ASTEROID ISN'T AN", "ASTEROID."},
	{SpeakerKai, "IT'S A STRUCTURE.", "AND IT'S ACTIVE."},
	{SpeakerEngineer, "IT'S SCANNING MERIDIAN'S", "DRIVE CORE."},
	{SpeakerCommander, "KEEP THEM OFF US.", "WHATEVER IT TAKES."},
}}

// ScriptDecodedSignal: the enemy's demand, and command's non-answer.
var ScriptDecodedSignal = Script{Lines: []Line{
	{SpeakerEngineer, "I DECODED THEIR SIGNAL.", "IT REPEATS ONE PHRASE."},
	{SpeakerEngineer, "'RETURN WHAT IS OURS.'", ""},
	{SpeakerKai, "COMMAND, WHAT ARE THEY", "TALKING ABOUT?"},
	{SpeakerCommander, "THAT'S CLASSIFIED.", ""},
	{SpeakerCommander, "FLAGSHIP DEAD AHEAD.", "FINISH THE MISSION."},
}}

// ScriptTwist is the longest scene in the campaign. It recasts the whole
// war and sets FlagTwistSeen, which the ending text reads.
var ScriptTwist = Script{Lines: []Line{
	{SpeakerEngineer, "KAI... I PULLED THE OLD", "FLEET RECORDS."},
	{SpeakerEngineer, "MERIDIAN'S DRIVE CORE", "WAS NEVER BUILT BY US."},
	{SpeakerEngineer, "ADMIRAL VOSS TOOK IT IN", "A RAID, YEARS AGO."},
	{SpeakerEngineer, "TEN THOUSAND OF THEIR", "PEOPLE DIED FOR IT."},
	{SpeakerKai, "THEN THIS ISN'T AN", "INVASION."},
	{SpeakerKai, "IT'S A RECLAMATION.", ""},
	{SpeakerSystem, "THE FLAGSHIP AWAITS.", "SOME DEBTS COME DUE."},
}}
