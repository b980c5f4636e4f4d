package enemy

import "github.com/stardrift-dev/stardrift/internal/game/scroll"

// Zone identifiers. Progression runs debris field, asteroid belt, flagship
// approach.
const (
	ZoneDebris = iota
	ZoneAsteroid
	ZoneFlagship
	ZoneCount
)

// ZoneName returns the splash title for a zone.
func ZoneName(zone int) string {
	switch zone {
	case ZoneDebris:
		return "DEBRIS FIELD"
	case ZoneAsteroid:
		return "ASTEROID BELT"
	case ZoneFlagship:
		return "FLAGSHIP APPROACH"
	}
	return "DEEP SPACE"
}

// SetupZoneTriggers clears the scroll trigger table and registers the
// zone's wave script plus the fixed bonus-score checkpoints. Wave spacing
// starts around 300 px and tightens through the zone; the final trigger
// slows the scroll for the boss approach. The boss spawn itself is
// registered separately by the flight state.
func (p *Pool) SetupZoneTriggers(zone int, sc *scroll.Scroller) {
	sc.ClearTriggers()

	p.waveCount = 0
	p.waveFrame = -1

	add := func(dist int, fn scroll.TriggerFn) {
		// The script tables below fit the trigger table; an overflow
		// here means a broken wave table, not a runtime state.
		_ = sc.AddTrigger(dist, fn)
	}

	bonus := func() {
		if p.Hooks.OnBonusZone != nil {
			p.Hooks.OnBonusZone()
		}
	}
	zoneEnd := func() {
		sc.TransitionSpeed(scroll.SpeedSlow, false)
		if p.Hooks.OnZoneEnd != nil {
			p.Hooks.OnZoneEnd()
		}
	}

	add(1000, bonus)
	add(2500, bonus)
	add(4000, bonus)

	switch zone {
	case ZoneDebris:
		// Scouts only for the first five waves, then fighters mix in.
		add(300, func() { p.SpawnWave(Scout, 2, 60, -20, 60, 0) })
		add(600, func() { p.SpawnWave(Scout, 3, 40, -20, 50, 0) })
		add(900, func() { p.SpawnFromLeft(Scout, -20) })
		add(1100, func() { p.SpawnFromRight(Scout, -20) })
		add(1400, func() { p.SpawnWave(Scout, 4, 30, -20, 48, 0) })
		add(1700, func() { p.Spawn(Fighter, 120, -32) })
		add(2000, func() { p.SpawnWave(Scout, 3, 50, -30, 60, -10) })
		add(2300, func() {
			// First pincer.
			p.SpawnFromLeft(Scout, -20)
			p.SpawnFromRight(Scout, -20)
		})
		add(2700, func() { p.Spawn(Fighter, 60, -32) })
		add(3100, func() { p.SpawnWave(Scout, 3, 80, -20, 40, 0) })
		add(3500, func() {
			p.Spawn(Fighter, 80, -32)
			p.Spawn(Fighter, 160, -32)
		})
		add(3900, func() { p.SpawnWave(Scout, 5, 20, -20, 44, 0) })
		add(4200, func() {
			p.SpawnFromLeft(Scout, -20)
			p.SpawnWave(Scout, 2, 100, -20, 50, 0)
		})
		add(4500, func() { p.Spawn(Fighter, 120, -32) })
		add(4700, zoneEnd)

	case ZoneAsteroid:
		// Fighters become the baseline; heavies and hazards appear.
		add(300, func() { p.SpawnWave(Fighter, 2, 80, -20, 80, 0) })
		add(600, func() {
			p.SpawnFromLeft(Fighter, -20)
			p.SpawnFromRight(Fighter, -40)
		})
		add(900, func() { p.SpawnWave(Fighter, 3, 40, -20, 60, 0) })
		add(1200, func() { p.Spawn(Heavy, 120, -32) })
		add(1600, func() {
			p.SpawnWave(Fighter, 2, 60, -20, 100, 0)
			p.SpawnFromLeft(Fighter, -40)
		})
		add(2000, func() { p.SpawnVFormation(Fighter, 120, -20) })
		add(2000, p.spawnHazards)
		add(2400, func() {
			p.Spawn(Heavy, 60, -32)
			p.Spawn(Heavy, 180, -32)
		})
		add(2800, func() { p.SpawnWave(Fighter, 3, 50, -30, 60, -10) })
		add(3200, func() {
			p.SpawnFromLeft(Fighter, -20)
			p.SpawnWave(Fighter, 2, 120, -20, 50, 0)
		})
		add(3500, p.spawnHazards)
		add(3600, func() { p.SpawnWave(Fighter, 5, 20, -20, 44, 0) })
		add(4200, func() {
			p.Spawn(Heavy, 120, -32)
			p.SpawnFromRight(Fighter, -20)
		})
		add(4700, zoneEnd)

	case ZoneFlagship:
		// Fewer waves, each one dangerous.
		add(300, func() {
			p.Spawn(Heavy, 80, -32)
			p.Spawn(Heavy, 160, -32)
		})
		add(700, func() { p.SpawnWave(Elite, 2, 60, -20, 120, 0) })
		add(1100, func() {
			p.SpawnFromLeft(Elite, -20)
			p.SpawnFromRight(Elite, -40)
		})
		add(1500, func() { p.SpawnWave(Heavy, 3, 40, -20, 70, 0) })
		add(1900, func() {
			p.Spawn(Elite, 120, -32)
			p.SpawnWave(Heavy, 2, 40, -20, 140, 0)
		})
		add(2300, func() { p.SpawnVFormation(Elite, 120, -20) })
		add(2800, func() {
			p.SpawnFromLeft(Heavy, -20)
			p.SpawnFromRight(Heavy, -20)
			p.Spawn(Elite, 120, -32)
		})
		add(3300, func() {
			p.SpawnWave(Elite, 2, 80, -20, 80, 0)
			p.SpawnWave(Heavy, 2, 40, -40, 160, 0)
		})
		add(3800, func() { p.SpawnWave(Elite, 4, 30, -20, 50, 0) })
		add(4200, func() {
			p.SpawnFromLeft(Elite, -10)
			p.SpawnFromRight(Elite, -20)
			p.SpawnFromLeft(Elite, -30)
			p.SpawnFromRight(Elite, -40)
			p.SpawnFromLeft(Elite, -50)
			p.SpawnFromRight(Elite, -60)
		})
		add(4700, zoneEnd)
	}
}

// spawnHazards drops three invulnerable debris chunks in a diagonal line.
func (p *Pool) spawnHazards() {
	for k := 0; k < 3; k++ {
		if e := p.Spawn(Scout, 40+k*70, -20-k*20); e != nil {
			e.Hazard = true
		}
	}
}
