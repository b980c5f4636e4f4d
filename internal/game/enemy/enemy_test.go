package enemy

import (
	"testing"

	"github.com/stardrift-dev/stardrift/internal/game/bullet"
	"github.com/stardrift-dev/stardrift/internal/game/scroll"
	"github.com/stardrift-dev/stardrift/internal/game/sfx"
	"github.com/stardrift-dev/stardrift/internal/game/sprites"
)

func testPool() *Pool {
	part := sprites.DefaultPartition()
	tbl := sprites.NewTable()
	q := &sfx.Queue{}
	bullets := bullet.NewPool(tbl, part.PlayerBullets, part.EnemyBullets, q)
	return NewPool(tbl, part.Enemies, bullets, q)
}

// spawnPlain spawns at a frame that cannot roll the golden variant.
func spawnPlain(p *Pool, t Type, x, y int) *Enemy {
	p.frame = 0
	return p.Spawn(t, x, y)
}

func TestSpawnPoolExhaustion(t *testing.T) {
	p := testPool()
	for i := 0; i < MaxEnemies; i++ {
		if spawnPlain(p, Scout, 100, 10) == nil {
			t.Fatalf("spawn %d failed with free slots", i)
		}
	}
	if spawnPlain(p, Scout, 100, 10) != nil {
		t.Error("spawn on a full pool must return nil")
	}
}

func TestZoneHPScaling(t *testing.T) {
	tests := []struct {
		zone int
		want int
	}{
		{0, 10},
		{1, 15},
		{2, 20},
	}
	for _, tt := range tests {
		p := testPool()
		p.SetZone(tt.zone)
		e := spawnPlain(p, Scout, 100, 10)
		if e.HP != tt.want {
			t.Errorf("zone %d scout HP = %d, want %d", tt.zone, e.HP, tt.want)
		}
	}
}

func TestGoldenVariant(t *testing.T) {
	p := testPool()
	p.frame = 0x07 // golden roll frame
	e := p.Spawn(Scout, 100, 10)
	if !e.Golden {
		t.Fatal("expected a golden spawn on the roll frame")
	}
	if e.HP != 20 {
		t.Errorf("golden scout HP = %d, want 20", e.HP)
	}
}

func TestHeavySpawnsShielded(t *testing.T) {
	p := testPool()
	e := spawnPlain(p, Heavy, 100, 10)
	if !e.Shield {
		t.Fatal("heavy must spawn with a shield")
	}
	if p.Damage(e, 100) {
		t.Error("shielded hit must not kill")
	}
	if e.HP != TypeDefFor(Heavy).MaxHP {
		t.Errorf("shielded hit removed HP: %d", e.HP)
	}
	if !p.Damage(e, 100) {
		t.Error("second hit past the shield should kill")
	}
}

func TestDamageAndDeathFlash(t *testing.T) {
	p := testPool()
	e := spawnPlain(p, Scout, 100, 10)

	if p.Damage(e, 4) {
		t.Fatal("4 damage must not kill a 10 HP scout")
	}
	if e.HP != 6 {
		t.Errorf("HP after 4 damage = %d, want 6", e.HP)
	}

	// Quick kill mid-flash gets the longest blink-out.
	if !p.Damage(e, 6) {
		t.Fatal("lethal hit not reported as kill")
	}
	if e.State != StateDying {
		t.Errorf("state after kill = %v, want dying", e.State)
	}
	if e.flashTimer != 16 {
		t.Errorf("quick kill mid-flash timer = %d, want 16", e.flashTimer)
	}
}

func TestSlowKillShorterFlash(t *testing.T) {
	p := testPool()
	e := spawnPlain(p, Scout, 100, 10)
	e.Age = 100
	e.flashTimer = 0
	p.Damage(e, 10)
	if e.flashTimer != 10 {
		t.Errorf("aged kill timer = %d, want 10", e.flashTimer)
	}
}

func TestDyingExpires(t *testing.T) {
	p := testPool()
	e := spawnPlain(p, Scout, 100, 10)
	e.Age = 100
	e.flashTimer = 0
	p.Damage(e, 10)
	for i := 0; i < 10; i++ {
		p.Update(i, 120, 200)
	}
	if e.State != StateInactive {
		t.Errorf("enemy still %v after blink-out", e.State)
	}
}

func TestSineWeaveStaysCentered(t *testing.T) {
	p := testPool()
	e := spawnPlain(p, Fighter, 120, 10)
	minX, maxX := e.X, e.X
	for i := 0; i < 64; i++ {
		p.Update(i, 120, 200)
		if e.X < minX {
			minX = e.X
		}
		if e.X > maxX {
			maxX = e.X
		}
	}
	if minX < 113 || maxX > 127 {
		t.Errorf("weave range [%d, %d], want within [113, 127]", minX, maxX)
	}
}

func TestHoverDescendsThenStrafes(t *testing.T) {
	p := testPool()
	e := spawnPlain(p, Heavy, 120, 10)
	for i := 0; i < 80; i++ {
		p.Update(i, 120, 200)
	}
	if e.Y != 60 {
		t.Errorf("hover Y = %d, want to hold at 60", e.Y)
	}
	if e.vx == 0 {
		t.Error("hover should be strafing after reaching the guard line")
	}
}

func TestChaseTracksPlayer(t *testing.T) {
	p := testPool()
	e := spawnPlain(p, Elite, 40, 10)
	for i := 0; i < 40; i++ {
		p.Update(i, 200, 200)
	}
	if e.X <= 40 {
		t.Errorf("chaser X = %d, should have moved toward the player", e.X)
	}
}

func TestBottomExitPartialScore(t *testing.T) {
	p := testPool()
	escaped := 0
	p.Hooks.OnEscape = func(score int) { escaped += score }
	e := spawnPlain(p, Scout, 100, 239)
	for i := 0; i < 4; i++ {
		p.Update(i, 120, 200)
	}
	if e.State != StateInactive {
		t.Fatal("enemy should be removed past the bottom margin")
	}
	if want := TypeDefFor(Scout).Score >> 2; escaped != want {
		t.Errorf("escape score = %d, want %d", escaped, want)
	}
}

func TestSideExitNoScore(t *testing.T) {
	p := testPool()
	escaped := 0
	p.Hooks.OnEscape = func(score int) { escaped += score }
	e := spawnPlain(p, Scout, -47, 50)
	e.vx = -0x200
	e.vy = 0
	for i := 0; i < 4; i++ {
		p.Update(i, 120, 200)
	}
	if escaped != 0 {
		t.Errorf("side exit paid %d score, want 0", escaped)
	}
}

func TestFiringCadence(t *testing.T) {
	p := testPool()
	e := spawnPlain(p, Fighter, 120, 10)
	e.vy = 0 // hold on screen
	for i := 0; i < TypeDefFor(Fighter).FireRate+2; i++ {
		p.Update(i, 120, 200)
	}
	shots := 0
	for _, b := range p.bullets.Bullets() {
		if b.Active && b.Owner == bullet.OwnerEnemy {
			shots++
		}
	}
	if shots != 1 {
		t.Errorf("enemy bullets after one fire cycle = %d, want 1", shots)
	}
}

func TestKillAll(t *testing.T) {
	p := testPool()
	for i := 0; i < 5; i++ {
		spawnPlain(p, Scout, 40+i*30, 10)
	}
	p.KillAll()
	for i := range p.Enemies() {
		if p.Enemies()[i].State != StateInactive {
			t.Fatalf("enemy %d still active after KillAll", i)
		}
	}
}

func TestZoneTriggersFitTable(t *testing.T) {
	for zone := 0; zone < ZoneCount; zone++ {
		p := testPool()
		sc := scroll.New()
		p.SetupZoneTriggers(zone, sc)
		// The boss trigger is registered on top of the wave script.
		if err := sc.AddTrigger(4800, func() {}); err != nil {
			t.Errorf("zone %d leaves no room for the boss trigger: %v", zone, err)
		}
	}
}

func TestZoneScriptSpawnsWaves(t *testing.T) {
	p := testPool()
	sc := scroll.New()
	p.SetupZoneTriggers(ZoneDebris, sc)
	spawned := 0
	p.Hooks.OnSpawn = func() { spawned++ }
	sc.SetSpeed(scroll.SpeedFast)
	for i := 0; i < 200; i++ {
		sc.Update()
	}
	// 400 px in: the first two waves (2 + 3 scouts) should have fired,
	// minus any lost to the 8-slot pool (none at this density).
	if spawned != 2 {
		t.Errorf("spawns after 400 px = %d, want 2", spawned)
	}
}

func TestAdaptiveFireRate(t *testing.T) {
	p := testPool()
	// Spawn nine waves on distinct frames; the ninth gets the faster timer.
	var last *Enemy
	for w := 0; w < 9; w++ {
		p.frame = w*2 + 1 // odd frames avoid the golden roll
		last = p.Spawn(Scout, 100, 10)
		p.KillAll()
	}
	base := TypeDefFor(Scout).FireRate
	if want := base - base>>3; last.fireTimer != want {
		t.Errorf("ninth wave fire timer = %d, want %d", last.fireTimer, want)
	}
}
