// Package sfx models fire-and-forget sound effect requests. The simulation
// pushes effect IDs into a queue each frame; the platform drains the queue
// and maps IDs to whatever audio it has (or drops them).
package sfx

// ID identifies one sound effect.
type ID uint8

const (
	None ID = iota
	PlayerShoot
	EnemyShoot
	Hit
	Explosion
	Heal
	MenuMove
	MenuSelect
	LevelUp
	Graze
	PowerUp
	DialogBlip
	BossAlert
)

// Queue collects the effect IDs requested during one frame.
type Queue struct {
	pending []ID
}

// Push enqueues one effect request.
func (q *Queue) Push(id ID) {
	if id == None {
		return
	}
	q.pending = append(q.pending, id)
}

// Drain returns the pending effects and clears the queue. Called once per
// frame by the platform after Step.
func (q *Queue) Drain() []ID {
	out := q.pending
	q.pending = nil
	return out
}
