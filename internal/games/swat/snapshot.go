package swat

import (
	"time"

	"github.com/vovakirdan/swat-arcade/internal/sim"
)

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick       uint64
	Status     string
	Score      int
	Hits       int
	Population int
	TimeLeft   time.Duration
	Elapsed    time.Duration
	Combo      int
	Positions  []sim.Vec
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	count, _ := g.swarm.Combo()
	positions := make([]sim.Vec, 0, g.swarm.Len())
	for _, e := range g.swarm.Entities() {
		positions = append(positions, e.Pos)
	}
	return Snapshot{
		Tick:       g.tick,
		Status:     g.round.Status().String(),
		Score:      g.swarm.Score(),
		Hits:       g.swarm.Hits(),
		Population: g.swarm.Len(),
		TimeLeft:   g.round.TimeLeft(),
		Elapsed:    g.round.Elapsed(),
		Combo:      count,
		Positions:  positions,
	}
}
