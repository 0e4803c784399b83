package race

import "github.com/vovakirdan/racetrack/internal/core"

// StateType is the coarse race phase.
type StateType string

const (
	StateRacing   StateType = "racing"
	StatePaused   StateType = "paused"
	StateFinished StateType = "finished"
	StateAbandon  StateType = "no_winner"
	StateError    StateType = "error"
)

// CarSnapshot is one car as seen by spectators and tests.
type CarSnapshot struct {
	ID         int      `json:"id"`
	X          int      `json:"x"`
	Y          int      `json:"y"`
	VX         int      `json:"vx"`
	VY         int      `json:"vy"`
	Status     string   `json:"status"`
	Color      int      `json:"color"`
	Paint      string   `json:"paint"`
	Moves      int      `json:"moves"`
	Crashes    int      `json:"crashes"`
	RespawnIn  int      `json:"respawn_in,omitempty"` // Ticks until respawn while waiting
	Eliminated bool     `json:"eliminated,omitempty"`
	Trail      [][2]int `json:"trail"`
}

// Snapshot captures the complete race state for determinism testing and
// spectators.
type Snapshot struct {
	Track   string        `json:"track"`
	Title   string        `json:"title"`
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	Tick    uint64        `json:"tick"`
	Turns   int           `json:"turns"`
	Current int           `json:"current"`
	Winner  int           `json:"winner"`
	State   StateType     `json:"state"`
	Outcome string        `json:"outcome"` // Kind of the last turn's outcome
	Cars    []CarSnapshot `json:"cars"`
}

// Snapshot returns the current race snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StateRacing
	switch {
	case g.err != nil:
		state = StateError
	case g.over && g.winner >= 0:
		state = StateFinished
	case g.over:
		state = StateAbandon
	case g.paused:
		state = StatePaused
	}

	s := Snapshot{
		Track:   g.track.ID,
		Title:   g.track.Name,
		Tick:    g.tick,
		Turns:   g.turns,
		Current: g.current,
		Winner:  g.winner,
		State:   state,
		Outcome: g.last.Kind.String(),
	}
	if g.sess == nil {
		return s
	}
	s.Width, s.Height = g.sess.Bounds()

	for id, view := range g.sess.Cars() {
		r := g.racers[id]
		cs := CarSnapshot{
			ID:         view.ID,
			X:          view.Position.X,
			Y:          view.Position.Y,
			VX:         view.Velocity.X,
			VY:         view.Velocity.Y,
			Status:     view.Status.String(),
			Color:      view.Color,
			Paint:      core.PaintFor(view.Color).Name,
			Moves:      r.moves,
			Crashes:    r.crashes,
			Eliminated: r.eliminated,
			Trail:      make([][2]int, len(r.trail)),
		}
		if r.waiting && r.respawnAt > g.tick {
			cs.RespawnIn = int(r.respawnAt - g.tick)
		}
		for i, p := range r.trail {
			cs.Trail[i] = [2]int{p.X, p.Y}
		}
		s.Cars = append(s.Cars, cs)
	}
	return s
}
