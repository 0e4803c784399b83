package engine

import "github.com/vovakirdan/racetrack/internal/core"

// OutcomeKind classifies the result of one turn.
type OutcomeKind int

const (
	// OutcomeMoved means the car travelled its full velocity without a hit.
	OutcomeMoved OutcomeKind = iota
	// OutcomeBoundary means the car left the grid.
	OutcomeBoundary
	// OutcomeWall means the swept path touched a wall.
	OutcomeWall
	// OutcomeCar means the swept path ran into another car; both crashed.
	OutcomeCar
	// OutcomeFrozen means the car was already crashed and nothing changed.
	OutcomeFrozen
)

// String returns a human-readable name for the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeMoved:
		return "moved"
	case OutcomeBoundary:
		return "boundary"
	case OutcomeWall:
		return "wall"
	case OutcomeCar:
		return "car"
	case OutcomeFrozen:
		return "frozen"
	default:
		return "unknown"
	}
}

// Outcome describes what happened during ApplyAcceleration.
type Outcome struct {
	Kind  OutcomeKind
	Path  core.Segment // Swept path from the old to the new position
	Wall  core.Segment // Wall hit, for OutcomeWall
	Other int          // Other car id, for OutcomeCar; -1 otherwise
}

// Crashed reports whether the turn ended in a collision.
func (o Outcome) Crashed() bool {
	switch o.Kind {
	case OutcomeBoundary, OutcomeWall, OutcomeCar:
		return true
	}
	return false
}

// resolve advances one car by acceleration a and applies collision rules.
// Callers hold the session write lock.
//
// Checks run boundary, walls, cars; the first hit decides. On a crash the
// mover still commits its new velocity and the trajectory endpoint, so the
// crash is reported where the car actually ended up.
func (s *Session) resolve(car *Car, a core.Vec) Outcome {
	if car.status == StatusCrashed {
		return Outcome{
			Kind:  OutcomeFrozen,
			Path:  core.Segment{A: car.position, B: car.position},
			Other: -1,
		}
	}

	from := car.position
	velocity := car.velocity.Add(a)
	to := from.Add(velocity)
	out := Outcome{Kind: OutcomeMoved, Path: core.Segment{A: from, B: to}, Other: -1}

	switch {
	case !s.inBounds(to):
		out.Kind = OutcomeBoundary
	default:
		if wall, hit := s.walls.firstHit(out.Path); hit {
			out.Kind = OutcomeWall
			out.Wall = wall
		} else if other := s.carOnPath(car.id, out.Path); other != nil {
			out.Kind = OutcomeCar
			out.Other = other.id
			other.status = StatusCrashed
		}
	}

	car.velocity = velocity
	car.position = to
	if out.Kind != OutcomeMoved {
		car.status = StatusCrashed
	}
	return out
}

// carOnPath returns the lowest-id NORMAL car, other than the mover, whose
// cell lies on the swept path. The path's start cell is the mover's own
// cell and never counts, so cars sharing a start cell can pull away.
func (s *Session) carOnPath(moverID int, path core.Segment) *Car {
	for _, other := range s.cars {
		if other.id == moverID || other.status != StatusNormal {
			continue
		}
		if other.position == path.A {
			continue
		}
		if path.Contains(other.position) {
			return other
		}
	}
	return nil
}

// inBounds reports whether p lies in [0,width) x [0,height).
func (s *Session) inBounds(p core.Point) bool {
	return p.X >= 0 && p.X < s.width && p.Y >= 0 && p.Y < s.height
}
