package engine

import (
	"iter"

	"github.com/vovakirdan/racetrack/internal/core"
)

// WallStore is an append-only set of wall segments.
type WallStore struct {
	walls []core.Segment
}

// Add appends a wall segment. Walls are never removed.
func (w *WallStore) Add(seg core.Segment) {
	w.walls = append(w.walls, seg)
}

// All returns a restartable, read-only iteration over the walls in
// insertion order.
func (w *WallStore) All() iter.Seq[core.Segment] {
	return func(yield func(core.Segment) bool) {
		for _, seg := range w.walls {
			if !yield(seg) {
				return
			}
		}
	}
}

// Len returns the number of walls.
func (w *WallStore) Len() int {
	return len(w.walls)
}

// firstHit returns the first wall crossed by the swept segment.
func (w *WallStore) firstHit(path core.Segment) (core.Segment, bool) {
	for seg := range w.All() {
		if path.Intersects(seg) {
			return seg, true
		}
	}
	return core.Segment{}, false
}
