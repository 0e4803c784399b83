package engine

import (
	"fmt"
	"iter"
	"sync"

	"github.com/vovakirdan/racetrack/internal/core"
)

// Session is one race instance: grid bounds, walls and cars.
//
// The engine expects a single control loop to issue mutations one at a
// time. The lock lets a render goroutine take snapshots while that loop
// runs.
type Session struct {
	mu     sync.RWMutex
	width  int
	height int
	walls  WallStore
	cars   []*Car
}

// NewSession creates an empty session with a width x height grid.
func NewSession(width, height int) (*Session, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("engine: new session %dx%d: %w", width, height, ErrInvalidBounds)
	}
	return &Session{width: width, height: height}, nil
}

// Bounds returns the grid size in cells.
func (s *Session) Bounds() (width, height int) {
	return s.width, s.height
}

// AddWall appends a wall segment to the track.
func (s *Session) AddWall(x1, y1, x2, y2 int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.walls.Add(core.Seg(x1, y1, x2, y2))
}

// Walls iterates over all walls in insertion order.
// The read lock is held while iterating; do not mutate the session from
// inside the loop.
func (s *Session) Walls() iter.Seq[core.Segment] {
	return func(yield func(core.Segment) bool) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		for seg := range s.walls.All() {
			if !yield(seg) {
				return
			}
		}
	}
}

// WallCount returns the number of walls.
func (s *Session) WallCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.walls.Len()
}

// AddCar places a new car with zero velocity at (x, y) and returns its id.
// Ids are assigned sequentially from 0.
func (s *Session) AddCar(x, y, color int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := core.Pt(x, y)
	if !s.inBounds(p) {
		return -1, fmt.Errorf("engine: add car at %v: %w", p, ErrOutOfBounds)
	}

	car := &Car{id: len(s.cars), color: color}
	car.reset(p)
	s.cars = append(s.cars, car)
	return car.id, nil
}

// CarCount returns the number of cars added so far.
func (s *Session) CarCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cars)
}

// Car returns a snapshot of the car with the given id.
func (s *Session) Car(id int) (CarView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	car, err := s.car(id)
	if err != nil {
		return CarView{}, err
	}
	return car.view(), nil
}

// Cars returns snapshots of all cars in id order.
func (s *Session) Cars() []CarView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]CarView, len(s.cars))
	for i, car := range s.cars {
		views[i] = car.view()
	}
	return views
}

// ResetCar moves a car to (x, y), zeroes its velocity and clears a crash.
func (s *Session) ResetCar(id, x, y int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	car, err := s.car(id)
	if err != nil {
		return err
	}
	p := core.Pt(x, y)
	if !s.inBounds(p) {
		return fmt.Errorf("engine: reset car %d to %v: %w", id, p, ErrOutOfBounds)
	}
	car.reset(p)
	return nil
}

// ApplyAcceleration plays one turn for the car: velocity += (ax, ay), then
// the car moves by its whole velocity and collisions are resolved.
// Collisions are reported in the Outcome, not as errors. Calling this on a
// crashed car is a no-op reported as OutcomeFrozen.
func (s *Session) ApplyAcceleration(id, ax, ay int) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	car, err := s.car(id)
	if err != nil {
		return Outcome{Other: -1}, err
	}
	return s.resolve(car, core.Vec{X: ax, Y: ay}), nil
}

// car looks up a car by id. Callers hold the lock.
func (s *Session) car(id int) (*Car, error) {
	if id < 0 || id >= len(s.cars) {
		return nil, fmt.Errorf("engine: car %d: %w", id, ErrOutOfRange)
	}
	return s.cars[id], nil
}
