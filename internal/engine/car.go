package engine

import "github.com/vovakirdan/racetrack/internal/core"

// Status is a car's collision state.
type Status int

const (
	// StatusNormal cars move when accelerated.
	StatusNormal Status = iota
	// StatusCrashed cars are frozen until reset.
	StatusCrashed
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusNormal:
		return "normal"
	case StatusCrashed:
		return "crashed"
	default:
		return "unknown"
	}
}

// Car is the mutable per-car state owned by a Session.
type Car struct {
	id       int
	position core.Point
	velocity core.Vec
	status   Status
	color    int
}

// reset teleports the car and clears its motion and crash state.
func (c *Car) reset(p core.Point) {
	c.position = p
	c.velocity = core.Vec{}
	c.status = StatusNormal
}

// view returns an immutable snapshot of the car.
func (c *Car) view() CarView {
	return CarView{
		ID:       c.id,
		Position: c.position,
		Velocity: c.velocity,
		Status:   c.status,
		Color:    c.color,
	}
}

// CarView is a read-only snapshot of a car returned by value.
type CarView struct {
	ID       int
	Position core.Point
	Velocity core.Vec
	Status   Status
	Color    int
}

// Crashed reports whether the car is frozen.
func (v CarView) Crashed() bool {
	return v.Status == StatusCrashed
}

// Record converts the view to the fixed-layout boundary record.
func (v CarView) Record() CarRecord {
	return CarRecord{
		X:      int32(v.Position.X),
		Y:      int32(v.Position.Y),
		VX:     int32(v.Velocity.X),
		VY:     int32(v.Velocity.Y),
		Status: int32(v.Status),
		Color:  int32(v.Color),
	}
}

// CarRecord is the six-integer record exchanged with foreign front-ends.
// It holds no pointers so it can be copied across a C boundary as is.
type CarRecord struct {
	X, Y   int32
	VX, VY int32
	Status int32
	Color  int32
}

// InvalidRecord is returned across the C boundary for unknown cars.
var InvalidRecord = CarRecord{Status: -1}
