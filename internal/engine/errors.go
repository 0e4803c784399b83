// Package engine is the racetrack physics and collision engine.
//
// It owns car and wall state for one race session, advances a car's velocity
// and position each turn, and resolves collisions against walls, the grid
// border and other cars. It has no I/O, no rendering and no notion of whose
// turn it is; front-ends drive it through Session or through the handle-based
// Arena.
package engine

import "errors"

var (
	// ErrOutOfRange is returned when a car id was never assigned.
	ErrOutOfRange = errors.New("car id out of range")

	// ErrInvalidSession is returned for unknown or destroyed session handles.
	ErrInvalidSession = errors.New("invalid session handle")

	// ErrOutOfBounds is returned when a car would be placed off the grid.
	ErrOutOfBounds = errors.New("position out of grid bounds")

	// ErrInvalidBounds is returned when a session is created with a
	// non-positive width or height.
	ErrInvalidBounds = errors.New("grid bounds must be positive")
)
