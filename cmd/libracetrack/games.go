//go:build cgo

package main

import "github.com/vovakirdan/racetrack/internal/engine"

// games holds every session created through the C interface.
var games = engine.NewArena()

// newGame returns 0 when the bounds are invalid; the C side sees NULL.
func newGame(width, height int) engine.Handle {
	h, err := games.Create(width, height)
	if err != nil {
		return 0
	}
	return h
}

func deleteGame(h engine.Handle) {
	//nolint:errcheck // Deleting an unknown game is a no-op
	games.Destroy(h)
}

func addWall(h engine.Handle, x1, y1, x2, y2 int) {
	//nolint:errcheck // Unknown games are ignored
	games.AddWall(h, x1, y1, x2, y2)
}

// addCar returns the new car's index, or -1 when the game is unknown or
// the cell is off the grid. Nothing is appended in that case.
func addCar(h engine.Handle, x, y, color int) int {
	id, err := games.AddCar(h, x, y, color)
	if err != nil {
		return -1
	}
	return id
}

func updateCar(h engine.Handle, index, ax, ay int) {
	//nolint:errcheck // Unknown games and cars are ignored
	games.ApplyAcceleration(h, index, ax, ay)
}

func resetCar(h engine.Handle, index, x, y int) {
	//nolint:errcheck // Unknown games and cars are ignored
	games.ResetCar(h, index, x, y)
}

func carData(h engine.Handle, index int) engine.CarRecord {
	r, err := games.Car(h, index)
	if err != nil {
		return engine.InvalidRecord
	}
	return r
}

// carCount is 0 for unknown games.
func carCount(h engine.Handle) int {
	n, err := games.CarCount(h)
	if err != nil {
		return 0
	}
	return n
}
