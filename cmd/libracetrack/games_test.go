//go:build cgo

package main

import (
	"testing"

	"github.com/vovakirdan/racetrack/internal/engine"
)

func TestGameLifecycle(t *testing.T) {
	h := newGame(20, 15)
	if h == 0 {
		t.Fatal("newGame() returned the null handle")
	}
	defer deleteGame(h)

	addWall(h, 10, 0, 10, 14)
	addCar(h, 1, 5, 2)
	if n := carCount(h); n != 1 {
		t.Fatalf("carCount() = %d, expected 1", n)
	}

	// x goes 2, 4, 7 and stays left of the wall at x=10
	for range 3 {
		updateCar(h, 0, 1, 0)
	}
	got := carData(h, 0)
	want := engine.CarRecord{X: 7, Y: 5, VX: 3, VY: 0, Status: 0, Color: 2}
	if got != want {
		t.Errorf("after three turns = %+v, expected %+v", got, want)
	}

	// The fourth turn ends at 11, across the wall
	updateCar(h, 0, 1, 0)
	if got := carData(h, 0); got.Status != int32(engine.StatusCrashed) {
		t.Errorf("expected a crash, got %+v", got)
	}

	resetCar(h, 0, 1, 5)
	if got := carData(h, 0); got != (engine.CarRecord{X: 1, Y: 5, Color: 2}) {
		t.Errorf("after reset = %+v", got)
	}
}

func TestUnknownHandlesAreIgnored(t *testing.T) {
	const bogus engine.Handle = 987654

	addWall(bogus, 0, 0, 1, 1)
	if id := addCar(bogus, 1, 1, 0); id != -1 {
		t.Errorf("addCar() on an unknown game = %d, expected -1", id)
	}
	updateCar(bogus, 0, 1, 1)
	resetCar(bogus, 0, 0, 0)
	deleteGame(bogus)

	if n := carCount(bogus); n != 0 {
		t.Errorf("carCount() = %d, expected 0", n)
	}
	if r := carData(bogus, 0); r != engine.InvalidRecord {
		t.Errorf("carData() = %+v, expected the invalid record", r)
	}
}

func TestUnknownCarIndex(t *testing.T) {
	h := newGame(10, 10)
	defer deleteGame(h)
	addCar(h, 1, 1, 0)

	for _, index := range []int{-1, 1, 50} {
		if r := carData(h, index); r != engine.InvalidRecord {
			t.Errorf("carData(%d) = %+v, expected the invalid record", index, r)
		}
		updateCar(h, index, 1, 0)
	}
	if r := carData(h, 0); r.X != 1 || r.VX != 0 {
		t.Errorf("car 0 should be untouched, got %+v", r)
	}
}

func TestOffGridCarIsDropped(t *testing.T) {
	h := newGame(10, 10)
	defer deleteGame(h)

	tests := []struct {
		x, y   int
		wantID int
	}{
		{1, 1, 0},
		{10, 5, -1}, // x == width
		{-1, 5, -1},
		{5, 12, -1},
		{8, 8, 1}, // Takes the next free index
	}
	for _, tt := range tests {
		if got := addCar(h, tt.x, tt.y, 3); got != tt.wantID {
			t.Errorf("addCar(%d, %d) = %d, expected %d", tt.x, tt.y, got, tt.wantID)
		}
	}

	if n := carCount(h); n != 2 {
		t.Fatalf("carCount() = %d, expected 2", n)
	}
	if r := carData(h, 1); r.X != 8 || r.Y != 8 {
		t.Errorf("car 1 = %+v, expected the car at (8,8)", r)
	}
	if r := carData(h, 2); r != engine.InvalidRecord {
		t.Errorf("car 2 = %+v, expected the invalid record", r)
	}
}

func TestDeletedGameIsGone(t *testing.T) {
	h := newGame(10, 10)
	addCar(h, 1, 1, 0)
	deleteGame(h)

	if r := carData(h, 0); r != engine.InvalidRecord {
		t.Errorf("deleted game still answers: %+v", r)
	}
}

func TestInvalidBounds(t *testing.T) {
	if h := newGame(0, 10); h != 0 {
		deleteGame(h)
		t.Errorf("newGame(0, 10) = %d, expected the null handle", h)
	}
}
