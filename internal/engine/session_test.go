package engine

import (
	"errors"
	"testing"

	"github.com/vovakirdan/racetrack/internal/core"
)

func newTestSession(t *testing.T, w, h int) *Session {
	t.Helper()
	sess, err := NewSession(w, h)
	if err != nil {
		t.Fatalf("NewSession(%d, %d) failed: %v", w, h, err)
	}
	return sess
}

func mustAddCar(t *testing.T, s *Session, x, y, color int) int {
	t.Helper()
	id, err := s.AddCar(x, y, color)
	if err != nil {
		t.Fatalf("AddCar(%d, %d) failed: %v", x, y, err)
	}
	return id
}

func mustCar(t *testing.T, s *Session, id int) CarView {
	t.Helper()
	v, err := s.Car(id)
	if err != nil {
		t.Fatalf("Car(%d) failed: %v", id, err)
	}
	return v
}

func TestNewSessionInvalidBounds(t *testing.T) {
	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, 5}} {
		if _, err := NewSession(dims[0], dims[1]); !errors.Is(err, ErrInvalidBounds) {
			t.Errorf("NewSession(%d, %d) error = %v, expected ErrInvalidBounds", dims[0], dims[1], err)
		}
	}
}

func TestAddCarSequentialIDs(t *testing.T) {
	s := newTestSession(t, 20, 15)

	for want := 0; want < 4; want++ {
		id := mustAddCar(t, s, want, 1, want)
		if id != want {
			t.Errorf("AddCar returned id %d, expected %d", id, want)
		}
	}
	if s.CarCount() != 4 {
		t.Errorf("CarCount() = %d, expected 4", s.CarCount())
	}

	v := mustCar(t, s, 2)
	if v.Position != core.Pt(2, 1) || !v.Velocity.IsZero() || v.Status != StatusNormal || v.Color != 2 {
		t.Errorf("new car = %+v, expected (2,1) at rest, normal, color 2", v)
	}
}

func TestAddCarOutOfBounds(t *testing.T) {
	s := newTestSession(t, 10, 10)

	if _, err := s.AddCar(10, 0, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("AddCar off grid error = %v, expected ErrOutOfBounds", err)
	}
	if s.CarCount() != 0 {
		t.Error("failed AddCar must not consume an id")
	}
	if id := mustAddCar(t, s, 9, 9, 0); id != 0 {
		t.Errorf("first successful AddCar should get id 0, got %d", id)
	}
}

func TestCarOutOfRange(t *testing.T) {
	s := newTestSession(t, 10, 10)
	mustAddCar(t, s, 1, 1, 0)

	for _, id := range []int{-1, 1, 99} {
		if _, err := s.Car(id); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Car(%d) error = %v, expected ErrOutOfRange", id, err)
		}
		if err := s.ResetCar(id, 0, 0); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("ResetCar(%d) error = %v, expected ErrOutOfRange", id, err)
		}
		if _, err := s.ApplyAcceleration(id, 1, 0); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("ApplyAcceleration(%d) error = %v, expected ErrOutOfRange", id, err)
		}
	}
}

func TestResetCarClearsState(t *testing.T) {
	s := newTestSession(t, 20, 15)
	id := mustAddCar(t, s, 1, 1, 5)

	// Crash the car into the top border
	if _, err := s.ApplyAcceleration(id, 0, -3); err != nil {
		t.Fatalf("ApplyAcceleration failed: %v", err)
	}
	if !mustCar(t, s, id).Crashed() {
		t.Fatal("car should have crashed into the border")
	}

	if err := s.ResetCar(id, 4, 6); err != nil {
		t.Fatalf("ResetCar failed: %v", err)
	}
	v := mustCar(t, s, id)
	want := CarView{ID: id, Position: core.Pt(4, 6), Status: StatusNormal, Color: 5}
	if v != want {
		t.Errorf("after reset = %+v, expected %+v", v, want)
	}

	// Reset twice in a row yields the same snapshot
	if err := s.ResetCar(id, 4, 6); err != nil {
		t.Fatalf("ResetCar failed: %v", err)
	}
	if mustCar(t, s, id) != want {
		t.Error("repeated reset should be idempotent")
	}
}

func TestResetCarOutOfBounds(t *testing.T) {
	s := newTestSession(t, 5, 5)
	id := mustAddCar(t, s, 1, 1, 0)

	if err := s.ResetCar(id, 5, 1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("ResetCar off grid error = %v, expected ErrOutOfBounds", err)
	}
	if mustCar(t, s, id).Position != core.Pt(1, 1) {
		t.Error("rejected reset must leave the car in place")
	}
}

func TestWallsIteration(t *testing.T) {
	s := newTestSession(t, 20, 15)
	s.AddWall(0, 0, 5, 0)
	s.AddWall(5, 0, 5, 5)
	s.AddWall(5, 5, 0, 5)

	if s.WallCount() != 3 {
		t.Fatalf("WallCount() = %d, expected 3", s.WallCount())
	}

	// Restartable: two full passes see the same walls in order
	for pass := 0; pass < 2; pass++ {
		var got []core.Segment
		for w := range s.Walls() {
			got = append(got, w)
		}
		if len(got) != 3 || got[1] != core.Seg(5, 0, 5, 5) {
			t.Errorf("pass %d walls = %v", pass, got)
		}
	}

	// Early break
	n := 0
	for range s.Walls() {
		n++
		break
	}
	if n != 1 {
		t.Errorf("early break visited %d walls", n)
	}
}

func TestCarsSnapshot(t *testing.T) {
	s := newTestSession(t, 20, 15)
	mustAddCar(t, s, 1, 1, 0)
	mustAddCar(t, s, 3, 1, 1)

	views := s.Cars()
	if len(views) != 2 || views[1].ID != 1 || views[1].Position != core.Pt(3, 1) {
		t.Errorf("Cars() = %+v", views)
	}

	// Snapshots are copies
	views[0].Position = core.Pt(9, 9)
	if mustCar(t, s, 0).Position != core.Pt(1, 1) {
		t.Error("mutating a snapshot must not change the session")
	}
}

func TestCarRecord(t *testing.T) {
	v := CarView{Position: core.Pt(8, 5), Velocity: core.Vec{X: 5, Y: -2}, Status: StatusCrashed, Color: 3}
	want := CarRecord{X: 8, Y: 5, VX: 5, VY: -2, Status: 1, Color: 3}
	if got := v.Record(); got != want {
		t.Errorf("Record() = %+v, expected %+v", got, want)
	}
}
