package engine

import (
	"testing"

	"github.com/vovakirdan/racetrack/internal/core"
)

func mustAccel(t *testing.T, s *Session, id, ax, ay int) Outcome {
	t.Helper()
	out, err := s.ApplyAcceleration(id, ax, ay)
	if err != nil {
		t.Fatalf("ApplyAcceleration(%d, %d, %d) failed: %v", id, ax, ay, err)
	}
	return out
}

func TestWallScenario(t *testing.T) {
	s := newTestSession(t, 20, 15)
	s.AddWall(5, 5, 5, 10)
	id := mustAddCar(t, s, 3, 5, 0)

	out := mustAccel(t, s, id, 5, 0)
	if out.Kind != OutcomeWall {
		t.Fatalf("Outcome = %v, expected wall", out.Kind)
	}
	if out.Wall != core.Seg(5, 5, 5, 10) {
		t.Errorf("Outcome.Wall = %v", out.Wall)
	}

	v := mustCar(t, s, id)
	if v.Status != StatusCrashed {
		t.Error("car should be crashed")
	}
	if v.Position != core.Pt(8, 5) {
		t.Errorf("position = %v, expected (8,5)", v.Position)
	}
	if v.Velocity != (core.Vec{X: 5, Y: 0}) {
		t.Errorf("velocity = %v, expected (5,0)", v.Velocity)
	}
}

func TestInertia(t *testing.T) {
	s := newTestSession(t, 100, 100)
	id := mustAddCar(t, s, 0, 0, 0)

	mustAccel(t, s, id, 1, 0)
	mustAccel(t, s, id, 1, 1)
	// velocity now (2,1), position (3,1)
	want := core.Pt(3, 1)
	if got := mustCar(t, s, id).Position; got != want {
		t.Fatalf("position = %v, expected %v", got, want)
	}

	for turn := 0; turn < 10; turn++ {
		if out := mustAccel(t, s, id, 0, 0); out.Kind != OutcomeMoved {
			t.Fatalf("turn %d: outcome %v, expected moved", turn, out.Kind)
		}
		want = want.Add(core.Vec{X: 2, Y: 1})
		v := mustCar(t, s, id)
		if v.Position != want || v.Velocity != (core.Vec{X: 2, Y: 1}) {
			t.Fatalf("turn %d: car = %+v, expected position %v velocity (2,1)", turn, v, want)
		}
	}
}

func TestZeroVelocityTurn(t *testing.T) {
	s := newTestSession(t, 10, 10)
	id := mustAddCar(t, s, 4, 4, 0)

	out := mustAccel(t, s, id, 0, 0)
	if out.Kind != OutcomeMoved {
		t.Errorf("standing still should be a valid turn, got %v", out.Kind)
	}
	if v := mustCar(t, s, id); v.Position != core.Pt(4, 4) || v.Status != StatusNormal {
		t.Errorf("car = %+v", v)
	}
}

func TestBoundaryCrash(t *testing.T) {
	tests := []struct {
		name   string
		start  core.Point
		ax, ay int
		want   core.Point
	}{
		{"left edge", core.Pt(0, 3), -1, 0, core.Pt(-1, 3)},
		{"right edge", core.Pt(9, 3), 1, 0, core.Pt(10, 3)},
		{"top edge", core.Pt(3, 0), 0, -1, core.Pt(3, -1)},
		{"bottom edge", core.Pt(3, 7), 0, 1, core.Pt(3, 8)},
		{"far overshoot", core.Pt(5, 5), 9, 9, core.Pt(14, 14)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession(t, 10, 8)
			id := mustAddCar(t, s, tc.start.X, tc.start.Y, 0)

			out := mustAccel(t, s, id, tc.ax, tc.ay)
			if out.Kind != OutcomeBoundary {
				t.Fatalf("Outcome = %v, expected boundary", out.Kind)
			}
			v := mustCar(t, s, id)
			if v.Status != StatusCrashed {
				t.Error("car should be crashed")
			}
			if v.Position != tc.want {
				t.Errorf("position = %v, expected committed endpoint %v", v.Position, tc.want)
			}

			// Never reverts without a reset
			for i := 0; i < 3; i++ {
				if out := mustAccel(t, s, id, -tc.ax, -tc.ay); out.Kind != OutcomeFrozen {
					t.Errorf("crashed car outcome = %v, expected frozen", out.Kind)
				}
			}
			after := mustCar(t, s, id)
			if after != v {
				t.Errorf("crashed car changed: %+v -> %+v", v, after)
			}
		})
	}
}

func TestLastCellIsInBounds(t *testing.T) {
	s := newTestSession(t, 10, 8)
	id := mustAddCar(t, s, 0, 0, 0)

	mustAccel(t, s, id, 9, 7)
	if v := mustCar(t, s, id); v.Status != StatusNormal || v.Position != core.Pt(9, 7) {
		t.Errorf("moving to the last cell should succeed, got %+v", v)
	}
}

func TestWallTouchIsCrash(t *testing.T) {
	s := newTestSession(t, 20, 20)
	s.AddWall(5, 0, 5, 4)
	id := mustAddCar(t, s, 1, 6, 0)

	// Path (1,6)->(5,4) ends exactly on the wall's lower endpoint
	out := mustAccel(t, s, id, 4, -2)
	if out.Kind != OutcomeWall {
		t.Errorf("touching a wall endpoint should crash, got %v", out.Kind)
	}
}

func TestPassingBesideWall(t *testing.T) {
	s := newTestSession(t, 20, 20)
	s.AddWall(5, 0, 5, 4)
	id := mustAddCar(t, s, 1, 5, 0)

	out := mustAccel(t, s, id, 8, 0)
	if out.Kind != OutcomeMoved {
		t.Errorf("path below the wall should be clear, got %v", out.Kind)
	}
}

func TestMutualCrash(t *testing.T) {
	s := newTestSession(t, 20, 15)
	a := mustAddCar(t, s, 1, 1, 0)
	b := mustAddCar(t, s, 4, 1, 1)
	c := mustAddCar(t, s, 6, 1, 2)

	out := mustAccel(t, s, a, 5, 0)
	if out.Kind != OutcomeCar {
		t.Fatalf("Outcome = %v, expected car", out.Kind)
	}
	if out.Other != b {
		t.Errorf("Outcome.Other = %d, expected %d (first car on the path)", out.Other, b)
	}

	va, vb, vc := mustCar(t, s, a), mustCar(t, s, b), mustCar(t, s, c)
	if !va.Crashed() || !vb.Crashed() {
		t.Errorf("both cars should crash: a=%v b=%v", va.Status, vb.Status)
	}
	if vc.Crashed() {
		t.Error("only one other car is involved in a mutual crash")
	}
	if vb.Position != core.Pt(4, 1) {
		t.Errorf("hit car should stay in place, got %v", vb.Position)
	}
	if va.Position != core.Pt(6, 1) || va.Velocity != (core.Vec{X: 5, Y: 0}) {
		t.Errorf("mover should commit its trajectory, got %+v", va)
	}
}

func TestDirectOccupancyCrash(t *testing.T) {
	s := newTestSession(t, 20, 15)
	a := mustAddCar(t, s, 1, 1, 0)
	b := mustAddCar(t, s, 3, 3, 0)

	out := mustAccel(t, s, a, 2, 2)
	if out.Kind != OutcomeCar || out.Other != b {
		t.Fatalf("landing on a car should crash both, got %+v", out)
	}
}

func TestCrashedCarIsNotAnObstacle(t *testing.T) {
	s := newTestSession(t, 20, 15)
	a := mustAddCar(t, s, 1, 1, 0)
	b := mustAddCar(t, s, 3, 1, 1)
	c := mustAddCar(t, s, 3, 4, 2)

	// c drives up into b; both end up crashed on (3,1)
	if out := mustAccel(t, s, c, 0, -3); out.Kind != OutcomeCar || out.Other != b {
		t.Fatalf("setup: outcome = %+v", out)
	}
	if v := mustCar(t, s, b); !v.Crashed() || v.Position != core.Pt(3, 1) {
		t.Fatalf("setup: b = %+v", v)
	}

	out := mustAccel(t, s, a, 3, 0)
	if out.Kind != OutcomeMoved {
		t.Errorf("crashed cars are skipped by the car check, got %v", out.Kind)
	}
}

func TestSharedStartCellCanLeave(t *testing.T) {
	s := newTestSession(t, 20, 15)
	a := mustAddCar(t, s, 2, 2, 0)
	mustAddCar(t, s, 2, 2, 1)

	if out := mustAccel(t, s, a, 1, 0); out.Kind != OutcomeMoved {
		t.Errorf("leaving a shared start cell should not crash, got %+v", out)
	}
}

func TestWallTakesPrecedenceOverCar(t *testing.T) {
	s := newTestSession(t, 20, 15)
	s.AddWall(3, 0, 3, 5)
	a := mustAddCar(t, s, 1, 1, 0)
	b := mustAddCar(t, s, 5, 1, 1)

	out := mustAccel(t, s, a, 4, 0)
	if out.Kind != OutcomeWall {
		t.Fatalf("Outcome = %v, expected wall", out.Kind)
	}
	if mustCar(t, s, b).Crashed() {
		t.Error("a wall crash must only change the mover")
	}
}

func TestDeterminism(t *testing.T) {
	build := func() *Session {
		s := newTestSession(t, 30, 20)
		s.AddWall(10, 0, 10, 12)
		s.AddWall(0, 15, 25, 15)
		mustAddCar(t, s, 2, 2, 0)
		mustAddCar(t, s, 4, 2, 1)
		return s
	}

	inputs := [][3]int{{0, 1, 0}, {1, 1, 0}, {0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1}, {0, 0, 0}}

	s1, s2 := build(), build()
	for _, in := range inputs {
		o1 := mustAccel(t, s1, in[0], in[1], in[2])
		o2 := mustAccel(t, s2, in[0], in[1], in[2])
		if o1 != o2 {
			t.Fatalf("outcomes diverged: %+v vs %+v", o1, o2)
		}
	}
	for id := 0; id < 2; id++ {
		if mustCar(t, s1, id) != mustCar(t, s2, id) {
			t.Errorf("car %d diverged", id)
		}
	}
}

func TestOutcomeCrashed(t *testing.T) {
	crashed := map[OutcomeKind]bool{
		OutcomeMoved:    false,
		OutcomeBoundary: true,
		OutcomeWall:     true,
		OutcomeCar:      true,
		OutcomeFrozen:   false,
	}
	for kind, want := range crashed {
		if got := (Outcome{Kind: kind}).Crashed(); got != want {
			t.Errorf("%v.Crashed() = %v, expected %v", kind, got, want)
		}
	}
}
