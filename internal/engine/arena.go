package engine

import (
	"fmt"
	"sync"
)

// Handle is an opaque session identifier handed to front-ends.
// Zero is never issued.
type Handle int32

// Arena owns sessions behind integer handles, so callers on the far side of
// a foreign boundary only ever exchange handles and value records.
// Each session remains single-writer; the arena lock only guards the table.
type Arena struct {
	mu       sync.RWMutex
	next     Handle
	sessions map[Handle]*Session
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{
		sessions: make(map[Handle]*Session),
	}
}

// Create makes a new session and returns its handle.
func (a *Arena) Create(width, height int) (Handle, error) {
	sess, err := NewSession(width, height)
	if err != nil {
		return 0, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.next++
	a.sessions[a.next] = sess
	return a.next, nil
}

// Destroy releases a session and everything it owns.
func (a *Arena) Destroy(h Handle) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.sessions[h]; !ok {
		return fmt.Errorf("engine: destroy %d: %w", h, ErrInvalidSession)
	}
	delete(a.sessions, h)
	return nil
}

// Session resolves a handle.
func (a *Arena) Session(h Handle) (*Session, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	sess, ok := a.sessions[h]
	if !ok {
		return nil, fmt.Errorf("engine: session %d: %w", h, ErrInvalidSession)
	}
	return sess, nil
}

// Len returns the number of live sessions.
func (a *Arena) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.sessions)
}

// AddWall appends a wall to the session's track.
func (a *Arena) AddWall(h Handle, x1, y1, x2, y2 int) error {
	sess, err := a.Session(h)
	if err != nil {
		return err
	}
	sess.AddWall(x1, y1, x2, y2)
	return nil
}

// AddCar adds a car to the session and returns its id.
func (a *Arena) AddCar(h Handle, x, y, color int) (int, error) {
	sess, err := a.Session(h)
	if err != nil {
		return -1, err
	}
	return sess.AddCar(x, y, color)
}

// ApplyAcceleration plays one turn for a car in the session.
func (a *Arena) ApplyAcceleration(h Handle, id, ax, ay int) (Outcome, error) {
	sess, err := a.Session(h)
	if err != nil {
		return Outcome{Other: -1}, err
	}
	return sess.ApplyAcceleration(id, ax, ay)
}

// ResetCar resets a car in the session.
func (a *Arena) ResetCar(h Handle, id, x, y int) error {
	sess, err := a.Session(h)
	if err != nil {
		return err
	}
	return sess.ResetCar(id, x, y)
}

// Car returns the fixed-layout record of a car in the session.
func (a *Arena) Car(h Handle, id int) (CarRecord, error) {
	sess, err := a.Session(h)
	if err != nil {
		return InvalidRecord, err
	}
	view, err := sess.Car(id)
	if err != nil {
		return InvalidRecord, err
	}
	return view.Record(), nil
}

// CarCount returns the number of cars in the session.
func (a *Arena) CarCount(h Handle) (int, error) {
	sess, err := a.Session(h)
	if err != nil {
		return 0, err
	}
	return sess.CarCount(), nil
}
