package spectate

import (
	"encoding/json"
	"testing"

	"github.com/vovakirdan/racetrack/internal/core"
	"github.com/vovakirdan/racetrack/internal/race"
	"github.com/vovakirdan/racetrack/internal/track"
)

func snapshot(trackID string, turns int) race.Snapshot {
	return race.Snapshot{
		Track:  trackID,
		Title:  "Test",
		Width:  20,
		Height: 15,
		Turns:  turns,
		Winner: -1,
		State:  race.StateRacing,
		Cars: []race.CarSnapshot{
			{ID: 0, X: 2, Y: 5, VX: 1, Status: "normal", Trail: [][2]int{{1, 5}, {2, 5}}},
		},
	}
}

// fakeClient is a subscriber with no connection behind it.
func fakeClient(h *Hub, trackID string, buffer int) *client {
	return &client{hub: h, send: make(chan []byte, buffer), track: trackID}
}

func decode(t *testing.T, data []byte) Message {
	t.Helper()
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("cannot decode %q: %v", data, err)
	}
	return msg
}

func TestHubLatest(t *testing.T) {
	hub := NewHub(nil)

	if _, ok := hub.Latest("track1"); ok {
		t.Error("empty hub should have no snapshot")
	}

	hub.RaceUpdated(snapshot("track2", 1))
	hub.RaceUpdated(snapshot("track1", 1))
	hub.RaceUpdated(snapshot("track1", 2))

	s, ok := hub.Latest("track1")
	if !ok || s.Turns != 2 {
		t.Errorf("Latest(track1) = %+v, %v; expected turn 2", s, ok)
	}

	all := hub.All()
	if len(all) != 2 || all[0].Track != "track1" || all[1].Track != "track2" {
		t.Errorf("All() = %+v, expected track1 then track2", all)
	}
}

func TestHubGreetsNewClient(t *testing.T) {
	hub := NewHub(nil)

	waiting := fakeClient(hub, "track1", 4)
	if !hub.add(waiting) {
		t.Fatal("add() failed on an open hub")
	}
	if msg := decode(t, <-waiting.send); msg.Event != EventWaiting || msg.Snapshot != nil {
		t.Errorf("greeting = %+v, expected waiting", msg)
	}

	hub.RaceUpdated(snapshot("track1", 3))
	<-waiting.send

	late := fakeClient(hub, "track1", 4)
	hub.add(late)
	msg := decode(t, <-late.send)
	if msg.Event != EventSnapshot || msg.Snapshot == nil || msg.Snapshot.Turns != 3 {
		t.Errorf("greeting = %+v, expected the latest snapshot", msg)
	}
}

func TestHubBroadcastsPerTrack(t *testing.T) {
	hub := NewHub(nil)

	a := fakeClient(hub, "track1", 4)
	b := fakeClient(hub, "track1", 4)
	other := fakeClient(hub, "track2", 4)
	for _, c := range []*client{a, b, other} {
		hub.add(c)
		<-c.send // Greeting
	}

	if n := hub.Spectators("track1"); n != 2 {
		t.Errorf("Spectators(track1) = %d, expected 2", n)
	}

	hub.RaceUpdated(snapshot("track1", 1))

	for _, c := range []*client{a, b} {
		select {
		case data := <-c.send:
			msg := decode(t, data)
			if msg.Track != "track1" || msg.Snapshot.Cars[0].X != 2 {
				t.Errorf("message = %+v", msg)
			}
		default:
			t.Error("track1 spectator got nothing")
		}
	}

	select {
	case data := <-other.send:
		t.Errorf("track2 spectator got %s", data)
	default:
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub(nil)

	slow := fakeClient(hub, "track1", 1)
	hub.add(slow) // Greeting fills the queue

	hub.RaceUpdated(snapshot("track1", 1))

	if n := hub.Spectators("track1"); n != 0 {
		t.Errorf("slow client should be dropped, %d left", n)
	}

	<-slow.send
	if _, ok := <-slow.send; ok {
		t.Error("dropped client's queue should be closed")
	}
}

func TestHubClose(t *testing.T) {
	hub := NewHub(nil)
	c := fakeClient(hub, "track1", 4)
	hub.add(c)
	<-c.send

	hub.Close()

	if _, ok := <-c.send; ok {
		t.Error("Close() should close client queues")
	}
	if hub.add(fakeClient(hub, "track1", 4)) {
		t.Error("add() should fail after Close()")
	}

	hub.RaceUpdated(snapshot("track1", 1))
	if _, ok := hub.Latest("track1"); ok {
		t.Error("updates after Close() should be ignored")
	}
}

func TestHubObservesRace(t *testing.T) {
	tracks, err := track.Builtin()
	if err != nil {
		t.Fatalf("Builtin() failed: %v", err)
	}

	hub := NewHub(nil)
	race.SetObserver(hub)
	t.Cleanup(func() { race.SetObserver(nil) })

	g := race.New(tracks[0])
	g.Reset(core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60, Players: 2})

	s, ok := hub.Latest(tracks[0].ID)
	if !ok {
		t.Fatal("reset should publish a snapshot")
	}
	if len(s.Cars) != 2 || s.Turns != 0 {
		t.Errorf("snapshot = %+v", s)
	}

	in := core.NewInputFrame()
	in.Set(core.ActionCoast)
	g.Step(in)

	s, _ = hub.Latest(tracks[0].ID)
	if s.Turns != 1 {
		t.Errorf("after one turn snapshot has %d turns", s.Turns)
	}
}
