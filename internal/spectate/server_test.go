package spectate

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/racetrack/internal/race"
)

func TestServerREST(t *testing.T) {
	hub := NewHub(nil)
	hub.RaceUpdated(snapshot("track1", 4))
	server := NewServer(hub, nil)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		check      func(t *testing.T, body []byte)
	}{
		{
			name:       "health",
			path:       "/api/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "list races",
			path:       "/api/races",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var races []race.Snapshot
				if err := json.Unmarshal(body, &races); err != nil {
					t.Fatalf("cannot decode: %v", err)
				}
				if len(races) != 1 || races[0].Turns != 4 {
					t.Errorf("races = %+v", races)
				}
			},
		},
		{
			name:       "get race",
			path:       "/api/races/track1",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var s race.Snapshot
				if err := json.Unmarshal(body, &s); err != nil {
					t.Fatalf("cannot decode: %v", err)
				}
				if s.Track != "track1" || s.Width != 20 || len(s.Cars[0].Trail) != 2 {
					t.Errorf("snapshot = %+v", s)
				}
			},
		},
		{
			name:       "unknown track",
			path:       "/api/races/nowhere",
			wantStatus: http.StatusNotFound,
			check: func(t *testing.T, body []byte) {
				if !strings.Contains(string(body), "nowhere") {
					t.Errorf("error body = %s", body)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			server.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, expected %d", w.Code, tt.wantStatus)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			if tt.check != nil {
				tt.check(t, w.Body.Bytes())
			}
		})
	}
}

func TestServerRejectsWrongMethod(t *testing.T) {
	server := NewServer(NewHub(nil), nil)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/races", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, expected %d", w.Code, http.StatusMethodNotAllowed)
	}
}

func TestServerWrongMethodOnEveryRoute(t *testing.T) {
	server := NewServer(NewHub(nil), nil)

	paths := []string{"/api/health", "/api/races", "/api/races/track1", "/ws/track1"}
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		for _, path := range paths {
			t.Run(method+" "+path, func(t *testing.T) {
				w := httptest.NewRecorder()
				server.ServeHTTP(w, httptest.NewRequest(method, path, nil))
				if w.Code != http.StatusMethodNotAllowed {
					t.Errorf("status = %d, expected %d", w.Code, http.StatusMethodNotAllowed)
				}
			})
		}
	}

	w := httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nothing", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown path status = %d, expected %d", w.Code, http.StatusNotFound)
	}
}

func TestServerShutdownWhileServing(t *testing.T) {
	server := NewServer(NewHub(nil), nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() failed: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- server.Serve(ln) }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v, expected nil after Shutdown", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after Shutdown")
	}
}

func TestServerShutdownWithoutServe(t *testing.T) {
	server := NewServer(NewHub(nil), nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() = %v, expected nil", err)
	}
}

func TestServerWebSocketFeed(t *testing.T) {
	hub := NewHub(nil)
	ts := httptest.NewServer(NewServer(hub, nil))
	defer ts.Close()
	defer hub.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/track1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	defer conn.Close()

	read := func() Message {
		t.Helper()
		//nolint:errcheck // Test deadline
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("ReadJSON() failed: %v", err)
		}
		return msg
	}

	// The greeting arrives once the client is subscribed
	if msg := read(); msg.Event != EventWaiting {
		t.Fatalf("greeting = %+v, expected waiting", msg)
	}

	hub.RaceUpdated(snapshot("track1", 7))
	hub.RaceUpdated(snapshot("track2", 1))
	hub.RaceUpdated(snapshot("track1", 8))

	for _, want := range []int{7, 8} {
		msg := read()
		if msg.Event != EventSnapshot || msg.Track != "track1" || msg.Snapshot.Turns != want {
			t.Errorf("message = %+v, expected track1 turn %d", msg, want)
		}
	}
}
