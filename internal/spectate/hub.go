// Package spectate streams live race snapshots to browsers and scripts.
//
// A Hub is installed as the race observer. It keeps the latest snapshot of
// every track and pushes each new one as JSON to the WebSocket clients
// watching that track.
package spectate

import (
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/racetrack/internal/race"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Snapshots queued per client before it is dropped as too slow.
	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Spectating is read-only
		return true
	},
}

// Message is one frame sent to spectators.
type Message struct {
	Event    string         `json:"event"`
	Track    string         `json:"track"`
	Snapshot *race.Snapshot `json:"snapshot,omitempty"`
}

// Event names.
const (
	EventSnapshot = "snapshot"
	EventWaiting  = "waiting" // No race on this track yet
)

// client is one WebSocket spectator.
type client struct {
	hub   *Hub
	conn  *websocket.Conn
	send  chan []byte
	track string
}

// Hub fans race snapshots out to spectators grouped by track.
// All methods are safe for concurrent use.
type Hub struct {
	mu     sync.RWMutex
	tracks map[string]map[*client]bool
	latest map[string]race.Snapshot
	logger *log.Logger
	closed bool
}

// NewHub creates an empty hub. A nil logger discards log output.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		tracks: make(map[string]map[*client]bool),
		latest: make(map[string]race.Snapshot),
		logger: logger,
	}
}

// RaceUpdated records s and broadcasts it. It never blocks on slow
// clients; their queue overflows and they are disconnected.
func (h *Hub) RaceUpdated(s race.Snapshot) {
	data, err := json.Marshal(Message{Event: EventSnapshot, Track: s.Track, Snapshot: &s})
	if err != nil {
		h.logger.Error("cannot encode snapshot", "track", s.Track, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.latest[s.Track] = s

	for c := range h.tracks[s.Track] {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("dropping slow spectator", "track", s.Track)
			h.removeLocked(c)
		}
	}
}

// Latest returns the most recent snapshot for a track.
func (h *Hub) Latest(track string) (race.Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.latest[track]
	return s, ok
}

// All returns the latest snapshot of every track, sorted by track ID.
func (h *Hub) All() []race.Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]race.Snapshot, 0, len(h.latest))
	for _, s := range h.latest {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Track < out[j].Track })
	return out
}

// Spectators returns the number of clients watching a track.
func (h *Hub) Spectators(track string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.tracks[track])
}

// ServeWS upgrades the request and subscribes the connection to track.
// The latest snapshot, if any, is sent right away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, track string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{
		hub:   h,
		conn:  conn,
		send:  make(chan []byte, sendBuffer),
		track: track,
	}
	if !h.add(c) {
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// add registers c and queues its greeting. Returns false once closed.
func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}

	msg := Message{Event: EventWaiting, Track: c.track}
	if s, ok := h.latest[c.track]; ok {
		msg = Message{Event: EventSnapshot, Track: c.track, Snapshot: &s}
	}
	if data, err := json.Marshal(msg); err == nil {
		c.send <- data
	}

	if h.tracks[c.track] == nil {
		h.tracks[c.track] = make(map[*client]bool)
	}
	h.tracks[c.track][c] = true

	h.logger.Info("spectator joined", "track", c.track, "watching", len(h.tracks[c.track]))
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

// removeLocked unsubscribes c and closes its queue. h.mu must be held.
func (h *Hub) removeLocked(c *client) {
	clients, ok := h.tracks[c.track]
	if !ok || !clients[c] {
		return
	}
	delete(clients, c)
	close(c.send)

	if len(clients) == 0 {
		delete(h.tracks, c.track)
	}
	h.logger.Info("spectator left", "track", c.track, "watching", len(clients))
}

// Close disconnects every spectator. Later updates are ignored.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for _, clients := range h.tracks {
		for c := range clients {
			h.removeLocked(c)
		}
	}
}

// readPump drains the connection so pongs and close frames are seen.
func (c *client) readPump() {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	//nolint:errcheck // The deadline is re-armed by every pong
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		// Spectators have nothing to say
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("websocket read error", "error", err)
			}
			return
		}
	}
}

// writePump sends queued snapshots, one WebSocket message each.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			//nolint:errcheck // A failed write below ends the pump
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				//nolint:errcheck // Connection is going away regardless
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			//nolint:errcheck // A failed ping below ends the pump
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
