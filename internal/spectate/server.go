package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
)

// Server exposes a Hub over HTTP.
//
//	GET /api/health          liveness
//	GET /api/races           latest snapshot of every track
//	GET /api/races/{track}   latest snapshot of one track
//	GET /ws/{track}          live snapshots over WebSocket
type Server struct {
	hub    *Hub
	router *mux.Router
	logger *log.Logger
	http   *http.Server
}

// NewServer creates a server for hub. A nil logger uses the hub's.
func NewServer(hub *Hub, logger *log.Logger) *Server {
	if logger == nil {
		logger = hub.logger
	}
	s := &Server{
		hub:    hub,
		router: mux.NewRouter(),
		logger: logger,
	}
	s.http = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all routes. They live on the root router so a
// wrong method is answered with 405 rather than 404.
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/api/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/api/races", s.handleListRaces).Methods("GET")
	s.router.HandleFunc("/api/races/{track}", s.handleGetRace).Methods("GET")

	s.router.HandleFunc("/ws/{track}", s.handleWebSocket).Methods("GET")
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until Shutdown is called.
func (s *Server) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown is called. It may run on
// any goroutine; Shutdown can be called before or after it starts.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("spectator feed listening", "address", ln.Addr().String())
	if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown disconnects spectators and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.http.Shutdown(ctx)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // The client may have gone away
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleListRaces(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.hub.All())
}

func (s *Server) handleGetRace(w http.ResponseWriter, r *http.Request) {
	track := mux.Vars(r)["track"]
	snap, ok := s.hub.Latest(track)
	if !ok {
		respondError(w, http.StatusNotFound, "no race on track "+track)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.hub.ServeWS(w, r, mux.Vars(r)["track"])
}
