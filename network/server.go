package network

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/lixenwraith/lane-catcher/engine"
	"github.com/lixenwraith/lane-catcher/status"
)

const shutdownTimeout = 2 * time.Second

// Server exposes the bridge over HTTP
//
//	GET  /ws      websocket: commands in, engine events out
//	GET  /state   current GameState
//	GET  /stats   metrics snapshot
//	POST /start   {"time_limit":N} optional
//	POST /stop
//	GET  /health  liveness
type Server struct {
	cfg      *Config
	hub      *Hub
	game     Game
	stats    *status.Registry
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a server and its hub; stats may be nil
func NewServer(cfg *Config, game Game, stats *status.Registry) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if stats == nil {
		stats = status.NewRegistry()
	}
	return &Server{
		cfg:    cfg,
		hub:    NewHub(cfg, game, stats),
		game:   game,
		stats:  stats,
		logger: cfg.logger(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Local renderers and pose producers run on other origins
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Hub returns the client hub
func (s *Server) Hub() *Hub {
	return s.hub
}

// Bridge returns an observer broadcasting engine events to this server's clients
func (s *Server) Bridge() *Bridge {
	return NewBridge(s.hub)
}

// Routes sets up the HTTP routes
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: s.logger, NoColor: true}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))

	r.Get("/ws", s.handleWS)
	r.Get("/state", s.handleState)
	r.Get("/stats", s.handleStats)
	r.Post("/start", s.handleStart)
	r.Post("/stop", s.handleStop)

	return r
}

// ListenAndServe binds the configured address and serves until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve runs the hub and serves ln until ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go s.hub.Run(ctx)

	srv := &http.Server{
		Handler:           s.Routes(),
		ErrorLog:          s.logger,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Printf("[BRIDGE] listening on %s", ln.Addr())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if s.hub.Count() >= s.cfg.MaxClients {
		s.writeError(w, http.StatusServiceUnavailable, ErrHubFull.Error())
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("[BRIDGE] upgrade: %v", err)
		return
	}

	c := NewClient(s.hub, conn)

	// Late joiners get the current session before the event stream
	// The queue is private to c until join, so nothing can overtake the state message
	if st, err := s.game.State(); err == nil {
		if data, err := json.Marshal(stateMessage{Type: MsgState, State: st}); err == nil {
			select {
			case c.send <- data:
			default:
			}
		}
	}

	if err := s.hub.join(c); err != nil {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error()))
		conn.Close()
		return
	}

	go c.WritePump()
	go c.ReadPump()
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	st, err := s.game.State()
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap := s.stats.Snapshot()
	snap["bridge.clients"] = s.hub.Count()
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TimeLimit int `json:"time_limit"`
	}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
	}

	if err := s.game.Start(req.TimeLimit); err != nil {
		switch {
		case errors.Is(err, engine.ErrInvalidTimeLimit):
			s.writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.writeError(w, http.StatusServiceUnavailable, err.Error())
		}
		return
	}
	s.handleState(w, r)
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	if err := s.game.Stop(); err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	s.handleState(w, r)
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
