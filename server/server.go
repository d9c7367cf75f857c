// Package server exposes the layout engine over HTTP: in-memory game
// sessions that accept judged turns and hand back drawable frames. Nothing
// is persisted; a restart discards every session, matching the engine's
// no-durable-state contract.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/beadgame/beadgraph/game"
	"github.com/beadgame/beadgraph/physics"
	"github.com/beadgame/beadgraph/render"
	"github.com/beadgame/beadgraph/view"
)

// Config configures the server.
type Config struct {
	Addr   string
	Logger *log.Logger
	Params physics.Params

	// Default viewport for new games; individual games may override at
	// creation and resize later.
	Width  float64
	Height float64
}

// session binds one game's state to its graph view. The server owns the
// history; the view only ever consumes it.
type session struct {
	ID            string            `json:"id"`
	OriginalTopic string            `json:"originalTopic"`
	CurrentTopic  string            `json:"currentTopic"`
	History       []game.Turn       `json:"history"`
	Connections   []game.Connection `json:"connections,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`

	view *view.GraphView
}

// Server is the HTTP front end.
type Server struct {
	cfg      Config
	logger   *log.Logger
	validate *validator.Validate

	mu       sync.RWMutex
	sessions map[string]*session

	httpServer *http.Server
}

// New creates a server.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Params.Iterations == 0 {
		cfg.Params = physics.DefaultParams()
	}
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	return &Server{
		cfg:      cfg,
		logger:   cfg.Logger,
		validate: validator.New(),
		sessions: make(map[string]*session),
	}
}

// Router builds the chi router with all game routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/games", func(r chi.Router) {
		r.Post("/", s.handleCreateGame)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetGame)
			r.Delete("/", s.handleDeleteGame)
			r.Post("/turns", s.handleAppendTurn)
			r.Post("/connections", s.handleAddConnection)
			r.Post("/resize", s.handleResize)
			r.Post("/select", s.handleSelect)
			r.Get("/frame", s.handleFrame)
		})
	})

	return r
}

// Start runs the HTTP server until the context is canceled.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.closeAllSessions()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) closeAllSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		sess.view.Close()
		delete(s.sessions, id)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"elapsed", time.Since(start).Round(time.Millisecond),
		)
	})
}

func (s *Server) getSession(id string) *session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id]
}

// snapshotSession copies the session's game state under the lock so the
// copy can be marshaled while writers keep appending. The history slice is
// append-only, so a copied header is safe to walk.
func (s *Server) snapshotSession(sess *session) session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *sess
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if !s.decode(w, r, &req) {
		return
	}

	width, height := s.cfg.Width, s.cfg.Height
	if req.Width > 0 {
		width = req.Width
	}
	if req.Height > 0 {
		height = req.Height
	}

	sess := &session{
		ID:            uuid.New().String(),
		OriginalTopic: req.OriginalTopic,
		CurrentTopic:  req.OriginalTopic,
		CreatedAt:     time.Now(),
		view: view.New(req.OriginalTopic, view.Config{
			Width:  width,
			Height: height,
			Params: s.cfg.Params,
		}),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Info("game created", "id", sess.ID, "topic", req.OriginalTopic)
	s.respondJSON(w, http.StatusCreated, s.snapshotSession(sess))
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(chi.URLParam(r, "id"))
	if sess == nil {
		s.respondError(w, http.StatusNotFound, "game not found")
		return
	}
	s.respondJSON(w, http.StatusOK, s.snapshotSession(sess))
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	sess := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if sess == nil {
		s.respondError(w, http.StatusNotFound, "game not found")
		return
	}
	sess.view.Close()
	s.logger.Info("game deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAppendTurn(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(chi.URLParam(r, "id"))
	if sess == nil {
		s.respondError(w, http.StatusNotFound, "game not found")
		return
	}

	var req turnRequest
	if !s.decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	turn := req.toTurn(len(sess.History) + 1)
	sess.History = append(sess.History, turn)
	sess.CurrentTopic = turn.Response
	s.mu.Unlock()

	sess.view.AppendTurn(turn)
	s.respondJSON(w, http.StatusCreated, turn)
}

func (s *Server) handleAddConnection(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(chi.URLParam(r, "id"))
	if sess == nil {
		s.respondError(w, http.StatusNotFound, "game not found")
		return
	}

	var req connectionRequest
	if !s.decode(w, r, &req) {
		return
	}

	c := game.Connection{From: *req.From, To: *req.To}
	s.mu.Lock()
	sess.Connections = append(sess.Connections, c)
	s.mu.Unlock()

	sess.view.AddConnection(c)
	s.respondJSON(w, http.StatusCreated, c)
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(chi.URLParam(r, "id"))
	if sess == nil {
		s.respondError(w, http.StatusNotFound, "game not found")
		return
	}

	var req resizeRequest
	if !s.decode(w, r, &req) {
		return
	}

	sess.view.Resize(req.Width, req.Height)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(chi.URLParam(r, "id"))
	if sess == nil {
		s.respondError(w, http.StatusNotFound, "game not found")
		return
	}

	var req selectRequest
	if !s.decode(w, r, &req) {
		return
	}

	n := sess.view.Graph().FindNode(req.NodeID)
	if n == nil {
		s.respondError(w, http.StatusNotFound, "node not found")
		return
	}

	s.mu.RLock()
	var turn *game.Turn
	if n.Turn >= 0 && n.Turn < len(sess.History) {
		t := sess.History[n.Turn]
		turn = &t
	}
	s.mu.RUnlock()

	if turn == nil {
		// The original-topic node has no backing history entry.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.respondJSON(w, http.StatusOK, turn)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(chi.URLParam(r, "id"))
	if sess == nil {
		s.respondError(w, http.StatusNotFound, "game not found")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	renderer, err := render.GetRenderer(format)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Hover is a per-request rendering hint, never stored: concurrent
	// frame fetches with different hover params stay independent.
	out, err := renderer.Render(sess.view.FrameWithHover(r.URL.Query().Get("hover")))
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "rendering failed")
		return
	}

	switch format {
	case "svg":
		w.Header().Set("Content-Type", "image/svg+xml")
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	w.Write(out)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return false
	}
	return true
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "err", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}
