package scores

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodyBytes bounds a score submission.
const maxBodyBytes = 4 << 10

// Server exposes a Store over HTTP and feeds the live hub.
type Server struct {
	store  Store
	hub    *Hub
	logger *log.Logger
	levels map[string]struct{}
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLevels restricts submissions and queries to the named levels.
func WithLevels(names ...string) ServerOption {
	return func(s *Server) {
		s.levels = make(map[string]struct{}, len(names))
		for _, n := range names {
			s.levels[n] = struct{}{}
		}
	}
}

// WithServerLogger sets the request logger.
func WithServerLogger(l *log.Logger) ServerOption {
	return func(s *Server) { s.logger = l }
}

// NewServer wires a store and hub together.
func NewServer(store Store, hub *Hub, opts ...ServerOption) *Server {
	s := &Server{store: store, hub: hub, logger: log.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Routes configures all routes and returns the router
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Get("/levels", s.ListLevels)
		r.Get("/scores/{level}", s.TopScores)
		r.Post("/scores", s.SubmitScore)
		if s.hub != nil {
			r.Get("/live", s.hub.ServeWS)
		}
	})

	return r
}

func (s *Server) knownLevel(level string) bool {
	if len(s.levels) == 0 {
		return true
	}
	_, ok := s.levels[level]
	return ok
}

// ListLevels handles GET /api/levels
func (s *Server) ListLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := s.store.Levels()
	if err != nil {
		s.logger.Error("failed to list levels", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list levels")
		return
	}
	if levels == nil {
		levels = []string{}
	}
	respondJSON(w, http.StatusOK, levels)
}

// TopScores handles GET /api/scores/{level}?limit=N
func (s *Server) TopScores(w http.ResponseWriter, r *http.Request) {
	level := chi.URLParam(r, "level")
	if !s.knownLevel(level) {
		respondError(w, http.StatusNotFound, "unknown level")
		return
	}

	limit := DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	recs, err := s.store.Top(level, limit)
	switch {
	case errors.Is(err, ErrNotFound):
		recs = []Record{}
	case err != nil:
		s.logger.Error("failed to load scores", "level", level, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load scores")
		return
	}
	respondJSON(w, http.StatusOK, recs)
}

// SubmitScore handles POST /api/scores
func (s *Server) SubmitScore(w http.ResponseWriter, r *http.Request) {
	var rec Record
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !s.knownLevel(rec.Level) {
		respondError(w, http.StatusNotFound, "unknown level")
		return
	}

	saved, err := s.store.Submit(rec)
	switch {
	case errors.Is(err, ErrInvalidRecord):
		respondError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		s.logger.Error("failed to submit score", "level", rec.Level, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save score")
		return
	}

	s.logger.Info("score submitted", "level", saved.Level, "player", saved.Player, "seconds", saved.Seconds)
	if s.hub != nil {
		s.hub.Broadcast(saved)
	}
	respondJSON(w, http.StatusCreated, saved)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("failed to encode response", "error", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
