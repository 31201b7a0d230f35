package mockapi

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/jask/creatordir/internal/directory"
)

// Server serves the participants API from an in-memory fixture.
type Server struct {
	log zerolog.Logger

	mu           sync.RWMutex
	participants []directory.Participant
	failure      string
	delay        time.Duration
}

// New creates a server for participants.
func New(participants []directory.Participant, log zerolog.Logger) *Server {
	return &Server{
		log:          log.With().Str("component", "mockapi").Logger(),
		participants: participants,
	}
}

// SetFailure makes GET /participants answer 500 with msg. An empty msg restores normal service.
func (s *Server) SetFailure(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = msg
}

// SetDelay holds every participants response for d.
func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// SetParticipants swaps the served collection.
func (s *Server) SetParticipants(participants []directory.Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participants = participants
}

// Register mounts the API routes on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.handleHealth)
	r.Get("/participants", s.handleList)
	r.Get("/participants/{id}", s.handleGet)
}

// Handler returns a router with middleware and routes mounted under prefix.
func (s *Server) Handler(prefix string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	if prefix == "" || prefix == "/" {
		s.Register(r)
		return r
	}
	r.Route(prefix, s.Register)
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	failure, delay := s.failure, s.delay
	participants := s.participants
	s.mu.RUnlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}
	if failure != "" {
		writeError(w, http.StatusInternalServerError, failure)
		return
	}
	if participants == nil {
		participants = []directory.Participant{}
	}
	writeJSON(w, http.StatusOK, participants)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.participants {
		if p.ID == id {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeError(w, http.StatusNotFound, "participant not found")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
