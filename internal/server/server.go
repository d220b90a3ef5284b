package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mcrawford/cadence/internal/engine"
	"github.com/mcrawford/cadence/internal/store"
)

// Server is the cadence HTTP API server.
type Server struct {
	db      *store.DB
	engine  *engine.Engine
	router  chi.Router
	version string
	started time.Time

	// Fallback window sizes for score and chart queries.
	defaultWindowDays int
	defaultMonthsBack int
}

// New creates a new Server with the given database and version string.
func New(db *store.DB, eng *engine.Engine, version string) *Server {
	s := &Server{
		db:                db,
		engine:            eng,
		version:           version,
		started:           time.Now(),
		defaultWindowDays: 90,
		defaultMonthsBack: 12,
	}
	s.routes()
	return s
}

// SetDefaultWindows overrides the fallback query windows.
func (s *Server) SetDefaultWindows(windowDays, monthsBack int) {
	if windowDays > 0 {
		s.defaultWindowDays = windowDays
	}
	if monthsBack > 0 {
		s.defaultMonthsBack = monthsBack
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/habits", s.handleCreateHabit)
		r.Get("/habits", s.handleListHabits)
		r.Get("/habits/{habitID}", s.handleGetHabit)
		r.Put("/habits/{habitID}", s.handleUpdateHabit)
		r.Delete("/habits/{habitID}", s.handleDeleteHabit)

		r.Put("/habits/{habitID}/completions/{day}", s.handleSetCompletion)
		r.Delete("/habits/{habitID}/completions/{day}", s.handleClearCompletion)

		r.Get("/habits/{habitID}/scores", s.handleScores)
		r.Get("/habits/{habitID}/months", s.handleMonths)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.db.Ping(); err != nil {
		dbOK = false
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"db_path": s.db.Path,
	})
}
