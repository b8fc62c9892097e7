package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store  Store
	log    *slog.Logger
	apiKey string
	now    func() time.Time
	router chi.Router
	lc     WhoIsClient
}

// New creates a new Server with all routes configured. An empty apiKey
// leaves mutating routes open (tailnet-only deployments).
func New(store Store, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		store:  store,
		log:    log,
		apiKey: apiKey,
		now:    time.Now,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.tailscaleIdentity)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/me", s.handleMe)

		r.Get("/sessions", s.handleListSessions)
		r.Get("/sessions/{id}", s.handleGetSession)
		r.Get("/sessions/{id}/last-performance", s.handleLastPerformance)
		r.Get("/sessions/{id}/best-performance", s.handleBestPerformance)

		r.Get("/exercises", s.handleListExercises)
		r.Get("/exercises/{id}", s.handleGetExercise)
		r.Get("/exercises/{id}/progression", s.handleExerciseProgression)

		r.Get("/workouts", s.handleListWorkouts)
		r.Get("/workouts/{id}", s.handleGetWorkout)

		r.Get("/stats", s.handleStats)

		// Mutations, optionally behind the API key.
		r.Group(func(r chi.Router) {
			if s.apiKey != "" {
				r.Use(APIKeyAuth(s.apiKey))
			}

			r.Post("/sessions", s.handleCreateSession)
			r.Put("/sessions/{id}", s.handleUpdateSession)
			r.Delete("/sessions/{id}", s.handleDeleteSession)

			r.Post("/exercises", s.handleCreateExercise)
			r.Put("/exercises/{id}", s.handleUpdateExercise)
			r.Delete("/exercises/{id}", s.handleDeleteExercise)

			r.Post("/workouts", s.handleStartWorkout)
			r.Put("/workouts/{id}", s.handleUpdateWorkout)
			r.Post("/workouts/{id}/complete", s.handleCompleteWorkout)
			r.Delete("/workouts/{id}", s.handleDeleteWorkout)

			r.Post("/sets", s.handleSaveSet)
		})
	})
}
