package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server holds the configuration and storage a request handler needs. The
// clock is injectable for the date-bucketing tests.
type Server struct {
	cfg   Config
	store Store
	now   func() time.Time
}

func NewServer(cfg Config, store Store) *Server {
	return &Server{cfg: cfg, store: store, now: time.Now}
}

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	allowedOrigins := []string{"http://localhost:8081"}
	if s.cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, s.cfg.FrontendURL)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.health)
	r.Post("/register", s.register)
	r.Post("/login", s.login)

	// Everything below requires a bearer token.
	r.Group(func(r chi.Router) {
		r.Use(s.AuthMiddleware)

		r.Get("/users/{userId}", s.getUser)

		// The create route's segment is the owning user id; the others take a
		// todo id. chi requires one wildcard name per position.
		r.Post("/todos/{id}", s.createTodo)
		r.Delete("/todos/{id}", s.deleteTodo)
		r.Patch("/todos/{id}/complete", s.completeTodo)
		r.Get("/todos/completed/{date}", s.listCompletedOnDate)

		r.Get("/users/{userId}/todos", s.listTodos)
		r.Get("/users/{userId}/todos/completed/{date}", s.listUserCompletedOnDate)
		r.Get("/users/{userId}/todos/count", s.countTodos)
		r.Get("/users/{userId}/todos/weekly-stats", s.weeklyStats)
		r.Get("/users/{userId}/habits/today", s.todayHabits)

		r.Post("/habits", s.createHabit)
		r.Get("/habitslist", s.listHabits)
		r.Get("/habits/{habitId}", s.getHabit)
		r.Put("/habits/{habitId}", s.updateHabit)
		r.Put("/habits/{habitId}/completed", s.replaceHabitCompleted)
		r.Patch("/habits/{habitId}/days/{day}", s.markHabitDay)
		r.Delete("/habits/{habitId}", s.deleteHabit)
	})

	return r
}
