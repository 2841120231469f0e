package handler

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sportscomplex/class-enrollment/internal/service"
)

// NewRouter assembles the full HTTP surface. Read endpoints require any
// authenticated user; mutations on sports, classes, schedules, and users
// require the admin role. Enrollment is self-service for any caller.
func NewRouter(
	auth *service.AuthService,
	sports *service.SportService,
	classes *service.ClassService,
	users *service.UserService,
) chi.Router {
	authHandler := NewAuthHandler(auth)
	sportHandler := NewSportHandler(sports)
	classHandler := NewClassHandler(classes)
	userHandler := NewUserHandler(users)

	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(Logger)                  // structured access log
	r.Use(CORS)

	r.Get("/health", HealthCheck)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.With(Authenticate(auth)).Get("/me", authHandler.Me)
	})

	r.Route("/sports", func(r chi.Router) {
		r.Use(Authenticate(auth))
		r.Get("/", sportHandler.List)
		r.Get("/{id}", sportHandler.Get)
		r.With(RequireAdmin).Post("/", sportHandler.Create)
		r.With(RequireAdmin).Put("/{id}", sportHandler.Update)
		r.With(RequireAdmin).Delete("/{id}", sportHandler.Delete)
	})

	r.Route("/classes", func(r chi.Router) {
		r.Use(Authenticate(auth))
		r.Get("/", classHandler.List)
		r.Get("/{id}", classHandler.Get)
		r.With(RequireAdmin).Post("/", classHandler.Create)
		r.With(RequireAdmin).Put("/{id}", classHandler.Update)
		r.With(RequireAdmin).Delete("/{id}", classHandler.Delete)

		r.Post("/{id}/register", classHandler.Register)
		r.Delete("/{id}/unregister", classHandler.Unregister)
		r.Get("/{id}/registrations", classHandler.Registrations)

		r.With(RequireAdmin).Post("/{id}/schedules", classHandler.CreateSchedule)
		r.With(RequireAdmin).Delete("/{id}/schedules/{scheduleID}", classHandler.DeleteSchedule)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(Authenticate(auth), RequireAdmin)
		r.Post("/", userHandler.Create)
		r.Get("/", userHandler.List)
		r.Get("/{id}", userHandler.Get)
		r.Put("/{id}", userHandler.Update)
		r.Delete("/{id}", userHandler.Delete)
	})

	return r
}
