package http

import (
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/preston-bernstein/dashboard-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a chi router.
func NewRouter(handler *handlers.Handler) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", handler.Dashboard)
		r.Post("/dashboard/refresh", handler.RefreshDashboard)
		r.Get("/{kind}", handler.Collection)
		r.Get("/{kind}/{id}", handler.Record)
		r.Post("/{kind}/refresh", handler.RefreshCollection)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", handler.Login)
		r.Get("/session", handler.Session)
		r.Post("/logout", handler.Logout)
	})

	r.Get("/preferences", handler.Preferences)
	r.Put("/preferences/theme", handler.SetTheme)
	return r
}
