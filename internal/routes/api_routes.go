package routes

import (
	"github.com/go-chi/chi/v5"

	"ground-experiment/groundlink/internal/api"
	"ground-experiment/groundlink/internal/metrics"
	"ground-experiment/groundlink/internal/middleware"
)

// RegisterAPIRoutes registers all API routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, metricsReg *metrics.MetricsRegistry, handlers *api.Handlers, deps *api.Dependencies) {

	// Real-time event stream; authenticates via query token inside the handler
	r.Get("/ws", handlers.SubscribeEvents())

	r.Route("/api", func(pub chi.Router) {
		pub.Use(middleware.MetricsMiddleware(metricsReg))

		// Public reference data
		pub.Get("/airports", handlers.ListAirports())
		pub.Get("/service-types", handlers.GetServiceTypes())
		pub.Get("/requests/open", handlers.ListOpenRequests())

		// Identity hand-off from the external auth collaborator
		pub.Post("/auth/session", handlers.CreateSession())

		// Authenticated group: everything below requires a session token
		pub.Group(func(authed chi.Router) {
			authed.Use(middleware.AuthMiddleware(deps.Services.Signer, deps.Services.Session))

			authed.Get("/auth/user", handlers.GetAuthUser())

			authed.Get("/requests", handlers.ListRequests())
			authed.Post("/requests", handlers.CreateRequest())
			authed.Post("/requests/{id}/claim", handlers.ClaimRequest())
			authed.Post("/requests/{id}/status", handlers.UpdateRequestStatus())

			authed.Get("/requests/{id}/messages", handlers.ListMessages())
			authed.Post("/requests/{id}/messages", handlers.PostMessage())
		})
	})
}
