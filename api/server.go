/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the dashboard frontend

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/config", func(r chi.Router) {
			r.Get("/", h.GetConfig)
			r.Put("/", h.PutConfig)
		})

		r.Route("/clients", func(r chi.Router) {
			r.Post("/", h.AddClient)
			r.Put("/{id}", h.UpdateClient)
			r.Delete("/{id}", h.RemoveClient)
		})

		r.Get("/metrics", h.GetMetrics)
		r.Get("/forecast", h.GetForecast)
		r.Get("/export", h.Export)

		r.Route("/analyses", func(r chi.Router) {
			r.Get("/", h.ListAnalyses)
			r.Post("/", h.SaveAnalysis)
			r.Get("/{id}", h.GetAnalysis)
			r.Post("/{id}/load", h.LoadAnalysis)
			r.Delete("/{id}", h.DeleteAnalysis)
		})

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Treehouse Financial Dashboard</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Treehouse Financial Dashboard API</h1>
<ul>
<li><a href="/api/config">/api/config</a> - Current configuration</li>
<li><a href="/api/metrics">/api/metrics</a> - Computed metrics snapshot</li>
<li><a href="/api/export">/api/export</a> - Full JSON export</li>
<li><a href="/api/scenarios">/api/scenarios</a> - Demo scenarios</li>
</ul>
</body>
</html>`))
	})

	return r
}
