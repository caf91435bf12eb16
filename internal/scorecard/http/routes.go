package scorecardhttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// EvaluatePath is the stateless evaluation endpoint. It does not touch
// the session and is exempt from CSRF checks.
const EvaluatePath = "/api/evaluate"

// MountRoutes registers the dashboard and API endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Get("/", h.handleDashboard)
	r.Post("/main", h.handleMain)
	r.Post("/employees", h.handleEmployees)
	r.Post("/metrics", h.handleAdd)
	r.Post("/metrics/{id}", h.handleUpdate)
	r.Post("/metrics/{id}/delete", h.handleRemove)
	r.Post("/reset", h.handleReset)

	limiter := httprate.Limit(h.opts.EvaluateRateLimit, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)

	r.Route("/api", func(api chi.Router) {
		if len(h.opts.AllowedOrigins) > 0 {
			api.Use(cors.Handler(cors.Options{
				AllowedOrigins:   h.opts.AllowedOrigins,
				AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
				AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
				AllowCredentials: false,
				MaxAge:           300,
			}))
		}
		api.Get("/scorecard", h.handleAPIState)
		api.Patch("/scorecard/metrics/{id}", h.handleAPIUpdate)
		api.Delete("/scorecard/metrics/{id}", h.handleAPIRemove)
		api.With(limiter).Post("/evaluate", h.handleAPIEvaluate)
	})
}
