package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/upb/talent-portal/app"
	"github.com/upb/talent-portal/utils"
	"go.uber.org/zap"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS middleware; credentials are needed for the session cookie
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "HX-Request", "HX-Current-URL", "HX-Target"},
		ExposedHeaders:   []string{"X-Request-ID", "HX-Location", "HX-Redirect"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoints
	r.Get("/healthz", deps.HealthHandler.HandleHealth)
	r.Get("/readyz", deps.HealthHandler.HandleReadiness)

	if deps.Config.Observability.MetricsEnabled && deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}

	// Everything below runs with the browser session attached
	r.Group(func(r chi.Router) {
		r.Use(deps.SessionMiddleware.LoadSession)

		r.Get("/session", deps.SessionHandler.HandleCurrent)
		r.Post("/session", deps.SessionHandler.HandleLogin)
		r.Post("/logout", deps.SessionHandler.HandleLogout)

		// One guarded route per navigable view
		for _, loc := range deps.Table.Locations() {
			view := loc.Route().View
			if view == nil {
				continue
			}
			r.With(deps.GuardMiddleware.Guard(loc)).Method(http.MethodGet, loc.Path, view)
			deps.Logger.Debug("view route registered",
				zap.String("path", loc.Path),
				zap.String("name", loc.Name),
				zap.Bool("requires_auth", loc.RequiresAuth()))
		}
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "endpoint not found")
	})

	return r
}
