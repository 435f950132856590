package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"visit-route-service/internal/adapters/cache"
	"visit-route-service/internal/api/handlers"
	"visit-route-service/internal/ports"
	"visit-route-service/internal/services"
)

// Dependencies of the HTTP surface.
type Deps struct {
	Sites      ports.SiteRepository
	Activities ports.ActivityRepository
	History    ports.RouteHistoryRepository
	Directions ports.DirectionsProvider
	Planner    services.PlannerConfig
	// Answer repeated point-to-point lookups within one planning request from memory.
	DedupeOracleCalls bool
	// Pinged by /health when set.
	DB handlers.Pinger
	// Browser origins allowed by CORS; CORS is off when empty.
	CORSOrigins []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(middleware.Recoverer)
	if len(deps.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   deps.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	healthHandler := &handlers.HealthHandler{DB: deps.DB}
	siteHandler := &handlers.SiteHandler{Repo: deps.Sites}
	selectionHandler := &handlers.SelectionHandler{
		Sites:      deps.Sites,
		Activities: deps.Activities,
	}
	routeHandler := &handlers.RouteHandler{
		Sites:      deps.Sites,
		Activities: deps.Activities,
		History:    deps.History,
		Directions: deps.Directions,
		Config:     deps.Planner,
	}
	if deps.DedupeOracleCalls {
		routeHandler.NewLegProvider = func() ports.DistanceProvider {
			return cache.NewMemoDistanceProvider(deps.Directions, nil)
		}
	}

	r.Get("/health", healthHandler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/sites", siteHandler.List)
	r.Post("/selections", selectionHandler.RegisterSites)
	r.Post("/activity-selections", selectionHandler.RegisterActivities)
	r.Get("/routes/optimal", routeHandler.Optimal)
	r.Get("/routes/history", routeHandler.ListHistory)

	return r
}
