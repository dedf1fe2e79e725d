package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/randytsao24/experienceintel/internal/advisor"
	"github.com/randytsao24/experienceintel/internal/api/handlers"
	"github.com/randytsao24/experienceintel/internal/cache"
	"github.com/randytsao24/experienceintel/internal/config"
	"github.com/randytsao24/experienceintel/internal/models"
)

// Deps are the services the router wires into handlers
type Deps struct {
	Engine     handlers.DashboardRenderer
	Models     advisor.Models
	Artifacts  handlers.ArtifactSource
	Page       handlers.PageRenderer
	Stylesheet handlers.StylesheetSource
	Dashboards *cache.Cache[*models.Dashboard]
}

// NewRouter creates and configures the HTTP router with all routes and middleware
func NewRouter(cfg *config.Config, deps Deps) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(deps.Artifacts)
	rootHandler := handlers.NewRootHandler()
	dashboardHandler := handlers.NewDashboardHandler(deps.Engine, deps.Page, deps.Stylesheet, deps.Dashboards)
	predictHandler := handlers.NewPredictHandler(deps.Models)

	// Dashboard
	mux.HandleFunc("GET /{$}", dashboardHandler.Page)
	mux.HandleFunc("GET /assets/style.css", dashboardHandler.Stylesheet)

	// Core routes
	mux.HandleFunc("GET /api", rootHandler.Index)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Dashboard data
	mux.HandleFunc("GET /api/dashboard", dashboardHandler.JSON)
	mux.HandleFunc("GET /api/widgets", dashboardHandler.Widgets)
	mux.HandleFunc("GET /api/artifacts", healthHandler.Artifacts)

	// Single-model predictions
	mux.HandleFunc("POST /api/predict/taxi", predictHandler.Taxi)
	mux.HandleFunc("POST /api/predict/churn", predictHandler.Churn)
	mux.HandleFunc("POST /api/predict/engagement", predictHandler.Engagement)
	mux.HandleFunc("POST /api/predict/whatif", predictHandler.WhatIf)

	// Apply middleware stack
	middleware := []func(http.Handler) http.Handler{
		Recovery,
		RequestID,
		Logging,
		CORS,
	}
	if cfg.RateLimitEnabled() {
		middleware = append(middleware, NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware)
	}
	if cfg.HTTPTimeout > 0 {
		middleware = append(middleware, Timeout(cfg.HTTPTimeout))
	}
	middleware = append(middleware, Metrics)

	return Chain(mux, middleware...)
}
