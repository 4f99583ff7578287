package routes

import (
	"net/http"

	"github.com/geognosis/orecast/internal/api/handlers"
	"github.com/geognosis/orecast/internal/api/middleware"
	"github.com/geognosis/orecast/internal/domain/repositories"
	"github.com/geognosis/orecast/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	estimatorHandler  *handlers.EstimatorHandler
	projectHandler    *handlers.ProjectHandler
	comparisonHandler *handlers.ComparisonHandler
	authHandler       *handlers.AuthHandler
	marketHandler     *handlers.MarketHandler

	sessions       repositories.SessionRepository
	allowedOrigins []string
	metrics        *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	estimatorHandler *handlers.EstimatorHandler,
	projectHandler *handlers.ProjectHandler,
	comparisonHandler *handlers.ComparisonHandler,
	authHandler *handlers.AuthHandler,
	marketHandler *handlers.MarketHandler,
	sessions repositories.SessionRepository,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:               http.NewServeMux(),
		estimatorHandler:  estimatorHandler,
		projectHandler:    projectHandler,
		comparisonHandler: comparisonHandler,
		authHandler:       authHandler,
		marketHandler:     marketHandler,
		sessions:          sessions,
		allowedOrigins:    allowedOrigins,
		metrics:           metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Auth endpoints (exempt from the route guard)
	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)
	r.mux.HandleFunc("POST /api/auth/logout", r.authHandler.Logout)
	r.mux.HandleFunc("GET /api/auth/session", r.authHandler.GetSession)

	// Estimator endpoints
	r.mux.HandleFunc("GET /api/estimator", r.estimatorHandler.GetState)
	r.mux.HandleFunc("POST /api/estimator/calculate", r.estimatorHandler.Calculate)
	r.mux.HandleFunc("GET /api/estimator/history", r.estimatorHandler.ListHistory)
	r.mux.HandleFunc("POST /api/estimator/history/{id}/load", r.estimatorHandler.LoadSite)
	r.mux.HandleFunc("POST /api/estimator/history/{id}/recalculate", r.estimatorHandler.Recalculate)
	r.mux.HandleFunc("POST /api/estimator/history/{id}/save-to-project", r.estimatorHandler.SaveToProject)
	r.mux.HandleFunc("PATCH /api/estimator/history/{id}", r.estimatorHandler.Rename)
	r.mux.HandleFunc("DELETE /api/estimator/history/{id}", r.estimatorHandler.Delete)

	// Project endpoints
	r.mux.HandleFunc("GET /api/projects", r.projectHandler.ListProjects)
	r.mux.HandleFunc("POST /api/projects", r.projectHandler.CreateProject)
	r.mux.HandleFunc("GET /api/projects/{id}", r.projectHandler.GetProject)
	r.mux.HandleFunc("DELETE /api/projects/{id}", r.projectHandler.DeleteProject)
	r.mux.HandleFunc("GET /api/projects/{id}/metrics", r.projectHandler.GetMetrics)
	r.mux.HandleFunc("PUT /api/projects/{id}/metrics", r.projectHandler.UpdateMetrics)

	// Comparison endpoints
	r.mux.HandleFunc("GET /api/comparison/sites", r.comparisonHandler.SearchSites)
	r.mux.HandleFunc("POST /api/comparison/select", r.comparisonHandler.SelectSites)

	// Market endpoints
	r.mux.HandleFunc("GET /api/prices", r.marketHandler.ListPrices)
	r.mux.HandleFunc("GET /api/prices/{mineral}", r.marketHandler.GetPrice)
	r.mux.HandleFunc("GET /api/prices/{mineral}/history", r.marketHandler.GetPriceHistory)
	r.mux.HandleFunc("GET /api/stream/prices/{mineral}", r.marketHandler.StreamPriceUpdates)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so guarded responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.AuthMiddleware(r.sessions)(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
